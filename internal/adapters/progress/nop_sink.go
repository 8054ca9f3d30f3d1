package progress

import (
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}

// NewSink picks the spinner for interactive runs and stays silent otherwise
func NewSink(nonInteractive bool) usecase.ProgressSink {
	if nonInteractive {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}
