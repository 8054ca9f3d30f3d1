package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// SpinnerProgressReporter shows a spinner while a transaction is pending and
// a line per finished step. It writes to stderr so stdout stays parseable.
type SpinnerProgressReporter struct {
	spinner   *spinner.Spinner
	out       io.Writer
	stepStart time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		r.stepStart = time.Now()
		r.spinner.Suffix = " " + r.prefix(event) + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	r.stop()

	switch event.Stage {
	case usecase.StageDeployerResolved:
		fmt.Fprintln(r.out, color.New(color.Faint).Sprint(event.Message))
	case usecase.StageDeployed:
		fmt.Fprintf(r.out, "%s %s%s%s\n",
			color.GreenString("✓"),
			r.prefix(event),
			event.Message,
			color.New(color.Faint).Sprintf(" (%s)", r.elapsed()))
	case usecase.StageInitState:
		fmt.Fprintln(r.out, color.New(color.Faint).Sprint(event.Message))
	case usecase.StageCompleted:
		fmt.Fprintln(r.out, color.GreenString("✓ Topology deployed and initialized"))
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printAround(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.stop()
	fmt.Fprintln(r.out, color.RedString("✗ %s", message))
}

func (r *SpinnerProgressReporter) printAround(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	fmt.Fprintln(r.out, c.Sprint(message))

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerProgressReporter) prefix(event usecase.ProgressEvent) string {
	if event.Total == 0 {
		return ""
	}
	return fmt.Sprintf("[%d/%d] ", event.Current, event.Total)
}

func (r *SpinnerProgressReporter) elapsed() time.Duration {
	if r.stepStart.IsZero() {
		return 0
	}
	return time.Since(r.stepStart).Round(time.Millisecond)
}

var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
