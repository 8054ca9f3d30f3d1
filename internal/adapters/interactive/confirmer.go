package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// ConfirmerAdapter asks yes/no questions on the terminal
type ConfirmerAdapter struct {
	config *config.RuntimeConfig
	run    func(prompt *promptui.Prompt) (string, error)
}

// NewConfirmerAdapter creates a new confirmer adapter
func NewConfirmerAdapter(cfg *config.RuntimeConfig) *ConfirmerAdapter {
	return &ConfirmerAdapter{
		config: cfg,
		run:    func(p *promptui.Prompt) (string, error) { return p.Run() },
	}
}

// Confirm implements usecase.Confirmer. Declining, or pressing ^C, returns
// false without an error.
func (c *ConfirmerAdapter) Confirm(ctx context.Context, message string) (bool, error) {
	if c.config.NonInteractive {
		return false, fmt.Errorf("cannot confirm %q in non-interactive mode", message)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	prompt := &promptui.Prompt{
		Label:     color.New(color.FgYellow).Sprint(message),
		IsConfirm: true,
	}

	_, err := c.run(prompt)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt):
		return false, nil
	default:
		return false, fmt.Errorf("prompt failed: %w", err)
	}
}

var _ usecase.Confirmer = (*ConfirmerAdapter)(nil)
