package usecase

import (
	"context"

	"github.com/solos-nft/solos-deploy/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
	// ProjectFile is the solos.toml or solos.yaml in use, if any
	ProjectFile string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	cfg   *config.RuntimeConfig
	store LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{
		cfg:   cfg,
		store: store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:      local,
		ConfigPath:  uc.store.GetPath(),
		Exists:      exists,
		ProjectFile: uc.cfg.ConfigFile,
	}, nil
}
