package usecase

import (
	"context"
	"fmt"

	"github.com/solos-nft/solos-deploy/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store    LocalConfigStore
	networks NetworkResolver
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore, networks NetworkResolver) *SetConfig {
	return &SetConfig{
		store:    store,
		networks: networks,
	}
}

// Run executes the set config use case. A network must resolve before it is
// stored, so a typo cannot break every later command.
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := config.ParseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}

	if key == config.ConfigKeyNetwork {
		if _, err := uc.networks.Resolve(params.Value); err != nil {
			return nil, err
		}
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Set(key, params.Value); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         params.Value,
	}, nil
}
