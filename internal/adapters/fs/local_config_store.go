package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// LocalConfigFile is read by viper as the lowest-priority settings layer
const LocalConfigFile = "config.local.json"

// LocalConfigStoreAdapter keeps the per-checkout defaults next to the
// deployment registry
type LocalConfigStoreAdapter struct {
	path string
}

// NewLocalConfigStoreAdapter creates a new LocalConfigStoreAdapter
func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{path: filepath.Join(cfg.DataDir, LocalConfigFile)}
}

// Exists reports whether the file has been written
func (s *LocalConfigStoreAdapter) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the stored defaults. A missing file is an empty config; a
// hand-edited value that would break SetupViper is rejected here.
func (s *LocalConfigStoreAdapter) Load(ctx context.Context) (*config.LocalConfig, error) {
	local := &config.LocalConfig{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return local, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, local); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}
	if err := local.Set(config.ConfigKeyTimeout, local.Timeout); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	return local, nil
}

// Save replaces the stored defaults
func (s *LocalConfigStoreAdapter) Save(ctx context.Context, local *config.LocalConfig) error {
	if err := writeJSON(s.path, local); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetPath returns the path to the config file
func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.path
}

var _ usecase.LocalConfigStore = (*LocalConfigStoreAdapter)(nil)
