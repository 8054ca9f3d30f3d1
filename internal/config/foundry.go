package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
)

// FoundryFile is the Foundry project file next to solos.toml
const FoundryFile = "foundry.toml"

// LoadFoundryConfig reads foundry.toml from the project root. A project
// without one yields nil. RPC endpoints have ${VAR} references expanded.
func LoadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	foundryPath := filepath.Join(projectRoot, FoundryFile)
	if _, err := os.Stat(foundryPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	loadEnvFiles(projectRoot)

	var cfg config.FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}

	return &cfg, nil
}
