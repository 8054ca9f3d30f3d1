package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/spf13/viper"
)

// DefaultNetwork is used when neither --network nor the project file name one
const DefaultNetwork = "localhost"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot, configFile, err := locateProject(v)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".solos"),
		ConfigFile:     configFile,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		DryRun:         v.GetBool("dry_run"),
	}

	foundry, err := LoadFoundryConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	var pf *ProjectFile
	if configFile != "" {
		pf, err = LoadProjectFile(configFile)
		if err != nil {
			return nil, err
		}
		// Only deploy and plan need [deployment]; they report the error.
		cfg.Deployment, cfg.DeploymentErr = pf.DeploymentConfig()
		cfg.Artifacts = config.ArtifactsConfig{
			Dir:   pf.Artifacts.Dir,
			Names: pf.Artifacts.Names,
		}
		cfg.Sender.PrivateKey = pf.Sender.PrivateKey
	}

	// SOLOS_PRIVATE_KEY wins over the project file
	if key := v.GetString("private_key"); key != "" {
		cfg.Sender.PrivateKey = key
	}

	networkName := v.GetString("network")
	if networkName == "" && pf != nil {
		networkName = pf.Network
	}
	if networkName == "" {
		networkName = DefaultNetwork
	}

	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = foundry.OutDir()
	}

	network, err := NewNetworkResolver(pf, foundry).Resolve(networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	if rpcURL := v.GetString("rpc_url"); rpcURL != "" {
		network.RPCURL = rpcURL
	}
	cfg.Network = network

	return cfg, nil
}

// locateProject returns the project root and the project file. An explicit
// --config path must exist; otherwise a missing project file is not an error
// and the working directory becomes the root.
func locateProject(v *viper.Viper) (string, string, error) {
	if path := v.GetString("config"); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", "", err
		}
		if _, err := os.Stat(abs); err != nil {
			return "", "", &domain.ConfigError{Field: "config", Reason: "cannot read " + path, Err: err}
		}
		return filepath.Dir(abs), abs, nil
	}

	start := v.GetString("project_root")
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		start = wd
	}

	root, file, err := FindProjectRoot(start)
	if errors.Is(err, domain.ErrNotFound) {
		abs, absErr := filepath.Abs(start)
		if absErr != nil {
			return "", "", absErr
		}
		return abs, "", nil
	}
	if err != nil {
		return "", "", err
	}
	return root, file, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".solos"))

	// Set up environment variables
	v.SetEnvPrefix("SOLOS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "10m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}
