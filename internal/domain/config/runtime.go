package config

import (
	"strings"
	"time"

	"github.com/solos-nft/solos-deploy/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	ConfigFile  string // path of solos.toml / solos.yaml, empty if none was found

	// Context settings
	Network *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration
	DryRun         bool

	// Resolved project configuration (nil when no project file was found)
	Deployment    *DeploymentConfig
	DeploymentErr error // why [deployment] could not be converted, if it couldn't
	Artifacts  ArtifactsConfig
	Sender     SenderConfig
}

// RequireDeployment returns the project's deployment section, or the
// ConfigError explaining why there is none
func (c *RuntimeConfig) RequireDeployment() (*DeploymentConfig, error) {
	if c.DeploymentErr != nil {
		return nil, c.DeploymentErr
	}
	if c.Deployment == nil {
		return nil, &domain.ConfigError{Field: "config", Reason: "no solos.toml or solos.yaml found"}
	}
	return c.Deployment, nil
}

// Network represents network configuration
type Network struct {
	ChainID  uint64 `json:"chainId"`
	Name     string `json:"name"`
	RPCURL   string `json:"rpcUrl"`
	Explorer string `json:"explorer,omitempty"`
}

// AddressURL links an address on the network's block explorer, if known
func (n *Network) AddressURL(address string) string {
	if n == nil || n.Explorer == "" {
		return ""
	}
	return strings.TrimRight(n.Explorer, "/") + "/address/" + address
}

// IsLocal reports whether the network is a local development chain
func (n *Network) IsLocal() bool {
	return n != nil && (n.ChainID == 31337 || n.ChainID == 1337)
}

// ArtifactsConfig locates compiled contract artifacts
type ArtifactsConfig struct {
	Dir   string            // relative to the project root
	Names map[string]string // contract kind -> contract name
}

// SenderConfig represents the deployer account
type SenderConfig struct {
	PrivateKey string //nolint:gosec // resolved from an env var reference
}
