package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
)

// builtinNetworks are usable without a [networks.<name>] entry
var builtinNetworks = map[string]NetworkConfig{
	"localhost": {RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
	"anvil":     {RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
	"hardhat":   {RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
}

// NetworkResolver resolves network names against the project file
type NetworkResolver struct {
	networks map[string]NetworkConfig
}

// NewNetworkResolver creates a new network resolver. Project entries shadow
// foundry.toml rpc_endpoints, which shadow the builtins. Both sources may be nil.
func NewNetworkResolver(pf *ProjectFile, foundry *config.FoundryConfig) *NetworkResolver {
	r := &NetworkResolver{networks: make(map[string]NetworkConfig)}
	for name, n := range builtinNetworks {
		r.networks[name] = n
	}
	if foundry != nil {
		for name, url := range foundry.RpcEndpoints {
			r.networks[name] = NetworkConfig{RPCURL: url}
		}
	}
	if pf != nil {
		for name, n := range pf.Networks {
			r.networks[name] = n
		}
	}
	return r
}

// ProvideNetworkResolver builds the resolver for the loaded project file
func ProvideNetworkResolver(cfg *config.RuntimeConfig) (*NetworkResolver, error) {
	foundry, err := LoadFoundryConfig(cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}
	if cfg.ConfigFile == "" {
		return NewNetworkResolver(nil, foundry), nil
	}
	pf, err := LoadProjectFile(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	return NewNetworkResolver(pf, foundry), nil
}

// Resolve resolves a network name to its configuration. A zero chain ID
// means the chain ID is taken from the RPC endpoint on first use.
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	n, ok := r.networks[name]
	if !ok {
		if suggestion := r.suggest(name); suggestion != "" {
			return nil, fmt.Errorf("network '%s' not found, did you mean '%s'? %w", name, suggestion, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("network '%s' not found in [networks] (known: %s): %w", name, strings.Join(r.Names(), ", "), domain.ErrNotFound)
	}
	if n.RPCURL == "" {
		return nil, &domain.ConfigError{Field: fmt.Sprintf("networks.%s.rpc_url", name), Reason: "missing RPC URL"}
	}

	return &config.Network{
		Name:     name,
		RPCURL:   n.RPCURL,
		ChainID:  n.ChainID,
		Explorer: explorerURL(n),
	}, nil
}

// Names returns the resolvable network names, sorted
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// suggest returns the closest known network name, or ""
func (r *NetworkResolver) suggest(name string) string {
	matches := fuzzy.Find(strings.ToLower(name), r.Names())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func explorerURL(n NetworkConfig) string {
	if n.Explorer != "" {
		return n.Explorer
	}

	switch n.ChainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	default:
		return ""
	}
}
