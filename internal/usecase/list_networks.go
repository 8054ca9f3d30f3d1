package usecase

import (
	"context"

	"github.com/solos-nft/solos-deploy/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents one resolvable network
type NetworkStatus struct {
	Name     string
	ChainID  uint64 // 0 when taken from the RPC on first use
	RPCURL   string
	Explorer string
	Current  bool
	Error    error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	cfg      *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		cfg:      cfg,
		resolver: resolver,
	}
}

// Run executes the use case. Networks that fail to resolve are listed with
// their error instead of failing the whole listing.
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.resolver.Names()

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{
			Name:    name,
			Current: uc.cfg.Network != nil && uc.cfg.Network.Name == name,
		}

		info, err := uc.resolver.Resolve(name)
		if err != nil {
			status.Error = err
		} else {
			status.ChainID = info.ChainID
			status.RPCURL = info.RPCURL
			status.Explorer = info.Explorer
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
