package usecase

import (
	"context"
	"fmt"

	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
)

// ShowDeployment returns the recorded topology for the active network
type ShowDeployment struct {
	cfg   *config.RuntimeConfig
	store DeploymentStore
}

// NewShowDeployment creates a new show deployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentStore) *ShowDeployment {
	return &ShowDeployment{
		cfg:   cfg,
		store: store,
	}
}

// Run looks up the record by the configured network's chain ID, or by the
// given chain ID when it is non-zero.
func (uc *ShowDeployment) Run(ctx context.Context, chainID uint64) (*models.TopologyRecord, error) {
	if chainID == 0 {
		if uc.cfg.Network == nil {
			return nil, fmt.Errorf("no network selected, --network or --chain-id is required")
		}
		chainID = uc.cfg.Network.ChainID
	}

	record, err := uc.store.GetTopology(ctx, chainID)
	if err != nil {
		return nil, fmt.Errorf("no deployment recorded for chain %d: %w", chainID, err)
	}
	return record, nil
}
