package models

import (
	"time"

	"github.com/solos-nft/solos-deploy/internal/domain"
)

// TopologyStatus represents how far a recorded run got
type TopologyStatus string

const (
	TopologyStatusDeploying   TopologyStatus = "DEPLOYING"
	TopologyStatusInitialized TopologyStatus = "INITIALIZED"
	TopologyStatusFailed      TopologyStatus = "FAILED"
)

// Deployment represents one contract created by a run
type Deployment struct {
	Contract    domain.ContractKind `json:"contract"`
	Artifact    string              `json:"artifact"`
	Address     string              `json:"address"`
	TxHash      string              `json:"txHash"`
	BlockNumber uint64              `json:"blockNumber"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// TopologyRecord is the persisted result of the latest run on a chain
type TopologyRecord struct {
	ChainID      uint64             `json:"chainId"`
	Network      string             `json:"network"`
	Variant      domain.InitVariant `json:"variant"`
	Deployer     string             `json:"deployer"`
	Deployments  []*Deployment      `json:"deployments"`
	InitializeTx string             `json:"initializeTx,omitempty"`
	Initialized  bool               `json:"initialized"`
	Status       TopologyStatus     `json:"status"`
	Error        string             `json:"error,omitempty"`
	StartedAt    time.Time          `json:"startedAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// Deployment returns the recorded deployment of a contract kind
func (r *TopologyRecord) Deployment(kind domain.ContractKind) (*Deployment, bool) {
	for _, d := range r.Deployments {
		if d.Contract == kind {
			return d, true
		}
	}
	return nil, false
}
