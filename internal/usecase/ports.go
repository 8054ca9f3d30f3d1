package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
)

// ContractDeployer creates contracts on chain
type ContractDeployer interface {
	// DeployerAddress resolves the identity signing every transaction of a run
	DeployerAddress() (common.Address, error)
	// Deploy submits a creation transaction and blocks until it is confirmed
	Deploy(ctx context.Context, kind domain.ContractKind, artifact *models.Artifact, args ...any) (*models.ContractHandle, error)
}

// NFTClient reads and wires the deployed NFT contract
type NFTClient interface {
	IsInitialized(ctx context.Context, nft *models.ContractHandle) (bool, error)
	// Initialize sends the one-time setup call and waits for its receipt
	Initialize(ctx context.Context, nft *models.ContractHandle, shape domain.InitShape, args []any) (common.Hash, error)
}

// ChainReader provides read-only chain information
type ChainReader interface {
	ChainID(ctx context.Context) (uint64, error)
	PendingNonce(ctx context.Context, account common.Address) (uint64, error)
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, kind domain.ContractKind) (*models.Artifact, error)
}

// DeploymentStore handles persistence of deployed topologies
type DeploymentStore interface {
	SaveTopology(ctx context.Context, record *models.TopologyRecord) error
	GetTopology(ctx context.Context, chainID uint64) (*models.TopologyRecord, error)
}

// NetworkResolver resolves network names from the project configuration
type NetworkResolver interface {
	Names() []string
	Resolve(name string) (*config.Network, error)
}

// LocalConfigStore manages .solos/config.local.json
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// Confirmer asks the operator before irreversible actions
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// Progress stages emitted by DeployTopology
const (
	StageDeployerResolved = "deployer_resolved"
	StageDeploying        = "deploying"
	StageDeployed         = "deployed"
	StageInitState        = "init_state"
	StageInitializing     = "initializing"
	StageCompleted        = "completed"
)

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
