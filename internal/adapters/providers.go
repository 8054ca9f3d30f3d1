package adapters

import (
	"github.com/google/wire"
	"github.com/solos-nft/solos-deploy/internal/adapters/artifacts"
	"github.com/solos-nft/solos-deploy/internal/adapters/blockchain"
	"github.com/solos-nft/solos-deploy/internal/adapters/fs"
	"github.com/solos-nft/solos-deploy/internal/adapters/interactive"
	"github.com/solos-nft/solos-deploy/internal/adapters/senders"
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRegistryStore,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.RegistryStore)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),

	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmerAdapter)),
)

// BlockchainSet provides the RPC client and the key that signs for it
var BlockchainSet = wire.NewSet(
	senders.NewPrivateKeySigner,
	wire.Bind(new(blockchain.Signer), new(*senders.PrivateKeySigner)),

	blockchain.NewClient,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Client)),
	wire.Bind(new(usecase.NFTClient), new(*blockchain.Client)),
	wire.Bind(new(usecase.ChainReader), new(*blockchain.Client)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	InteractiveSet,
	BlockchainSet,
)
