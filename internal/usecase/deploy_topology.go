package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
)

// DeployTopology deploys the NFT, token, timelock and vault contracts in
// dependency order and wires them together with a single initialize call.
type DeployTopology struct {
	cfg       *config.RuntimeConfig
	artifacts ArtifactRepository
	deployer  ContractDeployer
	nft       NFTClient
	chain     ChainReader
	store     DeploymentStore
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployTopology creates a new deploy topology use case
func NewDeployTopology(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	nft NFTClient,
	chain ChainReader,
	store DeploymentStore,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployTopology {
	return &DeployTopology{
		cfg:       cfg,
		artifacts: artifacts,
		deployer:  deployer,
		nft:       nft,
		chain:     chain,
		store:     store,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// DeployTopologyResult contains the outcome of a run. On failure it still
// holds every contract created before the failing step.
type DeployTopologyResult struct {
	Network           *config.Network
	ChainID           uint64
	Deployer          common.Address
	Variant           domain.InitVariant
	Plan              []domain.Step
	Contracts         []*models.ContractHandle
	InitializedBefore bool
	InitializedAfter  bool
	InitializeTx      common.Hash
	Success           bool
}

// Contract returns the handle of a deployed contract, or nil
func (r *DeployTopologyResult) Contract(kind domain.ContractKind) *models.ContractHandle {
	for _, c := range r.Contracts {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ErrDeploymentCancelled is returned when the operator declines to broadcast
var ErrDeploymentCancelled = errors.New("deployment cancelled")

// Execute runs the topology. The first error aborts the run; contracts that
// were already created stay on chain and are reported in the result.
func (uc *DeployTopology) Execute(ctx context.Context) (*DeployTopologyResult, error) {
	deployment, err := uc.cfg.RequireDeployment()
	if err != nil {
		return nil, err
	}
	if err := deployment.Validate(); err != nil {
		return nil, err
	}

	plan, err := domain.SolosTopology().TopologicalSort()
	if err != nil {
		return nil, err
	}

	artifacts, err := uc.loadArtifacts(ctx, plan)
	if err != nil {
		return nil, err
	}

	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chain: %w", err)
	}

	deployer, err := uc.deployer.DeployerAddress()
	if err != nil {
		return nil, err
	}

	result := &DeployTopologyResult{
		Network:  uc.cfg.Network,
		ChainID:  chainID,
		Deployer: deployer,
		Variant:  deployment.Variant,
		Plan:     plan,
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageDeployerResolved,
		Message:  fmt.Sprintf("Deployer: %s", deployer.Hex()),
		Metadata: deployer,
	})
	uc.log.Info("resolved deployer", "address", deployer.Hex(), "chain_id", chainID, "variant", deployment.Variant)

	if !uc.cfg.NonInteractive && !uc.cfg.Network.IsLocal() {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy %d contracts to chain %d from %s", len(artifacts), chainID, deployer.Hex()))
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			return nil, ErrDeploymentCancelled
		}
	}

	record := &models.TopologyRecord{
		ChainID:   chainID,
		Variant:   deployment.Variant,
		Deployer:  deployer.Hex(),
		Status:    models.TopologyStatusDeploying,
		StartedAt: time.Now(),
	}
	if uc.cfg.Network != nil {
		record.Network = uc.cfg.Network.Name
	}

	resolved := make(map[domain.ContractKind]*models.ContractHandle, len(artifacts))
	for i, step := range plan {
		for _, dep := range step.Deps {
			if _, ok := resolved[domain.ContractKind(dep)]; !ok {
				err := fmt.Errorf("step '%s' reached before dependency '%s' was deployed", step.Name, dep)
				uc.fail(ctx, record, err)
				return result, err
			}
		}

		if step.IsContract() {
			uc.progress.OnProgress(ctx, ProgressEvent{
				Stage:   StageDeploying,
				Current: i + 1,
				Total:   len(plan),
				Message: fmt.Sprintf("Deploying %s", artifacts[step.Kind].Name),
				Spinner: true,
			})

			handle, err := uc.deployContract(ctx, step.Kind, artifacts[step.Kind], resolved, deployment)
			if err != nil {
				uc.fail(ctx, record, err)
				return result, err
			}
			resolved[step.Kind] = handle
			result.Contracts = append(result.Contracts, handle)

			record.Deployments = append(record.Deployments, &models.Deployment{
				Contract:    handle.Kind,
				Artifact:    handle.Name,
				Address:     handle.Address.Hex(),
				TxHash:      handle.TxHash.Hex(),
				BlockNumber: handle.BlockNumber,
				CreatedAt:   time.Now(),
			})
			uc.save(ctx, record)

			uc.progress.OnProgress(ctx, ProgressEvent{
				Stage:    StageDeployed,
				Current:  i + 1,
				Total:    len(plan),
				Message:  fmt.Sprintf("%s deployed to %s", handle.Name, handle.Address.Hex()),
				Metadata: handle,
			})
			uc.log.Info("contract deployed", "contract", handle.Kind, "address", handle.Address.Hex(), "tx", handle.TxHash.Hex())
			continue
		}

		if err := uc.initialize(ctx, result, resolved, deployment); err != nil {
			uc.fail(ctx, record, err)
			return result, err
		}
		record.InitializeTx = result.InitializeTx.Hex()
		record.Initialized = result.InitializedAfter
	}

	result.Success = true
	record.Status = models.TopologyStatusInitialized
	uc.save(ctx, record)

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted, Metadata: result})
	return result, nil
}

// loadArtifacts resolves every artifact up front so a missing build output
// fails the run before anything is broadcast.
func (uc *DeployTopology) loadArtifacts(ctx context.Context, plan []domain.Step) (map[domain.ContractKind]*models.Artifact, error) {
	out := make(map[domain.ContractKind]*models.Artifact)
	for _, step := range plan {
		if !step.IsContract() {
			continue
		}
		artifact, err := uc.artifacts.GetArtifact(ctx, step.Kind)
		if err != nil {
			return nil, &domain.ConfigError{Field: "artifacts." + string(step.Kind), Reason: "artifact not available", Err: err}
		}
		out[step.Kind] = artifact
	}
	return out, nil
}

func (uc *DeployTopology) deployContract(
	ctx context.Context,
	kind domain.ContractKind,
	artifact *models.Artifact,
	resolved map[domain.ContractKind]*models.ContractHandle,
	deployment *config.DeploymentConfig,
) (*models.ContractHandle, error) {
	args, err := constructorArgs(kind, resolved, deployment)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: kind, Artifact: artifact.Name, Err: err}
	}

	uc.log.Debug("deploying contract", "contract", kind, "artifact", artifact.Name, "args", len(args))
	handle, err := uc.deployer.Deploy(ctx, kind, artifact, args...)
	if err != nil {
		return nil, &domain.DeploymentError{Contract: kind, Artifact: artifact.Name, Err: err}
	}
	return handle, nil
}

func (uc *DeployTopology) initialize(
	ctx context.Context,
	result *DeployTopologyResult,
	resolved map[domain.ContractKind]*models.ContractHandle,
	deployment *config.DeploymentConfig,
) error {
	nft := resolved[domain.ContractNFT]

	before, err := uc.nft.IsInitialized(ctx, nft)
	if err != nil {
		return &domain.QueryError{Contract: domain.ContractNFT, Method: "isInitialized", Err: err}
	}
	result.InitializedBefore = before
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageInitState,
		Message:  fmt.Sprintf("Is Contract Initialized: %t", before),
		Metadata: before,
	})
	if before {
		return &domain.InitializationError{Contract: domain.ContractNFT, Err: domain.ErrAlreadyInitialized}
	}

	shape := deployment.Shape()
	args := shape.Arguments(domain.InitAddresses{
		Token:    resolved[domain.ContractToken].Address,
		Timelock: resolved[domain.ContractTimelock].Address,
		Vault:    resolved[domain.ContractVault].Address,
	}, deployment.InitParams())

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageInitializing,
		Message: fmt.Sprintf("Initializing %s (%s)", nft.Name, shape.Variant()),
		Spinner: true,
	})
	tx, err := uc.nft.Initialize(ctx, nft, shape, args)
	if err != nil {
		return &domain.InitializationError{Contract: domain.ContractNFT, Err: err}
	}
	result.InitializeTx = tx
	uc.log.Info("nft initialized", "tx", tx.Hex(), "variant", shape.Variant())

	after, err := uc.nft.IsInitialized(ctx, nft)
	if err != nil {
		return &domain.QueryError{Contract: domain.ContractNFT, Method: "isInitialized", Err: err}
	}
	result.InitializedAfter = after
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageInitState,
		Message:  fmt.Sprintf("Is Contract Initialized: %t", after),
		Metadata: after,
	})
	if !after {
		return &domain.InitializationError{Contract: domain.ContractNFT, Err: domain.ErrNotInitialized}
	}
	return nil
}

func (uc *DeployTopology) fail(ctx context.Context, record *models.TopologyRecord, err error) {
	uc.progress.Error(err.Error())
	if len(record.Deployments) == 0 {
		// nothing reached the chain
		return
	}
	record.Status = models.TopologyStatusFailed
	record.Error = err.Error()
	uc.save(ctx, record)
}

func (uc *DeployTopology) save(ctx context.Context, record *models.TopologyRecord) {
	record.UpdatedAt = time.Now()
	if err := uc.store.SaveTopology(ctx, record); err != nil {
		uc.log.Warn("failed to record deployment", "chain_id", record.ChainID, "error", err)
	}
}

// constructorArgs builds the creation arguments of a contract from the
// addresses resolved so far.
func constructorArgs(
	kind domain.ContractKind,
	resolved map[domain.ContractKind]*models.ContractHandle,
	deployment *config.DeploymentConfig,
) ([]any, error) {
	switch kind {
	case domain.ContractNFT:
		return nil, nil
	case domain.ContractToken:
		nft, ok := resolved[domain.ContractNFT]
		if !ok {
			return nil, fmt.Errorf("token requires the nft address")
		}
		return []any{nft.Address}, nil
	case domain.ContractTimelock:
		return []any{deployment.Admin, new(big.Int).SetUint64(deployment.TimelockDelay)}, nil
	case domain.ContractVault:
		members := make([]common.Address, len(deployment.VaultMembers))
		copy(members, deployment.VaultMembers)
		return []any{members, deployment.VaultSharesBig()}, nil
	default:
		return nil, fmt.Errorf("unknown contract kind %q", kind)
	}
}
