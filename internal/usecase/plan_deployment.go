package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
)

// PlanDeployment resolves the execution order without broadcasting anything
type PlanDeployment struct {
	cfg       *config.RuntimeConfig
	artifacts ArtifactRepository
	deployer  ContractDeployer
	chain     ChainReader
}

// NewPlanDeployment creates a new plan deployment use case
func NewPlanDeployment(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	chain ChainReader,
) *PlanDeployment {
	return &PlanDeployment{
		cfg:       cfg,
		artifacts: artifacts,
		deployer:  deployer,
		chain:     chain,
	}
}

// PlanParams contains parameters for planning
type PlanParams struct {
	// PredictAddresses queries the deployer nonce to compute CREATE addresses
	PredictAddresses bool
}

// PlannedStep is one step of a deployment plan
type PlannedStep struct {
	Name      string         `yaml:"name"`
	Contract  string         `yaml:"contract,omitempty"`
	Artifact  string         `yaml:"artifact,omitempty"`
	DependsOn []string       `yaml:"depends_on,omitempty"`
	Nonce     *uint64        `yaml:"nonce,omitempty"`
	Address   common.Address `yaml:"-"`
	Predicted bool           `yaml:"-"`
}

// DeploymentPlan is the linearized topology for the active configuration
type DeploymentPlan struct {
	Variant       domain.InitVariant `yaml:"variant"`
	InitSignature string             `yaml:"initialize"`
	ChainID       uint64             `yaml:"chain_id,omitempty"`
	Deployer      string             `yaml:"deployer,omitempty"`
	Steps         []PlannedStep      `yaml:"steps"`
}

// Execute builds the plan
func (uc *PlanDeployment) Execute(ctx context.Context, params PlanParams) (*DeploymentPlan, error) {
	deployment, err := uc.cfg.RequireDeployment()
	if err != nil {
		return nil, err
	}
	if err := deployment.Validate(); err != nil {
		return nil, err
	}

	steps, err := domain.SolosTopology().TopologicalSort()
	if err != nil {
		return nil, err
	}

	plan := &DeploymentPlan{
		Variant:       deployment.Variant,
		InitSignature: deployment.Shape().Signature(),
	}

	for _, step := range steps {
		planned := PlannedStep{
			Name:      step.Name,
			DependsOn: step.Deps,
		}
		if step.IsContract() {
			planned.Contract = string(step.Kind)
			artifact, err := uc.artifacts.GetArtifact(ctx, step.Kind)
			if err != nil {
				return nil, &domain.ConfigError{Field: "artifacts." + string(step.Kind), Reason: "artifact not available", Err: err}
			}
			planned.Artifact = artifact.Name
		}
		plan.Steps = append(plan.Steps, planned)
	}

	if !params.PredictAddresses {
		return plan, nil
	}

	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chain: %w", err)
	}
	deployer, err := uc.deployer.DeployerAddress()
	if err != nil {
		return nil, err
	}
	nonce, err := uc.chain.PendingNonce(ctx, deployer)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deployer nonce: %w", err)
	}

	plan.ChainID = chainID
	plan.Deployer = deployer.Hex()

	// every step sends exactly one transaction from the deployer
	for i := range plan.Steps {
		n := nonce + uint64(i)
		plan.Steps[i].Nonce = &n
		if plan.Steps[i].Contract != "" {
			plan.Steps[i].Address = crypto.CreateAddress(deployer, n)
			plan.Steps[i].Predicted = true
		}
	}

	return plan, nil
}
