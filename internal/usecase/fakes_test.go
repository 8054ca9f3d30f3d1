package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
	"github.com/solos-nft/solos-deploy/internal/usecase"
	"github.com/stretchr/testify/mock"
)

var testAdmin = common.HexToAddress("0xBc7F4FFfF31485d8a0EE0F5B66fc4638D6C06A41")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type deployCall struct {
	kind     domain.ContractKind
	artifact string
	args     []any
}

// fakeChain models the four contracts closely enough to exercise the
// orchestration: CREATE addresses follow the deployer nonce, the NFT keeps a
// one-way initialized flag and rejects a second initialize.
type fakeChain struct {
	chainID     uint64
	deployer    common.Address
	deployerErr error
	nonce       uint64

	deployErr      map[domain.ContractKind]error
	queryErr       error
	initErr        error
	initOnDeploy   bool // NFT comes up already initialized
	initIsNoop     bool // initialize succeeds but the flag never flips
	deploys        []deployCall
	initCalls      [][]any
	initShapes     []domain.InitShape
	queries        int
	pendingQueries int
	initialized    map[common.Address]bool
	tokenNFTRef    map[common.Address]common.Address
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		chainID:     31337,
		deployer:    testAdmin,
		deployErr:   make(map[domain.ContractKind]error),
		initialized: make(map[common.Address]bool),
		tokenNFTRef: make(map[common.Address]common.Address),
	}
}

func (f *fakeChain) DeployerAddress() (common.Address, error) {
	if f.deployerErr != nil {
		return common.Address{}, f.deployerErr
	}
	return f.deployer, nil
}

func (f *fakeChain) Deploy(ctx context.Context, kind domain.ContractKind, artifact *models.Artifact, args ...any) (*models.ContractHandle, error) {
	f.deploys = append(f.deploys, deployCall{kind: kind, artifact: artifact.Name, args: args})
	if err := f.deployErr[kind]; err != nil {
		return nil, err
	}

	addr := crypto.CreateAddress(f.deployer, f.nonce)
	f.nonce++

	switch kind {
	case domain.ContractNFT:
		f.initialized[addr] = f.initOnDeploy
	case domain.ContractToken:
		f.tokenNFTRef[addr] = args[0].(common.Address)
	}

	return &models.ContractHandle{
		Kind:        kind,
		Name:        artifact.Name,
		Address:     addr,
		TxHash:      common.BytesToHash(addr.Bytes()),
		BlockNumber: f.nonce,
	}, nil
}

func (f *fakeChain) IsInitialized(ctx context.Context, nft *models.ContractHandle) (bool, error) {
	f.queries++
	if f.queryErr != nil {
		return false, f.queryErr
	}
	initialized, ok := f.initialized[nft.Address]
	if !ok {
		return false, fmt.Errorf("no contract code at %s", nft.Address.Hex())
	}
	return initialized, nil
}

func (f *fakeChain) Initialize(ctx context.Context, nft *models.ContractHandle, shape domain.InitShape, args []any) (common.Hash, error) {
	f.initCalls = append(f.initCalls, args)
	f.initShapes = append(f.initShapes, shape)
	if f.initErr != nil {
		return common.Hash{}, f.initErr
	}
	if f.initialized[nft.Address] {
		return common.Hash{}, fmt.Errorf("execution reverted: already initialized")
	}
	f.nonce++
	if !f.initIsNoop {
		f.initialized[nft.Address] = true
	}
	return common.HexToHash("0xabc"), nil
}

func (f *fakeChain) ChainID(ctx context.Context) (uint64, error) {
	return f.chainID, nil
}

func (f *fakeChain) PendingNonce(ctx context.Context, account common.Address) (uint64, error) {
	f.pendingQueries++
	return f.nonce, nil
}

// fakeArtifacts serves empty artifacts named after each contract kind
type fakeArtifacts struct {
	missing map[domain.ContractKind]bool
}

func (f fakeArtifacts) GetArtifact(ctx context.Context, kind domain.ContractKind) (*models.Artifact, error) {
	if f.missing[kind] {
		return nil, domain.ErrNotFound
	}
	return &models.Artifact{Name: kind.DefaultArtifactName()}, nil
}

// MockDeploymentStore is a mock implementation of DeploymentStore
type MockDeploymentStore struct {
	mock.Mock
}

func (m *MockDeploymentStore) SaveTopology(ctx context.Context, record *models.TopologyRecord) error {
	// snapshot, the use case keeps mutating the record
	cp := *record
	cp.Deployments = append([]*models.Deployment(nil), record.Deployments...)
	args := m.Called(ctx, &cp)
	return args.Error(0)
}

func (m *MockDeploymentStore) GetTopology(ctx context.Context, chainID uint64) (*models.TopologyRecord, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopologyRecord), args.Error(1)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

// recordingSink collects progress events
type recordingSink struct {
	events []string
	errors []string
}

func (s *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event.Stage+":"+event.Message)
}

func (s *recordingSink) Info(message string) {}

func (s *recordingSink) Error(message string) {
	s.errors = append(s.errors, message)
}
