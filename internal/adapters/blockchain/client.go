package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
)

// Backend is the part of the ethclient API used by the client.
// *ethclient.Client and simulated.Client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Signer provides the deployer identity and signs transactions
type Signer interface {
	Address() (common.Address, error)
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
}

// Client deploys and calls contracts over JSON-RPC. The connection is opened
// on first use so commands that never touch the chain work offline.
type Client struct {
	network *config.Network
	signer  Signer
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewClient creates a new chain client for the configured network
func NewClient(cfg *config.RuntimeConfig, signer Signer, log *slog.Logger) *Client {
	return &Client{
		network: cfg.Network,
		signer:  signer,
		log:     log,
	}
}

// NewClientWithBackend creates a client over an existing backend
func NewClientWithBackend(backend Backend, network *config.Network, signer Signer, log *slog.Logger) *Client {
	return &Client{
		network: network,
		signer:  signer,
		log:     log,
		backend: backend,
	}
}

// connect dials the RPC endpoint once and checks that it serves the
// configured chain. A network without a chain ID adopts the RPC's.
func (c *Client) connect(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil && c.chainID != nil {
		return c.backend, c.chainID, nil
	}
	if c.network == nil {
		return nil, nil, fmt.Errorf("no network configured")
	}

	if c.backend == nil {
		c.log.Debug("connecting", "network", c.network.Name, "rpc", c.network.RPCURL)
		client, err := ethclient.DialContext(ctx, c.network.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.backend = client
	}

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if c.network.ChainID == 0 {
		c.network.ChainID = chainID.Uint64()
	} else if chainID.Uint64() != c.network.ChainID {
		return nil, nil, fmt.Errorf("%w: network %s expects %d, RPC reports %d",
			domain.ErrChainIDMismatch, c.network.Name, c.network.ChainID, chainID.Uint64())
	}

	c.chainID = chainID
	return c.backend, c.chainID, nil
}

// ChainID implements usecase.ChainReader
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	_, chainID, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

// PendingNonce implements usecase.ChainReader
func (c *Client) PendingNonce(ctx context.Context, account common.Address) (uint64, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return backend.PendingNonceAt(ctx, account)
}

// DeployerAddress implements usecase.ContractDeployer
func (c *Client) DeployerAddress() (common.Address, error) {
	return c.signer.Address()
}

// Deploy implements usecase.ContractDeployer. It returns once the creation
// receipt is mined and code exists at the new address.
func (c *Client) Deploy(ctx context.Context, kind domain.ContractKind, artifact *models.Artifact, args ...any) (*models.ContractHandle, error) {
	backend, chainID, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	input, err := packConstructor(artifact.ABI, args)
	if err != nil {
		return nil, err
	}

	opts, err := c.signer.TransactOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}

	address, tx, err := bind.DeployContract(opts, artifact.Bytecode, backend, input)
	if err != nil {
		return nil, fmt.Errorf("failed to send creation transaction: %w", err)
	}
	c.log.Debug("creation transaction sent", "contract", kind, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := bind.WaitMined(ctx, backend, tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("creation transaction %s reverted", tx.Hash().Hex())
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("no code at %s after deployment", address.Hex())
	}

	return &models.ContractHandle{
		Kind:        kind,
		Name:        artifact.Name,
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		ABI:         artifact.ABI,
	}, nil
}

func packConstructor(contractABI abi.ABI, args []any) ([]byte, error) {
	if len(contractABI.Constructor.Inputs) == 0 {
		if len(args) > 0 {
			return nil, fmt.Errorf("constructor takes no arguments, got %d", len(args))
		}
		return nil, nil
	}

	coerced, err := CoerceArgs(contractABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("constructor: %w", err)
	}
	input, err := contractABI.Constructor.Inputs.Pack(coerced...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	return input, nil
}

// IsInitialized implements usecase.NFTClient
func (c *Client) IsInitialized(ctx context.Context, nft *models.ContractHandle) (bool, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return false, err
	}

	method, ok := nft.FindMethod("isInitialized", 0)
	if !ok {
		return false, fmt.Errorf("%s abi has no isInitialized()", nft.Name)
	}

	contract := bind.NewBoundContract(nft.Address, nft.ABI, backend, backend, backend)
	return bind.Call(contract, &bind.CallOpts{Context: ctx}, method.ID, func(out []byte) (bool, error) {
		values, err := method.Outputs.Unpack(out)
		if err != nil {
			return false, err
		}
		if len(values) != 1 {
			return false, fmt.Errorf("isInitialized returned %d values", len(values))
		}
		return *abi.ConvertType(values[0], new(bool)).(*bool), nil
	})
}

// Initialize implements usecase.NFTClient. The overload is chosen by the
// number of arguments the shape produced.
func (c *Client) Initialize(ctx context.Context, nft *models.ContractHandle, shape domain.InitShape, args []any) (common.Hash, error) {
	backend, chainID, err := c.connect(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	method, ok := nft.FindMethod("initialize", len(args))
	if !ok {
		return common.Hash{}, fmt.Errorf("%s abi has no %s", nft.Name, shape.Signature())
	}
	if method.Sig != shape.Signature() {
		c.log.Warn("initialize signature differs", "abi", method.Sig, "expected", shape.Signature())
	}

	coerced, err := CoerceArgs(method.Inputs, args)
	if err != nil {
		return common.Hash{}, err
	}
	packed, err := method.Inputs.Pack(coerced...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode initialize arguments: %w", err)
	}
	data := append(append([]byte{}, method.ID...), packed...)

	opts, err := c.signer.TransactOpts(ctx, chainID)
	if err != nil {
		return common.Hash{}, err
	}

	contract := bind.NewBoundContract(nft.Address, nft.ABI, backend, backend, backend)
	tx, err := bind.Transact(contract, opts, data)
	if err != nil {
		return common.Hash{}, err
	}
	c.log.Debug("initialize sent", "tx", tx.Hash().Hex(), "variant", shape.Variant())

	receipt, err := bind.WaitMined(ctx, backend, tx.Hash())
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return tx.Hash(), fmt.Errorf("initialize transaction %s reverted", tx.Hash().Hex())
	}
	return tx.Hash(), nil
}
