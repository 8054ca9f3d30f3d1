package senders

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
)

// PrivateKeySigner signs with a hex private key from [sender] or
// SOLOS_PRIVATE_KEY. The key is parsed on first use.
type PrivateKeySigner struct {
	raw string

	once sync.Once
	key  *ecdsa.PrivateKey
	err  error
}

// NewPrivateKeySigner creates a new private key signer
func NewPrivateKeySigner(cfg *config.RuntimeConfig) *PrivateKeySigner {
	return &PrivateKeySigner{raw: cfg.Sender.PrivateKey}
}

func (s *PrivateKeySigner) load() (*ecdsa.PrivateKey, error) {
	s.once.Do(func() {
		raw := strings.TrimPrefix(strings.TrimSpace(s.raw), "0x")
		if raw == "" {
			s.err = &domain.ConfigError{Field: "sender.private_key", Reason: "not set (use [sender] private_key or SOLOS_PRIVATE_KEY)"}
			return
		}
		key, err := crypto.HexToECDSA(raw)
		if err != nil {
			// never echo the key itself
			s.err = &domain.ConfigError{Field: "sender.private_key", Reason: "not a valid secp256k1 key"}
			return
		}
		s.key = key
	})
	return s.key, s.err
}

// Address returns the deployer address
func (s *PrivateKeySigner) Address() (common.Address, error) {
	key, err := s.load()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// TransactOpts returns transaction options signing for chainID
func (s *PrivateKeySigner) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	key, err := s.load()
	if err != nil {
		return nil, err
	}
	opts := bind.NewKeyedTransactor(key, chainID)
	opts.Context = ctx
	return opts, nil
}
