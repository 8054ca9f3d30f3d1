package config

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/solos-nft/solos-deploy/internal/domain"
)

// DeploymentConfig holds the identities and amounts used by one deployment of
// the topology.
type DeploymentConfig struct {
	Variant       domain.InitVariant
	Admin         common.Address // governs the timelock
	URISigner     common.Address // signs metadata URIs
	TimelockDelay uint64         // seconds
	VaultMembers  []common.Address
	VaultShares   []uint64 // positional weights, one per member
	BaseURI       string
	MaxTokenCount uint64
	PaymentSteps  []*big.Int // base units, extended variant only
}

// Validate checks the configuration before any transaction is sent
func (c *DeploymentConfig) Validate() error {
	if _, err := domain.ShapeFor(c.Variant); err != nil {
		return &domain.ConfigError{Field: "variant", Reason: "unsupported variant", Err: err}
	}
	if c.Admin == (common.Address{}) {
		return &domain.ConfigError{Field: "deployment.admin", Reason: "zero address"}
	}
	if c.URISigner == (common.Address{}) {
		return &domain.ConfigError{Field: "deployment.uri_signer", Reason: "zero address"}
	}
	if len(c.VaultMembers) == 0 {
		return &domain.ConfigError{Field: "deployment.vault_members", Reason: "at least one member is required"}
	}
	if len(c.VaultMembers) != len(c.VaultShares) {
		return &domain.ConfigError{
			Field:  "deployment.vault_shares",
			Reason: fmt.Sprintf("%d shares for %d members", len(c.VaultShares), len(c.VaultMembers)),
		}
	}
	seen := make(map[common.Address]bool, len(c.VaultMembers))
	for i, m := range c.VaultMembers {
		if m == (common.Address{}) {
			return &domain.ConfigError{Field: fmt.Sprintf("deployment.vault_members[%d]", i), Reason: "zero address"}
		}
		if seen[m] {
			return &domain.ConfigError{Field: fmt.Sprintf("deployment.vault_members[%d]", i), Reason: "duplicate member " + m.Hex()}
		}
		seen[m] = true
	}
	for i, s := range c.VaultShares {
		if s == 0 {
			return &domain.ConfigError{Field: fmt.Sprintf("deployment.vault_shares[%d]", i), Reason: "share must be positive"}
		}
	}
	if c.MaxTokenCount == 0 {
		return &domain.ConfigError{Field: "deployment.max_token_count", Reason: "must be positive"}
	}

	switch c.Variant {
	case domain.InitVariantExtended:
		if len(c.PaymentSteps) == 0 {
			return &domain.ConfigError{Field: "deployment.payment_steps", Reason: "extended variant requires a payment schedule"}
		}
		if err := domain.ValidatePaymentSteps(c.PaymentSteps); err != nil {
			return &domain.ConfigError{Field: "deployment.payment_steps", Reason: "invalid schedule", Err: err}
		}
	default:
		if len(c.PaymentSteps) > 0 {
			return &domain.ConfigError{Field: "deployment.payment_steps", Reason: "only the extended variant takes a payment schedule"}
		}
	}

	return nil
}

// Shape returns the initialize argument shape of the configured variant
func (c *DeploymentConfig) Shape() domain.InitShape {
	shape, err := domain.ShapeFor(c.Variant)
	if err != nil {
		panic(err) // Validate rejects unknown variants
	}
	return shape
}

// InitParams returns the static part of the initialize arguments
func (c *DeploymentConfig) InitParams() domain.InitParams {
	return domain.InitParams{
		BaseURI:       c.BaseURI,
		MaxTokenCount: new(big.Int).SetUint64(c.MaxTokenCount),
		URISigner:     c.URISigner,
		PaymentSteps:  c.PaymentSteps,
	}
}

// VaultSharesBig returns the vault shares as uint256 values
func (c *DeploymentConfig) VaultSharesBig() []*big.Int {
	out := make([]*big.Int, len(c.VaultShares))
	for i, s := range c.VaultShares {
		out[i] = new(big.Int).SetUint64(s)
	}
	return out
}
