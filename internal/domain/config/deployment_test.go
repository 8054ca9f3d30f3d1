package config

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = common.HexToAddress("0xBc7F4FFfF31485d8a0EE0F5B66fc4638D6C06A41")

func basicConfig() *DeploymentConfig {
	return &DeploymentConfig{
		Variant:       domain.InitVariantBasic,
		Admin:         admin,
		URISigner:     admin,
		TimelockDelay: 259200,
		VaultMembers:  []common.Address{admin},
		VaultShares:   []uint64{100},
		BaseURI:       "www.example.com/",
		MaxTokenCount: 20000,
	}
}

func TestDeploymentConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *DeploymentConfig)
		wantField string
	}{
		{"valid basic", func(c *DeploymentConfig) {}, ""},
		{"valid extended", func(c *DeploymentConfig) {
			c.Variant = domain.InitVariantExtended
			c.PaymentSteps = []*big.Int{big.NewInt(1), big.NewInt(3)}
		}, ""},
		{"mismatched shares", func(c *DeploymentConfig) { c.VaultShares = []uint64{50, 50} }, "deployment.vault_shares"},
		{"no members", func(c *DeploymentConfig) { c.VaultMembers = nil; c.VaultShares = nil }, "deployment.vault_members"},
		{"zero admin", func(c *DeploymentConfig) { c.Admin = common.Address{} }, "deployment.admin"},
		{"zero signer", func(c *DeploymentConfig) { c.URISigner = common.Address{} }, "deployment.uri_signer"},
		{"zero share", func(c *DeploymentConfig) { c.VaultShares = []uint64{0} }, "deployment.vault_shares[0]"},
		{"duplicate member", func(c *DeploymentConfig) {
			c.VaultMembers = []common.Address{admin, admin}
			c.VaultShares = []uint64{1, 1}
		}, "deployment.vault_members[1]"},
		{"zero max tokens", func(c *DeploymentConfig) { c.MaxTokenCount = 0 }, "deployment.max_token_count"},
		{"basic with steps", func(c *DeploymentConfig) { c.PaymentSteps = []*big.Int{big.NewInt(1)} }, "deployment.payment_steps"},
		{"extended without steps", func(c *DeploymentConfig) { c.Variant = domain.InitVariantExtended }, "deployment.payment_steps"},
		{"extended decreasing", func(c *DeploymentConfig) {
			c.Variant = domain.InitVariantExtended
			c.PaymentSteps = []*big.Int{big.NewInt(3), big.NewInt(1)}
		}, "deployment.payment_steps"},
		{"unknown variant", func(c *DeploymentConfig) { c.Variant = "premium" }, "variant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := basicConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *domain.ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestDeploymentConfig_InitParams(t *testing.T) {
	cfg := basicConfig()
	p := cfg.InitParams()
	assert.Equal(t, "www.example.com/", p.BaseURI)
	assert.Equal(t, big.NewInt(20000), p.MaxTokenCount)
	assert.Equal(t, admin, p.URISigner)
	assert.Equal(t, domain.InitVariantBasic, cfg.Shape().Variant())
	assert.Equal(t, []*big.Int{big.NewInt(100)}, cfg.VaultSharesBig())
}

func TestNetwork_IsLocal(t *testing.T) {
	assert.True(t, (&Network{ChainID: 31337}).IsLocal())
	assert.True(t, (&Network{ChainID: 1337}).IsLocal())
	assert.False(t, (&Network{ChainID: 1}).IsLocal())
	var n *Network
	assert.False(t, n.IsLocal())
}
