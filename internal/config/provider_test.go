package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	t.Run("project file and defaults", func(t *testing.T) {
		root := t.TempDir()
		unsetAfter(t, "SOLOS_TEST_ADMIN", "SOLOS_TEST_KEY")
		t.Setenv("SOLOS_TEST_ADMIN", "0x1111111111111111111111111111111111111111")
		t.Setenv("SOLOS_TEST_KEY", "0xfeed")
		writeFile(t, root, "solos.toml", testSolosTOML)

		v := SetupViper(root)
		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, root, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(root, ".solos"), cfg.DataDir)
		assert.Equal(t, 10*time.Minute, cfg.Timeout)
		require.NotNil(t, cfg.Deployment)
		assert.Equal(t, domain.InitVariantExtended, cfg.Deployment.Variant)
		assert.Equal(t, "0xfeed", cfg.Sender.PrivateKey)
		assert.Equal(t, "out", cfg.Artifacts.Dir)

		// network comes from the project file
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "sepolia", cfg.Network.Name)
		assert.Equal(t, uint64(11155111), cfg.Network.ChainID)
		assert.Equal(t, "https://sepolia.etherscan.io", cfg.Network.Explorer)
		assert.False(t, cfg.Network.IsLocal())
	})

	t.Run("flags and env override the project file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "solos.yaml", testSolosYAML)
		t.Setenv("SOLOS_PRIVATE_KEY", "0xbeef")
		t.Setenv("SOLOS_RPC_URL", "http://10.0.0.1:8545")

		v := SetupViper(root)
		v.Set("network", "devnet")
		v.Set("non_interactive", true)
		v.Set("timeout", "30s")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, "0xbeef", cfg.Sender.PrivateKey)
		assert.Equal(t, "devnet", cfg.Network.Name)
		assert.Equal(t, uint64(1337), cfg.Network.ChainID)
		assert.Equal(t, "http://10.0.0.1:8545", cfg.Network.RPCURL)
		assert.True(t, cfg.NonInteractive)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("no project file", func(t *testing.T) {
		root := t.TempDir()

		cfg, err := Provider(SetupViper(root))
		require.NoError(t, err)
		assert.Nil(t, cfg.Deployment)
		assert.Empty(t, cfg.ConfigFile)
		assert.Equal(t, DefaultNetwork, cfg.Network.Name)
		assert.True(t, cfg.Network.IsLocal())
	})

	t.Run("networks only project file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "solos.toml", "network = \"sepolia\"\n\n[networks.sepolia]\nrpc_url = \"https://rpc.sepolia.org\"\nchain_id = 11155111\n")

		cfg, err := Provider(SetupViper(root))
		require.NoError(t, err)
		assert.Equal(t, "sepolia", cfg.Network.Name)
		assert.Nil(t, cfg.Deployment)

		var cfgErr *domain.ConfigError
		require.ErrorAs(t, cfg.DeploymentErr, &cfgErr)
		assert.Equal(t, "deployment.admin", cfgErr.Field)

		_, err = cfg.RequireDeployment()
		assert.ErrorIs(t, err, cfg.DeploymentErr)
	})

	t.Run("explicit config path must exist", func(t *testing.T) {
		v := SetupViper(t.TempDir())
		v.Set("config", "/does/not/exist/solos.toml")

		_, err := Provider(v)
		var cfgErr *domain.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "config", cfgErr.Field)
	})

	t.Run("unknown network", func(t *testing.T) {
		v := SetupViper(t.TempDir())
		v.Set("network", "mainnet")

		_, err := Provider(v)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNetworkResolver(t *testing.T) {
	pf := &ProjectFile{
		Networks: map[string]NetworkConfig{
			"localhost": {RPCURL: "http://127.0.0.1:7545", ChainID: 1337},
			"base":      {RPCURL: "https://mainnet.base.org", ChainID: 8453},
			"custom":    {RPCURL: "https://rpc.example", Explorer: "https://scan.example"},
			"broken":    {ChainID: 5},
		},
	}
	foundry := &config.FoundryConfig{RpcEndpoints: map[string]string{
		"base":    "https://ignored.example",
		"holesky": "https://holesky.example",
	}}
	r := NewNetworkResolver(pf, foundry)

	t.Run("foundry rpc endpoint", func(t *testing.T) {
		n, err := r.Resolve("holesky")
		require.NoError(t, err)
		assert.Equal(t, "https://holesky.example", n.RPCURL)
		assert.Zero(t, n.ChainID)
	})

	t.Run("project entry shadows builtin", func(t *testing.T) {
		n, err := r.Resolve("localhost")
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:7545", n.RPCURL)
		assert.Equal(t, uint64(1337), n.ChainID)
	})

	t.Run("builtin", func(t *testing.T) {
		n, err := r.Resolve("anvil")
		require.NoError(t, err)
		assert.Equal(t, uint64(31337), n.ChainID)
		assert.Empty(t, n.Explorer)
	})

	t.Run("explorer", func(t *testing.T) {
		n, err := r.Resolve("base")
		require.NoError(t, err)
		assert.Equal(t, "https://basescan.org/address/0xabc", n.AddressURL("0xabc"))

		n, err = r.Resolve("custom")
		require.NoError(t, err)
		assert.Equal(t, "https://scan.example", n.Explorer)
		assert.Zero(t, n.ChainID)
	})

	t.Run("missing rpc url", func(t *testing.T) {
		_, err := r.Resolve("broken")
		var cfgErr *domain.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "networks.broken.rpc_url", cfgErr.Field)
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := r.Resolve("bse")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorContains(t, err, "did you mean 'base'?")

		_, err = r.Resolve("polygon")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorContains(t, err, "known: anvil, base")
	})

	t.Run("names", func(t *testing.T) {
		assert.Equal(t, []string{"anvil", "base", "broken", "custom", "hardhat", "holesky", "localhost"}, r.Names())
	})
}

func TestProvideNetworkResolver(t *testing.T) {
	r, err := ProvideNetworkResolver(&config.RuntimeConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{"anvil", "hardhat", "localhost"}, r.Names())

	path := writeFile(t, t.TempDir(), "solos.toml", "[networks.sepolia]\nrpc_url = \"https://rpc.sepolia.org\"\nchain_id = 11155111\n")

	r, err = ProvideNetworkResolver(&config.RuntimeConfig{ConfigFile: path})
	require.NoError(t, err)
	n, err := r.Resolve("sepolia")
	require.NoError(t, err)
	assert.Equal(t, "https://sepolia.etherscan.io", n.Explorer)
}
