package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryStore(t *testing.T) {
	ctx := context.Background()
	dataDir := filepath.Join(t.TempDir(), ".solos")
	store := NewRegistryStore(&config.RuntimeConfig{DataDir: dataDir})

	t.Run("empty registry", func(t *testing.T) {
		_, err := store.GetTopology(ctx, 31337)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	record := &models.TopologyRecord{
		ChainID:  31337,
		Network:  "localhost",
		Variant:  domain.InitVariantBasic,
		Deployer: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Deployments: []*models.Deployment{
			{Contract: domain.ContractNFT, Artifact: "NFT", Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3", BlockNumber: 1},
		},
		Status:    models.TopologyStatusDeploying,
		StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.SaveTopology(ctx, record))

		got, err := store.GetTopology(ctx, 31337)
		require.NoError(t, err)
		assert.Equal(t, models.TopologyStatusDeploying, got.Status)
		nft, ok := got.Deployment(domain.ContractNFT)
		require.True(t, ok)
		assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", nft.Address)

		_, err = os.Stat(filepath.Join(dataDir, DeploymentsFile))
		assert.NoError(t, err)
	})

	t.Run("latest run wins per chain", func(t *testing.T) {
		updated := *record
		updated.Status = models.TopologyStatusInitialized
		updated.Initialized = true
		require.NoError(t, store.SaveTopology(ctx, &updated))

		other := &models.TopologyRecord{ChainID: 11155111, Status: models.TopologyStatusFailed, Error: "out of gas"}
		require.NoError(t, store.SaveTopology(ctx, other))

		got, err := store.GetTopology(ctx, 31337)
		require.NoError(t, err)
		assert.True(t, got.Initialized)

		got, err = store.GetTopology(ctx, 11155111)
		require.NoError(t, err)
		assert.Equal(t, "out of gas", got.Error)
	})

	t.Run("corrupt file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DeploymentsFile), []byte("{"), 0644))
		broken := NewRegistryStore(&config.RuntimeConfig{DataDir: dir})

		_, err := broken.GetTopology(ctx, 1)
		assert.ErrorContains(t, err, "failed to parse")
	})
}
