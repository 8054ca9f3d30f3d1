package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSolosTOML = `
variant = "extended"
network = "sepolia"

[deployment]
admin = "${SOLOS_TEST_ADMIN}"
uri_signer = "0x2222222222222222222222222222222222222222"
timelock_delay = 259200
vault_members = [
  "0x3333333333333333333333333333333333333333",
  "0x4444444444444444444444444444444444444444",
]
vault_shares = [60, 40]
base_uri = "https://mint.solos.io/meta/"
max_token_count = 10000
payment_steps = ["0.1", "0.25", "0.25", "1"]

[artifacts]
dir = "out"

[artifacts.names]
nft = "SolosNFT"

[sender]
private_key = "${SOLOS_TEST_KEY}"

[networks.sepolia]
rpc_url = "https://rpc.sepolia.org"
chain_id = 11155111
`

const testSolosYAML = `
deployment:
  admin: "0x1111111111111111111111111111111111111111"
  uri_signer: "0x2222222222222222222222222222222222222222"
  timelock_delay: 60
  vault_members: ["0x3333333333333333333333333333333333333333"]
  vault_shares: [100]
  base_uri: "ipfs://base/"
  max_token_count: 5
networks:
  devnet:
    rpc_url: "http://127.0.0.1:9545"
    chain_id: 1337
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func unsetAfter(t *testing.T, keys ...string) {
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})
}

func TestFindProjectRoot(t *testing.T) {
	t.Run("walks up to the project file", func(t *testing.T) {
		root := t.TempDir()
		file := writeFile(t, root, "solos.toml", testSolosTOML)
		nested := filepath.Join(root, "contracts", "nft")
		require.NoError(t, os.MkdirAll(nested, 0755))

		gotRoot, gotFile, err := FindProjectRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, root, gotRoot)
		assert.Equal(t, file, gotFile)
	})

	t.Run("toml is preferred over yaml", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "solos.yaml", testSolosYAML)
		toml := writeFile(t, root, "solos.toml", testSolosTOML)

		_, gotFile, err := FindProjectRoot(root)
		require.NoError(t, err)
		assert.Equal(t, toml, gotFile)
	})

	t.Run("not found", func(t *testing.T) {
		_, _, err := FindProjectRoot(t.TempDir())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoadProjectFile(t *testing.T) {
	t.Run("toml with env expansion", func(t *testing.T) {
		root := t.TempDir()
		unsetAfter(t, "SOLOS_TEST_ADMIN", "SOLOS_TEST_KEY")
		writeFile(t, root, ".env", "SOLOS_TEST_ADMIN=0x1111111111111111111111111111111111111111\n")
		writeFile(t, root, ".env.local", "SOLOS_TEST_KEY=0xabc\n")
		path := writeFile(t, root, "solos.toml", testSolosTOML)

		pf, err := LoadProjectFile(path)
		require.NoError(t, err)

		assert.Equal(t, "extended", pf.Variant)
		assert.Equal(t, "sepolia", pf.Network)
		assert.Equal(t, "0x1111111111111111111111111111111111111111", pf.Deployment.Admin)
		assert.Equal(t, "0xabc", pf.Sender.PrivateKey)
		assert.Equal(t, "out", pf.Artifacts.Dir)
		assert.Equal(t, "SolosNFT", pf.Artifacts.Names["nft"])
		assert.Equal(t, uint64(11155111), pf.Networks["sepolia"].ChainID)

		cfg, err := pf.DeploymentConfig()
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, domain.InitVariantExtended, cfg.Variant)
		assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), cfg.Admin)
		assert.Equal(t, []uint64{60, 40}, cfg.VaultShares)
		require.Len(t, cfg.PaymentSteps, 4)
		quarter, _ := new(big.Int).SetString("250000000000000000", 10)
		assert.Equal(t, 0, cfg.PaymentSteps[1].Cmp(quarter))
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "solos.yaml", testSolosYAML)

		pf, err := LoadProjectFile(path)
		require.NoError(t, err)

		cfg, err := pf.DeploymentConfig()
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, domain.InitVariantBasic, cfg.Variant)
		assert.Equal(t, uint64(60), cfg.TimelockDelay)
		assert.Empty(t, cfg.PaymentSteps)
		assert.Equal(t, "http://127.0.0.1:9545", pf.Networks["devnet"].RPCURL)
	})

	t.Run("bare numeric payment steps", func(t *testing.T) {
		tomlDoc := "[deployment]\npayment_steps = [0.1, 0.3, 0.5, 0.9, 1.7, 3, 5, 100]\n"
		yamlDoc := "deployment:\n  payment_steps: [0.1, 0.3, 0.5, 0.9, 1.7, 3, 5, \"100\"]\n"
		want := AmountList{"0.1", "0.3", "0.5", "0.9", "1.7", "3", "5", "100"}

		for name, content := range map[string]string{"solos.toml": tomlDoc, "solos.yaml": yamlDoc} {
			pf, err := LoadProjectFile(writeFile(t, t.TempDir(), name, content))
			require.NoError(t, err, name)
			assert.Equal(t, want, pf.Deployment.PaymentSteps, name)

			steps, err := domain.ParsePaymentSteps(pf.Deployment.PaymentSteps, domain.DefaultPaymentDecimals)
			require.NoError(t, err, name)
			hundred, _ := new(big.Int).SetString("100000000000000000000", 10)
			assert.Equal(t, 0, steps[7].Cmp(hundred), name)
		}
	})

	t.Run("payment steps must be a list", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "solos.toml", "[deployment]\npayment_steps = 5\n")
		_, err := LoadProjectFile(path)
		assert.ErrorContains(t, err, "expected a list of amounts")
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "solos.toml", "variant = \n")
		_, err := LoadProjectFile(path)
		assert.ErrorContains(t, err, "failed to parse solos.toml")
	})
}

func TestProjectFile_DeploymentConfig(t *testing.T) {
	valid := func() *ProjectFile {
		return &ProjectFile{
			Deployment: DeploymentSection{
				Admin:         "0x1111111111111111111111111111111111111111",
				URISigner:     "0x2222222222222222222222222222222222222222",
				VaultMembers:  []string{"0x3333333333333333333333333333333333333333"},
				VaultShares:   []uint64{1},
				MaxTokenCount: 1,
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*ProjectFile)
		field  string
	}{
		{"unknown variant", func(pf *ProjectFile) { pf.Variant = "premium" }, "variant"},
		{"missing admin", func(pf *ProjectFile) { pf.Deployment.Admin = "" }, "deployment.admin"},
		{"bad signer", func(pf *ProjectFile) { pf.Deployment.URISigner = "0x12" }, "deployment.uri_signer"},
		{"bad member", func(pf *ProjectFile) {
			pf.Deployment.VaultMembers = append(pf.Deployment.VaultMembers, "vault")
		}, "deployment.vault_members[1]"},
		{"bad amount", func(pf *ProjectFile) {
			pf.Variant = "extended"
			pf.Deployment.PaymentSteps = []string{"0.1", "abc"}
		}, "deployment.payment_steps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := valid()
			tt.mutate(pf)

			_, err := pf.DeploymentConfig()

			var cfgErr *domain.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	t.Run("payment decimals", func(t *testing.T) {
		pf := valid()
		pf.Variant = "extended"
		six := uint8(6)
		pf.Deployment.PaymentDecimals = &six
		pf.Deployment.PaymentSteps = []string{"1.5"}

		cfg, err := pf.DeploymentConfig()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1500000), cfg.PaymentSteps[0])
	})
}
