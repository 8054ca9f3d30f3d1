package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const projectTOML = `
variant = "basic"
network = "devnet"

[deployment]
admin = "0x1111111111111111111111111111111111111111"
uri_signer = "0x2222222222222222222222222222222222222222"
timelock_delay = 259200
vault_members = ["0x3333333333333333333333333333333333333333"]
vault_shares = [100]
base_uri = "https://mint.solos.io/meta/"
max_token_count = 10000

[networks.devnet]
rpc_url = "http://127.0.0.1:1"
chain_id = 31337
`

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "solos.toml"), []byte(projectTOML), 0644))

	for _, name := range []string{"NFT", "Solos", "Timelock", "Vault"} {
		dir := filepath.Join(root, "out", name+".sol")
		require.NoError(t, os.MkdirAll(dir, 0755))
		artifact := `{"abi":[],"bytecode":{"object":"0x6000"}}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(artifact), 0644))
	}
	return filepath.Join(root, "solos.toml")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"deploy", "plan", "show", "networks", "config", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"network", "config", "rpc-url", "debug", "non-interactive", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "n", root.PersistentFlags().Lookup("network").Shorthand)

	deploy, _, err := root.Find([]string{"deploy"})
	require.NoError(t, err)
	assert.NotNil(t, deploy.Flags().Lookup("dry-run"))
}

func TestBindGlobalFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("network", "", "")
	cmd.Flags().Bool("non-interactive", false, "")
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().Duration("timeout", 0, "")
	require.NoError(t, cmd.ParseFlags([]string{"--network", "sepolia", "--non-interactive", "--timeout", "30s"}))

	v := viper.New()
	v.SetDefault("debug", false)
	bindGlobalFlags(v, cmd)

	assert.Equal(t, "sepolia", v.GetString("network"))
	assert.True(t, v.GetBool("non_interactive"))
	assert.Equal(t, "30s", v.GetDuration("timeout").String())
	assert.False(t, v.GetBool("debug"), "unchanged flags are not bound")
}

func TestGetApp_NotInitialized(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	_, err := getApp(cmd)
	assert.ErrorContains(t, err, "app not initialized")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "solos-deploy dev")
}

func TestCommands(t *testing.T) {
	config := writeProject(t)

	t.Run("networks", func(t *testing.T) {
		out, err := execute(t, "networks", "--config", config)
		require.NoError(t, err)
		assert.Contains(t, out, "devnet")
		assert.Contains(t, out, "localhost")
	})

	t.Run("plan yaml", func(t *testing.T) {
		out, err := execute(t, "plan", "--yaml", "--config", config, "--non-interactive")
		require.NoError(t, err)

		var plan struct {
			Variant    string `yaml:"variant"`
			Initialize string `yaml:"initialize"`
			Steps      []struct {
				Name     string `yaml:"name"`
				Artifact string `yaml:"artifact"`
			} `yaml:"steps"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(out), &plan))
		assert.Equal(t, "basic", plan.Variant)
		assert.Equal(t, "initialize(string,uint256,address,address,address,address)", plan.Initialize)
		require.Len(t, plan.Steps, 5)
		assert.Equal(t, "Solos", plan.Steps[1].Artifact)
		assert.Equal(t, "initialize", plan.Steps[4].Name)
	})

	t.Run("deploy dry run without a reachable node", func(t *testing.T) {
		out, err := execute(t, "deploy", "--dry-run", "--config", config, "--non-interactive")
		require.NoError(t, err)
		assert.Contains(t, out, "Timelock")
		assert.Contains(t, out, "Dry run, nothing was broadcast.")
	})

	t.Run("show without a record", func(t *testing.T) {
		_, err := execute(t, "show", "--config", config, "--non-interactive")
		assert.ErrorContains(t, err, "no deployment recorded for chain 31337")
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := execute(t, "networks", "--config", config, "--network", "devnt")
		assert.ErrorContains(t, err, "did you mean 'devnet'?")
	})

	t.Run("local config", func(t *testing.T) {
		out, err := execute(t, "config", "set", "timeout", "15m", "--config", config)
		require.NoError(t, err)
		assert.Contains(t, out, "Set timeout to: 15m")

		out, err = execute(t, "config", "--config", config)
		require.NoError(t, err)
		assert.Contains(t, out, "15m")

		_, err = execute(t, "config", "set", "network", "nowhere", "--config", config)
		assert.ErrorContains(t, err, "not found")

		out, err = execute(t, "config", "remove", "timeout", "--config", config)
		require.NoError(t, err)
		assert.Contains(t, out, "Removed timeout (was: 15m)")
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := execute(t, "plan", "--config", filepath.Join(t.TempDir(), "solos.toml"))
		assert.ErrorContains(t, err, "config")
	})
}

func TestCommands_NetworksOnlyProject(t *testing.T) {
	config := filepath.Join(t.TempDir(), "solos.toml")
	require.NoError(t, os.WriteFile(config, []byte("[networks.devnet]\nrpc_url = \"http://127.0.0.1:1\"\nchain_id = 31337\n"), 0644))

	out, err := execute(t, "networks", "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "devnet")

	_, err = execute(t, "config", "set", "network", "devnet", "--config", config)
	require.NoError(t, err)

	_, err = execute(t, "plan", "--config", config, "--non-interactive")
	assert.ErrorContains(t, err, "deployment.admin")
}
