package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/solos-nft/solos-deploy/internal/adapters/progress"
	"github.com/solos-nft/solos-deploy/internal/app"
	"github.com/solos-nft/solos-deploy/internal/config"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solos-deploy",
		Short: "Deploy and wire the Solos NFT contract topology",
		Long: `solos-deploy deploys the NFT, token, timelock and vault contracts in
dependency order and initializes the NFT with the addresses of the others.

Deployment parameters are read from solos.toml (or solos.yaml) in the
project root; networks come from its [networks] table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := findProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot)
			bindGlobalFlags(v, cmd)

			sink := progress.NewSink(v.GetBool("non_interactive"))

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., localhost, sepolia)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to solos.toml or solos.yaml")
	rootCmd.PersistentFlags().String("rpc-url", "", "Override the network's RPC URL")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this long (default 10m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	planCmd := NewPlanCmd()
	planCmd.GroupID = "main"
	rootCmd.AddCommand(planCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// findProjectRoot walks up from the working directory to the directory
// holding solos.toml. Without one the working directory is used.
func findProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, _, err := config.FindProjectRoot(wd)
	if errors.Is(err, domain.ErrNotFound) {
		return wd, nil
	}
	if err != nil {
		return "", err
	}
	return root, nil
}

// flagKeys maps flag names to viper keys
var flagKeys = map[string]string{
	"network":         "network",
	"config":          "config",
	"rpc-url":         "rpc_url",
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"timeout":         "timeout",
	"dry-run":         "dry_run",
}

// bindGlobalFlags binds command flags to viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	// Visit only walks flags that were set on the command line
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
