package cli

import (
	"github.com/solos-nft/solos-deploy/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var chainID uint64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the recorded topology for a network",
		Long: `Show the contracts recorded by the latest deploy run on the selected
network, including runs that failed part way.

Examples:
  solos-deploy show --network sepolia
  solos-deploy show --chain-id 8453`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			record, err := app.ShowDeployment.Run(cmd.Context(), chainID)
			if err != nil {
				return err
			}

			return render.NewTopologyRenderer(cmd.OutOrStdout(), app.Config.Network).Render(record)
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain-id", 0, "Look up a chain ID instead of the selected network")

	return cmd
}
