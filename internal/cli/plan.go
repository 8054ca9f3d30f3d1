package cli

import (
	"github.com/solos-nft/solos-deploy/internal/cli/render"
	"github.com/solos-nft/solos-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	var predict bool
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the dependency-ordered deployment plan",
		Long: `Show the order in which contracts are deployed and the initialize
signature selected by the configured variant.

With --predict the deployer nonce is read from the network and the
address of every contract is computed ahead of time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			plan, err := app.PlanDeployment.Execute(cmd.Context(), usecase.PlanParams{PredictAddresses: predict})
			if err != nil {
				return err
			}

			return render.NewPlanRenderer(cmd.OutOrStdout(), asYAML).Render(plan)
		},
	}

	cmd.Flags().BoolVar(&predict, "predict", false, "Predict contract addresses from the deployer nonce")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output the plan as YAML")

	return cmd
}
