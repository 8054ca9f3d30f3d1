package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/solos-nft/solos-deploy/internal/cli/render"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy and initialize the contract topology",
		Long: `Deploy the NFT, token, timelock and vault contracts, then initialize the
NFT with the addresses of the other three.

Every transaction is confirmed before the next one is sent. If any step
fails the run stops; contracts that were already created stay on chain and
are recorded as FAILED in .solos/deployments.json.

On chains other than 31337 and 1337 you are asked to confirm before
anything is broadcast, unless --non-interactive is set.

Examples:
  solos-deploy deploy
  solos-deploy deploy --network sepolia
  solos-deploy deploy --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if app.Config.DryRun {
				plan, err := app.PlanDeployment.Execute(cmd.Context(), usecase.PlanParams{PredictAddresses: true})
				var cfgErr *domain.ConfigError
				if err != nil && !errors.As(err, &cfgErr) {
					app.Log.Warn("cannot predict addresses", "error", err)
					plan, err = app.PlanDeployment.Execute(cmd.Context(), usecase.PlanParams{})
				}
				if err != nil {
					return err
				}
				if err := render.NewPlanRenderer(out, false).Render(plan); err != nil {
					return err
				}
				fmt.Fprintln(out, color.New(color.Faint).Sprint("Dry run, nothing was broadcast."))
				return nil
			}

			renderer := render.NewDeployRenderer(out)
			result, err := app.DeployTopology.Execute(cmd.Context())
			if errors.Is(err, usecase.ErrDeploymentCancelled) {
				fmt.Fprintln(out, render.FormatWarning("Deployment cancelled"))
				return nil
			}
			if err != nil {
				if renderErr := renderer.RenderFailure(result); renderErr != nil {
					app.Log.Warn("failed to render partial result", "error", renderErr)
				}
				return err
			}

			return renderer.Render(result)
		},
	}

	cmd.Flags().Bool("dry-run", false, "Print the deployment plan without broadcasting")

	return cmd
}
