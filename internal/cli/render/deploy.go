package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// DeployRenderer renders the outcome of a topology deployment
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render prints every deployed address followed by the initialization flag
// as read before and after the initialize call.
func (r *DeployRenderer) Render(result *usecase.DeployTopologyResult) error {
	r.renderHeader(result)

	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Deployed Contracts:"))
	r.renderContracts(result)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Initialization:"))
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("before"), initializedLine(result.InitializedBefore))
	fmt.Fprintf(r.out, "  %s  %s\n", labelStyle.Sprint("after"), initializedLine(result.InitializedAfter))
	if result.InitializeTx != (common.Hash{}) {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("tx"), result.InitializeTx.Hex())
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess("Topology deployed and initialized"))
	return nil
}

// RenderFailure prints what a failed run left behind. Contracts created before
// the failing step stay on chain and are not cleaned up.
func (r *DeployRenderer) RenderFailure(result *usecase.DeployTopologyResult) error {
	if result == nil || len(result.Contracts) == 0 {
		return nil
	}

	r.renderHeader(result)

	fmt.Fprintln(r.out, FormatWarning("Run aborted, these contracts remain on chain:"))
	r.renderContracts(result)

	pending := lo.Filter(result.Plan, func(step domain.Step, _ int) bool {
		return !step.IsContract() || result.Contract(step.Kind) == nil
	})
	if len(pending) > 0 {
		names := lo.Map(pending, func(step domain.Step, _ int) string {
			if step.IsContract() {
				return contractTitle(step.Kind)
			}
			return step.Name
		})
		fmt.Fprintf(r.out, "\n%s %s\n", labelStyle.Sprint("Not completed:"), strings.Join(names, ", "))
	}
	return nil
}

func (r *DeployRenderer) renderHeader(result *usecase.DeployTopologyResult) {
	network := "unknown"
	if result.Network != nil {
		network = result.Network.Name
	}
	fmt.Fprintf(r.out, "%s %s %s\n", labelStyle.Sprint("Network: "), network, labelStyle.Sprintf("(chain %d)", result.ChainID))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Deployer:"), addressStyle.Sprint(result.Deployer.Hex()))
	fmt.Fprintf(r.out, "%s %s\n\n", labelStyle.Sprint("Variant: "), result.Variant)
}

func (r *DeployRenderer) renderContracts(result *usecase.DeployTopologyResult) {
	withLinks := result.Network != nil && result.Network.Explorer != ""

	header := table.Row{"CONTRACT", "ARTIFACT", "ADDRESS", "BLOCK"}
	if withLinks {
		header = append(header, "EXPLORER")
	}
	t := newTable(header)

	rows := lo.Map(result.Contracts, func(c *models.ContractHandle, _ int) table.Row {
		row := table.Row{contractTitle(c.Kind), c.Name, addressStyle.Sprint(c.Address.Hex()), c.BlockNumber}
		if withLinks {
			row = append(row, linkStyle.Sprint(result.Network.AddressURL(c.Address.Hex())))
		}
		return row
	})
	t.AppendRows(rows)

	fmt.Fprintln(r.out, t.Render())
}

var _ Renderer[*usecase.DeployTopologyResult] = (*DeployRenderer)(nil)
