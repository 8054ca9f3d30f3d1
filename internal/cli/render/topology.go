package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
)

// TopologyRenderer renders a recorded topology
type TopologyRenderer struct {
	out     io.Writer
	network *config.Network // for explorer links, may be nil
}

// NewTopologyRenderer creates a new topology renderer
func NewTopologyRenderer(out io.Writer, network *config.Network) *TopologyRenderer {
	return &TopologyRenderer{out: out, network: network}
}

// Render renders the record
func (r *TopologyRenderer) Render(record *models.TopologyRecord) error {
	fmt.Fprintf(r.out, "%s %s %s\n", labelStyle.Sprint("Network: "), record.Network, labelStyle.Sprintf("(chain %d)", record.ChainID))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Status:  "), statusStyle(record.Status).Sprint(record.Status))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Variant: "), record.Variant)
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Deployer:"), addressStyle.Sprint(record.Deployer))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Updated: "), record.UpdatedAt.Local().Format(time.DateTime))
	fmt.Fprintln(r.out)

	withLinks := r.network != nil && r.network.Explorer != "" && r.network.ChainID == record.ChainID

	header := table.Row{"CONTRACT", "ARTIFACT", "ADDRESS", "BLOCK"}
	if withLinks {
		header = append(header, "EXPLORER")
	}
	t := newTable(header)
	for _, d := range record.Deployments {
		row := table.Row{contractTitle(d.Contract), d.Artifact, addressStyle.Sprint(d.Address), d.BlockNumber}
		if withLinks {
			row = append(row, linkStyle.Sprint(r.network.AddressURL(d.Address)))
		}
		t.AppendRow(row)
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, initializedLine(record.Initialized))
	if record.InitializeTx != "" {
		fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Initialize tx:"), record.InitializeTx)
	}
	if record.Error != "" {
		fmt.Fprintln(r.out, FormatError(record.Error))
	}
	return nil
}

func statusStyle(status models.TopologyStatus) *color.Color {
	switch status {
	case models.TopologyStatusInitialized:
		return color.New(color.FgGreen, color.Bold)
	case models.TopologyStatusFailed:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgYellow)
	}
}

var _ Renderer[*models.TopologyRecord] = (*TopologyRenderer)(nil)
