package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the list of networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("🌐 Available Networks:"))
	fmt.Fprintln(r.out)

	t := newTable(table.Row{"", "NETWORK", "CHAIN ID", "RPC URL", "EXPLORER"})
	for _, n := range result.Networks {
		marker := " "
		if n.Current {
			marker = color.GreenString("●")
		}
		if n.Error != nil {
			t.AppendRow(table.Row{marker, n.Name, color.RedString("error"), color.RedString(n.Error.Error()), ""})
			continue
		}

		chainID := labelStyle.Sprint("from rpc")
		if n.ChainID != 0 {
			chainID = fmt.Sprintf("%d", n.ChainID)
		}
		t.AppendRow(table.Row{marker, n.Name, chainID, n.RPCURL, n.Explorer})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
