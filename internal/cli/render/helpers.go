package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	labelStyle         = color.New(color.Faint)
	addressStyle       = color.New(color.FgWhite)
	linkStyle          = color.New(color.FgBlue, color.Underline)
	trueStyle          = color.New(color.FgGreen)
	falseStyle         = color.New(color.FgYellow)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon. Only the
// innermost cause of a wrapped error chain is shown.
func FormatError(message string) string {
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// contractTitle renders a contract kind for display, e.g. "Timelock"
func contractTitle(kind domain.ContractKind) string {
	if kind == domain.ContractNFT {
		return "NFT"
	}
	return titleCase(string(kind))
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// initializedLine renders an initialization flag reading
func initializedLine(initialized bool) string {
	style := falseStyle
	if initialized {
		style = trueStyle
	}
	return "Is Contract Initialized: " + style.Sprintf("%t", initialized)
}

// newTable creates a borderless table in the style used by every renderer
func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{
		PaddingRight:     "   ",
		MiddleHorizontal: "─",
	}
	if header != nil {
		t.AppendHeader(header)
	}
	return t
}
