package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

var (
	pathStyle    = color.New(color.FgCyan)
	failedStyle  = color.New(color.FgRed)
	emptyStyle   = color.New(color.Faint)
	headingStyle = color.New(color.Bold)
)

// ExtractRenderer prints the console report of an extraction run
type ExtractRenderer struct {
	out io.Writer
}

// NewExtractRenderer creates a new extraction report renderer
func NewExtractRenderer(out io.Writer) *ExtractRenderer {
	return &ExtractRenderer{out: out}
}

// Render prints discovered artifacts, per-artifact failures and the written files
func (r *ExtractRenderer) Render(result *usecase.ExtractAddressesResult) error {
	fmt.Fprintf(r.out, "Scanning broadcast directory: %s\n", pathStyle.Sprint(result.BroadcastDir))

	if len(result.Supplemental) > 0 {
		fmt.Fprintf(r.out, "Loaded %d chain entries from %s\n",
			len(result.Supplemental), result.Supplemental[0].Artifact.Path)
	}
	if result.SupplementErr != nil {
		fmt.Fprintln(r.out, FormatWarning(result.SupplementErr.Error()))
	}

	fmt.Fprintln(r.out, headingStyle.Sprintf("Found %d broadcast files:", len(result.Artifacts)))
	if len(result.Artifacts) > 0 {
		r.renderArtifactTable(result.Artifacts)
	}

	for _, failure := range result.Failures() {
		fmt.Fprintln(r.out, FormatError(failure.Err.Error()))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Generated deployed addresses files:")
	for _, file := range result.OutputFiles {
		fmt.Fprintf(r.out, "  - %s: %s\n", documentLabel(file.Extension), file.Path)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Done! %d contracts across %d chains",
		result.Registry.RecordCount(), len(result.Registry.Chains))))
	return nil
}

func (r *ExtractRenderer) renderArtifactTable(artifacts []usecase.ArtifactSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Script", "Network", "Chain ID", "Contracts"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, a := range artifacts {
		contracts := fmt.Sprintf("%d", a.Records)
		switch {
		case a.Err != nil:
			contracts = failedStyle.Sprint("failed")
		case a.Records == 0:
			contracts = emptyStyle.Sprint("0")
		}
		t.AppendRow(table.Row{a.Artifact.ScriptName, a.ChainName, a.Artifact.ChainID, contracts})
	}

	t.Render()
}

// Ensure the renderer implements the generic interface
var _ Renderer[*usecase.ExtractAddressesResult] = (*ExtractRenderer)(nil)
