package printer

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/docstrcov/docstrcov/pkg/result"
)

// Markdown prints a per-file coverage table suitable for commit comments
// and pull-request summaries.
type Markdown struct {
	out io.Writer
}

// NewMarkdown returns a Markdown printer writing to out.
func NewMarkdown(out io.Writer) *Markdown {
	return &Markdown{out: out}
}

// Print renders the collection as a Markdown table plus a summary line.
func (p *Markdown) Print(results *result.Collection) error {
	stats := CollectStats(results)

	fmt.Fprintln(p.out, "## Docstring coverage")
	fmt.Fprintln(p.out)

	writer := table.NewWriter()
	writer.SetOutputMirror(p.out)
	writer.AppendHeader(table.Row{"File", "Needed", "Found", "Missing", "Coverage"})

	for _, file := range stats.Files {
		coverage := fmt.Sprintf("%.1f%%", file.Coverage)
		if file.IsEmpty {
			coverage = "empty"
		}

		writer.AppendRow(table.Row{file.Path, file.Needed, file.Found, file.Missing, coverage})
	}

	writer.AppendFooter(table.Row{"Total", stats.Needed, stats.Found, stats.Missing,
		fmt.Sprintf("%.1f%%", stats.TotalCoverage)})
	writer.RenderMarkdown()

	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Grade: **%s**\n", stats.Grade)

	return nil
}
