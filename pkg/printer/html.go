package printer

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/docstrcov/docstrcov/pkg/result"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"
)

// HTML prints a standalone HTML page with a per-file coverage chart.
type HTML struct {
	out io.Writer
}

// NewHTML returns an HTML report printer writing to out.
func NewHTML(out io.Writer) *HTML {
	return &HTML{out: out}
}

// Print renders the collection as an HTML coverage report.
func (p *HTML) Print(results *result.Collection) error {
	stats := CollectStats(results)

	page := components.NewPage()
	page.PageTitle = "Docstring coverage"
	page.AddCharts(buildCoverageChart(stats))

	err := page.Render(p.out)
	if err != nil {
		return fmt.Errorf("render coverage report: %w", err)
	}

	return nil
}

// buildCoverageChart plots one coverage bar per non-empty file.
func buildCoverageChart(stats OverallStat) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Docstring coverage by file",
			Subtitle: fmt.Sprintf("Total: %.1f%%  -  Grade: %s",
				stats.TotalCoverage, stats.Grade),
			Left: "center",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(stats.Files))
	data := make([]opts.BarData, 0, len(stats.Files))

	for _, file := range stats.Files {
		if file.IsEmpty {
			continue
		}

		labels = append(labels, file.Path)
		data = append(data, opts.BarData{Value: file.Coverage})
	}

	bar.SetXAxis(labels)
	bar.AddSeries("Coverage %", data)

	return bar
}
