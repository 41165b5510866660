package printer

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/docstrcov/docstrcov/pkg/ignore"
	"github.com/docstrcov/docstrcov/pkg/result"
)

// Coverage thresholds for summary coloring.
const (
	colorThresholdGood = 90.0
	colorThresholdWarn = 60.0
)

// Legacy prints the classic line-oriented report. Verbosity levels:
// 0 nothing, 1 overall stats, 2 per-file stats, 3 missing docstrings,
// 4 found and ignored docstrings as well.
type Legacy struct {
	out       io.Writer
	verbosity int
	cfg       *ignore.Config
	noColor   bool
}

// NewLegacy returns a legacy printer writing to out.
func NewLegacy(out io.Writer, verbosity int, cfg *ignore.Config, noColor bool) *Legacy {
	return &Legacy{
		out:       out,
		verbosity: verbosity,
		cfg:       cfg,
		noColor:   noColor,
	}
}

// Print renders the collection at the configured verbosity.
func (p *Legacy) Print(results *result.Collection) error {
	stats := CollectStats(results)

	if p.verbosity >= VerbosityFiles {
		p.printFiles(stats)
	}

	if p.verbosity >= VerbosityOverall {
		p.printOverall(stats)
	}

	return nil
}

func (p *Legacy) printFiles(stats OverallStat) {
	for _, file := range stats.Files {
		if p.verbosity < VerbosityFullDetail && file.Missing == 0 {
			continue
		}

		fmt.Fprintf(p.out, "\nFile: %q\n", file.Path)

		if p.verbosity >= VerbosityMissing {
			p.printFileDetail(file)
		}

		fmt.Fprintf(p.out, " Needed: %d; Found: %d; Missing: %d; Coverage: %.1f%%\n\n",
			file.Needed, file.Found, file.Missing, file.Coverage)
	}

	fmt.Fprintln(p.out)
}

func (p *Legacy) printFileDetail(file FileStat) {
	if file.IsEmpty && p.verbosity >= VerbosityFullDetail {
		fmt.Fprintln(p.out, " - File is empty")
	}

	if p.verbosity >= VerbosityFullDetail {
		for _, identifier := range file.NodesWithDocstring {
			fmt.Fprintf(p.out, " - Found docstring for `%s`\n", identifier)
		}

		for _, ignored := range file.IgnoredNodes {
			fmt.Fprintf(p.out, " - Ignored `%s`: reason: `%s`\n", ignored.Identifier, ignored.Reason)
		}
	}

	for _, identifier := range file.NodesWithoutDocstring {
		if identifier == result.ModuleIdentifier {
			fmt.Fprintln(p.out, " - No module docstring")
		} else {
			fmt.Fprintf(p.out, " - No docstring for `%s`\n", identifier)
		}
	}
}

func (p *Legacy) printOverall(stats OverallStat) {
	postfix := ""
	if stats.NumEmptyFiles > 0 {
		postfix = fmt.Sprintf(" (%d files are empty)", stats.NumEmptyFiles)
	}

	for _, note := range SkipNotes(p.cfg) {
		postfix += fmt.Sprintf(" (%s)", note)
	}

	if stats.NumFiles > 1 {
		fmt.Fprintf(p.out, "Overall statistics for %s files%s:\n", humanize.Comma(int64(stats.NumFiles)), postfix)
	} else {
		fmt.Fprintf(p.out, "Overall statistics%s:\n", postfix)
	}

	fmt.Fprintf(p.out, "Needed: %s  -  Found: %s  -  Missing: %s\n",
		humanize.Comma(int64(stats.Needed)),
		humanize.Comma(int64(stats.Found)),
		humanize.Comma(int64(stats.Missing)))

	fmt.Fprintf(p.out, "Total coverage: %s  -  Grade: %s\n",
		p.colorize(fmt.Sprintf("%.1f%%", stats.TotalCoverage), stats.TotalCoverage), stats.Grade)
}

// colorize wraps text in a color matching the coverage band.
func (p *Legacy) colorize(text string, coverage float64) string {
	if p.noColor {
		return text
	}

	switch {
	case coverage >= colorThresholdGood:
		return color.New(color.FgGreen).Sprint(text)
	case coverage >= colorThresholdWarn:
		return color.New(color.FgYellow).Sprint(text)
	default:
		return color.New(color.FgRed).Sprint(text)
	}
}
