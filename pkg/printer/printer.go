// Package printer renders a populated result collection for humans and
// machines. The analysis core never prints; every printer here consumes
// the collection read-only and writes to an explicit sink.
package printer

import (
	"github.com/docstrcov/docstrcov/pkg/ignore"
	"github.com/docstrcov/docstrcov/pkg/result"
)

// Verbosity levels accepted by the text printer.
const (
	VerbosityQuiet      = 0
	VerbosityOverall    = 1
	VerbosityFiles      = 2
	VerbosityMissing    = 3
	VerbosityFullDetail = 4
)

// grade pairs a qualitative label with the minimum coverage that earns it.
type grade struct {
	Message   string
	Threshold float64
}

// grades are evaluated top-down; the first threshold at or below the
// coverage wins.
var grades = []grade{
	{"AMAZING! Your docstrings are truly a wonder to behold!", 100},
	{"Excellent", 92},
	{"Great", 85},
	{"Very good", 70},
	{"Good", 60},
	{"Not bad", 40},
	{"Not good", 25},
	{"Extremely poor", 10},
	{"Not documented at all", 2},
	{"Do you even docstring?", 0},
}

// Grade returns the qualitative label for a coverage percentage.
func Grade(coverage float64) string {
	for _, g := range grades {
		if g.Threshold <= coverage {
			return g.Message
		}
	}

	return grades[len(grades)-1].Message
}

// IgnoredNode is a node exempted from the docstring requirement.
type IgnoredNode struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// FileStat is the rendered view of one file's outcomes.
type FileStat struct {
	Path                  string        `json:"path"`
	IsEmpty               bool          `json:"is_empty"`
	NodesWithDocstring    []string      `json:"nodes_with_docstring"`
	NodesWithoutDocstring []string      `json:"nodes_without_docstring"`
	IgnoredNodes          []IgnoredNode `json:"ignored_nodes"`
	Needed                int           `json:"needed"`
	Found                 int           `json:"found"`
	Missing               int           `json:"missing"`
	Coverage              float64       `json:"coverage"`
}

// OverallStat is the rendered view of a whole run.
type OverallStat struct {
	NumFiles      int        `json:"num_files"`
	NumEmptyFiles int        `json:"num_empty_files"`
	Files         []FileStat `json:"files"`
	Needed        int        `json:"needed"`
	Found         int        `json:"found"`
	Missing       int        `json:"missing"`
	TotalCoverage float64    `json:"total_coverage"`
	Grade         string     `json:"grade"`
}

// CollectStats projects a result collection into the printable view.
func CollectStats(results *result.Collection) OverallStat {
	count := results.CountAggregate()

	stats := OverallStat{
		NumFiles:      count.NumFiles,
		NumEmptyFiles: count.NumEmptyFiles,
		Needed:        count.Needed,
		Found:         count.Found,
		Missing:       count.Missing,
		TotalCoverage: count.Coverage(),
		Grade:         Grade(count.Coverage()),
	}

	for _, entry := range results.Files() {
		stats.Files = append(stats.Files, collectFileStat(entry))
	}

	return stats
}

func collectFileStat(entry result.FileEntry) FileStat {
	count := entry.File.Count()

	stat := FileStat{
		Path:     entry.Path,
		IsEmpty:  entry.File.Status() == result.StatusEmpty,
		Needed:   count.Needed,
		Found:    count.Found,
		Missing:  count.Missing,
		Coverage: count.Coverage(),
	}

	for _, expd := range entry.File.ExpectedDocstrings() {
		switch {
		case expd.IgnoreReason != "":
			stat.IgnoredNodes = append(stat.IgnoredNodes, IgnoredNode{
				Identifier: expd.NodeIdentifier,
				Reason:     expd.IgnoreReason,
			})
		case expd.HasDocstring:
			stat.NodesWithDocstring = append(stat.NodesWithDocstring, expd.NodeIdentifier)
		default:
			stat.NodesWithoutDocstring = append(stat.NodesWithoutDocstring, expd.NodeIdentifier)
		}
	}

	return stat
}

// SkipNotes renders the postfix notes describing active exemption rules.
func SkipNotes(cfg *ignore.Config) []string {
	if cfg == nil {
		return nil
	}

	var notes []string

	if cfg.SkipMagic() {
		notes = append(notes, "skipped all non-init magic methods")
	}

	if cfg.SkipFileDocstring() {
		notes = append(notes, "skipped file-level docstrings")
	}

	if cfg.SkipInit() {
		notes = append(notes, "skipped __init__ methods")
	}

	if cfg.SkipClassDef() {
		notes = append(notes, "skipped class definitions")
	}

	if cfg.SkipPrivate() {
		notes = append(notes, "skipped private methods")
	}

	return notes
}
