package coverage

import (
	"context"
	"io"

	"github.com/docstrcov/docstrcov/pkg/ignore"
	"github.com/docstrcov/docstrcov/pkg/printer"
	"github.com/docstrcov/docstrcov/pkg/result"
)

// LegacyOptions mirrors the historical flat option list of the original
// coverage entry point.
type LegacyOptions struct {
	SkipMagic         bool
	SkipFileDocstring bool
	SkipInit          bool
	SkipClassDef      bool
	SkipPrivate       bool
	Verbose           int
	IgnoreNames       []ignore.PatternGroup
}

// GetDocstringCoverage analyzes paths, prints a legacy report to out at the
// requested verbosity, and returns the legacy result shapes.
//
// New callers should prefer Analyze, which returns the full collection.
func GetDocstringCoverage(
	ctx context.Context,
	paths []string,
	opts LegacyOptions,
	out io.Writer,
) (map[string]result.LegacyFileResult, result.LegacyOverallResult, error) {
	cfg, cfgErr := ignore.NewConfig(ignore.Options{
		SkipMagic:         opts.SkipMagic,
		SkipFileDocstring: opts.SkipFileDocstring,
		SkipInit:          opts.SkipInit,
		SkipClassDef:      opts.SkipClassDef,
		SkipPrivate:       opts.SkipPrivate,
		IgnoreNames:       opts.IgnoreNames,
	})
	if cfgErr != nil {
		return nil, result.LegacyOverallResult{}, cfgErr
	}

	results, analyzeErr := Analyze(ctx, paths, cfg)

	printErr := printer.NewLegacy(out, opts.Verbose, cfg, true).Print(results)
	if printErr != nil {
		return nil, result.LegacyOverallResult{}, printErr
	}

	fileResults, overall := results.ToLegacy()

	return fileResults, overall, analyzeErr
}
