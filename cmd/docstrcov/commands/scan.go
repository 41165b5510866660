// Package commands implements CLI command handlers for docstrcov.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/docstrcov/docstrcov/internal/config"
	"github.com/docstrcov/docstrcov/internal/walker"
	"github.com/docstrcov/docstrcov/pkg/badge"
	"github.com/docstrcov/docstrcov/pkg/coverage"
	"github.com/docstrcov/docstrcov/pkg/ignore"
	"github.com/docstrcov/docstrcov/pkg/printer"
	"github.com/docstrcov/docstrcov/pkg/result"
)

var (
	// ErrNoPythonFiles is returned when the scan target set holds no
	// Python files and --accept-empty is not set.
	ErrNoPythonFiles = errors.New("no Python files found")
	// ErrCoverageBelowThreshold is returned when total coverage is under
	// the --fail-under threshold.
	ErrCoverageBelowThreshold = errors.New("coverage below fail-under threshold")
)

// ScanCommand holds configuration and flag state for the scan command.
type ScanCommand struct {
	configPath string

	exclude           string
	verbose           int
	format            string
	failUnder         float64
	badgePath         string
	percentageOnly    bool
	acceptEmpty       bool
	followLinks       bool
	noColor           bool
	skipMagic         bool
	skipFileDocstring bool
	skipInit          bool
	skipClassDef      bool
	skipPrivate       bool
	skipProperty      bool
	skipSetter        bool
	skipDeleter       bool
	ignoreNamesFile   string
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	sc := &ScanCommand{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Measure docstring coverage of Python sources",
		Long: "Scan Python files and directories, count the docstrings present " +
			"against the docstrings needed, and report coverage.",
		Args: cobra.ArbitraryArgs,
		RunE: sc.run,
	}

	cmd.Flags().StringVar(&sc.configPath, "config", "", "Config file path (default: .docstrcov in CWD or $HOME)")
	cmd.Flags().StringVarP(&sc.exclude, "exclude", "e", "", "Regex identifying filepaths to exclude")
	cmd.Flags().IntVarP(&sc.verbose, "verbose", "v", 3, "Verbosity level <0-4>")
	cmd.Flags().StringVar(&sc.format, "format", config.FormatText, "Output format: text, json, markdown, html")
	cmd.Flags().Float64VarP(&sc.failUnder, "fail-under", "F", 100.0, "Fail when coverage % is less than this amount")
	cmd.Flags().StringVarP(&sc.badgePath, "badge", "b", "", "Save a coverage badge SVG to this filepath")
	cmd.Flags().BoolVarP(&sc.percentageOnly, "percentage-only", "p", false, "Output only the coverage percentage")
	cmd.Flags().BoolVarP(&sc.acceptEmpty, "accept-empty", "a", false, "Exit zero when no Python files are found")
	cmd.Flags().BoolVarP(&sc.followLinks, "follow-links", "l", false, "Follow symlinks while collecting files")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&sc.skipMagic, "skip-magic", "m", false, `Ignore docstrings of magic methods (except "__init__")`)
	cmd.Flags().BoolVarP(&sc.skipFileDocstring, "skip-file-doc", "f", false, "Ignore module docstrings")
	cmd.Flags().BoolVarP(&sc.skipInit, "skip-init", "i", false, `Ignore docstrings of "__init__" methods`)
	cmd.Flags().BoolVarP(&sc.skipClassDef, "skip-class-def", "c", false, "Ignore docstrings of class definitions")
	cmd.Flags().BoolVarP(&sc.skipPrivate, "skip-private", "P", false, "Ignore docstrings of functions with one leading underscore")
	cmd.Flags().BoolVar(&sc.skipProperty, "skip-property", false, "Ignore docstrings of property-decorated functions")
	cmd.Flags().BoolVar(&sc.skipSetter, "skip-setter", false, "Ignore docstrings of setter-decorated functions")
	cmd.Flags().BoolVar(&sc.skipDeleter, "skip-deleter", false, "Ignore docstrings of deleter-decorated functions")
	cmd.Flags().StringVarP(&sc.ignoreNamesFile, "docstr-ignore-file", "d", "",
		"Filepath containing file-pattern name-pattern regex lines")

	return cmd
}

func (sc *ScanCommand) run(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	cfg, cfgErr := config.Load(sc.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	sc.applyFlagOverrides(cmd, cfg)

	if len(args) > 0 {
		cfg.Paths = args
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return validateErr
	}

	ignoreOpts, optsErr := cfg.IgnoreOptions()
	if optsErr != nil {
		return optsErr
	}

	ignoreCfg, ignoreErr := ignore.NewConfig(ignoreOpts)
	if ignoreErr != nil {
		return ignoreErr
	}

	files, collectErr := walker.Collect(cfg.Paths, walker.Options{
		Exclude:     cfg.Exclude,
		FollowLinks: cfg.FollowLinks,
	})
	if collectErr != nil {
		return collectErr
	}

	if len(files) == 0 {
		if cfg.AcceptEmpty {
			logger.Warn("no Python files found", "paths", cfg.Paths)

			return nil
		}

		return fmt.Errorf("%w under %v", ErrNoPythonFiles, cfg.Paths)
	}

	results, analyzeErr := coverage.Analyze(cmd.Context(), files, ignoreCfg)
	if analyzeErr != nil {
		logger.Warn("some files could not be analyzed", "error", analyzeErr)
	}

	if len(results.Files()) == 0 {
		return analyzeErr
	}

	total := results.CountAggregate().Coverage()

	printErr := sc.printResults(cmd.OutOrStdout(), cfg, ignoreCfg, results, total)
	if printErr != nil {
		return printErr
	}

	if cfg.Badge != "" {
		badgeErr := sc.saveBadge(logger, cfg.Badge, total)
		if badgeErr != nil {
			return badgeErr
		}
	}

	if total < cfg.FailUnder {
		return fmt.Errorf("%w: %.1f%% < %.1f%%", ErrCoverageBelowThreshold, total, cfg.FailUnder)
	}

	return nil
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func (sc *ScanCommand) applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	overrides := map[string]func(){
		"exclude":            func() { cfg.Exclude = sc.exclude },
		"verbose":            func() { cfg.Verbose = sc.verbose },
		"format":             func() { cfg.Format = sc.format },
		"fail-under":         func() { cfg.FailUnder = sc.failUnder },
		"badge":              func() { cfg.Badge = sc.badgePath },
		"percentage-only":    func() { cfg.PercentageOnly = sc.percentageOnly },
		"accept-empty":       func() { cfg.AcceptEmpty = sc.acceptEmpty },
		"follow-links":       func() { cfg.FollowLinks = sc.followLinks },
		"skip-magic":         func() { cfg.SkipMagic = sc.skipMagic },
		"skip-file-doc":      func() { cfg.SkipFileDocstring = sc.skipFileDocstring },
		"skip-init":          func() { cfg.SkipInit = sc.skipInit },
		"skip-class-def":     func() { cfg.SkipClassDef = sc.skipClassDef },
		"skip-private":       func() { cfg.SkipPrivate = sc.skipPrivate },
		"skip-property":      func() { cfg.SkipProperty = sc.skipProperty },
		"skip-setter":        func() { cfg.SkipSetter = sc.skipSetter },
		"skip-deleter":       func() { cfg.SkipDeleter = sc.skipDeleter },
		"docstr-ignore-file": func() { cfg.IgnoreNamesFile = sc.ignoreNamesFile },
	}

	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

func (sc *ScanCommand) printResults(
	out io.Writer,
	cfg *config.Config,
	ignoreCfg *ignore.Config,
	results *result.Collection,
	total float64,
) error {
	if cfg.PercentageOnly {
		fmt.Fprintf(out, "%.1f\n", total)

		return nil
	}

	switch cfg.Format {
	case config.FormatJSON:
		return printer.NewJSON(out).Print(results)
	case config.FormatMarkdown:
		return printer.NewMarkdown(out).Print(results)
	case config.FormatHTML:
		return printer.NewHTML(out).Print(results)
	default:
		return printer.NewLegacy(out, cfg.Verbose, ignoreCfg, sc.noColor).Print(results)
	}
}

func (sc *ScanCommand) saveBadge(logger *slog.Logger, path string, total float64) error {
	saved, saveErr := badge.New(path, total).Save()
	if saveErr != nil {
		return saveErr
	}

	logger.Info("coverage badge saved", "path", saved)

	return nil
}
