// Package coverage drives the per-file analysis pipeline: scan, visit,
// classify, record. It produces one populated result collection per run.
package coverage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/docstrcov/docstrcov/pkg/ignore"
	"github.com/docstrcov/docstrcov/pkg/pysrc"
	"github.com/docstrcov/docstrcov/pkg/result"
	"github.com/docstrcov/docstrcov/pkg/visitor"
)

// Analyze checks every file in paths for missing docstrings and collects
// the outcomes. Files are processed sequentially, in input order; a path
// that appears more than once is analyzed on its first occurrence only.
//
// A file that cannot be read or parsed does not abort the run: it is left
// out of the collection and its error is joined into the returned error.
// The collection is valid even when the error is non-nil.
func Analyze(ctx context.Context, paths []string, cfg *ignore.Config) (*result.Collection, error) {
	if cfg == nil {
		cfg = ignore.Default()
	}

	results := result.NewCollection()

	var fileErrs []error

	seen := make(map[string]struct{}, len(paths))

	for _, path := range paths {
		if _, dup := seen[path]; dup {
			continue
		}

		seen[path] = struct{}{}

		analyzeErr := analyzeFile(ctx, path, cfg, results)
		if analyzeErr != nil {
			fileErrs = append(fileErrs, analyzeErr)
		}
	}

	return results, errors.Join(fileErrs...)
}

// analyzeFile runs scan, visit, classify, and record for a single file.
func analyzeFile(ctx context.Context, path string, cfg *ignore.Config, results *result.Collection) error {
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("read %s: %w", path, readErr)
	}

	src, parseErr := pysrc.Parse(ctx, path, content)
	if parseErr != nil {
		return parseErr
	}
	defer src.Close()

	module := visitor.Visit(src)
	file := results.GetFile(path)

	switch {
	case module.IsEmpty:
		file.SetStatus(result.StatusEmpty)
	case module.HasDocstring:
		file.ReportModule(true, "")
	default:
		file.ReportModule(false, cfg.ModuleReason())
	}

	for _, node := range module.Nodes {
		recordNode(path, "", node, cfg, file)
	}

	return nil
}

// recordNode classifies one documentable node, appends its outcome, then
// recurses into its children with this node's name as their prefix.
func recordNode(path, parentPrefix string, node *visitor.Node, cfg *ignore.Config, file *result.File) {
	reason := cfg.Reason(path, parentPrefix, node.Name, node.Decorator)
	file.Report(parentPrefix+node.Name, node.HasDocstring, reason)

	for _, child := range node.Children {
		recordNode(path, node.Name+".", child, cfg, file)
	}
}
