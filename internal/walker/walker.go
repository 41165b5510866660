// Package walker collects the Python source files of a scan target set.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"
)

const (
	pythonExtension = ".py"
	pythonLanguage  = "Python"
)

// Options control file collection.
type Options struct {
	// Exclude is a regex matched against the start of each candidate
	// filepath; matching files are skipped. Empty means no exclusion.
	Exclude string
	// FollowLinks walks into directory symlinks. Cycles are detected via
	// resolved paths and walked once.
	FollowLinks bool
}

type collector struct {
	exclude *regexp.Regexp
	follow  bool
	visited map[string]struct{}
	files   []string
}

// Collect returns the sorted Python filepaths found under paths. Explicit
// `.py` arguments are returned as given, bypassing the exclude filter;
// directories are walked recursively. Missing directories contribute
// nothing.
func Collect(paths []string, opts Options) ([]string, error) {
	col := &collector{
		follow:  opts.FollowLinks,
		visited: make(map[string]struct{}),
	}

	if opts.Exclude != "" {
		exclude, compileErr := regexp.Compile(`\A(?:` + opts.Exclude + `)`)
		if compileErr != nil {
			return nil, fmt.Errorf("compile exclude pattern: %w", compileErr)
		}

		col.exclude = exclude
	}

	for _, path := range paths {
		info, statErr := os.Stat(path)
		if statErr == nil && info.IsDir() {
			walkErr := col.walkDirectory(path)
			if walkErr != nil {
				return nil, fmt.Errorf("walk %s: %w", path, walkErr)
			}

			continue
		}

		if strings.HasSuffix(path, pythonExtension) {
			col.files = append(col.files, path)
		}
	}

	sort.Strings(col.files)

	return col.files, nil
}

func (col *collector) walkDirectory(dir string) error {
	resolved, resolveErr := filepath.EvalSymlinks(dir)
	if resolveErr != nil {
		return nil
	}

	if _, seen := col.visited[resolved]; seen {
		return nil
	}

	col.visited[resolved] = struct{}{}

	return filepath.WalkDir(dir, col.handleEntry)
}

func (col *collector) handleEntry(path string, entry fs.DirEntry, walkErr error) error {
	if walkErr != nil {
		if errors.Is(walkErr, fs.ErrPermission) || errors.Is(walkErr, fs.ErrNotExist) {
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		return walkErr
	}

	if entry.IsDir() {
		if enry.IsVendor(path + "/") {
			return filepath.SkipDir
		}

		return nil
	}

	if col.follow && entry.Type()&fs.ModeSymlink != 0 {
		if target, isDir := resolveDirLink(path); isDir {
			return col.walkDirectory(target)
		}
	}

	if col.include(path) {
		col.files = append(col.files, path)
	}

	return nil
}

// include reports whether a walked file belongs in the scan set.
func (col *collector) include(path string) bool {
	if !strings.HasSuffix(path, pythonExtension) {
		return false
	}

	if enry.GetLanguage(filepath.Base(path), nil) != pythonLanguage {
		return false
	}

	if col.exclude != nil && col.exclude.MatchString(path) {
		return false
	}

	return true
}

// resolveDirLink resolves a symlink entry, reporting whether it points at
// a directory.
func resolveDirLink(path string) (string, bool) {
	target, resolveErr := filepath.EvalSymlinks(path)
	if resolveErr != nil {
		return "", false
	}

	info, statErr := os.Stat(target)
	if statErr != nil || !info.IsDir() {
		return "", false
	}

	return target, true
}
