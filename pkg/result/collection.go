// Package result accumulates per-node docstring outcomes during one analysis
// run and answers aggregate queries without re-walking source files.
package result

import "sync"

// ModuleIdentifier is the sentinel node identifier used for module docstrings.
const ModuleIdentifier = "module docstring"

// FileStatus is the analysis state assigned to every inspected file.
type FileStatus int

const (
	// StatusAnalyzed marks a file with at least one top-level statement.
	StatusAnalyzed FileStatus = iota
	// StatusEmpty marks a file whose top-level body held zero statements.
	StatusEmpty
)

// ExpectedDocstring records the outcome for a single documentable node.
// An empty IgnoreReason means the docstring is required.
type ExpectedDocstring struct {
	NodeIdentifier string
	HasDocstring   bool
	IgnoreReason   string
}

// File accumulates ExpectedDocstring records for one source file.
// Records are append-only and preserve traversal order.
type File struct {
	expected  []ExpectedDocstring
	status    FileStatus
	statusSet bool
}

// NewFile returns an empty file accumulator in the ANALYZED state.
func NewFile() *File {
	return &File{
		expected: make([]ExpectedDocstring, 0),
	}
}

// Report appends the outcome for a single expected docstring.
// For module docstrings, use ReportModule instead.
func (f *File) Report(identifier string, hasDocstring bool, ignoreReason string) {
	f.expected = append(f.expected, ExpectedDocstring{
		NodeIdentifier: identifier,
		HasDocstring:   hasDocstring,
		IgnoreReason:   ignoreReason,
	})
}

// ReportModule appends the outcome for the module-level docstring.
func (f *File) ReportModule(hasDocstring bool, ignoreReason string) {
	f.Report(ModuleIdentifier, hasDocstring, ignoreReason)
}

// ExpectedDocstrings returns the recorded outcomes in insertion order.
// The returned slice is shared; callers must not mutate it.
func (f *File) ExpectedDocstrings() []ExpectedDocstring {
	return f.expected
}

// SetStatus records the file status. It may be called at most once per file,
// before any Report calls. Violating either rule is a programming error.
func (f *File) SetStatus(status FileStatus) {
	if f.statusSet {
		panic("result: file status already set")
	}

	if len(f.expected) > 0 {
		panic("result: file status set after docstring reports")
	}

	f.status = status
	f.statusSet = true
}

// Status returns the file status. The default is StatusAnalyzed.
func (f *File) Status() FileStatus {
	return f.status
}

// Count walks the recorded outcomes and tallies them by state.
// Ignored records contribute to no bucket.
func (f *File) Count() FileCount {
	count := FileCount{}

	if f.status == StatusEmpty {
		count.IsEmpty = true

		return count
	}

	for _, expd := range f.expected {
		if expd.IgnoreReason != "" {
			continue
		}

		count.Needed++

		if expd.HasDocstring {
			count.Found++
		} else {
			count.Missing++
		}
	}

	return count
}

// FileEntry pairs a file path with its accumulator.
type FileEntry struct {
	Path string
	File *File
}

// Collection maps file paths to their accumulators for one analysis run.
type Collection struct {
	mu    sync.Mutex
	files map[string]*File
	order []string
}

// NewCollection returns an empty result collection.
func NewCollection() *Collection {
	return &Collection{
		files: make(map[string]*File),
	}
}

// GetFile returns the accumulator for the given path, creating and
// registering an empty one on first reference. At most one File instance
// ever exists per path, including under concurrent registration.
func (c *Collection) GetFile(path string) *File {
	c.mu.Lock()
	defer c.mu.Unlock()

	file, exists := c.files[path]
	if exists {
		return file
	}

	file = NewFile()
	c.files[path] = file
	c.order = append(c.order, path)

	return file
}

// Files returns all (path, file) entries in registration order.
func (c *Collection) Files() []FileEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]FileEntry, 0, len(c.order))
	for _, path := range c.order {
		entries = append(entries, FileEntry{Path: path, File: c.files[path]})
	}

	return entries
}

// CountAggregate sums the counts of all tracked files.
func (c *Collection) CountAggregate() AggregatedCount {
	total := AggregatedCount{}
	for _, entry := range c.Files() {
		total = total.AddFile(entry.File.Count())
	}

	return total
}
