package coverage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstrcov/docstrcov/pkg/ignore"
	"github.com/docstrcov/docstrcov/pkg/pysrc"
	"github.com/docstrcov/docstrcov/pkg/result"
)

const floatDelta = 0.0001

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func mustIgnoreConfig(t *testing.T, opts ignore.Options) *ignore.Config {
	t.Helper()

	cfg, err := ignore.NewConfig(opts)
	require.NoError(t, err)

	return cfg
}

func TestAnalyze_DocumentedModuleOnly(t *testing.T) {
	path := writeSource(t, t.TempDir(), "documented.py", `"""doc"""`+"\n")

	results, err := Analyze(context.Background(), []string{path}, nil)

	require.NoError(t, err)
	count := results.GetFile(path).Count()
	assert.Equal(t, 1, count.Needed)
	assert.Equal(t, 1, count.Found)
	assert.Equal(t, 0, count.Missing)
	assert.False(t, count.IsEmpty)
	assert.InDelta(t, 100.0, count.Coverage(), floatDelta)
}

func TestAnalyze_EmptyFile(t *testing.T) {
	path := writeSource(t, t.TempDir(), "empty.py", "")

	results, err := Analyze(context.Background(), []string{path}, nil)

	require.NoError(t, err)

	file := results.GetFile(path)
	assert.Equal(t, result.StatusEmpty, file.Status())
	assert.Empty(t, file.ExpectedDocstrings())

	count := file.Count()
	assert.True(t, count.IsEmpty)
	assert.Equal(t, 0, count.Needed)
	assert.InDelta(t, 100.0, count.Coverage(), floatDelta)

	total := results.CountAggregate()
	assert.Equal(t, 1, total.NumEmptyFiles)
}

func TestAnalyze_MixedFunctions(t *testing.T) {
	source := `def foo():
    """documented"""


def bar():
    pass
`
	path := writeSource(t, t.TempDir(), "mixed.py", source)

	results, err := Analyze(context.Background(), []string{path}, nil)

	require.NoError(t, err)

	expected := results.GetFile(path).ExpectedDocstrings()
	require.Len(t, expected, 3)
	assert.Equal(t, result.ExpectedDocstring{NodeIdentifier: result.ModuleIdentifier}, expected[0])
	assert.Equal(t, result.ExpectedDocstring{NodeIdentifier: "foo", HasDocstring: true}, expected[1])
	assert.Equal(t, result.ExpectedDocstring{NodeIdentifier: "bar"}, expected[2])

	count := results.GetFile(path).Count()
	assert.Equal(t, 3, count.Needed)
	assert.Equal(t, 1, count.Found)
	assert.Equal(t, 2, count.Missing)
	assert.InDelta(t, 100.0/3, count.Coverage(), floatDelta)
}

func TestAnalyze_SkipFileDocstring(t *testing.T) {
	source := `def foo():
    """documented"""


def bar():
    pass
`
	path := writeSource(t, t.TempDir(), "mixed.py", source)
	cfg := mustIgnoreConfig(t, ignore.Options{SkipFileDocstring: true})

	results, err := Analyze(context.Background(), []string{path}, cfg)

	require.NoError(t, err)

	expected := results.GetFile(path).ExpectedDocstrings()
	require.Len(t, expected, 3)
	assert.Equal(t, result.ModuleIdentifier, expected[0].NodeIdentifier)
	assert.Equal(t, ignore.ReasonSkipFileDocstring, expected[0].IgnoreReason)

	count := results.GetFile(path).Count()
	assert.Equal(t, 2, count.Needed)
	assert.Equal(t, 1, count.Found)
	assert.Equal(t, 1, count.Missing)
	assert.InDelta(t, 50.0, count.Coverage(), floatDelta)
}

func TestAnalyze_SkipClassDefAndInit(t *testing.T) {
	source := `"""module"""


class FooBar:
    def __init__(self):
        pass
`
	path := writeSource(t, t.TempDir(), "klass.py", source)
	cfg := mustIgnoreConfig(t, ignore.Options{SkipClassDef: true, SkipInit: true})

	results, err := Analyze(context.Background(), []string{path}, cfg)

	require.NoError(t, err)

	expected := results.GetFile(path).ExpectedDocstrings()
	require.Len(t, expected, 3)
	assert.Equal(t, "FooBar", expected[1].NodeIdentifier)
	assert.Equal(t, ignore.ReasonSkipClassDef, expected[1].IgnoreReason)
	assert.Equal(t, "FooBar.__init__", expected[2].NodeIdentifier)
	assert.Equal(t, ignore.ReasonSkipInit, expected[2].IgnoreReason)

	count := results.GetFile(path).Count()
	assert.Equal(t, 1, count.Needed)
	assert.Equal(t, 1, count.Found)
}

func TestAnalyze_MethodIdentifiersUseParentPrefix(t *testing.T) {
	source := `"""module"""


class FooBar:
    """doc"""

    def method(self):
        def inner():
            pass
`
	path := writeSource(t, t.TempDir(), "nested.py", source)

	results, err := Analyze(context.Background(), []string{path}, nil)

	require.NoError(t, err)

	expected := results.GetFile(path).ExpectedDocstrings()
	identifiers := make([]string, 0, len(expected))
	for _, expd := range expected {
		identifiers = append(identifiers, expd.NodeIdentifier)
	}

	assert.Equal(t, []string{result.ModuleIdentifier, "FooBar", "FooBar.method", "method.inner"}, identifiers)
}

func TestAnalyze_ExcusedNodesCountAsDocumented(t *testing.T) {
	source := `"""module"""


# docstr-coverage:excuse ` + "`upstream naming`" + `
def bar():
    pass
`
	path := writeSource(t, t.TempDir(), "excused.py", source)

	results, err := Analyze(context.Background(), []string{path}, nil)

	require.NoError(t, err)
	count := results.GetFile(path).Count()
	assert.Equal(t, 2, count.Needed)
	assert.Equal(t, 2, count.Found)
	assert.InDelta(t, 100.0, count.Coverage(), floatDelta)
}

func TestAnalyze_DuplicateEmptyPathAnalyzedOnce(t *testing.T) {
	path := writeSource(t, t.TempDir(), "empty.py", "")

	var (
		results *result.Collection
		err     error
	)

	require.NotPanics(t, func() {
		results, err = Analyze(context.Background(), []string{path, path}, nil)
	})

	require.NoError(t, err)
	require.Len(t, results.Files(), 1)
	assert.Equal(t, result.StatusEmpty, results.GetFile(path).Status())
	assert.Equal(t, 1, results.CountAggregate().NumEmptyFiles)
}

func TestAnalyze_DuplicatePathRecordsOnce(t *testing.T) {
	source := `def foo():
    """documented"""


def bar():
    pass
`
	path := writeSource(t, t.TempDir(), "mixed.py", source)

	results, err := Analyze(context.Background(), []string{path, path, path}, nil)

	require.NoError(t, err)
	assert.Len(t, results.GetFile(path).ExpectedDocstrings(), 3)

	total := results.CountAggregate()
	assert.Equal(t, 1, total.NumFiles)
	assert.Equal(t, 3, total.Needed)
}

func TestAnalyze_ParseFailureDoesNotAbortRun(t *testing.T) {
	dir := t.TempDir()
	broken := writeSource(t, dir, "broken.py", "def broken(:\n")
	good := writeSource(t, dir, "good.py", `"""doc"""`+"\n")

	results, err := Analyze(context.Background(), []string{broken, good}, nil)

	require.Error(t, err)

	var parseErr *pysrc.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, broken, parseErr.Path)

	// The healthy file was still analyzed; the broken one is absent.
	entries := results.Files()
	require.Len(t, entries, 1)
	assert.Equal(t, good, entries[0].Path)
}

func TestAnalyze_MissingFileReported(t *testing.T) {
	results, err := Analyze(context.Background(), []string{"no/such/file.py"}, nil)

	require.Error(t, err)
	assert.Empty(t, results.Files())
}

func TestGetDocstringCoverage_LegacyShapes(t *testing.T) {
	source := `def foo():
    """documented"""


def bar():
    pass
`
	path := writeSource(t, t.TempDir(), "legacy.py", source)

	var out bytes.Buffer

	fileResults, overall, err := GetDocstringCoverage(
		context.Background(), []string{path}, LegacyOptions{Verbose: 1}, &out)

	require.NoError(t, err)
	require.Contains(t, fileResults, path)
	assert.Equal(t, []string{"bar"}, fileResults[path].Missing)
	assert.False(t, fileResults[path].ModuleDoc)
	assert.Equal(t, 3, overall.NeededCount)
	assert.Equal(t, 2, overall.MissingCount)
	assert.Contains(t, out.String(), "Total coverage:")
}
