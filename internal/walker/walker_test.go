package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("pass\n"), 0o600))
}

func TestCollect_DirectoryTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.py"))
	writeFile(t, filepath.Join(dir, "a.py"))
	writeFile(t, filepath.Join(dir, "sub", "c.py"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	files, err := Collect([]string{dir}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "sub", "c.py"),
	}, files)
}

func TestCollect_ExplicitFileBypassesExclude(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "excluded.py")
	writeFile(t, target)

	files, err := Collect([]string{target}, Options{Exclude: ".*excluded.*"})

	require.NoError(t, err)
	assert.Equal(t, []string{target}, files)
}

func TestCollect_ExcludePattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.py"))
	writeFile(t, filepath.Join(dir, "gen", "skip.py"))

	files, err := Collect([]string{dir}, Options{Exclude: ".*/gen/.*"})

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "keep.py")}, files)
}

func TestCollect_ExcludeMatchesFromStart(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "module.py"))

	// Without a leading wildcard the pattern cannot reach mid-path text.
	files, err := Collect([]string{dir}, Options{Exclude: "module"})

	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCollect_InvalidExcludePattern(t *testing.T) {
	_, err := Collect([]string{t.TempDir()}, Options{Exclude: "("})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile exclude pattern")
}

func TestCollect_SkipsVendoredDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.py"))
	writeFile(t, filepath.Join(dir, "node_modules", "dep.py"))

	files, err := Collect([]string{dir}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "app.py")}, files)
}

func TestCollect_MissingDirectoryContributesNothing(t *testing.T) {
	files, err := Collect([]string{filepath.Join(t.TempDir(), "absent")}, Options{})

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollect_MissingExplicitFileKept(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.py")

	files, err := Collect([]string{missing}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{missing}, files)
}

func TestCollect_SymlinkedDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	real := t.TempDir()
	writeFile(t, filepath.Join(real, "linked.py"))

	root := t.TempDir()
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(real, link))

	ignored, err := Collect([]string{root}, Options{})
	require.NoError(t, err)
	assert.Empty(t, ignored)

	followed, err := Collect([]string{root}, Options{FollowLinks: true})
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, "linked.py", filepath.Base(followed[0]))
}

func TestCollect_SymlinkCycleWalkedOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"))
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "loop")))

	files, err := Collect([]string{dir}, Options{FollowLinks: true})

	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCollect_MultiplePathsSorted(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(second, "z.py"))
	writeFile(t, filepath.Join(first, "a.py"))

	files, err := Collect([]string{second, first}, Options{})

	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.True(t, files[0] < files[1])
}
