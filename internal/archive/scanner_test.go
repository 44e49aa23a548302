package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeRollout creates root/yyyy/mm/dd/rollout-<stamp>.jsonl with content.
func writeRollout(t *testing.T, root, yyyy, mm, dd, stamp, content string) string {
	t.Helper()
	dir := filepath.Join(root, yyyy, mm, dd)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, rolloutPrefix+stamp+rolloutSuffix)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func collectPaths(t *testing.T, root string, max int) []string {
	t.Helper()
	var paths []string
	err := walkLogFiles(root, func(path string) bool {
		paths = append(paths, path)
		return max <= 0 || len(paths) < max
	})
	require.NoError(t, err)
	return paths
}

func TestWalk_RecencyOrder(t *testing.T) {
	root := t.TempDir()
	a := writeRollout(t, root, "2024", "01", "05", "a", "")
	b := writeRollout(t, root, "2024", "02", "10", "b", "")
	c := writeRollout(t, root, "2023", "12", "31", "c", "")

	got := collectPaths(t, root, 0)
	assert.Equal(t, []string{b, a, c}, got, "newest year/month/day first")
}

func TestWalk_FileOrderWithinDay(t *testing.T) {
	root := t.TempDir()
	early := writeRollout(t, root, "2024", "03", "07", "2024-03-07T08-00-00", "")
	late := writeRollout(t, root, "2024", "03", "07", "2024-03-07T19-30-00", "")

	got := collectPaths(t, root, 0)
	assert.Equal(t, []string{late, early}, got)
}

func TestWalk_SkipsNonDateDirsAndForeignFiles(t *testing.T) {
	root := t.TempDir()
	keep := writeRollout(t, root, "2024", "01", "05", "x", "")

	// Non-numeric and wrong-width directory names are ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "archive-old", "01", "05"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "202", "01", "05"), 0o755))
	// Foreign files inside a day directory are ignored.
	day := filepath.Join(root, "2024", "01", "05")
	require.NoError(t, os.WriteFile(filepath.Join(day, "notes.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(day, "rollout-y.log"), nil, 0o644))

	got := collectPaths(t, root, 0)
	assert.Equal(t, []string{keep}, got)
}

func TestWalk_MissingRootYieldsNothing(t *testing.T) {
	got := collectPaths(t, filepath.Join(t.TempDir(), "nope"), 0)
	assert.Empty(t, got)
}

func TestWalk_EarlyStop(t *testing.T) {
	root := t.TempDir()
	for _, dd := range []string{"01", "02", "03", "04"} {
		writeRollout(t, root, "2024", "01", dd, "s", "")
	}

	got := collectPaths(t, root, 2)
	require.Len(t, got, 2)
	assert.True(t, strings.Contains(got[0], filepath.Join("01", "04")), "newest day visited first")
}

func TestIsDateName(t *testing.T) {
	assert.True(t, isDateName("2024"))
	assert.True(t, isDateName("03"))
	assert.False(t, isDateName("202"))
	assert.False(t, isDateName("20244"))
	assert.False(t, isDateName("ab"))
	assert.False(t, isDateName("2o24"))
}
