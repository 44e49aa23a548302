package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRepoRoot(t *testing.T) {
	dir := t.TempDir()
	require.False(t, IsRepoRoot(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	require.True(t, IsRepoRoot(dir))
}

func TestIsRepoRoot_GitFile(t *testing.T) {
	// Worktrees store a .git file pointing at the real git dir.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere\n"), 0o644))
	require.True(t, IsRepoRoot(dir))
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	require.Equal(t, root, FindRoot(nested))
	require.Equal(t, root, FindRoot(root))
}

func TestFindRoot_NoRepo(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "x", "y")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	require.Equal(t, "", FindRoot(sub))
}
