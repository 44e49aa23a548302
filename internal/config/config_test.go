package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrInit_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := LoadOrInit(path)
	require.NoError(t, err)
	assert.Equal(t, "codex", cfg.Codex.Bin)
	assert.Equal(t, 15, cfg.Sessions.Limit)
	assert.True(t, cfg.Projects.FromSessions)

	// The file must exist and round-trip.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := LoadOrInit(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Sessions.Limit, again.Sessions.Limit)
}

func TestLoadOrInit_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[sessions]\nlimit = 40\n"), 0o644))

	cfg, err := LoadOrInit(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Sessions.Limit)
	assert.Equal(t, "codex", cfg.Codex.Bin, "unset sections keep defaults")
}

func TestLoadOrInit_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[broken\n"), 0o644))

	_, err := LoadOrInit(path)
	assert.Error(t, err)
}

func TestAddRootAndPath(t *testing.T) {
	cfg := Default()
	dir := t.TempDir()

	require.NoError(t, cfg.AddRoot(dir))
	require.NoError(t, cfg.AddRoot(dir)) // idempotent
	assert.Contains(t, cfg.Projects.Roots, dir)

	require.NoError(t, cfg.AddPath(dir))
	assert.Contains(t, cfg.Projects.Paths, dir)

	err := cfg.AddPath(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, cfg.AddRoot(file))
}

func TestRemove(t *testing.T) {
	cfg := Default()
	dir := t.TempDir()
	require.NoError(t, cfg.AddRoot(dir))

	require.NoError(t, cfg.Remove(dir))
	assert.NotContains(t, cfg.Projects.Roots, dir)

	assert.Error(t, cfg.Remove(dir), "second remove reports not found")
}

func TestIsScoped(t *testing.T) {
	cfg := Default()
	cfg.Projects.Roots = []string{"/work/code"}
	cfg.Projects.Paths = []string{"/opt/tool"}

	assert.True(t, cfg.IsScoped("/work/code/repo/sub"))
	assert.True(t, cfg.IsScoped("/opt/tool"))
	assert.False(t, cfg.IsScoped("/work/codeother"))
	assert.False(t, cfg.IsScoped("/elsewhere"))
}

func TestIsSubtree(t *testing.T) {
	assert.True(t, IsSubtree("/a/b", "/a/b"))
	assert.True(t, IsSubtree("/a/b", "/a/b/c"))
	assert.False(t, IsSubtree("/a/b", "/a/bc"))
}
