package project

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/config"
)

// fixture builds a config plus a session archive whose sessions ran in the
// given cwds (newest last in the slice ordering below means nothing; each
// session gets its own day, later days newer).
func fixture(t *testing.T, cwds ...string) (*config.Config, *archive.Index) {
	t.Helper()
	archiveRoot := t.TempDir()
	for i, cwd := range cwds {
		day := fmt.Sprintf("%02d", i+1)
		content := fmt.Sprintf(
			`{"timestamp":"2026-01-%sT10:00:00Z","type":"session_meta","payload":{"id":"s%d","cwd":%q}}`,
			day, i, cwd) + "\n" +
			fmt.Sprintf(`{"type":"response_item","payload":{"type":"message","role":"user","content":[{"text":"task %d"}]}}`, i) + "\n"
		dir := filepath.Join(archiveRoot, "2026", "01", day)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "rollout-s.jsonl"), []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.Projects.Roots = nil
	cfg.Projects.Paths = nil
	cfg.Projects.FromSessions = true
	cfg.Projects.SessionsLimit = 50
	return cfg, archive.NewIndex(archiveRoot)
}

func mkRepo(t *testing.T, parent, name string) string {
	t.Helper()
	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(filepath.Join(path, ".git"), 0o755))
	return path
}

func TestGather_ExplicitPaths(t *testing.T) {
	cfg, ix := fixture(t)
	dir := t.TempDir()
	cfg.Projects.Paths = []string{dir}

	targets, err := Gather(cfg, ix)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, KindExplicitPath, targets[0].Kind)
	assert.Equal(t, filepath.Base(dir), targets[0].Label)
}

func TestGather_RootScanFindsGitReposOnly(t *testing.T) {
	cfg, ix := fixture(t)
	root := t.TempDir()
	repo := mkRepo(t, root, "repo")
	require.NoError(t, os.Mkdir(filepath.Join(root, "plain"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "node_modules"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".hidden"), 0o755))
	cfg.Projects.Roots = []string{root}

	targets, err := Gather(cfg, ix)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, repo, targets[0].Path)
	assert.Equal(t, KindRootGitRepo, targets[0].Kind)
}

func TestGather_HistoryInference(t *testing.T) {
	root := t.TempDir()
	repo := mkRepo(t, root, "proj")
	sub := filepath.Join(repo, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))

	cfg, ix := fixture(t, sub)

	targets, err := Gather(cfg, ix)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, repo, targets[0].Path, "session cwd resolves to repo root")
	assert.Equal(t, KindSessionHistory, targets[0].Kind)
	assert.Equal(t, "task 0", targets[0].LastSessionSummary)
}

func TestGather_PrecedenceExplicitOverHistory(t *testing.T) {
	root := t.TempDir()
	repo := mkRepo(t, root, "proj")

	cfg, ix := fixture(t, repo)
	cfg.Projects.Paths = []string{repo}

	targets, err := Gather(cfg, ix)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, KindExplicitPath, targets[0].Kind, "first-registered kind wins")
	assert.Equal(t, "task 0", targets[0].LastSessionSummary, "history still back-fills metadata")
	assert.NotEmpty(t, targets[0].LastSessionAt)
}

func TestGather_NewerSessionUpgradesMetadata(t *testing.T) {
	root := t.TempDir()
	repo := mkRepo(t, root, "proj")

	// Two sessions in the same repo; day 02 is newer.
	cfg, ix := fixture(t, repo, repo)

	targets, err := Gather(cfg, ix)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "task 1", targets[0].LastSessionSummary)
	assert.Equal(t, "2026-01-02T10:00:00Z", targets[0].LastSessionAt)
}

func TestGather_SortNewestSessionFirst(t *testing.T) {
	root := t.TempDir()
	old := mkRepo(t, root, "old")
	fresh := mkRepo(t, root, "fresh")
	idle := mkRepo(t, root, "aaa-idle")

	cfg, ix := fixture(t, old, fresh)
	cfg.Projects.Roots = []string{root}

	targets, err := Gather(cfg, ix)
	require.NoError(t, err)
	require.Len(t, targets, 3)
	assert.Equal(t, fresh, targets[0].Path)
	assert.Equal(t, old, targets[1].Path)
	assert.Equal(t, idle, targets[2].Path, "no-session targets sort last, by label")
}

func TestSessionNewer(t *testing.T) {
	tgt := &Target{}
	assert.True(t, sessionNewer(tgt, archive.SessionRecord{CreatedAt: "2026-01-01T00:00:00Z"}))

	tgt.LastSessionAt = "2026-01-02T00:00:00Z"
	assert.False(t, sessionNewer(tgt, archive.SessionRecord{CreatedAt: "2026-01-01T00:00:00Z"}))
	assert.True(t, sessionNewer(tgt, archive.SessionRecord{CreatedAt: "2026-01-03T00:00:00Z"}))
}
