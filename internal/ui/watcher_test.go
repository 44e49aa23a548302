package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherNotifiesOnNewRollout(t *testing.T) {
	root := t.TempDir()
	day := filepath.Join(root, "2026", "01", "20")
	require.NoError(t, os.MkdirAll(day, 0o755))

	w, err := NewWatcher(root)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(day, "rollout-x.jsonl"), []byte("{}\n"), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherMissingRoot(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	w.Close()
	w.Close() // idempotent
}
