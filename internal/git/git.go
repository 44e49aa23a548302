// Package git locates repository roots without shelling out to the git
// binary, so the session index can resolve thousands of record cwds cheaply.
package git

import (
	"os"
	"path/filepath"
)

// maxWalkDepth bounds the upward walk so symlink cycles or pathological
// mounts cannot loop forever.
const maxWalkDepth = 25

// IsRepoRoot reports whether dir itself contains a .git marker. Both a
// directory (normal repo) and a file (worktree/submodule pointer) count.
func IsRepoRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && (info.IsDir() || info.Mode().IsRegular())
}

// FindRoot walks upward from start looking for the nearest enclosing
// repository root. Returns "" when none is found within the depth bound.
func FindRoot(start string) string {
	cur := filepath.Clean(start)
	for i := 0; i < maxWalkDepth; i++ {
		if IsRepoRoot(cur) {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return ""
}
