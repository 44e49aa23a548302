// Package project discovers launch targets: the directories a new Codex
// session could start in.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/config"
	"github.com/asheshgoplani/codex-launch/internal/git"
	"github.com/asheshgoplani/codex-launch/internal/logging"
	"github.com/asheshgoplani/codex-launch/internal/pathfmt"
)

var log = logging.ForComponent(logging.CompIndex)

// TargetKind records which discovery source produced a target.
type TargetKind int

const (
	// KindExplicitPath is a folder listed in [projects].paths.
	KindExplicitPath TargetKind = iota
	// KindRootGitRepo is a git repo found one level under a configured root.
	KindRootGitRepo
	// KindSessionHistory is a repo inferred from recent session cwds.
	KindSessionHistory
	// KindCurrentDir is the invoking directory, surfaced at the top of
	// the pick list.
	KindCurrentDir
)

// Target is one candidate working directory. Path is the dedup key; the
// last-session fields are back-filled from the session index for display.
type Target struct {
	Path               string
	Kind               TargetKind
	Label              string
	LastSessionAt      string // RFC3339, may be empty
	LastSessionSummary string
}

// Gather builds the deduplicated target list. Sources are merged in
// precedence order: explicit paths, then git repos under roots, then session
// history. The first source to register a path fixes Kind and Label; history
// can still upgrade the last-session metadata of an existing target when its
// session is newer.
func Gather(cfg *config.Config, ix *archive.Index) ([]Target, error) {
	byPath := make(map[string]*Target)

	for _, p := range cfg.Projects.Paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		register(byPath, Target{
			Path:  filepath.Clean(p),
			Kind:  KindExplicitPath,
			Label: pathfmt.Base(p),
		})
	}

	for _, root := range cfg.Projects.Roots {
		if err := scanRoot(byPath, root); err != nil {
			return nil, err
		}
	}

	if cfg.Projects.FromSessions {
		sessions, err := ix.List(archive.All(cfg.Projects.SessionsLimit))
		if err != nil {
			return nil, err
		}
		for _, s := range sessions {
			inferFromSession(byPath, s)
		}
	}

	targets := make([]Target, 0, len(byPath))
	for _, t := range byPath {
		targets = append(targets, *t)
	}
	sortTargets(targets)
	log.Debug("targets_gathered", "count", len(targets))
	return targets, nil
}

// scanRoot registers every git repo found one level under root. Unreadable
// roots abort the gather so the user hears about a bad configuration.
func scanRoot(byPath map[string]*Target, root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read root %s: %w", root, err)
	}
	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}
		if isNoiseDir(ent.Name()) {
			continue
		}
		path := filepath.Join(root, ent.Name())
		if !git.IsRepoRoot(path) {
			continue
		}
		register(byPath, Target{
			Path:  path,
			Kind:  KindRootGitRepo,
			Label: ent.Name(),
		})
	}
	return nil
}

// inferFromSession maps a session cwd to its repo root and registers or
// enriches that target. Sessions in non-git folders are ignored here; such
// folders can still be added explicitly.
func inferFromSession(byPath map[string]*Target, s archive.SessionRecord) {
	if info, err := os.Stat(s.Cwd); err != nil || !info.IsDir() {
		return
	}
	repo := git.FindRoot(s.Cwd)
	if repo == "" {
		return
	}

	if existing, ok := byPath[repo]; ok {
		if sessionNewer(existing, s) {
			existing.LastSessionAt = s.CreatedAt
			existing.LastSessionSummary = s.Summary
		}
		return
	}
	byPath[repo] = &Target{
		Path:               repo,
		Kind:               KindSessionHistory,
		Label:              pathfmt.Base(repo),
		LastSessionAt:      s.CreatedAt,
		LastSessionSummary: s.Summary,
	}
}

// sessionNewer reports whether s should replace the target's last-session
// metadata. RFC3339 strings compare correctly as strings.
func sessionNewer(t *Target, s archive.SessionRecord) bool {
	switch {
	case t.LastSessionAt == "" && s.CreatedAt != "":
		return true
	case t.LastSessionAt != "" && s.CreatedAt != "":
		return s.CreatedAt > t.LastSessionAt
	case t.LastSessionAt == "" && s.CreatedAt == "":
		return t.LastSessionSummary == ""
	default:
		return false
	}
}

// register adds a target unless its path is already taken. First writer
// wins: source precedence comes from call order in Gather.
func register(byPath map[string]*Target, t Target) {
	if _, ok := byPath[t.Path]; ok {
		return
	}
	stored := t
	byPath[t.Path] = &stored
}

// sortTargets orders by most recent session first, then case-insensitive
// label.
func sortTargets(targets []Target) {
	sort.SliceStable(targets, func(i, j int) bool {
		a, b := targets[i], targets[j]
		switch {
		case a.LastSessionAt != "" && b.LastSessionAt != "" && a.LastSessionAt != b.LastSessionAt:
			return a.LastSessionAt > b.LastSessionAt
		case a.LastSessionAt != "" && b.LastSessionAt == "":
			return true
		case a.LastSessionAt == "" && b.LastSessionAt != "":
			return false
		default:
			return strings.ToLower(a.Label) < strings.ToLower(b.Label)
		}
	})
}

// isNoiseDir filters hidden folders and common build output from root scans.
func isNoiseDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "target", "dist", "build":
		return true
	}
	return false
}

// PrioritizeCurrent moves the invoking directory's target to the front of
// the list, inserting a fresh one when it is not configured anywhere. Best
// effort: any failure leaves the list unchanged.
func PrioritizeCurrent(ix *archive.Index, targets []Target) []Target {
	cwd, err := os.Getwd()
	if err != nil {
		return targets
	}
	if info, err := os.Stat(cwd); err != nil || !info.IsDir() {
		return targets
	}

	cur := cwd
	if repo := git.FindRoot(cwd); repo != "" {
		cur = repo
	}
	for i, t := range targets {
		if t.Path == cur {
			moved := t
			targets = append(targets[:i], targets[i+1:]...)
			return append([]Target{moved}, targets...)
		}
	}
	// Never surface "/" as a target.
	if filepath.Dir(cur) == cur {
		return targets
	}

	t := Target{Path: cur, Kind: KindCurrentDir, Label: pathfmt.Base(cur)}
	q := archive.ForCwd(cur, 1)
	if repo := git.FindRoot(cur); repo != "" {
		q = archive.ForRepoRoot(repo, 1)
	}
	if items, err := ix.List(q); err == nil && len(items) > 0 {
		t.LastSessionAt = items[0].CreatedAt
		t.LastSessionSummary = items[0].Summary
	}
	return append([]Target{t}, targets...)
}
