package archive

import (
	"github.com/asheshgoplani/codex-launch/internal/config"
	"github.com/asheshgoplani/codex-launch/internal/git"
	"github.com/asheshgoplani/codex-launch/internal/logging"
)

var indexLog = logging.ForComponent(logging.CompIndex)

// QueryKind selects the filter applied to scanned records.
type QueryKind int

const (
	// QueryAll matches every record.
	QueryAll QueryKind = iota
	// QueryScoped matches records whose cwd lies under a scope root.
	QueryScoped
	// QueryForCwd matches records whose cwd lies under one directory.
	QueryForCwd
	// QueryForRepoRoot matches records whose enclosing repo root equals
	// the given directory.
	QueryForRepoRoot
)

// Query describes one index lookup. Limit always bounds the number of
// matching records returned, which is what keeps scans over a huge archive
// cheap: the walk stops as soon as Limit matches have been collected.
type Query struct {
	Kind  QueryKind
	Limit int

	// Dir is the subject directory for ForCwd and ForRepoRoot.
	Dir string

	// Scope holds the configured roots and paths for Scoped.
	Scope []string
}

// All returns an unscoped query.
func All(limit int) Query {
	return Query{Kind: QueryAll, Limit: limit}
}

// Scoped returns a query restricted to the given roots/paths.
func Scoped(scope []string, limit int) Query {
	return Query{Kind: QueryScoped, Scope: scope, Limit: limit}
}

// ForCwd returns a query restricted to sessions run under dir.
func ForCwd(dir string, limit int) Query {
	return Query{Kind: QueryForCwd, Dir: dir, Limit: limit}
}

// ForRepoRoot returns a query restricted to sessions whose repository root
// is exactly root.
func ForRepoRoot(root string, limit int) Query {
	return Query{Kind: QueryForRepoRoot, Dir: root, Limit: limit}
}

func (q Query) matches(rec *SessionRecord) bool {
	switch q.Kind {
	case QueryScoped:
		for _, root := range q.Scope {
			if config.IsSubtree(root, rec.Cwd) {
				return true
			}
		}
		return false
	case QueryForCwd:
		return config.IsSubtree(q.Dir, rec.Cwd)
	case QueryForRepoRoot:
		return git.FindRoot(rec.Cwd) == q.Dir
	default:
		return true
	}
}

// Index answers queries over a session archive root. It holds no state
// beyond the root path; every call scans fresh.
type Index struct {
	root string
}

// NewIndex creates an index over the archive at root
// (typically <codex_home>/sessions).
func NewIndex(root string) *Index {
	return &Index{root: root}
}

// List returns matching records in recency order, at most q.Limit of them.
// Files that cannot be read or lack the required fields are skipped.
func (ix *Index) List(q Query) ([]SessionRecord, error) {
	var items []SessionRecord
	scanned := 0
	err := walkLogFiles(ix.root, func(path string) bool {
		if q.Limit > 0 && len(items) >= q.Limit {
			return false
		}
		scanned++
		rec, err := extractRecord(path)
		if err != nil {
			indexLog.Debug("record_skipped", "path", path, "error", err)
			return true
		}
		if rec == nil || !q.matches(rec) {
			return true
		}
		items = append(items, *rec)
		return q.Limit <= 0 || len(items) < q.Limit
	})
	if err != nil {
		return nil, err
	}
	indexLog.Debug("list_done", "matched", len(items), "scanned", scanned)
	return items, nil
}

// FindByID scans the whole archive for an exact session id. Unbounded by
// design: exact resume is rare and correctness beats speed here.
func (ix *Index) FindByID(id string) (*SessionRecord, error) {
	var found *SessionRecord
	err := walkLogFiles(ix.root, func(path string) bool {
		rec, err := extractRecord(path)
		if err != nil || rec == nil {
			return true
		}
		if rec.ID == id {
			found = rec
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
