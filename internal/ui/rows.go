package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/pathfmt"
	"github.com/asheshgoplani/codex-launch/internal/project"
	"github.com/asheshgoplani/codex-launch/internal/timefmt"
)

// Row widths. Rows are rendered at a fixed layout and then truncated to the
// terminal width, so narrow terminals lose the rightmost columns first.
const (
	labelWidth   = 22
	pathWidth    = 44
	stampWidth   = 13
	idWidth      = 8
	summaryWidth = 90
)

// TargetRow renders one project line: label, compact path, last-session
// stamp, last-session summary. The same text feeds the fuzzy filter, so
// typing a path fragment or a summary word both narrow the list.
func TargetRow(t project.Target, now time.Time) string {
	var b strings.Builder
	b.WriteString(pad(pathfmt.TruncateLine(t.Label, labelWidth), labelWidth))
	b.WriteString("  ")
	b.WriteString(pad(pathfmt.Compact(t.Path, pathWidth), pathWidth))
	b.WriteString("  ")
	b.WriteString(pad(timefmt.Stamp(t.LastSessionAt, now), stampWidth))
	if t.LastSessionSummary != "" {
		b.WriteString("  ")
		b.WriteString(pathfmt.TruncateLine(t.LastSessionSummary, summaryWidth))
	}
	return strings.TrimRight(b.String(), " ")
}

// SessionRow renders one session line: stamp, short id, compact cwd,
// summary, and any extra metadata in brackets.
func SessionRow(s archive.SessionRecord, now time.Time) string {
	var b strings.Builder
	b.WriteString(pad(timefmt.Stamp(s.CreatedAt, now), stampWidth))
	b.WriteString("  ")
	b.WriteString(pad(ShortID(s.ID), idWidth))
	b.WriteString("  ")
	b.WriteString(pad(pathfmt.Compact(s.Cwd, pathWidth), pathWidth))
	b.WriteString("  ")
	summary := s.Summary
	if summary == "" {
		summary = "(no summary)"
	}
	b.WriteString(pathfmt.TruncateLine(summary, summaryWidth))
	if meta := sessionMeta(s); meta != "" {
		b.WriteString("  [")
		b.WriteString(meta)
		b.WriteString("]")
	}
	return strings.TrimRight(b.String(), " ")
}

// ProjectSessionRow renders a session inside a single-project view. The cwd
// column is dropped since every row shares the project directory.
func ProjectSessionRow(s archive.SessionRecord, now time.Time) string {
	var b strings.Builder
	b.WriteString(pad(timefmt.Stamp(s.CreatedAt, now), stampWidth))
	b.WriteString("  ")
	b.WriteString(pad(ShortID(s.ID), idWidth))
	b.WriteString("  ")
	summary := s.Summary
	if summary == "" {
		summary = "(no summary)"
	}
	b.WriteString(pathfmt.TruncateLine(summary, summaryWidth))
	if meta := sessionMeta(s); meta != "" {
		b.WriteString("  [")
		b.WriteString(meta)
		b.WriteString("]")
	}
	return strings.TrimRight(b.String(), " ")
}

// NewSessionRow is the synthetic first row of a project's session list.
func NewSessionRow(t project.Target) string {
	return fmt.Sprintf("+ start new session in %s", t.Label)
}

// ShortID shortens a session UUID to its first 8 characters for display.
func ShortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}

func sessionMeta(s archive.SessionRecord) string {
	var parts []string
	if s.ModelProvider != "" {
		parts = append(parts, s.ModelProvider)
	}
	if s.CLIVersion != "" {
		parts = append(parts, "v"+s.CLIVersion)
	}
	if s.Source != "" {
		parts = append(parts, s.Source)
	}
	return strings.Join(parts, " ")
}

// pad left-aligns s into a cell of the given display width, accounting for
// wide runes.
func pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fitLine truncates a rendered row to the terminal width.
func fitLine(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return runewidth.Truncate(s, cols, "…")
}
