// Package pathfmt renders filesystem paths compactly for list rows.
package pathfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// Compact renders p with the home directory elided to "~" and, when the
// result is still wider than maxChars, elides the head so the tail of the
// path stays visible.
func Compact(p string, maxChars int) string {
	s := p
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if s == home {
			s = "~"
		} else if rest, ok := strings.CutPrefix(s, home+string(os.PathSeparator)); ok {
			s = "~/" + filepath.ToSlash(rest)
		}
	}

	runes := []rune(s)
	if maxChars <= 0 || len(runes) <= maxChars {
		return s
	}

	// Keep the tail, elide the head.
	keep := maxChars - 1
	if keep < 1 {
		keep = 1
	}
	return "…" + string(runes[len(runes)-keep:])
}

// Base returns the last path element, or the path itself when it has none
// (e.g. "/").
func Base(p string) string {
	b := filepath.Base(p)
	if b == "." || b == string(os.PathSeparator) {
		return p
	}
	return b
}

// TruncateLine flattens s to a single line and caps it at maxChars runes,
// appending an ellipsis when it was cut.
func TruncateLine(s string, maxChars int) string {
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	runes := []rune(s)
	if maxChars <= 0 || len(runes) <= maxChars {
		return s
	}
	if maxChars == 1 {
		return "…"
	}
	return string(runes[:maxChars-1]) + "…"
}

// ExpandHome resolves a leading "~" or "~/" to the user's home directory.
// Paths without the prefix are returned unchanged.
func ExpandHome(p string) string {
	if p == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return p
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return p
}
