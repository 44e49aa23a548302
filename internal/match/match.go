// Package match ranks candidates against a free-text query using fuzzy
// subsequence scoring. It backs both the picker's live filter and the
// non-interactive quick launch/resume paths.
package match

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	// ConfidentMargin is the score lead the best candidate needs over the
	// runner-up for quick actions to auto-select it.
	ConfidentMargin = 25

	// TargetShortlist and SessionShortlist cap how many candidates are
	// offered for disambiguation when no confident pick exists.
	TargetShortlist  = 12
	SessionShortlist = 20
)

// Result is one scored candidate. Index refers back to the caller's slice.
type Result struct {
	Index int
	Score int
}

// Rank scores every candidate row against query, best first. An empty or
// blank query matches everything and preserves the original order. Scoring
// is case-insensitive.
func Rank(query string, rows []string) []Result {
	q := strings.TrimSpace(query)
	if q == "" {
		out := make([]Result, len(rows))
		for i := range rows {
			out[i] = Result{Index: i}
		}
		return out
	}

	lowered := make([]string, len(rows))
	for i, r := range rows {
		lowered[i] = strings.ToLower(r)
	}
	matches := fuzzy.Find(strings.ToLower(q), lowered)

	out := make([]Result, 0, len(matches))
	for _, m := range matches {
		out = append(out, Result{Index: m.Index, Score: m.Score})
	}
	return out
}

// Confident reports whether the top result leads the runner-up by at least
// ConfidentMargin. A single match is always confident; no matches never are.
func Confident(results []Result) bool {
	switch len(results) {
	case 0:
		return false
	case 1:
		return true
	default:
		return results[0].Score >= results[1].Score+ConfidentMargin
	}
}

// Shortlist returns at most n of the best results for disambiguation.
func Shortlist(results []Result, n int) []Result {
	if len(results) <= n {
		return results
	}
	return results[:n]
}
