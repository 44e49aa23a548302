package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_EmptyQueryPreservesOrder(t *testing.T) {
	rows := []string{"charlie", "alpha", "bravo"}

	got := Rank("", rows)
	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, i, r.Index)
		assert.Zero(t, r.Score)
	}

	// Blank counts as empty.
	got = Rank("   ", rows)
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].Index)
}

func TestRank_CaseInsensitive(t *testing.T) {
	rows := []string{"MyProject", "other"}

	got := Rank("myproj", rows)
	require.NotEmpty(t, got)
	assert.Equal(t, 0, got[0].Index)
}

func TestRank_NoMatch(t *testing.T) {
	got := Rank("zzz", []string{"alpha", "bravo"})
	assert.Empty(t, got)
}

func TestRank_BestFirst(t *testing.T) {
	rows := []string{"frontend-app", "backend-api", "api"}

	got := Rank("api", rows)
	require.NotEmpty(t, got)
	assert.Equal(t, 2, got[0].Index, "exact short candidate ranks first")
}

func TestConfident(t *testing.T) {
	assert.False(t, Confident(nil))
	assert.True(t, Confident([]Result{{Index: 0, Score: 10}}))
	assert.True(t, Confident([]Result{{Score: 100}, {Score: 60}}))
	assert.True(t, Confident([]Result{{Score: 100}, {Score: 75}}), "margin of exactly 25 is confident")
	assert.False(t, Confident([]Result{{Score: 100}, {Score: 90}}))
}

func TestShortlist(t *testing.T) {
	results := make([]Result, 30)
	for i := range results {
		results[i] = Result{Index: i}
	}
	assert.Len(t, Shortlist(results, SessionShortlist), 20)
	assert.Len(t, Shortlist(results[:5], TargetShortlist), 5)
}
