package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGlobal_FlagsAnywhere(t *testing.T) {
	opts, rest, err := parseGlobal([]string{"recent", "--limit", "5", "--dry-run"})
	require.NoError(t, err)
	assert.Equal(t, []string{"recent"}, rest)
	assert.Equal(t, 5, opts.limit)
	assert.True(t, opts.dryRun)
}

func TestParseGlobal_InlineValue(t *testing.T) {
	opts, rest, err := parseGlobal([]string{"--config=/tmp/c.toml", "myproj"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/c.toml", opts.configPath)
	assert.Equal(t, []string{"myproj"}, rest)
}

func TestParseGlobal_QueryWordsStayPositional(t *testing.T) {
	opts, rest, err := parseGlobal([]string{"--resume", "fix", "the", "bug"})
	require.NoError(t, err)
	assert.True(t, opts.resume)
	assert.Equal(t, []string{"fix", "the", "bug"}, rest)
}

func TestParseGlobal_Errors(t *testing.T) {
	_, _, err := parseGlobal([]string{"--config"})
	assert.ErrorContains(t, err, "needs a value")

	_, _, err = parseGlobal([]string{"--limit", "zero"})
	assert.ErrorContains(t, err, "positive number")

	_, _, err = parseGlobal([]string{"--limit", "0"})
	assert.ErrorContains(t, err, "positive number")

	_, _, err = parseGlobal([]string{"--frobnicate"})
	assert.ErrorContains(t, err, "unknown flag")
}

func TestParseGlobal_Empty(t *testing.T) {
	opts, rest, err := parseGlobal(nil)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Zero(t, opts.limit)
}
