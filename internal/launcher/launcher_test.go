package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/project"
)

func TestFormatCommand(t *testing.T) {
	assert.Equal(t, "codex resume abc", FormatCommand("", []string{"codex", "resume", "abc"}))
	assert.Equal(t,
		"(cd /home/u/proj && codex)",
		FormatCommand("/home/u/proj", []string{"codex"}))
}

func TestFormatCommand_Quoting(t *testing.T) {
	got := FormatCommand("/tmp/my dir", []string{"codex", "--note", "it's done"})
	assert.Equal(t, `(cd '/tmp/my dir' && codex --note 'it'\''s done')`, got)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "''", shellQuote(""))
	assert.Equal(t, "plain-arg_1.0/x", shellQuote("plain-arg_1.0/x"))
	assert.Equal(t, "'has space'", shellQuote("has space"))
}

func TestDryRun_DoesNotExecute(t *testing.T) {
	l := New("definitely-not-a-binary-xyz", nil, true)

	require.NoError(t, l.LaunchNew(project.Target{Path: t.TempDir()}))
	require.NoError(t, l.Resume(archive.SessionRecord{ID: "abc", Cwd: t.TempDir()}))
	require.NoError(t, l.OpenConfig("/nope/config.toml"))
}

func TestResume_ArgOrder(t *testing.T) {
	l := New("codex", []string{"--flag"}, true)
	// Resume must append after the configured base args.
	args := append(append([]string{}, l.Args...), "resume", "id-1")
	assert.Equal(t, []string{"--flag", "resume", "id-1"}, args)
}
