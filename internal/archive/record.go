package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// maxScanLines caps how far into a rollout file the extractor reads. The
// session metadata and the first real user message appear near the top;
// everything after is conversation body.
const maxScanLines = 300

// SessionRecord is a summarized view of one past session, extracted from a
// single rollout file. ID and Cwd are always present; every other field is
// best effort.
type SessionRecord struct {
	ID            string
	CreatedAt     string // RFC3339, may be empty
	Cwd           string
	Summary       string // first meaningful user message, single line
	CLIVersion    string
	ModelProvider string
	Source        string
	SourcePath    string // rollout file this record came from
}

// logLine is the envelope shared by every line in a rollout file.
type logLine struct {
	Timestamp string          `json:"timestamp"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

// metaPayload is the payload of a session_meta line.
type metaPayload struct {
	ID            string `json:"id"`
	Cwd           string `json:"cwd"`
	CLIVersion    string `json:"cli_version"`
	ModelProvider string `json:"model_provider"`
	Source        string `json:"source"`
}

// messagePayload is the payload of a response_item line carrying a message.
type messagePayload struct {
	Type    string            `json:"type"`
	Role    string            `json:"role"`
	Content []contentFragment `json:"content"`
}

type contentFragment struct {
	Text string `json:"text"`
}

// recordDraft accumulates fields while scanning a rollout file line by line.
type recordDraft struct {
	id            string
	createdAt     string
	cwd           string
	cliVersion    string
	modelProvider string
	source        string
	firstUserText string // fallback when every message is boilerplate
	bestUserText  string // first non-boilerplate user message
}

// complete reports whether scanning can stop: the required identity fields
// are set and a preferred summary has been found. Later lines would only
// repeat metadata.
func (d *recordDraft) complete() bool {
	return d.id != "" && d.cwd != "" && d.bestUserText != ""
}

// viable reports whether the draft can become a SessionRecord at all.
func (d *recordDraft) viable() bool {
	return d.id != "" && d.cwd != ""
}

func (d *recordDraft) summary() string {
	text := d.bestUserText
	if text == "" {
		text = d.firstUserText
	}
	if text == "" {
		return ""
	}
	return normalizeSummary(text)
}

// extractRecord reads one rollout file and produces at most one record.
// A nil record with nil error means the file had no recoverable session.
func extractRecord(path string) (*SessionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var draft recordDraft
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for lines := 0; lines < maxScanLines && scanner.Scan(); lines++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var env logLine
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			// Malformed lines never fail the whole file.
			continue
		}
		switch env.Type {
		case "session_meta":
			draft.applyMeta(env)
		case "response_item":
			draft.applyMessage(env)
		}

		if draft.complete() {
			break
		}
	}
	// Scanner errors (e.g. an over-long line) leave whatever was already
	// accumulated; a partial draft is still usable.

	if !draft.viable() {
		return nil, nil
	}
	return &SessionRecord{
		ID:            draft.id,
		CreatedAt:     draft.createdAt,
		Cwd:           draft.cwd,
		Summary:       draft.summary(),
		CLIVersion:    draft.cliVersion,
		ModelProvider: draft.modelProvider,
		Source:        draft.source,
		SourcePath:    path,
	}, nil
}

func (d *recordDraft) applyMeta(env logLine) {
	if d.createdAt == "" {
		d.createdAt = env.Timestamp
	}
	var meta metaPayload
	if err := json.Unmarshal(env.Payload, &meta); err != nil {
		return
	}
	d.id = meta.ID
	d.cwd = meta.Cwd
	d.cliVersion = meta.CLIVersion
	d.modelProvider = meta.ModelProvider
	d.source = meta.Source
}

func (d *recordDraft) applyMessage(env logLine) {
	var msg messagePayload
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		return
	}
	if msg.Type != "message" || msg.Role != "user" {
		return
	}
	text := firstFragmentText(msg.Content)
	if text == "" {
		return
	}
	if d.firstUserText == "" {
		d.firstUserText = text
	}
	if d.bestUserText == "" && !looksLikeBoilerplate(text) {
		d.bestUserText = text
	}
}

// firstFragmentText returns the first non-empty text fragment of a message
// content list.
func firstFragmentText(content []contentFragment) string {
	for _, frag := range content {
		if t := strings.TrimSpace(frag.Text); t != "" {
			return t
		}
	}
	return ""
}

// boilerplatePrefixes mark machine-generated user messages (instruction
// blocks, environment context) that make useless summaries.
var boilerplatePrefixes = []string{
	"# AGENTS.md instructions",
	"<environment_context>",
	"<user_shell_command>",
}

func looksLikeBoilerplate(text string) bool {
	t := strings.TrimLeft(text, " \t\r\n")
	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return strings.Contains(t, "<INSTRUCTIONS>")
}

// normalizeSummary reduces raw message text to a single trimmed line: tabs
// become spaces, CRLF/CR become LF, and the first non-blank line wins.
func normalizeSummary(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
