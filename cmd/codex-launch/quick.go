package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/match"
	"github.com/asheshgoplani/codex-launch/internal/timefmt"
	"github.com/asheshgoplani/codex-launch/internal/ui"
)

// quickLaunch fuzzy-matches query against discovered projects and launches
// the winner. A confident lead launches immediately; otherwise a shortlist
// prompt disambiguates.
func (a *app) quickLaunch(query string) error {
	targets, err := a.gatherTargets()
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no projects found; configure one with 'codex-launch add-root <path>'")
	}

	rows := make([]string, len(targets))
	for i, t := range targets {
		rows[i] = t.Label + " " + t.Path
	}
	results := match.Rank(query, rows)
	if len(results) == 0 {
		return fmt.Errorf("no project matches %q (try 'codex-launch list')", query)
	}

	if match.Confident(results) {
		return a.launch.LaunchNew(targets[results[0].Index])
	}

	short := match.Shortlist(results, match.TargetShortlist)
	lines := make([]string, len(short))
	for i, r := range short {
		lines[i] = rows[r.Index]
	}
	choice, err := a.choose(query, lines)
	if err != nil {
		return err
	}
	return a.launch.LaunchNew(targets[short[choice].Index])
}

// quickResume is quickLaunch over recent sessions instead of projects.
func (a *app) quickResume(query string) error {
	sessions, err := a.index().List(archive.All(a.sessionLimit()))
	if err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no recorded sessions found")
	}

	now := time.Now()
	rows := make([]string, len(sessions))
	for i, s := range sessions {
		rows[i] = fmt.Sprintf("%s %s %s", ui.ShortID(s.ID), s.Cwd, s.Summary)
	}
	results := match.Rank(query, rows)
	if len(results) == 0 {
		return fmt.Errorf("no session matches %q (try 'codex-launch recent')", query)
	}

	if match.Confident(results) {
		return a.launch.Resume(sessions[results[0].Index])
	}

	short := match.Shortlist(results, match.SessionShortlist)
	lines := make([]string, len(short))
	for i, r := range short {
		s := sessions[r.Index]
		lines[i] = fmt.Sprintf("%s  %s", timefmt.Stamp(s.CreatedAt, now), rows[r.Index])
	}
	choice, err := a.choose(query, lines)
	if err != nil {
		return err
	}
	return a.launch.Resume(sessions[short[choice].Index])
}

// choose prints a numbered shortlist to stderr and reads a 1-based
// selection from stdin. Empty input takes the best match.
func (a *app) choose(query string, lines []string) (int, error) {
	if a.opts.noUI || !isTTY() {
		for _, l := range lines {
			fmt.Fprintln(os.Stderr, "  "+l)
		}
		return 0, fmt.Errorf("%q is ambiguous; refine the query or run without arguments to pick interactively", query)
	}

	fmt.Fprintf(os.Stderr, "%q matches several entries:\n", query)
	for i, l := range lines {
		fmt.Fprintf(os.Stderr, "%3d) %s\n", i+1, l)
	}
	fmt.Fprint(os.Stderr, "Select [1]: ")

	input, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	choice, ok := parseChoice(input, len(lines))
	if !ok {
		return 0, fmt.Errorf("invalid selection %q", strings.TrimSpace(input))
	}
	return choice, nil
}

// parseChoice turns a typed selection into a 0-based index. Empty input
// defaults to the first entry.
func parseChoice(input string, n int) (int, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}
