package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/logging"
	"github.com/asheshgoplani/codex-launch/internal/pathfmt"
	"github.com/asheshgoplani/codex-launch/internal/project"
	"github.com/asheshgoplani/codex-launch/internal/timefmt"
	"github.com/asheshgoplani/codex-launch/internal/ui"
)

var cmdLog = logging.ForComponent(logging.CompPicker)

// cmdPick runs the interactive picker over projects and recent sessions.
func (a *app) cmdPick() error {
	targets, err := a.gatherTargets()
	if err != nil {
		return err
	}
	targets = project.PrioritizeCurrent(a.index(), targets)

	if a.opts.noUI {
		return printTargets(targets)
	}
	if !isTTY() {
		return fmt.Errorf("the picker needs a terminal; re-run with --no-ui to print the project list")
	}

	scoped, all, err := a.loadSessions(targets, a.sessionLimit())
	if err != nil {
		return err
	}

	m := ui.NewModel(targets, scoped, all, a.pickerSources())
	if w, err := ui.NewWatcher(a.cfg.SessionsRoot()); err == nil {
		defer w.Close()
		m = m.WatchChanges(w.Changes())
	} else {
		cmdLog.Debug("watcher_unavailable", "error", err.Error())
	}

	pick, err := ui.Run(m, a.crashLogPath())
	if err != nil {
		return err
	}
	return a.handlePick(pick)
}

// cmdRecent shows or prints recent sessions. The list is scoped to the
// discovered projects by default when any exist; --all-sessions widens it,
// --scoped forces the narrow list.
func (a *app) cmdRecent(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("usage: codex-launch recent [--scoped|--all-sessions] [--limit N]")
	}

	targets, err := a.gatherTargets()
	if err != nil {
		return err
	}
	scoped, all, err := a.loadSessions(targets, a.sessionLimit())
	if err != nil {
		return err
	}

	useScoped := len(targets) > 0 && !a.opts.allSessions
	if a.opts.scoped {
		useScoped = true
	}

	if a.opts.noUI || !isTTY() {
		if useScoped {
			return printSessions(scoped)
		}
		return printSessions(all)
	}

	start := ui.ViewSessionsAll
	if useScoped {
		start = ui.ViewSessionsScoped
	}
	m := ui.NewModel(targets, scoped, all, a.pickerSources()).StartAt(start)
	pick, err := ui.Run(m, a.crashLogPath())
	if err != nil {
		return err
	}
	return a.handlePick(pick)
}

// cmdResumeID resumes an exact session id, scanning the whole archive.
func (a *app) cmdResumeID(id string) error {
	rec, err := a.index().FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("no session with id %q (try 'codex-launch recent' to browse)", id)
	}
	return a.launch.Resume(*rec)
}

// cmdList prints discovered targets, one tab-separated line each.
func (a *app) cmdList() error {
	targets, err := a.gatherTargets()
	if err != nil {
		return err
	}
	return printTargets(targets)
}

// cmdEditConfig applies an add-root/add-path/rm mutation and saves.
func (a *app) cmdEditConfig(op, path string) error {
	var err error
	switch op {
	case "root":
		err = a.cfg.AddRoot(path)
	case "path":
		err = a.cfg.AddPath(path)
	case "rm":
		err = a.cfg.Remove(path)
	}
	if err != nil {
		return err
	}
	if err := a.cfg.Save(a.cfgPath); err != nil {
		return err
	}
	switch op {
	case "root":
		fmt.Printf("Added root %s\n", path)
	case "path":
		fmt.Printf("Added path %s\n", path)
	case "rm":
		fmt.Printf("Removed %s\n", path)
	}
	return nil
}

// handlePick acts on the picker's result.
func (a *app) handlePick(pick ui.Pick) error {
	switch pick.Kind {
	case ui.PickLaunchNew:
		return a.launch.LaunchNew(pick.Target)
	case ui.PickResume:
		return a.launch.Resume(pick.Session)
	case ui.PickOpenConfig:
		return a.launch.OpenConfig(a.cfgPath)
	default:
		return nil
	}
}

// pickerSources builds the drill-down and reload callbacks for the picker.
func (a *app) pickerSources() ui.Sources {
	return ui.Sources{
		ForTarget: func(t project.Target) ([]archive.SessionRecord, error) {
			return a.index().List(archive.ForRepoRoot(t.Path, a.sessionLimit()))
		},
		Reload: func() ([]project.Target, []archive.SessionRecord, []archive.SessionRecord, error) {
			targets, err := a.gatherTargets()
			if err != nil {
				return nil, nil, nil, err
			}
			targets = project.PrioritizeCurrent(a.index(), targets)
			scoped, all, err := a.loadSessions(targets, a.sessionLimit())
			if err != nil {
				return nil, nil, nil, err
			}
			return targets, scoped, all, nil
		},
	}
}

func (a *app) crashLogPath() string {
	return filepath.Join(filepath.Dir(a.cfgPath), "crash.log")
}

func printTargets(targets []project.Target) error {
	if len(targets) == 0 {
		return fmt.Errorf("no projects found; configure one with 'codex-launch add-root <path>'")
	}
	now := time.Now()
	for _, t := range targets {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\t%s\n",
			t.Label, t.Path, timefmt.Stamp(t.LastSessionAt, now),
			pathfmt.TruncateLine(t.LastSessionSummary, 120))
	}
	return nil
}

func printSessions(sessions []archive.SessionRecord) error {
	if len(sessions) == 0 {
		return fmt.Errorf("no recorded sessions found")
	}
	now := time.Now()
	for _, s := range sessions {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\t%s\n",
			s.ID, timefmt.Stamp(s.CreatedAt, now), s.Cwd,
			pathfmt.TruncateLine(s.Summary, 120))
	}
	return nil
}
