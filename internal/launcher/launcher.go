// Package launcher spawns the Codex CLI for a chosen target or session.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/logging"
	"github.com/asheshgoplani/codex-launch/internal/project"
)

var log = logging.ForComponent(logging.CompLaunch)

// Launcher builds and runs Codex CLI invocations. With DryRun set, commands
// are printed instead of executed.
type Launcher struct {
	Bin    string
	Args   []string
	DryRun bool
}

// New creates a launcher for the configured binary and base arguments.
func New(bin string, args []string, dryRun bool) *Launcher {
	return &Launcher{Bin: bin, Args: args, DryRun: dryRun}
}

// LaunchNew starts a fresh session in the target directory. The child
// inherits the terminal.
func (l *Launcher) LaunchNew(t project.Target) error {
	info("Launching Codex in " + t.Path)
	return l.run(t.Path, l.Args)
}

// Resume re-opens a recorded session in its original working directory.
func (l *Launcher) Resume(s archive.SessionRecord) error {
	info(fmt.Sprintf("Resuming %s in %s", s.ID, s.Cwd))
	args := append(append([]string{}, l.Args...), "resume", s.ID)
	return l.run(s.Cwd, args)
}

func (l *Launcher) run(dir string, args []string) error {
	argv := append([]string{l.Bin}, args...)
	if l.DryRun {
		info("DRY RUN: " + FormatCommand(dir, argv))
		return nil
	}
	log.Info("spawn", "dir", dir, "cmd", FormatCommand(dir, argv))

	cmd := exec.Command(l.Bin, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", FormatCommand(dir, argv), err)
	}
	return nil
}

// OpenConfig opens the config file with the platform's default handler.
func (l *Launcher) OpenConfig(path string) error {
	info("Opening config " + path)
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/C", "start", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if l.DryRun {
		info("DRY RUN: " + FormatCommand("", cmd.Args))
		return nil
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// FormatCommand renders an argv as a copy-pasteable shell line, prefixed
// with the working directory when one is set.
func FormatCommand(dir string, argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = shellQuote(a)
	}
	base := strings.Join(quoted, " ")
	if dir == "" {
		return base
	}
	return fmt.Sprintf("(cd %s && %s)", shellQuote(dir), base)
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if isShellSafe(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(s string) bool {
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.' || c == '/':
		default:
			return false
		}
	}
	return true
}

func info(msg string) {
	fmt.Fprintln(os.Stderr, "info "+msg)
}
