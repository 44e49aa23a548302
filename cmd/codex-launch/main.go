package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/config"
	"github.com/asheshgoplani/codex-launch/internal/launcher"
	"github.com/asheshgoplani/codex-launch/internal/logging"
	"github.com/asheshgoplani/codex-launch/internal/project"
	"github.com/asheshgoplani/codex-launch/internal/ui"
)

const Version = "0.4.2"

func init() {
	initColorProfile()
}

// initColorProfile configures the lipgloss color profile. Most modern
// terminals handle TrueColor even when TERM doesn't advertise it; ANSI256
// is the compatibility fallback. CODEX_LAUNCH_COLOR overrides detection.
func initColorProfile() {
	switch strings.ToLower(os.Getenv("CODEX_LAUNCH_COLOR")) {
	case "truecolor", "24bit":
		lipgloss.SetColorProfile(termenv.TrueColor)
		return
	case "256":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return
	case "16":
		lipgloss.SetColorProfile(termenv.ANSI)
		return
	case "none", "off":
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	if ct := os.Getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		lipgloss.SetColorProfile(termenv.TrueColor)
		return
	}
	lipgloss.SetColorProfile(termenv.ANSI256)
}

// globalOpts are the flags accepted before or after the subcommand.
type globalOpts struct {
	configPath  string
	dryRun      bool
	noUI        bool
	limit       int
	resume      bool
	recent      bool
	allSessions bool
	scoped      bool
}

// parseGlobal splits global flags from positional arguments. Flags may
// appear anywhere on the line, clap-style.
func parseGlobal(args []string) (globalOpts, []string, error) {
	opts := globalOpts{}
	var rest []string

	takeValue := func(i *int, name, inline string, hasInline bool) (string, error) {
		if hasInline {
			return inline, nil
		}
		*i++
		if *i >= len(args) {
			return "", fmt.Errorf("flag %s needs a value", name)
		}
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, inline, hasInline := strings.Cut(arg, "=")
		switch name {
		case "--config":
			v, err := takeValue(&i, name, inline, hasInline)
			if err != nil {
				return opts, nil, err
			}
			opts.configPath = v
		case "--limit", "-n":
			v, err := takeValue(&i, name, inline, hasInline)
			if err != nil {
				return opts, nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return opts, nil, fmt.Errorf("flag %s needs a positive number, got %q", name, v)
			}
			opts.limit = n
		case "--dry-run":
			opts.dryRun = true
		case "--no-ui":
			opts.noUI = true
		case "--resume", "-r":
			opts.resume = true
		case "--recent":
			opts.recent = true
		case "--all-sessions":
			opts.allSessions = true
		case "--scoped":
			opts.scoped = true
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return opts, nil, fmt.Errorf("unknown flag %s (see 'codex-launch help')", arg)
			}
			rest = append(rest, arg)
		}
	}
	return opts, rest, nil
}

// app carries the resolved config and launcher through command handlers.
type app struct {
	cfg     *config.Config
	cfgPath string
	opts    globalOpts
	launch  *launcher.Launcher
}

func main() {
	opts, rest, err := parseGlobal(os.Args[1:])
	if err != nil {
		fail(err)
	}

	// version/help work without touching the config.
	if len(rest) > 0 {
		switch rest[0] {
		case "version", "--version", "-v":
			fmt.Printf("codex-launch v%s\n", Version)
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}

	cfgPath, err := config.DefaultPath(opts.configPath)
	if err != nil {
		fail(err)
	}
	cfg, err := config.LoadOrInit(cfgPath)
	if err != nil {
		fail(err)
	}

	logging.Init(logging.Config{
		LogDir:     filepath.Dir(cfgPath),
		Level:      cfg.Logs.Level,
		Format:     cfg.Logs.Format,
		MaxSizeMB:  cfg.Logs.MaxSizeMB,
		MaxBackups: cfg.Logs.MaxBackups,
	})
	defer logging.Shutdown()

	ui.InitTheme(cfg.UI.Theme)

	a := &app{
		cfg:     cfg,
		cfgPath: cfgPath,
		opts:    opts,
		launch:  launcher.New(cfg.Codex.Bin, cfg.Codex.Args, opts.dryRun),
	}
	if err := a.run(rest); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func (a *app) run(rest []string) error {
	// Shortcut forms that bypass subcommand dispatch.
	if a.opts.recent {
		return a.cmdRecent(rest)
	}
	if a.opts.resume {
		return a.quickResume(strings.Join(rest, " "))
	}

	if len(rest) == 0 {
		return a.cmdPick()
	}

	cmd, args := rest[0], rest[1:]
	switch cmd {
	case "pick":
		return a.cmdPick()
	case "list", "ls":
		return a.cmdList()
	case "recent":
		return a.cmdRecent(args)
	case "resume-id":
		if len(args) != 1 {
			return fmt.Errorf("usage: codex-launch resume-id <SESSION_ID>")
		}
		return a.cmdResumeID(args[0])
	case "add-root":
		if len(args) != 1 {
			return fmt.Errorf("usage: codex-launch add-root <path>")
		}
		return a.cmdEditConfig("root", args[0])
	case "add-path":
		if len(args) != 1 {
			return fmt.Errorf("usage: codex-launch add-path <path>")
		}
		return a.cmdEditConfig("path", args[0])
	case "rm", "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: codex-launch rm <path>")
		}
		return a.cmdEditConfig("rm", args[0])
	case "where-config":
		fmt.Println(a.cfgPath)
		return nil
	default:
		// Anything else is a quick-launch query.
		return a.quickLaunch(strings.Join(rest, " "))
	}
}

// sessionLimit resolves the effective result limit: --limit beats config.
func (a *app) sessionLimit() int {
	if a.opts.limit > 0 {
		return a.opts.limit
	}
	return a.cfg.Sessions.Limit
}

func (a *app) index() *archive.Index {
	return archive.NewIndex(a.cfg.SessionsRoot())
}

// gatherTargets discovers project targets from config and session history.
func (a *app) gatherTargets() ([]project.Target, error) {
	return project.Gather(a.cfg, a.index())
}

// loadSessions returns the scoped and unscoped recent-session lists. The
// scope is the set of discovered target paths.
func (a *app) loadSessions(targets []project.Target, limit int) (scoped, all []archive.SessionRecord, err error) {
	ix := a.index()
	scope := make([]string, len(targets))
	for i, t := range targets {
		scope[i] = t.Path
	}

	scoped, err = ix.List(archive.Scoped(scope, limit))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan sessions: %w", err)
	}
	all, err = ix.List(archive.All(limit))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return scoped, all, nil
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func printHelp() {
	fmt.Print(`codex-launch - pick a project or session and launch Codex

Usage:
  codex-launch                     interactive picker
  codex-launch <QUERY>             quick-launch the best-matching project
  codex-launch --resume <QUERY>    quick-resume the best-matching session
  codex-launch recent              pick from recent sessions
  codex-launch resume-id <ID>      resume an exact session id
  codex-launch list                print discovered projects
  codex-launch add-root <path>     scan this directory for git repos
  codex-launch add-path <path>     always offer this directory
  codex-launch rm <path>           remove a configured root or path
  codex-launch where-config        print the config file location
  codex-launch version             print the version

Flags:
  --config PATH    use an alternate config file
  --dry-run        print the command instead of running it
  --no-ui          print lists instead of opening the picker
  --limit N        cap session lists at N entries
  --recent         shortcut for the recent command
  --all-sessions   with recent: ignore the configured project scope
  --scoped         with recent: restrict to configured projects

Keys (picker):
  type to filter · up/down move · enter select · left/right switch tabs
  ctrl+o open config · esc back/quit · ctrl+c quit
`)
}
