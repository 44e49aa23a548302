// Package config loads and saves the launcher's TOML configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/asheshgoplani/codex-launch/internal/logging"
	"github.com/asheshgoplani/codex-launch/internal/pathfmt"
)

var log = logging.ForComponent(logging.CompConfig)

// FileName is the config file inside the launcher directory.
const FileName = "config.toml"

// Config is the user-facing configuration, stored as TOML in
// ~/.codex-launch/config.toml.
type Config struct {
	// Codex defines how the Codex CLI is invoked.
	Codex CodexSettings `toml:"codex"`

	// Projects defines where launch targets are discovered.
	Projects ProjectsSettings `toml:"projects"`

	// Sessions defines where the session archive lives and list limits.
	Sessions SessionsSettings `toml:"sessions"`

	// UI defines picker appearance settings.
	UI UISettings `toml:"ui"`

	// Logs defines debug log settings.
	Logs LogSettings `toml:"logs"`
}

// CodexSettings defines the subprocess to launch or resume.
type CodexSettings struct {
	// Bin is the Codex CLI binary (default: "codex").
	Bin string `toml:"bin"`

	// Args are extra arguments passed on every invocation.
	Args []string `toml:"args"`
}

// ProjectsSettings defines target discovery.
type ProjectsSettings struct {
	// Roots are parent folders scanned one level deep for git repos.
	Roots []string `toml:"roots"`

	// Paths are explicit folder targets (git or not).
	Paths []string `toml:"paths"`

	// FromSessions also infers targets from recent session history.
	FromSessions bool `toml:"from_sessions"`

	// SessionsLimit is how many recent sessions to scan for inference.
	SessionsLimit int `toml:"sessions_limit"`
}

// SessionsSettings defines the session archive location and limits.
type SessionsSettings struct {
	// CodexHome is the directory containing the sessions/ tree
	// (default: ~/.codex).
	CodexHome string `toml:"codex_home"`

	// Limit is the default number of sessions to show.
	Limit int `toml:"limit"`
}

// UISettings defines picker appearance.
type UISettings struct {
	// Theme is "dark" (default), "light", or "system".
	Theme string `toml:"theme"`
}

// LogSettings defines debug log behavior.
type LogSettings struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// Format is "json" (default) or "text".
	Format string `toml:"format"`

	// MaxSizeMB is the max debug.log size before rotation.
	MaxSizeMB int `toml:"max_size_mb"`

	// MaxBackups is rotated files to keep.
	MaxBackups int `toml:"max_backups"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	cfg := &Config{
		Codex: CodexSettings{Bin: "codex"},
		Projects: ProjectsSettings{
			FromSessions:  true,
			SessionsLimit: 200,
		},
		Sessions: SessionsSettings{Limit: 15},
		UI:       UISettings{Theme: "dark"},
		Logs:     LogSettings{Level: "info"},
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Sessions.CodexHome = filepath.Join(home, ".codex")
		cfg.Projects.Roots = []string{filepath.Join(home, "Documents", "Code")}
	}
	return cfg
}

// DefaultPath resolves the config path: the override when given, otherwise
// ~/.codex-launch/config.toml.
func DefaultPath(override string) (string, error) {
	if override != "" {
		return pathfmt.ExpandHome(override), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home dir: %w", err)
	}
	return filepath.Join(home, ".codex-launch", FileName), nil
}

// LoadOrInit reads the config at path, writing defaults there first if the
// file does not exist yet.
func LoadOrInit(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		log.Info("config_initialized", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid TOML in %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	for i, r := range c.Projects.Roots {
		c.Projects.Roots[i] = pathfmt.ExpandHome(r)
	}
	for i, p := range c.Projects.Paths {
		c.Projects.Paths[i] = pathfmt.ExpandHome(p)
	}
	c.Sessions.CodexHome = pathfmt.ExpandHome(c.Sessions.CodexHome)
}

// SessionsRoot returns the date-partitioned archive root.
func (c *Config) SessionsRoot() string {
	return filepath.Join(c.Sessions.CodexHome, "sessions")
}

// AddRoot registers a parent folder to scan for git repos.
func (c *Config) AddRoot(path string) error {
	p, err := validateDir(path)
	if err != nil {
		return err
	}
	if !slices.Contains(c.Projects.Roots, p) {
		c.Projects.Roots = append(c.Projects.Roots, p)
	}
	return nil
}

// AddPath registers an explicit folder target.
func (c *Config) AddPath(path string) error {
	p, err := validateDir(path)
	if err != nil {
		return err
	}
	if !slices.Contains(c.Projects.Paths, p) {
		c.Projects.Paths = append(c.Projects.Paths, p)
	}
	return nil
}

// Remove drops an exact path from both roots and paths. Errors when the
// path was configured in neither.
func (c *Config) Remove(path string) error {
	p := pathfmt.ExpandHome(path)
	before := len(c.Projects.Roots) + len(c.Projects.Paths)
	c.Projects.Roots = slices.DeleteFunc(c.Projects.Roots, func(r string) bool { return r == p })
	c.Projects.Paths = slices.DeleteFunc(c.Projects.Paths, func(r string) bool { return r == p })
	if before == len(c.Projects.Roots)+len(c.Projects.Paths) {
		return fmt.Errorf("not found in config: %s", p)
	}
	return nil
}

// IsScoped reports whether cwd falls under any configured root or path.
func (c *Config) IsScoped(cwd string) bool {
	cwd = pathfmt.ExpandHome(cwd)
	for _, p := range c.Projects.Paths {
		if isSubtree(p, cwd) {
			return true
		}
	}
	for _, r := range c.Projects.Roots {
		if isSubtree(r, cwd) {
			return true
		}
	}
	return false
}

func validateDir(path string) (string, error) {
	p := pathfmt.ExpandHome(path)
	info, err := os.Stat(p)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("path does not exist: %s", p)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", p, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", p)
	}
	return filepath.Clean(p), nil
}

func isSubtree(root, p string) bool {
	root = filepath.Clean(root)
	p = filepath.Clean(p)
	return p == root || strings.HasPrefix(p, root+string(os.PathSeparator))
}

// IsSubtree reports whether p is root itself or lies underneath it. Exported
// for the session index's ForCwd filter.
func IsSubtree(root, p string) bool {
	return isSubtree(root, p)
}
