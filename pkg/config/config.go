// Package config provides layered configuration for bsp: embedded
// defaults, an optional user config file in the XDG config dir, and
// BSP_* environment variables, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all user-tunable settings.
type Config struct {
	Repo     RepoConfig     `koanf:"repo"`
	Rewrite  RewriteConfig  `koanf:"rewrite"`
	Copy     CopyConfig     `koanf:"copy"`
	Timeouts TimeoutsConfig `koanf:"timeouts"`
}

// RepoConfig controls where local templates and new projects live.
type RepoConfig struct {
	// Dir is an explicit repository directory (BSP_REPO_DIR).
	Dir string `koanf:"dir"`
	// Paths are candidate repository directories tried in order when
	// Dir is unset (BSP_REPO_PATHS, comma-separated).
	Paths []string `koanf:"paths"`
}

// RewriteConfig controls which files the replacement engine visits.
type RewriteConfig struct {
	// Patterns are path templates containing a {project_name}
	// placeholder (BSP_REWRITE_PATTERNS, comma-separated).
	Patterns []string `koanf:"patterns"`
}

// CopyConfig controls the template copy collaborator.
type CopyConfig struct {
	// Ignore lists directory entries excluded from the copy.
	Ignore []string `koanf:"ignore"`
}

// TimeoutsConfig holds per-command subprocess timeouts in seconds.
type TimeoutsConfig struct {
	Package int `koanf:"package"`
	Git     int `koanf:"git"`
}

// PackageTimeout returns the timeout for package-manager commands.
func (c *Config) PackageTimeout() time.Duration {
	return time.Duration(c.Timeouts.Package) * time.Second
}

// GitTimeout returns the timeout for version-control commands.
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.Timeouts.Git) * time.Second
}

// IgnoreSet returns the copy ignore list as a membership set.
func (c *Config) IgnoreSet() map[string]bool {
	set := make(map[string]bool, len(c.Copy.Ignore))
	for _, name := range c.Copy.Ignore {
		set[name] = true
	}
	return set
}

// FindRepoDir returns the repository directory for local templates:
// Repo.Dir when set and existing, otherwise the first existing entry
// from Repo.Paths. Returns "" when nothing exists.
func (c *Config) FindRepoDir() string {
	if c.Repo.Dir != "" {
		dir := ExpandHome(c.Repo.Dir)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		return ""
	}

	for _, candidate := range c.Repo.Paths {
		dir := ExpandHome(candidate)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// ExpandHome expands a leading ~ and environment variables in a path
func ExpandHome(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return os.ExpandEnv(path)
}
