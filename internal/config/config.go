package config

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/bashhack/gitsplit/internal/errors"
)

// Mode is the single operation a gitsplit invocation performs.
type Mode int

const (
	// ModeStart begins an edit session on the given revision
	ModeStart Mode = iota
	// ModeCommitOriginal commits staged changes reusing the session
	// revision's message
	ModeCommitOriginal
	// ModeContinue resumes and finishes the rebase
	ModeContinue
	// ModeAbort cancels the rebase and restores the prior state
	ModeAbort
)

// Config holds all gitsplit application settings
type Config struct {
	// Repository configuration
	RepoPath string `env:"GITSPLIT_REPO_PATH"`

	// Operation selection (set from CLI flags and the positional argument)
	Revision       string `env:"-"`
	CommitOriginal bool   `env:"-"`
	Continue       bool   `env:"-"`
	Abort          bool   `env:"-"`

	// User experience
	Quiet bool `env:"GITSPLIT_QUIET"`

	// Debugging
	Debug   bool   `env:"GITSPLIT_DEBUG"`
	LogFile string `env:"GITSPLIT_LOG_FILE"`

	// Build metadata
	VersionInfo VersionInfo `env:"-"`
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// LoadFromEnvironment updates config from GITSPLIT_* environment variables
func (c *Config) LoadFromEnvironment() error {
	if err := env.Parse(c); err != nil {
		return errors.NewConfigError("environment", nil,
			errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}
	return nil
}

// Mode returns the operation selected by the parsed flags. It is only
// meaningful after Finalize has validated the combination.
func (c *Config) Mode() Mode {
	switch {
	case c.CommitOriginal:
		return ModeCommitOriginal
	case c.Continue:
		return ModeContinue
	case c.Abort:
		return ModeAbort
	default:
		return ModeStart
	}
}

// Finalize validates and finalizes the configuration
func (c *Config) Finalize() error {
	selected := 0
	for _, flag := range []bool{c.CommitOriginal, c.Continue, c.Abort} {
		if flag {
			selected++
		}
	}

	if selected > 1 {
		return errors.NewConfigError("flags", nil,
			errors.Wrap(errors.ErrInvalidConfiguration,
				"--commit-original, --continue and --abort are mutually exclusive"))
	}

	if selected == 1 && c.Revision != "" {
		return errors.NewConfigError("revision", c.Revision,
			errors.Wrap(errors.ErrInvalidConfiguration,
				"a revision argument cannot be combined with --commit-original, --continue or --abort"))
	}

	if selected == 0 && c.Revision == "" {
		return errors.NewConfigError("revision", nil,
			errors.Wrap(errors.ErrInvalidConfiguration,
				"a revision to edit is required (or one of --commit-original, --continue, --abort)"))
	}

	if c.RepoPath == "" {
		var err error
		c.RepoPath, err = os.Getwd()
		if err != nil {
			return errors.NewConfigError("repoPath", "",
				errors.Wrap(errors.ErrInvalidConfiguration,
					fmt.Sprintf("failed to get current directory: %v", err)))
		}
	}

	absRepoPath, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return errors.NewConfigError("repoPath", c.RepoPath,
			errors.Wrap(errors.ErrInvalidConfiguration,
				fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	c.RepoPath = absRepoPath

	if c.LogFile == "" {
		// Follow XDG Base Directory Specification
		logDir := os.Getenv("XDG_DATA_HOME")
		if logDir == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				logDir = filepath.Join(homeDir, ".local", "share")
			} else {
				logDir = os.TempDir()
			}
		}

		repoHash := fmt.Sprintf("%x", sha256.Sum256([]byte(c.RepoPath)))[:16]
		c.LogFile = filepath.Join(logDir, "gitsplit", "logs", fmt.Sprintf("gitsplit-%s.log", repoHash))
	}

	return nil
}
