package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bashhack/gitsplit/internal/config"
	"github.com/bashhack/gitsplit/internal/edit"
	internalErrors "github.com/bashhack/gitsplit/internal/errors"
	"github.com/bashhack/gitsplit/internal/git"
	"github.com/bashhack/gitsplit/internal/logger"
)

// SessionEditor drives the edit-session operations
type SessionEditor interface {
	Start(ctx context.Context, revision string, rewordOnly bool) error
	CommitOriginal(ctx context.Context) error
	Finish(ctx context.Context, abort bool) error
}

// Logger alias to logger.Logger
type Logger = logger.Logger

// AppOptions contains app configuration and dependencies
type AppOptions struct {
	// Required
	Config *config.Config

	// Optional components
	Logger Logger
	Editor SessionEditor

	// I/O dependencies
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	LookGit      func() (string, error)
	IsRepository func(ctx context.Context, path string, log Logger) bool
}

// App is the main gitsplit application
type App struct {
	Config *config.Config
	Logger Logger
	Editor SessionEditor

	// I/O streams
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	lookGit      func() (string, error)
	isRepository func(ctx context.Context, path string, log Logger) bool
}

// NewDefaultApp creates an App with standard dependencies
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	cfg := config.New()
	cfg.VersionInfo = versionInfo

	return NewApp(AppOptions{
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
}

// NewApp creates an App with custom dependencies
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:       opts.Config,
		Logger:       opts.Logger,
		Editor:       opts.Editor,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		lookGit:      opts.LookGit,
		isRepository: opts.IsRepository,
	}

	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.lookGit == nil {
		app.lookGit = git.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}

	return app
}

// RootCommand builds the cobra command wiring the CLI surface to the app.
// The positional argument names the revision to start editing; the three
// flags select the resume operations and are mutually exclusive.
func (a *App) RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitsplit [flags] [revision]",
		Short: "Split or amend a single commit deep in the history",
		Long: `gitsplit drives an interactive rebase without the interactive part.

Point it at a commit and it stops the rebase right there with that
commit's changes staged and uncommitted. Commit them in as many pieces
as you like (gitsplit -o reuses the original message), then finish with
gitsplit -c or back out with gitsplit -a.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.Config.Revision = args[0]
			}
			return a.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&a.Config.CommitOriginal, "commit-original", "o", false,
		"Commit staged changes reusing the session revision's message")
	cmd.Flags().BoolVarP(&a.Config.Continue, "continue", "c", false,
		"Resume and finish the rebase, clearing the session")
	cmd.Flags().BoolVarP(&a.Config.Abort, "abort", "a", false,
		"Cancel the rebase, clearing the session")
	cmd.Flags().StringVar(&a.Config.RepoPath, "repo", a.Config.RepoPath,
		"Path to repository (default: current directory)")
	cmd.Flags().BoolVarP(&a.Config.Quiet, "quiet", "q", a.Config.Quiet,
		"Hide informational messages")
	cmd.Flags().BoolVar(&a.Config.Debug, "debug", a.Config.Debug,
		"Enable debug logging")
	cmd.Flags().StringVar(&a.Config.LogFile, "log-file", a.Config.LogFile,
		"Path to log file (default: ~/.local/share/gitsplit/logs/gitsplit-{repo-hash}.log)")

	cmd.Version = a.Config.VersionInfo.Version
	cmd.SetVersionTemplate(fmt.Sprintf("gitsplit %s (%s) built on %s\n",
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date))

	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)

	return cmd
}

// Initialize sets up components not provided during construction
func (a *App) Initialize(ctx context.Context) error {
	if err := a.Config.Finalize(); err != nil {
		if internalErrors.Is(err, internalErrors.ErrInvalidConfiguration) {
			return err
		}
		return internalErrors.Wrap(internalErrors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.New(a.Config.Debug, a.Config.LogFile, !a.Config.Quiet)
	}

	if a.Editor == nil {
		if _, err := a.lookGit(); err != nil {
			return err
		}

		if !a.isRepository(ctx, a.Config.RepoPath, a.Logger) {
			return internalErrors.ErrNotGitRepository
		}
		a.Logger.Info("git repository verified at %s", a.Config.RepoPath)

		runner := git.NewRunner(a.Config.RepoPath, a.Logger)
		editor, err := edit.New(ctx, runner, a.Logger)
		if err != nil {
			return err
		}
		a.Editor = editor
	}

	return nil
}

// Run executes the single operation selected by the configuration
func (a *App) Run(ctx context.Context) error {
	if err := a.Initialize(ctx); err != nil {
		return err
	}

	switch a.Config.Mode() {
	case config.ModeCommitOriginal:
		return a.Editor.CommitOriginal(ctx)
	case config.ModeContinue:
		return a.Editor.Finish(ctx, false)
	case config.ModeAbort:
		return a.Editor.Finish(ctx, true)
	default:
		return a.Editor.Start(ctx, a.Config.Revision, false)
	}
}

// Close releases resources held by the App
func (a *App) Close() error {
	if a.Logger != nil {
		return a.Logger.Close()
	}
	return nil
}
