// Package edit implements the edit-session state machine: starting an
// edit on a single commit deep in the history, committing split-out
// changes that reuse the original message, and finishing or aborting the
// underlying rebase.
package edit

import (
	"context"

	"github.com/bashhack/gitsplit/internal/errors"
	"github.com/bashhack/gitsplit/internal/git"
	"github.com/bashhack/gitsplit/internal/logger"
	"github.com/bashhack/gitsplit/internal/sequence"
	"github.com/bashhack/gitsplit/internal/session"
)

// Logger alias to logger.Logger
type Logger = logger.Logger

// Editor drives an edit session. Each CLI invocation constructs one,
// performs a single operation, and exits; all state between invocations
// lives in the repository (the rebase state directories owned by git and
// the session marker owned by the session store).
type Editor struct {
	runner *git.Runner
	store  session.Store
	logger Logger
}

// New creates an Editor for the repository served by runner, locating the
// session marker in the repository's shared metadata directory.
func New(ctx context.Context, runner *git.Runner, log Logger) (*Editor, error) {
	commonDir, err := runner.CommonDir(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to locate git common directory")
	}

	store := session.NewFileStore(commonDir, runner.ResolveRevision)
	return NewWithStore(runner, store, log), nil
}

// NewWithStore creates an Editor with a custom session store.
func NewWithStore(runner *git.Runner, store session.Store, log Logger) *Editor {
	return &Editor{
		runner: runner,
		store:  store,
		logger: log,
	}
}

// Start begins an edit session on revision. The revision and its parent
// are resolved before anything mutates, so a bad target never leaves a
// rebase or a marker behind. The rebase is started from the parent with a
// generated sequence editor that rewrites the target's instruction; in
// edit mode the target commit is then soft-undone so its changes sit
// staged, and the marker is persisted.
//
// With rewordOnly the rebase is continued to completion immediately and
// no marker is persisted. A failure between the rebase start and the
// continue therefore leaves no session to resume or abort through
// gitsplit; git's own rebase state is the only record. Known gap carried
// over from the original workflow design.
func (e *Editor) Start(ctx context.Context, revision string, rewordOnly bool) error {
	target, err := e.runner.ResolveRevision(ctx, revision)
	if err != nil {
		return err
	}

	parent, err := e.runner.ResolveParent(ctx, target)
	if err != nil {
		return err
	}

	action := sequence.ActionEdit
	if rewordOnly {
		action = sequence.ActionReword
	}
	instruction := sequence.Instruction{Revision: target, Action: action}

	e.logger.Info("starting rebase onto %s to %s %s", parent, action, target)
	if _, err := e.runner.RunEnv(ctx, []string{instruction.EditorEnv()}, "rebase", "-i", parent); err != nil {
		return err
	}

	if rewordOnly {
		if _, err := e.runner.Run(ctx, "rebase", "--continue"); err != nil {
			return err
		}
		e.logger.Success("Reworded %s", target)
		return nil
	}

	// The rebase stopped right after applying the target, so HEAD is the
	// target itself; soft reset returns its changes to the index.
	if _, err := e.runner.Run(ctx, "reset", "--soft", "HEAD^"); err != nil {
		return err
	}

	if err := e.store.Begin(ctx, target); err != nil {
		return err
	}

	e.logger.Success("Editing %s - its changes are staged and uncommitted", target)

	status, err := e.runner.Run(ctx, "status")
	if err != nil {
		return err
	}
	e.logger.StatusMessage("%s", status)

	return nil
}

// CommitOriginal commits the currently staged changes reusing the session
// revision's commit message. With nothing staged it reports and succeeds,
// since the user may prefer an ordinary commit with a fresh message. The
// session stays active either way, so the user can split a commit into
// several pieces with repeated calls.
func (e *Editor) CommitOriginal(ctx context.Context) error {
	if !e.runner.RebaseInProgress(ctx) {
		return errors.ErrNoRebaseInProgress
	}

	revision, err := e.store.Current(ctx)
	if err != nil {
		return err
	}

	if !e.hasStagedChanges(ctx) {
		e.logger.InfoToUser("Nothing staged to commit")
		return nil
	}

	// -C reuses only the message and authorship of the original commit;
	// the content is exactly what is staged.
	if _, err := e.runner.Run(ctx, "commit", "-C", revision); err != nil {
		return err
	}

	e.logger.Success("Committed staged changes with the message of %s", revision)
	return nil
}

// Finish resumes the rebase to completion, or cancels it when abort is
// true. The marker is cleared unconditionally afterward, even when the
// delegated continue/abort itself failed, so a broken session can never
// block starting the next one.
func (e *Editor) Finish(ctx context.Context, abort bool) error {
	if !e.runner.RebaseInProgress(ctx) {
		return errors.ErrNoRebaseInProgress
	}

	if _, err := e.store.Current(ctx); err != nil {
		return err
	}

	defer func() {
		if err := e.store.Clear(); err != nil {
			e.logger.Warning("Failed to clear session marker: %v", err)
		}
	}()

	verb := "--continue"
	if abort {
		verb = "--abort"
	}

	if _, err := e.runner.Run(ctx, "rebase", verb); err != nil {
		return err
	}

	if abort {
		e.logger.Success("Edit session aborted, previous state restored")
	} else {
		e.logger.Success("Edit session finished")
	}
	return nil
}

// hasStagedChanges reports whether the index differs from HEAD. The
// command exits non-zero exactly when there is a staged difference, so
// the tolerant runner mode is the signal, not a failure.
func (e *Editor) hasStagedChanges(ctx context.Context) bool {
	_, clean := e.runner.RunTolerant(ctx, "diff", "--cached", "--quiet")
	return !clean
}
