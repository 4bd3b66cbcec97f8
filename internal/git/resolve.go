package git

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bashhack/gitsplit/internal/errors"
)

// ResolveRevision validates a revision expression and normalizes it to the
// canonical abbreviated commit id. It is side-effect-free and idempotent:
// resolving an already-canonical id yields the same id.
func (r *Runner) ResolveRevision(ctx context.Context, revision string) (string, error) {
	output, ok := r.RunTolerant(ctx, "rev-parse", "--short", "--verify", revision+"^{commit}")
	if !ok {
		return "", errors.Wrapf(errors.ErrUnknownRevision, "cannot resolve %q", revision)
	}
	return output, nil
}

// ResolveParent resolves the first parent of the given revision. A
// revision without a parent is the root commit, which gitsplit does not
// handle.
func (r *Runner) ResolveParent(ctx context.Context, revision string) (string, error) {
	output, ok := r.RunTolerant(ctx, "rev-parse", "--short", "--verify", revision+"^")
	if !ok {
		return "", errors.Wrapf(errors.ErrRootCommit, "cannot resolve parent of %q", revision)
	}
	return output, nil
}

// CommonDir returns the repository's shared metadata directory. For a
// linked worktree this is the main repository's .git directory, so state
// placed there is observed by every worktree.
func (r *Runner) CommonDir(ctx context.Context) (string, error) {
	output, err := r.Run(ctx, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(r.repoPath, output)
	}
	return output, nil
}

// RebaseInProgress reports whether the repository has a rebase in
// progress, detected via the state directories git maintains for the
// interactive and apply-based rebase backends.
func (r *Runner) RebaseInProgress(ctx context.Context) bool {
	for _, state := range []string{"rebase-merge", "rebase-apply"} {
		path, ok := r.RunTolerant(ctx, "rev-parse", "--git-path", state)
		if !ok {
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.repoPath, path)
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
