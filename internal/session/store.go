package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	gitsplitErrors "github.com/bashhack/gitsplit/internal/errors"
)

// MarkerFile is the fixed name of the marker file inside the repository's
// shared metadata directory.
const MarkerFile = "GITSPLIT_EDIT_HEAD"

// ResolveFunc validates a revision against the live repository and returns
// its canonical short identifier.
type ResolveFunc func(ctx context.Context, revision string) (string, error)

// Store is the contract for the edit-session marker: at most one session
// is active per repository at any time.
type Store interface {
	// Begin records revision as the active session, replacing any marker
	// left behind by a previous session.
	Begin(ctx context.Context, revision string) error

	// Current returns the active session's revision. It fails with
	// ErrNoSession when no marker exists and with ErrStaleSession when the
	// stored value no longer resolves to a live commit.
	Current(ctx context.Context) (string, error)

	// Clear removes the marker. Clearing an absent marker is a no-op.
	Clear() error
}

// FileStore is the durable Store implementation. The marker lives in the
// repository's common git directory rather than a per-worktree directory,
// so linked worktrees of the same repository share the session.
type FileStore struct {
	path    string
	resolve ResolveFunc
}

// NewFileStore creates a FileStore rooted at the given shared metadata
// directory. resolve is used by Current to re-validate stored values.
func NewFileStore(commonDir string, resolve ResolveFunc) *FileStore {
	return &FileStore{
		path:    filepath.Join(commonDir, MarkerFile),
		resolve: resolve,
	}
}

// Path returns the marker file location.
func (s *FileStore) Path() string {
	return s.path
}

// Begin writes revision as the sole content of the marker file. A stale
// marker from a crashed or abandoned session must not block a new one, so
// any existing file is removed first.
func (s *FileStore) Begin(ctx context.Context, revision string) error {
	if err := s.Clear(); err != nil {
		return err
	}

	if err := os.WriteFile(s.path, []byte(revision+"\n"), 0644); err != nil {
		return gitsplitErrors.NewSessionError(s.path,
			gitsplitErrors.Wrap(err, "failed to write session marker"))
	}
	return nil
}

// Current reads the marker file and re-validates its content as a live
// revision before returning it.
func (s *FileStore) Current(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", gitsplitErrors.NewSessionError(s.path, gitsplitErrors.ErrNoSession)
		}
		return "", gitsplitErrors.NewSessionError(s.path,
			gitsplitErrors.Wrap(err, "failed to read session marker"))
	}

	stored := strings.TrimSpace(string(data))
	if stored == "" {
		return "", gitsplitErrors.NewSessionError(s.path, gitsplitErrors.ErrStaleSession)
	}

	revision, err := s.resolve(ctx, stored)
	if err != nil {
		return "", gitsplitErrors.NewSessionError(s.path,
			gitsplitErrors.Wrapf(gitsplitErrors.ErrStaleSession, "marker names %q: %v", stored, err))
	}

	return revision, nil
}

// Clear removes the marker file if present.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return gitsplitErrors.NewSessionError(s.path,
			gitsplitErrors.Wrap(err, "failed to remove session marker"))
	}
	return nil
}

// MemoryStore is an in-memory Store for tests. It satisfies the same
// contract as FileStore without touching disk.
type MemoryStore struct {
	revision string
	active   bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Begin implements Store.Begin.
func (s *MemoryStore) Begin(ctx context.Context, revision string) error {
	s.revision = revision
	s.active = true
	return nil
}

// Current implements Store.Current.
func (s *MemoryStore) Current(ctx context.Context) (string, error) {
	if !s.active {
		return "", gitsplitErrors.NewSessionError("", gitsplitErrors.ErrNoSession)
	}
	return s.revision, nil
}

// Clear implements Store.Clear.
func (s *MemoryStore) Clear() error {
	s.revision = ""
	s.active = false
	return nil
}
