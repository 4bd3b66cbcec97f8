// Package session persists the edit-session marker for the gitsplit
// application.
//
// The marker is a single plain-text file whose sole content is the
// canonical short identifier of the revision currently being edited. Its
// existence is the source of truth for "an edit session is active": it is
// created when a session starts, read by the commit-original step to know
// which revision's message to reuse, and removed when the session ends,
// whether it completed or was aborted.
//
// # Core Components
//
// - Store: the read/write/delete contract for the marker
// - FileStore: the durable implementation backing the real tool
// - MemoryStore: an in-memory implementation for tests
//
// # Features
//
// - Marker stored under the repository's shared metadata directory, so
//   every worktree of the same repository observes the same session
// - Begin unconditionally replaces a stale marker from a crashed or
//   abandoned session
// - Current re-validates the stored revision against the live repository,
//   guarding against files left behind after out-of-band history edits
//
// # Usage
//
// Basic usage pattern:
//
//	store := session.NewFileStore(dir, resolve)
//
//	if err := store.Begin(ctx, rev); err != nil {
//	    // Handle error
//	}
//
//	rev, err := store.Current(ctx)
//	if errors.Is(err, errors.ErrNoSession) {
//	    // No session in progress
//	}
//
//	defer store.Clear()
package session
