package edit

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitsplitErrors "github.com/bashhack/gitsplit/internal/errors"
	"github.com/bashhack/gitsplit/internal/git"
	"github.com/bashhack/gitsplit/internal/session"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})          {}
func (noopLogger) Warning(string, ...interface{})       {}
func (noopLogger) Error(string, ...interface{})         {}
func (noopLogger) InfoToUser(string, ...interface{})    {}
func (noopLogger) WarningToUser(string, ...interface{}) {}
func (noopLogger) Success(string, ...interface{})       {}
func (noopLogger) StatusMessage(string, ...interface{}) {}
func (noopLogger) Close() error                         { return nil }

type response struct {
	output   string
	exitCode int
}

// scriptedExecutor resolves each git invocation against a canned response
// table keyed by the subcommand arguments, recording every call.
type scriptedExecutor struct {
	responses map[string]response
	calls     []string
	envs      [][]string
}

func newScriptedExecutor() *scriptedExecutor {
	return &scriptedExecutor{responses: make(map[string]response)}
}

func (s *scriptedExecutor) respond(args, output string) {
	s.responses[args] = response{output: output}
}

func (s *scriptedExecutor) fail(args, output string, exitCode int) {
	s.responses[args] = response{output: output, exitCode: exitCode}
}

func (s *scriptedExecutor) Execute(cmd *exec.Cmd) (string, int, error) {
	// Args are [git -C <path> <subcommand...>]
	key := strings.Join(cmd.Args[3:], " ")
	s.calls = append(s.calls, key)
	s.envs = append(s.envs, cmd.Env)

	r, ok := s.responses[key]
	if !ok {
		return "", 0, nil
	}
	if r.exitCode != 0 {
		return r.output, r.exitCode, fmt.Errorf("exit status %d", r.exitCode)
	}
	return r.output, 0, nil
}

// newTestEditor wires an Editor to a scripted executor and an in-memory
// session store.
func newTestEditor(mock *scriptedExecutor) (*Editor, *session.MemoryStore) {
	runner := git.NewRunnerWithExecutor("/repo", noopLogger{}, mock)
	store := session.NewMemoryStore()
	return NewWithStore(runner, store, noopLogger{}), store
}

// scriptRebaseInProgress makes the rebase-state probe report an active
// rebase by pointing it at an existing directory.
func scriptRebaseInProgress(t *testing.T, mock *scriptedExecutor, active bool) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rebase-merge")
	if active {
		require.NoError(t, os.MkdirAll(path, 0755))
	}
	mock.respond("rev-parse --git-path rebase-merge", path)
	mock.respond("rev-parse --git-path rebase-apply", filepath.Join(t.TempDir(), "rebase-apply"))
}

func TestStart(t *testing.T) {
	t.Parallel()

	mock := newScriptedExecutor()
	mock.respond("rev-parse --short --verify HEAD~2^{commit}", "bbbb222")
	mock.respond("rev-parse --short --verify bbbb222^", "aaaa111")
	mock.respond("status", "On branch main")
	editor, store := newTestEditor(mock)

	require.NoError(t, editor.Start(context.Background(), "HEAD~2", false))

	assert.Equal(t, []string{
		"rev-parse --short --verify HEAD~2^{commit}",
		"rev-parse --short --verify bbbb222^",
		"rebase -i aaaa111",
		"reset --soft HEAD^",
		"status",
	}, mock.calls)

	// The rebase invocation carries the generated sequence editor
	rebaseEnv := mock.envs[2]
	found := false
	for _, entry := range rebaseEnv {
		if strings.HasPrefix(entry, "GIT_SEQUENCE_EDITOR=") {
			assert.Contains(t, entry, "bbbb222")
			assert.Contains(t, entry, "edit")
			found = true
		}
	}
	assert.True(t, found, "rebase was not given a GIT_SEQUENCE_EDITOR override")

	rev, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bbbb222", rev)
}

func TestStartRewordOnly(t *testing.T) {
	t.Parallel()

	mock := newScriptedExecutor()
	mock.respond("rev-parse --short --verify bbbb222^{commit}", "bbbb222")
	mock.respond("rev-parse --short --verify bbbb222^", "aaaa111")
	editor, store := newTestEditor(mock)

	require.NoError(t, editor.Start(context.Background(), "bbbb222", true))

	assert.Equal(t, []string{
		"rev-parse --short --verify bbbb222^{commit}",
		"rev-parse --short --verify bbbb222^",
		"rebase -i aaaa111",
		"rebase --continue",
	}, mock.calls)

	// Reword is single-shot: no marker survives it
	_, err := store.Current(context.Background())
	assert.True(t, gitsplitErrors.Is(err, gitsplitErrors.ErrNoSession))
}

func TestStartValidationFailuresLeaveNoState(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		script   func(mock *scriptedExecutor)
		sentinel error
	}{
		"Unresolvable Revision": {
			script: func(mock *scriptedExecutor) {
				mock.fail("rev-parse --short --verify nope^{commit}", "fatal: Needed a single revision", 128)
			},
			sentinel: gitsplitErrors.ErrUnknownRevision,
		},
		"Root Commit": {
			script: func(mock *scriptedExecutor) {
				mock.respond("rev-parse --short --verify nope^{commit}", "aaaa111")
				mock.fail("rev-parse --short --verify aaaa111^", "fatal: Needed a single revision", 128)
			},
			sentinel: gitsplitErrors.ErrRootCommit,
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mock := newScriptedExecutor()
			test.script(mock)
			editor, store := newTestEditor(mock)

			err := editor.Start(context.Background(), "nope", false)
			assert.True(t, gitsplitErrors.Is(err, test.sentinel), "expected %v, got %v", test.sentinel, err)

			// Never a rebase, never a marker
			for _, call := range mock.calls {
				assert.NotContains(t, call, "rebase")
			}
			_, err = store.Current(context.Background())
			assert.True(t, gitsplitErrors.Is(err, gitsplitErrors.ErrNoSession))
		})
	}
}

func TestStartRebaseFailurePersistsNoMarker(t *testing.T) {
	t.Parallel()

	mock := newScriptedExecutor()
	mock.respond("rev-parse --short --verify bad^{commit}", "bbbb222")
	mock.respond("rev-parse --short --verify bbbb222^", "aaaa111")
	mock.fail("rebase -i aaaa111", "error: could not start rebase", 1)
	editor, store := newTestEditor(mock)

	err := editor.Start(context.Background(), "bad", false)
	require.Error(t, err)

	var gitErr *gitsplitErrors.GitError
	require.True(t, gitsplitErrors.As(err, &gitErr))
	assert.Equal(t, 1, gitErr.ExitCode)

	_, err = store.Current(context.Background())
	assert.True(t, gitsplitErrors.Is(err, gitsplitErrors.ErrNoSession))
}

func TestCommitOriginal(t *testing.T) {
	t.Parallel()

	mock := newScriptedExecutor()
	scriptRebaseInProgress(t, mock, true)
	mock.fail("diff --cached --quiet", "", 1) // staged changes present
	editor, store := newTestEditor(mock)
	require.NoError(t, store.Begin(context.Background(), "bbbb222"))

	require.NoError(t, editor.CommitOriginal(context.Background()))

	assert.Contains(t, mock.calls, "commit -C bbbb222")
}

func TestCommitOriginalNothingStaged(t *testing.T) {
	t.Parallel()

	mock := newScriptedExecutor()
	scriptRebaseInProgress(t, mock, true)
	mock.respond("diff --cached --quiet", "") // index matches HEAD
	editor, store := newTestEditor(mock)
	require.NoError(t, store.Begin(context.Background(), "bbbb222"))

	// Not an error: the user may commit with a custom message instead
	require.NoError(t, editor.CommitOriginal(context.Background()))

	for _, call := range mock.calls {
		assert.NotContains(t, call, "commit -C")
	}
}

func TestCommitOriginalPreconditions(t *testing.T) {
	t.Parallel()

	t.Run("No Rebase In Progress", func(t *testing.T) {
		t.Parallel()

		mock := newScriptedExecutor()
		scriptRebaseInProgress(t, mock, false)
		editor, _ := newTestEditor(mock)

		err := editor.CommitOriginal(context.Background())
		assert.True(t, gitsplitErrors.Is(err, gitsplitErrors.ErrNoRebaseInProgress))
	})

	t.Run("No Session Marker", func(t *testing.T) {
		t.Parallel()

		mock := newScriptedExecutor()
		scriptRebaseInProgress(t, mock, true)
		editor, _ := newTestEditor(mock)

		err := editor.CommitOriginal(context.Background())
		assert.True(t, gitsplitErrors.Is(err, gitsplitErrors.ErrNoSession))
	})
}

func TestFinish(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		abort    bool
		expected string
	}{
		"Continue": {abort: false, expected: "rebase --continue"},
		"Abort":    {abort: true, expected: "rebase --abort"},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mock := newScriptedExecutor()
			scriptRebaseInProgress(t, mock, true)
			editor, store := newTestEditor(mock)
			require.NoError(t, store.Begin(context.Background(), "bbbb222"))

			require.NoError(t, editor.Finish(context.Background(), test.abort))

			assert.Contains(t, mock.calls, test.expected)
			_, err := store.Current(context.Background())
			assert.True(t, gitsplitErrors.Is(err, gitsplitErrors.ErrNoSession))
		})
	}
}

func TestFinishClearsMarkerOnFailure(t *testing.T) {
	t.Parallel()

	mock := newScriptedExecutor()
	scriptRebaseInProgress(t, mock, true)
	mock.fail("rebase --continue", "error: you have unstaged changes", 1)
	editor, store := newTestEditor(mock)
	require.NoError(t, store.Begin(context.Background(), "bbbb222"))

	err := editor.Finish(context.Background(), false)
	require.Error(t, err)

	// The marker is cleared even though the continue failed
	_, err = store.Current(context.Background())
	assert.True(t, gitsplitErrors.Is(err, gitsplitErrors.ErrNoSession))
}

func TestFinishPreconditions(t *testing.T) {
	t.Parallel()

	mock := newScriptedExecutor()
	scriptRebaseInProgress(t, mock, false)
	editor, _ := newTestEditor(mock)

	err := editor.Finish(context.Background(), false)
	assert.True(t, gitsplitErrors.Is(err, gitsplitErrors.ErrNoRebaseInProgress))

	for _, call := range mock.calls {
		assert.NotContains(t, call, "rebase --continue")
	}
}
