package git

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/bashhack/gitsplit/internal/errors"
	"github.com/bashhack/gitsplit/internal/logger"
)

// Logger alias to logger.Logger
type Logger = logger.Logger

var (
	gitPathOnce sync.Once
	gitPath     string
	gitPathErr  error
)

// LookPath locates the git binary, resolving it at most once per process.
func LookPath() (string, error) {
	gitPathOnce.Do(func() {
		gitPath, gitPathErr = exec.LookPath("git")
	})
	if gitPathErr != nil {
		return "", errors.Wrap(gitPathErr, "git is not found in PATH")
	}
	return gitPath, nil
}

// Runner executes git commands against a single repository. All output is
// returned combined (stdout and stderr interleaved) with trailing
// whitespace trimmed. A non-zero exit yields a *errors.GitError carrying
// the child's exit code; callers that only need the exit status use
// RunTolerant instead.
type Runner struct {
	repoPath string
	logger   Logger
	executor CommandExecutor
}

// NewRunner creates a Runner for the repository at repoPath with default
// dependencies.
func NewRunner(repoPath string, log Logger) *Runner {
	return NewRunnerWithExecutor(repoPath, log, NewExecExecutor())
}

// NewRunnerWithExecutor creates a Runner with a custom executor.
func NewRunnerWithExecutor(repoPath string, log Logger, executor CommandExecutor) *Runner {
	return &Runner{
		repoPath: repoPath,
		logger:   log,
		executor: executor,
	}
}

// RepoPath returns the repository path the runner operates on.
func (r *Runner) RepoPath() string {
	return r.repoPath
}

// Run executes a git command and returns its trimmed combined output.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	return r.RunEnv(ctx, nil, args...)
}

// RunEnv executes a git command with additional environment entries
// appended to the current process environment.
func (r *Runner) RunEnv(ctx context.Context, env []string, args ...string) (string, error) {
	output, _, err := r.run(ctx, env, args...)
	return output, err
}

// RunTolerant executes a git command whose non-zero exit is an expected
// outcome rather than a failure. It returns the trimmed combined output
// and ok=false when the command exited non-zero.
func (r *Runner) RunTolerant(ctx context.Context, args ...string) (string, bool) {
	output, _, err := r.run(ctx, nil, args...)
	return output, err == nil
}

func (r *Runner) run(ctx context.Context, env []string, args ...string) (string, int, error) {
	binary, err := LookPath()
	if err != nil {
		return "", 1, err
	}

	fullArgs := append([]string{"-C", r.repoPath}, args...)
	cmd := exec.CommandContext(ctx, binary, fullArgs...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	r.logger.Info("running git %s", strings.Join(args, " "))

	output, exitCode, runErr := r.executor.Execute(cmd)
	output = strings.TrimRight(output, " \t\r\n")

	if runErr != nil {
		operation := args[0]
		wrapped := errors.Wrap(errors.ErrGitOperationFailed, runErr.Error())
		return output, exitCode, errors.NewGitError(operation, args[1:], wrapped, output, exitCode)
	}

	return output, 0, nil
}

// IsRepository checks if the given path is inside a git working tree.
func IsRepository(ctx context.Context, path string, log Logger) bool {
	r := NewRunner(path, log)
	_, ok := r.RunTolerant(ctx, "rev-parse", "--is-inside-work-tree")
	return ok
}
