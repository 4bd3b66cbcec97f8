package git

import (
	"bytes"
	"errors"
	"os/exec"
)

// CommandExecutor defines an interface for executing external commands
type CommandExecutor interface {
	// Execute runs a command and returns its combined output, the process
	// exit code, and an error when the command could not run or exited
	// non-zero. Output is captured even on failure.
	Execute(cmd *exec.Cmd) (output string, exitCode int, err error)
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements CommandExecutor.Execute. Stdout and stderr are
// captured interleaved into a single buffer so error output from git
// appears in context with the command's normal output.
func (e *ExecExecutor) Execute(cmd *exec.Cmd) (string, int, error) {
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	if err != nil {
		exitCode := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return combined.String(), exitCode, err
	}

	return combined.String(), 0, nil
}
