package git

import (
	"os/exec"
	"strings"
)

// MockCommandExecutor is a scripted CommandExecutor that records every
// command it is asked to run instead of executing it.
type MockCommandExecutor struct {
	Commands  []*exec.Cmd
	Output    string
	ExitCode  int
	Err       error
	ExecuteFn func(cmd *exec.Cmd) (string, int, error)
}

// NewMockCommandExecutor creates a mock that reports success with empty
// output for every command.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{}
}

// Execute implements the CommandExecutor interface
func (m *MockCommandExecutor) Execute(cmd *exec.Cmd) (string, int, error) {
	m.Commands = append(m.Commands, cmd)

	if m.ExecuteFn != nil {
		return m.ExecuteFn(cmd)
	}

	return m.Output, m.ExitCode, m.Err
}

// GitArgs returns the recorded git subcommand arguments (everything after
// the repository selector) for each executed command.
func (m *MockCommandExecutor) GitArgs() []string {
	var calls []string
	for _, cmd := range m.Commands {
		// Args are [git -C <path> <subcommand...>]
		if len(cmd.Args) > 3 {
			calls = append(calls, strings.Join(cmd.Args[3:], " "))
		}
	}
	return calls
}
