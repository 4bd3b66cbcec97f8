package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors that can be used with errors.Is() for error type checking
var (
	// ErrNotGitRepository indicates the target path is not a git repository
	ErrNotGitRepository = errors.New("not a git repository")

	// ErrGitOperationFailed indicates a git command returned an error
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrUnknownRevision indicates a revision expression did not resolve to a commit
	ErrUnknownRevision = errors.New("unknown revision")

	// ErrRootCommit indicates the target revision has no parent to rebase from
	ErrRootCommit = errors.New("revision has no parent (editing the root commit is not supported)")

	// ErrNoSession indicates no edit session is in progress
	ErrNoSession = errors.New("no edit session in progress")

	// ErrStaleSession indicates the stored session revision is no longer
	// recognized by the repository
	ErrStaleSession = errors.New("stored session revision no longer exists")

	// ErrNoRebaseInProgress indicates an operation that resumes a session was
	// invoked without a rebase in progress
	ErrNoRebaseInProgress = errors.New("no rebase in progress")

	// ErrInvalidConfiguration indicates an invalid or conflicting user configuration
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// New creates a new error with the given message.
// This is a convenience function that wraps errors.New.
func New(message string) error {
	return errors.New(message)
}

// Errorf creates a new formatted error.
// This is a convenience function that wraps fmt.Errorf.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Wrap wraps an error with a message for better context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message for better context.
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether target is in err's chain.
// This is a convenience function that wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience function that wraps errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GitError represents an error that occurred during a git operation.
// It captures the command details, the combined output, and the child
// process exit code so callers can propagate it verbatim.
type GitError struct {
	Operation string
	Args      []string
	Output    string
	ExitCode  int
	Err       error
}

// Error implements the error interface with a detailed, user-friendly error message.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError creates a new GitError with the given parameters.
func NewGitError(operation string, args []string, err error, output string, exitCode int) *GitError {
	return &GitError{
		Operation: operation,
		Args:      args,
		Output:    output,
		ExitCode:  exitCode,
		Err:       err,
	}
}

// SessionError represents an error that occurred when interacting with the
// edit-session marker file.
type SessionError struct {
	Path string
	Err  error
}

// Error implements the error interface with details about the marker file.
func (e *SessionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("session error with marker %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("session error: %v", e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given parameters.
func NewSessionError(path string, err error) *SessionError {
	return &SessionError{
		Path: path,
		Err:  err,
	}
}

// ConfigError represents an error in the application configuration.
// It includes the parameter name, its value if available, and the underlying error.
type ConfigError struct {
	Parameter string
	Value     interface{}
	Err       error
}

// Error implements the error interface with details about the invalid configuration.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error for %s = %v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %v", e.Parameter, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError with the given parameters.
func NewConfigError(parameter string, value interface{}, err error) *ConfigError {
	return &ConfigError{
		Parameter: parameter,
		Value:     value,
		Err:       err,
	}
}
