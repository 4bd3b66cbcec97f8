package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// testLogger is a no-op Logger for tests that only need the interface.
type testLogger struct{}

func (testLogger) Info(string, ...interface{})          {}
func (testLogger) Warning(string, ...interface{})       {}
func (testLogger) Error(string, ...interface{})         {}
func (testLogger) InfoToUser(string, ...interface{})    {}
func (testLogger) WarningToUser(string, ...interface{}) {}
func (testLogger) Success(string, ...interface{})       {}
func (testLogger) StatusMessage(string, ...interface{}) {}
func (testLogger) Close() error                         { return nil }

// setupTestRepo creates a git repository with two commits and returns its
// path.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "user.email", "test@example.com")

	writeFile(t, dir, "first.txt", "first\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "First commit")

	writeFile(t, dir, "second.txt", "second\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Second commit")

	return dir
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return string(output)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
