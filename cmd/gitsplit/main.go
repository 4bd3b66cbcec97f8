package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bashhack/gitsplit/internal/config"
	internalErrors "github.com/bashhack/gitsplit/internal/errors"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app := NewDefaultApp(config.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := app.Config.LoadFromEnvironment(); err != nil {
		_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}

	root := app.RootCommand()

	err := root.ExecuteContext(context.Background())
	_ = app.Close()
	if err != nil {
		_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: a failed git command
// propagates the child's own exit code verbatim, everything else is a
// plain failure.
func exitCode(err error) int {
	var gitErr *internalErrors.GitError
	if internalErrors.As(err, &gitErr) && gitErr.ExitCode != 0 {
		return gitErr.ExitCode
	}
	return 1
}
