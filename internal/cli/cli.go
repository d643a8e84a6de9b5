// Package cli is crony's command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/its-lee/crony"
	"github.com/its-lee/crony/internal/source"
)

// Exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// App holds the process environment the commands run against.
type App struct {
	Version  string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Clock    crony.Clock
	Location *time.Location
	// Run executes external commands such as "crontab -l".
	Run source.Runner
	// IsTerminal reports whether a stream is an interactive terminal.
	IsTerminal func(stream any) bool
}

// NewApp returns an App bound to the real process.
func NewApp(version string) *App {
	return &App{
		Version:    version,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Clock:      crony.RealClock{},
		Location:   time.Local,
		IsTerminal: isTerminal,
	}
}

func (a *App) isTerminal(stream any) bool {
	if a.IsTerminal == nil {
		return isTerminal(stream)
	}
	return a.IsTerminal(stream)
}

// UsageError is a mistake in the invocation: bad flags, an unparsable
// datetime or an inverted window.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ExitCode maps the result of a command onto a process exit status.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Execute runs the crony command line with args and returns the exit status.
func Execute(app *App, args []string) int {
	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(app.Stderr, "crony: %v\n", err)
		if ExitCode(err) == ExitUsage {
			fmt.Fprintln(app.Stderr, "Run 'crony --help' for usage.")
		}
	}
	return ExitCode(err)
}

func isTerminal(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
