// Package source fetches the crontab to analyse: a file, a user's crontab or
// standard input.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"github.com/its-lee/crony"
)

// ErrNoCrontab is returned when the crontab command reports that a user has
// no crontab. Callers usually treat it as an empty crontab.
var ErrNoCrontab = errors.New("no crontab")

// Runner runs an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Options selects where the crontab comes from. File and User are mutually
// exclusive; with neither, Stdin is read unless it is a terminal, in which
// case the current user's crontab is used.
type Options struct {
	File  string
	User  string
	Stdin io.Reader
	// IsTerminal reports whether r is an interactive terminal. Defaults to a
	// check of the file descriptor behind r.
	IsTerminal func(r io.Reader) bool
	// Run defaults to running the command with os/exec.
	Run Runner
}

// Crontab is a fetched crontab.
type Crontab struct {
	// Name describes where the lines came from, e.g. "user:root".
	Name  string
	Lines []string
}

// Read fetches the crontab selected by opts.
func Read(ctx context.Context, opts Options) (*Crontab, error) {
	if opts.File != "" && opts.User != "" {
		return nil, errors.New("a file and a user cannot both be given")
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = isTerminal
	}
	if opts.Run == nil {
		opts.Run = runCommand
	}

	switch {
	case opts.File != "":
		return readFile(opts.File)
	case opts.User != "":
		return readUser(ctx, opts.Run, opts.User)
	case opts.Stdin != nil && !opts.IsTerminal(opts.Stdin):
		return readStream("stdin", opts.Stdin)
	default:
		return readUser(ctx, opts.Run, "")
	}
}

func readFile(path string) (*Crontab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening crontab: %w", err)
	}
	defer f.Close()
	return readStream("file:"+path, f)
}

func readStream(name string, r io.Reader) (*Crontab, error) {
	lines, err := crony.ReadLines(r)
	if err != nil {
		return nil, err
	}
	return &Crontab{Name: name, Lines: lines}, nil
}

// readUser runs "crontab -l", for the given user or, if empty, the current one.
func readUser(ctx context.Context, run Runner, user string) (*Crontab, error) {
	name := "user:current"
	args := []string{"-l"}
	if user != "" {
		name = "user:" + user
		args = []string{"-l", "-u", user}
	}

	out, err := run(ctx, "crontab", args...)
	if err != nil {
		if isNoCrontab(err) {
			return &Crontab{Name: name}, fmt.Errorf("%s: %w", name, ErrNoCrontab)
		}
		return nil, fmt.Errorf("listing crontab of %s: %w", name, err)
	}
	return readStream(name, bytes.NewReader(out))
}

// isNoCrontab recognizes the message cron implementations print for a user
// without a crontab, e.g. "no crontab for root".
func isNoCrontab(err error) bool {
	if errors.Is(err, ErrNoCrontab) {
		return true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return strings.Contains(strings.ToLower(string(exitErr.Stderr)), "no crontab")
	}
	return false
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
