// Package logging sets up crony's diagnostics on stderr.
package logging

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/its-lee/crony"
)

// LevelFor maps the number of -v flags onto a log level: errors only by
// default, then warnings, informational messages and debug output.
func LevelFor(verbosity int) log.Level {
	switch {
	case verbosity <= 0:
		return log.ErrorLevel
	case verbosity == 1:
		return log.WarnLevel
	case verbosity == 2:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

// New creates a logger writing to w at the level for verbosity.
func New(w io.Writer, verbosity int) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "crony",
		Level:           LevelFor(verbosity),
		ReportTimestamp: verbosity >= 3,
	})
}

// Adapter lets the analyser report through a charmbracelet logger.
type Adapter struct {
	logger *log.Logger
}

var _ crony.Logger = (*Adapter)(nil)

// NewAdapter wraps l. If l is nil, the package default logger is used.
func NewAdapter(l *log.Logger) *Adapter {
	if l == nil {
		l = log.Default()
	}
	return &Adapter{logger: l}
}

// Info logs skipped lines and similar diagnostics at info level.
func (a *Adapter) Info(msg string, keysAndValues ...any) {
	a.logger.Info(msg, keysAndValues...)
}

// Error logs err under the "err" key.
func (a *Adapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error(msg, append([]any{"err", err}, keysAndValues...)...)
}
