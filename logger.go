package crony

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"
)

// DateFormat is the layout crony uses when it writes a timestamp for people.
const DateFormat = "2006-01-02 15:04:05"

// DefaultLogger is used by an Analyser if none is specified. It reports
// errors only, on stderr.
var DefaultLogger = PrintfLogger(log.New(os.Stderr, "crony: ", log.LstdFlags))

// DiscardLogger can be used by callers to discard all log messages.
var DiscardLogger = PrintfLogger(log.New(io.Discard, "", 0))

// Logger is the interface used in this package for logging, so that any backend
// can be plugged in. It is a subset of the github.com/go-logr/logr interface.
type Logger interface {
	// Info logs diagnostics such as skipped crontab lines.
	Info(msg string, keysAndValues ...any)
	// Error logs an error condition.
	Error(err error, msg string, keysAndValues ...any)
}

// PrintfLogger wraps a Printf-based logger (such as the standard library "log")
// into an implementation of the Logger interface which logs errors only.
func PrintfLogger(l interface{ Printf(string, ...any) }) Logger {
	return printfLogger{l, false}
}

// VerbosePrintfLogger wraps a Printf-based logger (such as the standard library
// "log") into an implementation of the Logger interface which logs everything.
func VerbosePrintfLogger(l interface{ Printf(string, ...any) }) Logger {
	return printfLogger{l, true}
}

type printfLogger struct {
	logger  interface{ Printf(string, ...any) }
	logInfo bool
}

func (pl printfLogger) Info(msg string, keysAndValues ...any) {
	if pl.logInfo {
		pl.logger.Printf("%s", formatLine(msg, keysAndValues))
	}
}

func (pl printfLogger) Error(err error, msg string, keysAndValues ...any) {
	pl.logger.Printf("%s", formatLine(msg, append([]any{"error", err}, keysAndValues...)))
}

// formatLine renders msg followed by logfmt-like key=value pairs. Strings
// containing spaces are quoted; times use DateFormat.
func formatLine(msg string, keysAndValues []any) string {
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		sb.WriteString(", ")
		fmt.Fprintf(&sb, "%v=%s", keysAndValues[i], formatValue(keysAndValues[i+1]))
	}
	return sb.String()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case time.Time:
		return v.Format(DateFormat)
	case string:
		if strings.ContainsAny(v, " \t\"") {
			return fmt.Sprintf("%q", v)
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// SlogLogger adapts log/slog to the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a Logger that writes to the given slog.Logger.
// If l is nil, slog.Default() is used.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// Info logs at slog's debug level: skipped lines are diagnostics, not news.
func (s *SlogLogger) Info(msg string, keysAndValues ...any) {
	s.logger.Debug(msg, keysAndValues...)
}

// Error logs an error condition using slog.
func (s *SlogLogger) Error(err error, msg string, keysAndValues ...any) {
	s.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
