package crony

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// LineKind classifies one crontab line.
type LineKind int

const (
	// LineInvalid is a line that does not hold a parsable schedule and command.
	LineInvalid LineKind = iota
	// LineEnabled is an active job.
	LineEnabled
	// LineDisabled is a job that has been commented out with a leading '#'.
	LineDisabled
)

func (k LineKind) String() string {
	switch k {
	case LineEnabled:
		return "enabled"
	case LineDisabled:
		return "disabled"
	default:
		return "invalid"
	}
}

// Job is one line of a crontab. Jobs are created by ParseLine and never
// modified afterwards.
type Job struct {
	// Line is the raw line text, without the trailing newline.
	Line string
	// LineNumber is the 1-based position of the line in its crontab, or 0 if
	// the line was parsed on its own.
	LineNumber int
	Kind       LineKind
	// Spec is the schedule part of the line, e.g. "*/5 * * * *" or "@daily".
	Spec    string
	Command string
	// Schedule is nil unless Kind is LineEnabled or LineDisabled.
	Schedule Schedule
	// Err holds the reason a LineInvalid line was rejected.
	Err error
}

// Valid reports whether the line parsed as a job, enabled or not.
func (j Job) Valid() bool {
	return j.Kind != LineInvalid
}

// ParseLine classifies a single crontab line using the standard parser.
//
// A line starting with '#' is stripped of it and parsed again; it is a
// disabled job if and only if the remainder is a valid schedule and command,
// and invalid otherwise.
func ParseLine(line string) Job {
	return parseLine(standardParser, line)
}

func parseLine(p ScheduleParser, line string) Job {
	line = strings.TrimRight(line, "\r\n")
	job := Job{Line: line}

	text := strings.TrimSpace(line)
	kind := LineEnabled
	if strings.HasPrefix(text, "#") {
		kind = LineDisabled
		text = strings.TrimSpace(strings.TrimPrefix(text, "#"))
	}

	if text == "" || isEnvAssignment(text) {
		job.Err = ErrNotAJob
		return job
	}

	spec, command, err := splitScheduleAndCommand(text)
	if err != nil {
		job.Err = err
		return job
	}

	schedule, err := p.Parse(spec)
	if err != nil {
		job.Err = err
		return job
	}

	job.Kind = kind
	job.Spec = spec
	job.Command = command
	job.Schedule = schedule
	return job
}

// splitScheduleAndCommand separates the schedule tokens from the command,
// keeping the command's own spacing intact.
func splitScheduleAndCommand(text string) (spec, command string, err error) {
	n := 5
	if strings.HasPrefix(text, "@") {
		n = 1
	}

	rest := text
	tokens := make([]string, 0, n)
	for len(tokens) < n {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		tokens = append(tokens, rest[:end])
		rest = rest[end:]
	}

	if len(tokens) < n {
		return "", "", fmt.Errorf("%w: expected %d schedule fields and a command, found %d fields",
			ErrInvalidSchedule, n, len(tokens))
	}
	command = strings.TrimSpace(rest)
	if command == "" {
		return "", "", fmt.Errorf("%w: missing command", ErrInvalidSchedule)
	}
	return strings.Join(tokens, " "), command, nil
}

// isEnvAssignment reports whether text looks like NAME=value. Schedule tokens
// never contain '='.
func isEnvAssignment(text string) bool {
	first, _, _ := strings.Cut(text, " ")
	first, _, _ = strings.Cut(first, "\t")
	return strings.Contains(first, "=")
}

// ParseCrontab classifies every line of a crontab. Line numbers start at 1.
func ParseCrontab(lines []string) []Job {
	jobs := make([]Job, 0, len(lines))
	for i, line := range lines {
		job := parseLine(standardParser, line)
		job.LineNumber = i + 1
		jobs = append(jobs, job)
	}
	return jobs
}

// ReadLines splits crontab text into lines. It accepts both "\n" and "\r\n"
// line endings and tolerates a missing final newline.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading crontab: %w", err)
	}
	return lines, nil
}
