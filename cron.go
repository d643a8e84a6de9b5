package crony

import (
	"errors"
	"iter"
	"time"
)

// Schedule describes a job's duty cycle.
type Schedule interface {
	// Next returns the next activation time, later than the given time and
	// aligned to a whole minute, or the zero time if there is none.
	Next(time.Time) time.Time
}

// JobOccurrences pairs a job with its activation times in one window.
type JobOccurrences struct {
	Job Job
	// Occurrences is strictly ascending and never empty.
	Occurrences []time.Time
}

// Analyser works out which jobs of a crontab fire within a window, and when.
// It is immutable once created and safe for concurrent use.
type Analyser struct {
	parser          ScheduleParser
	logger          Logger
	hooks           *AnalysisHooks
	includeDisabled bool
}

// NewAnalyser returns an Analyser configured by the given options.
//
// Available options:
//
//	WithIncludeDisabled - also analyse jobs commented out with '#'
//	WithParser          - custom schedule parser
//	WithLogger          - where skipped lines are reported
//	WithHooks           - callbacks for skipped and analysed lines
func NewAnalyser(opts ...Option) *Analyser {
	a := &Analyser{
		parser: standardParser,
		logger: DefaultLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = DiscardLogger
	}
	if a.parser == nil {
		a.parser = standardParser
	}
	return a
}

// Jobs returns a lazy sequence of the jobs in lines that fire at least once
// within [begin, end], each with its occurrences. Jobs appear in line order.
//
// Invalid lines are skipped and logged; disabled jobs are skipped unless the
// Analyser was created WithIncludeDisabled(true); jobs without any occurrence
// in the window are dropped. Breaking out of the range stops the analysis,
// so the remaining lines are never parsed.
//
// It returns ErrInvalidWindow, before looking at any line, if end is before begin.
func (a *Analyser) Jobs(lines []string, begin, end time.Time) (iter.Seq[JobOccurrences], error) {
	if end.Before(begin) {
		return nil, ErrInvalidWindow
	}
	return func(yield func(JobOccurrences) bool) {
		for i, line := range lines {
			job := parseLine(a.parser, line)
			job.LineNumber = i + 1

			jo, ok := a.analyse(job, begin, end)
			if !ok {
				continue
			}
			if !yield(jo) {
				return
			}
		}
	}, nil
}

// Analyse is Jobs with the result materialized.
func (a *Analyser) Analyse(lines []string, begin, end time.Time) ([]JobOccurrences, error) {
	seq, err := a.Jobs(lines, begin, end)
	if err != nil {
		return nil, err
	}
	var result []JobOccurrences
	for jo := range seq {
		result = append(result, jo)
	}
	return result, nil
}

// analyse applies the inclusion policy to one classified line and computes
// its occurrences. It reports false when the line is left out of the result.
func (a *Analyser) analyse(job Job, begin, end time.Time) (JobOccurrences, bool) {
	switch job.Kind {
	case LineInvalid:
		if errors.Is(job.Err, ErrNotAJob) {
			a.hooks.callOnLineSkipped(job, SkipNotAJob)
			return JobOccurrences{}, false
		}
		a.logger.Info("skipping invalid line", "line", job.LineNumber, "text", job.Line, "error", job.Err)
		a.hooks.callOnLineSkipped(job, SkipInvalid)
		return JobOccurrences{}, false
	case LineDisabled:
		if !a.includeDisabled {
			a.logger.Info("skipping disabled job", "line", job.LineNumber, "command", job.Command)
			a.hooks.callOnLineSkipped(job, SkipDisabled)
			return JobOccurrences{}, false
		}
	}

	// The window was validated by the caller, so the error is always nil.
	times, _ := Between(job.Schedule, begin, end)
	a.hooks.callOnJobAnalysed(job, len(times))
	if len(times) == 0 {
		a.hooks.callOnLineSkipped(job, SkipNoOccurrences)
		return JobOccurrences{}, false
	}
	return JobOccurrences{Job: job, Occurrences: times}, true
}
