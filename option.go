package crony

// Option represents a modification to the default behavior of an Analyser.
type Option func(*Analyser)

// WithIncludeDisabled controls whether jobs commented out with a leading '#'
// are analysed. They are excluded by default.
func WithIncludeDisabled(include bool) Option {
	return func(a *Analyser) {
		a.includeDisabled = include
	}
}

// WithParser overrides the parser used for interpreting job schedules.
func WithParser(p ScheduleParser) Option {
	return func(a *Analyser) {
		a.parser = p
	}
}

// WithLogger uses the provided logger for diagnostics about skipped lines.
func WithLogger(logger Logger) Option {
	return func(a *Analyser) {
		a.logger = logger
	}
}

// WithHooks configures callbacks observing which lines are skipped and how
// many occurrences each job has.
func WithHooks(hooks AnalysisHooks) Option {
	return func(a *Analyser) {
		a.hooks = &hooks
	}
}
