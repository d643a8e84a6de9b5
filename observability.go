package crony

// SkipReason tells why a crontab line is absent from an analysis result.
type SkipReason int

const (
	// SkipNotAJob is a blank line or an environment assignment.
	SkipNotAJob SkipReason = iota
	// SkipInvalid is a line whose schedule or command could not be parsed.
	SkipInvalid
	// SkipDisabled is a commented-out job while disabled jobs are excluded.
	SkipDisabled
	// SkipNoOccurrences is a job that does not fire within the window.
	SkipNoOccurrences
)

func (r SkipReason) String() string {
	switch r {
	case SkipNotAJob:
		return "not-a-job"
	case SkipInvalid:
		return "invalid"
	case SkipDisabled:
		return "disabled"
	case SkipNoOccurrences:
		return "no-occurrences"
	default:
		return "unknown"
	}
}

// AnalysisHooks provides callbacks for monitoring an analysis.
// All callbacks are optional; nil callbacks are safely ignored.
//
// Hooks are called synchronously from the goroutine ranging over the result
// of Analyser.Jobs.
//
// Example:
//
//	var skipped int
//	hooks := crony.AnalysisHooks{
//	    OnLineSkipped: func(job crony.Job, reason crony.SkipReason) {
//	        if reason == crony.SkipInvalid {
//	            skipped++
//	        }
//	    },
//	}
//	a := crony.NewAnalyser(crony.WithHooks(hooks))
type AnalysisHooks struct {
	// OnLineSkipped is called for every line left out of the result.
	OnLineSkipped func(job Job, reason SkipReason)

	// OnJobAnalysed is called once occurrences have been computed for a job,
	// including jobs that turn out to have none.
	OnJobAnalysed func(job Job, occurrences int)
}

// callOnLineSkipped safely calls the OnLineSkipped hook if configured.
func (h *AnalysisHooks) callOnLineSkipped(job Job, reason SkipReason) {
	if h != nil && h.OnLineSkipped != nil {
		h.OnLineSkipped(job, reason)
	}
}

// callOnJobAnalysed safely calls the OnJobAnalysed hook if configured.
func (h *AnalysisHooks) callOnJobAnalysed(job Job, occurrences int) {
	if h != nil && h.OnJobAnalysed != nil {
		h.OnJobAnalysed(job, occurrences)
	}
}
