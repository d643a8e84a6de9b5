package crony

import "errors"

var (
	// ErrInvalidFieldSyntax is wrapped by every error describing a single
	// malformed field expression.
	ErrInvalidFieldSyntax = errors.New("invalid field syntax")

	// ErrInvalidSchedule is returned for a schedule with the wrong number of
	// fields, an invalid field, an unknown descriptor or a missing command.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrNotAJob marks crontab lines that carry no job at all: blank lines and
	// environment assignments.
	ErrNotAJob = errors.New("not a job line")

	// ErrInvalidWindow is returned when the end of a window precedes its begin.
	ErrInvalidWindow = errors.New("invalid window: end precedes begin")
)

// FieldError represents a malformed expression in one field of a schedule.
type FieldError struct {
	Field   Field
	Value   string // the offending expression
	Message string
}

func (e *FieldError) Error() string {
	return e.Message + " in " + e.Field.String() + ": " + e.Value
}

// Unwrap allows errors.Is(err, ErrInvalidFieldSyntax).
func (e *FieldError) Unwrap() error {
	return ErrInvalidFieldSyntax
}
