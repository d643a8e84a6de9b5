package crony

import "time"

// DefaultMaxSearchYears bounds how far ahead Next looks for an activation
// before giving up. Unsatisfiable schedules such as "0 0 30 2 *" need a limit.
const DefaultMaxSearchYears = 5

// SpecSchedule specifies a duty cycle (to the minute granularity), based on a
// traditional crontab specification. It is computed initially and stored as bit sets.
type SpecSchedule struct {
	Minute, Hour, Dom, Month, Dow uint64

	// MaxSearchYears limits Next. Zero means DefaultMaxSearchYears.
	MaxSearchYears int
}

// bounds provides a range of acceptable values (plus a map of name to value).
type bounds struct {
	min, max uint
	names    map[string]uint
}

// The bounds for each field.
var (
	minutes = bounds{0, 59, nil}
	hours   = bounds{0, 23, nil}
	dom     = bounds{1, 31, nil}
	months  = bounds{1, 12, map[string]uint{
		"jan": 1,
		"feb": 2,
		"mar": 3,
		"apr": 4,
		"may": 5,
		"jun": 6,
		"jul": 7,
		"aug": 8,
		"sep": 9,
		"oct": 10,
		"nov": 11,
		"dec": 12,
	}}
	// dow accepts 7 as Sunday on input; NormalizeDOW folds it onto 0.
	dow = bounds{0, 7, map[string]uint{
		"sun": 0,
		"mon": 1,
		"tue": 2,
		"wed": 3,
		"thu": 4,
		"fri": 5,
		"sat": 6,
	}}
)

const (
	// Set the top bit if a star was included in the expression.
	starBit = 1 << 63
)

// NormalizeDOW folds the Sunday=7 bit onto Sunday=0 and clears bit 7, so a
// day-of-week bit set only ever carries bits 0-6 (plus the star bit).
func NormalizeDOW(bits uint64) uint64 {
	if bits&(1<<7) != 0 {
		bits = bits&^(1<<7) | 1
	}
	return bits
}

// fieldMatches checks if a time component value matches the schedule bits.
func fieldMatches(value int, bits uint64) bool {
	// #nosec G115 -- time components are bounded and safe for uint
	return 1<<uint(value)&bits != 0
}

// floorMinute drops seconds and sub-seconds from the wall clock reading of t.
func floorMinute(t time.Time) time.Time {
	return t.Add(-time.Duration(t.Second())*time.Second - time.Duration(t.Nanosecond()))
}

// Match reports whether the minute containing t is an activation time.
// Fields are checked from the coarsest (month) to the finest (minute).
func (s *SpecSchedule) Match(t time.Time) bool {
	return fieldMatches(int(t.Month()), s.Month) &&
		dayMatches(s, t) &&
		fieldMatches(t.Hour(), s.Hour) &&
		fieldMatches(t.Minute(), s.Minute)
}

// Next returns the next time this schedule is activated, strictly greater than
// the given time and aligned to a whole minute. If no time can be found within
// MaxSearchYears, it returns the zero time.
func (s *SpecSchedule) Next(t time.Time) time.Time {
	years := s.MaxSearchYears
	if years <= 0 {
		years = DefaultMaxSearchYears
	}
	return s.nextBefore(t, t.AddDate(years, 0, 0))
}

// nextBefore is Next with an explicit upper limit: it gives up as soon as the
// candidate passes limit.
func (s *SpecSchedule) nextBefore(t, limit time.Time) time.Time {
	loc := t.Location()
	t = floorMinute(t).Add(time.Minute)

	for !t.After(limit) {
		prev := t

		// Find the first applicable month. Skipping resets the smaller fields.
		if !fieldMatches(int(t.Month()), s.Month) {
			t = time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, loc)
		} else if !dayMatches(s, t) {
			t = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
		} else if !fieldMatches(t.Hour(), s.Hour) {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, loc)
		} else if !fieldMatches(t.Minute(), s.Minute) {
			t = t.Add(time.Minute)
		} else {
			return t
		}

		// Wall clock arithmetic around a DST transition can land on or before
		// the previous candidate; fall back to a plain minute step.
		if !t.After(prev) {
			t = prev.Add(time.Minute)
		}
	}
	return time.Time{}
}

// dayMatches returns true if the schedule's day-of-week and day-of-month
// restrictions are satisfied by the given time.
func dayMatches(s *SpecSchedule, t time.Time) bool {
	// #nosec G115 -- Day() returns 1-31, Weekday() returns 0-6, safe for uint
	var (
		domMatch = 1<<uint(t.Day())&s.Dom > 0
		dowMatch = 1<<uint(t.Weekday())&s.Dow > 0
	)
	if s.Dom&starBit > 0 || s.Dow&starBit > 0 {
		return domMatch && dowMatch
	}
	return domMatch || dowMatch
}

// RebootSchedule is the schedule of an @reboot job. It has no periodic
// activations, so Next always returns the zero time.
type RebootSchedule struct{}

// Next always returns the zero time.
func (RebootSchedule) Next(time.Time) time.Time {
	return time.Time{}
}

// Match always reports false.
func (RebootSchedule) Match(time.Time) bool {
	return false
}
