package crony

import (
	"iter"
	"time"
)

// Occurrences returns the activation times of schedule within the closed
// window [begin, end], in strictly ascending order.
//
// begin is floored to its minute, so a job firing at 10:00 is reported for a
// window beginning at 10:00:30. An activation exactly equal to end is included.
//
// The returned sequence is lazy and restartable: each range over it starts
// from scratch and yields the same values. Callers that need several passes
// over a large window should materialize it once with Between.
//
// It returns ErrInvalidWindow if end is before begin.
//
// Example:
//
//	schedule, _ := crony.ParseStandard("*/15 * * * *")
//	seq, err := crony.Occurrences(schedule, begin, end)
//	if err != nil {
//	    return err
//	}
//	for t := range seq {
//	    fmt.Println(t)
//	}
func Occurrences(schedule Schedule, begin, end time.Time) (iter.Seq[time.Time], error) {
	if end.Before(begin) {
		return nil, ErrInvalidWindow
	}
	return func(yield func(time.Time) bool) {
		if schedule == nil {
			return
		}
		// Start one minute early so that floor(begin) is itself a candidate.
		current := floorMinute(begin).Add(-time.Minute)
		for {
			next := nextWithin(schedule, current, end)
			// A schedule must make progress; stop rather than loop or repeat.
			if next.IsZero() || next.After(end) || !next.After(current) {
				return
			}
			if !yield(next) {
				return
			}
			current = next
		}
	}, nil
}

// Between returns all activation times of schedule in [begin, end] as a slice.
// It returns ErrInvalidWindow if end is before begin.
func Between(schedule Schedule, begin, end time.Time) ([]time.Time, error) {
	seq, err := Occurrences(schedule, begin, end)
	if err != nil {
		return nil, err
	}
	var times []time.Time
	for t := range seq {
		times = append(times, t)
	}
	return times, nil
}

// Matches reports whether the minute containing t is an activation time of
// schedule. Returns false if schedule is nil.
//
// Example:
//
//	schedule, _ := crony.ParseStandard("0 9 * * MON-FRI")
//	if crony.Matches(schedule, time.Now()) {
//	    fmt.Println("Now is a scheduled execution time!")
//	}
func Matches(schedule Schedule, t time.Time) bool {
	if schedule == nil {
		return false
	}
	if m, ok := schedule.(interface{ Match(time.Time) bool }); ok {
		return m.Match(t)
	}
	minute := floorMinute(t)
	return schedule.Next(minute.Add(-time.Minute)).Equal(minute)
}

// nextWithin asks schedule for its activation after t, letting a SpecSchedule
// stop its search at end instead of scanning years ahead.
func nextWithin(schedule Schedule, t, end time.Time) time.Time {
	if s, ok := schedule.(*SpecSchedule); ok {
		return s.nextBefore(t, end)
	}
	return schedule.Next(t)
}
