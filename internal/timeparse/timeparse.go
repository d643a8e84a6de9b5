// Package timeparse turns the --begin and --end arguments into times.
package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/its-lee/crony"
)

// ErrUnparsable is returned for text that is not a datetime in any accepted form.
var ErrUnparsable = errors.New("unparsable datetime")

// PreferredFormat is crony.DateFormat in strftime notation. It is tried
// before the date parser falls back to guessing the layout.
const PreferredFormat = "%Y-%m-%d %H:%M:%S"

// Parser parses datetimes relative to a clock, in a fixed location.
type Parser struct {
	clock    crony.Clock
	location *time.Location
}

// New returns a Parser reading "now" from clock and interpreting wall clock
// readings in loc. Nil arguments default to the real clock and time.Local.
func New(clock crony.Clock, loc *time.Location) *Parser {
	if clock == nil {
		clock = crony.RealClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Parser{clock: clock, location: loc}
}

// Parse accepts Go durations relative to now (-1h, +30m, 90m) and anything
// go-dateparser understands, which it tries in this order:
//
//	unix timestamps               1577836800
//	relative phrases              now, 3 days ago, in 2 hours
//	PreferredFormat               2020-01-01 00:00:00
//	other absolute forms          2020-01-01T00:00:00Z, 1 Jan 2020
func (p *Parser) Parse(s string) (time.Time, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrUnparsable)
	}
	now := p.clock.Now().In(p.location)

	if d, err := time.ParseDuration(text); err == nil {
		return now.Add(d), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime:     now,
		DefaultTimezone: p.location,
	}
	dt, err := dateparser.Parse(cfg, text, PreferredFormat)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, s)
	}
	return dt.Time.In(p.location), nil
}
