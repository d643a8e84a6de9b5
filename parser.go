package crony

import (
	"fmt"
	"strings"
	"sync"
)

// ScheduleParser is an interface for schedule spec parsers that return a Schedule.
type ScheduleParser interface {
	Parse(spec string) (Schedule, error)
}

// Parser parses the schedule part of a crontab line: five fields or a
// descriptor such as @hourly.
type Parser struct {
	maxSearchYears int
	cache          *sync.Map // optional cache: spec string -> cacheEntry
}

// cacheEntry holds a cached parse result.
type cacheEntry struct {
	schedule Schedule
	err      error
}

// NewParser creates a Parser with default settings.
func NewParser() Parser {
	return Parser{}
}

// WithMaxSearchYears returns a new Parser whose schedules look at most years
// ahead in Next before giving up. Values <= 0 use DefaultMaxSearchYears.
func (p Parser) WithMaxSearchYears(years int) Parser {
	p.maxSearchYears = years
	return p
}

// WithCache returns a new Parser with caching enabled for parsed schedules.
// Crontabs often repeat the same schedule on many lines; repeated calls to
// Parse with the same spec string return the cached result.
//
// The cache is safe for concurrent use and grows unbounded.
func (p Parser) WithCache() Parser {
	p.cache = &sync.Map{}
	return p
}

// MaxSpecLength is the maximum allowed length for a schedule spec string.
const MaxSpecLength = 1024

// Parse returns a new crontab schedule representing the given spec.
// It returns an error wrapping ErrInvalidSchedule if the spec is not valid.
func (p Parser) Parse(spec string) (Schedule, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Load(spec); ok {
			if entry, ok := cached.(cacheEntry); ok {
				return entry.schedule, entry.err
			}
		}
	}

	schedule, err := p.parse(spec)

	if p.cache != nil {
		p.cache.Store(spec, cacheEntry{schedule: schedule, err: err})
	}

	return schedule, err
}

func (p Parser) parse(spec string) (Schedule, error) {
	spec = strings.TrimSpace(spec)
	if len(spec) == 0 {
		return nil, fmt.Errorf("%w: empty spec string", ErrInvalidSchedule)
	}
	if len(spec) > MaxSpecLength {
		return nil, fmt.Errorf("%w: spec too long: %d > %d", ErrInvalidSchedule, len(spec), MaxSpecLength)
	}

	// Handle named schedules (descriptors).
	if strings.HasPrefix(spec, "@") {
		return p.parseDescriptor(spec)
	}

	fields := strings.Fields(spec)
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: expected exactly 5 fields, found %d: %s", ErrInvalidSchedule, len(fields), fields)
	}

	var err error
	field := func(f Field) uint64 {
		if err != nil {
			return 0
		}
		var bits uint64
		bits, err = ParseField(f, fields[f])
		return bits
	}

	var (
		minute     = field(FieldMinute)
		hour       = field(FieldHour)
		dayofmonth = field(FieldDom)
		month      = field(FieldMonth)
		dayofweek  = field(FieldDow)
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	return &SpecSchedule{
		Minute:         minute,
		Hour:           hour,
		Dom:            dayofmonth,
		Month:          month,
		Dow:            dayofweek,
		MaxSearchYears: p.maxSearchYears,
	}, nil
}

// Descriptors lists the schedule macros understood by the parser, mapped to
// their canonical five-field form. @reboot has no five-field form.
var Descriptors = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 * * 0",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@hourly":   "0 * * * *",
	"@reboot":   "",
}

// IsDescriptor reports whether token is one of the recognized macros.
func IsDescriptor(token string) bool {
	_, ok := Descriptors[strings.ToLower(token)]
	return ok
}

// newDescriptorSchedule creates a SpecSchedule for descriptor-based schedules.
// Minute is always the first value (0). Hour, Dom, Month, Dow vary.
func (p Parser) newDescriptorSchedule(hour, dom, month, dow uint64) *SpecSchedule {
	return &SpecSchedule{
		Minute:         1 << minutes.min,
		Hour:           hour,
		Dom:            dom,
		Month:          month,
		Dow:            dow,
		MaxSearchYears: p.maxSearchYears,
	}
}

// parseDescriptor returns a predefined schedule for the expression, or error if none matches.
func (p Parser) parseDescriptor(descriptor string) (Schedule, error) {
	allDow := NormalizeDOW(all(dow))
	switch strings.ToLower(descriptor) {
	case "@yearly", "@annually":
		return p.newDescriptorSchedule(1<<hours.min, 1<<dom.min, 1<<months.min, allDow), nil
	case "@monthly":
		return p.newDescriptorSchedule(1<<hours.min, 1<<dom.min, all(months), allDow), nil
	case "@weekly":
		return p.newDescriptorSchedule(1<<hours.min, all(dom), all(months), 1<<dow.min), nil
	case "@daily", "@midnight":
		return p.newDescriptorSchedule(1<<hours.min, all(dom), all(months), allDow), nil
	case "@hourly":
		return p.newDescriptorSchedule(all(hours), all(dom), all(months), allDow), nil
	case "@reboot":
		return RebootSchedule{}, nil
	}
	return nil, fmt.Errorf("%w: unrecognized descriptor: %q", ErrInvalidSchedule, descriptor)
}

var standardParser = NewParser()

// ParseStandard returns a new crontab schedule representing the given
// standardSpec (https://en.wikipedia.org/wiki/Cron). It requires 5 entries
// representing: minute, hour, day of month, month and day of week, in that
// order, or one of the descriptors listed in Descriptors.
func ParseStandard(standardSpec string) (Schedule, error) {
	return standardParser.Parse(standardSpec)
}
