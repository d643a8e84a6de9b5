package crony

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Field identifies one of the five time fields of a crontab schedule.
type Field int

// The five crontab fields, in the order they appear on a line.
const (
	FieldMinute Field = iota // 0-59
	FieldHour                // 0-23
	FieldDom                 // 1-31
	FieldMonth               // 1-12 or jan-dec
	FieldDow                 // 0-7 or sun-sat, 7 is Sunday
)

var fieldNames = [...]string{"minute", "hour", "day-of-month", "month", "day-of-week"}

func (f Field) String() string {
	if f < FieldMinute || f > FieldDow {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

func (f Field) bounds() bounds {
	switch f {
	case FieldMinute:
		return minutes
	case FieldHour:
		return hours
	case FieldDom:
		return dom
	case FieldMonth:
		return months
	default:
		return dow
	}
}

// Min returns the smallest legal value of the field.
func (f Field) Min() int { return int(f.bounds().min) }

// Max returns the largest legal value of the field. For FieldDow this is 7,
// which is accepted on input as an alias for Sunday.
func (f Field) Max() int { return int(f.bounds().max) }

// ParseField returns the bit set selected by expr for the given field. Bit i
// is set when value i is selected; the top bit records an unrestricted ("*")
// field. Day-of-week sets are normalized so that 7 never appears.
func ParseField(f Field, expr string) (uint64, error) {
	if f < FieldMinute || f > FieldDow {
		return 0, &FieldError{Field: f, Value: expr, Message: "unknown field"}
	}
	bits, err := getField(f, expr)
	if err != nil {
		return 0, err
	}
	if f == FieldDow {
		bits = NormalizeDOW(bits)
	}
	return bits, nil
}

// MatchField reports whether value is selected by expr for the given field.
// It returns an error wrapping ErrInvalidFieldSyntax if expr is malformed.
// Values outside the field's domain never match.
func MatchField(f Field, expr string, value int) (bool, error) {
	bits, err := ParseField(f, expr)
	if err != nil {
		return false, err
	}
	if value < f.Min() || value > f.Max() {
		return false, nil
	}
	if f == FieldDow && value == 7 {
		value = 0
	}
	return fieldMatches(value, bits), nil
}

// getField returns an Int with the bits set representing all of the times that
// the field represents or error parsing field value.  A "field" is a comma-separated
// list of "ranges".
func getField(f Field, field string) (uint64, error) {
	if field == "" {
		return 0, &FieldError{Field: f, Value: field, Message: "empty expression"}
	}
	var bits uint64
	for _, expr := range strings.Split(field, ",") {
		if expr == "" {
			return 0, &FieldError{Field: f, Value: field, Message: "empty list element"}
		}
		bit, err := getRange(f, expr)
		if err != nil {
			return 0, err
		}
		bits |= bit
	}
	return bits, nil
}

// getRange returns the bits indicated by the given expression:
//
//	number | number "-" number [ "/" number ] | "*" [ "/" number ]
//
// or error parsing range.
func getRange(f Field, expr string) (uint64, error) {
	r := f.bounds()
	rangeAndStep := strings.Split(expr, "/")
	lowAndHigh := strings.Split(rangeAndStep[0], "-")
	singleDigit := len(lowAndHigh) == 1

	fail := func(format string, args ...any) (uint64, error) {
		return 0, &FieldError{Field: f, Value: expr, Message: fmt.Sprintf(format, args...)}
	}

	var (
		start, end uint
		extra      uint64
		err        error
	)
	switch {
	case lowAndHigh[0] == "?" && f != FieldDom && f != FieldDow:
		return fail("'?' is only allowed in day of month and day of week")
	case lowAndHigh[0] == "*" || lowAndHigh[0] == "?":
		if !singleDigit {
			return fail("wildcard cannot start a range")
		}
		start, end, extra = r.min, r.max, starBit
	case len(lowAndHigh) > 2:
		return fail("too many hyphens")
	default:
		if start, err = parseIntOrName(lowAndHigh[0], r.names); err != nil {
			return fail("%v", err)
		}
		end = start
		if !singleDigit {
			if end, err = parseIntOrName(lowAndHigh[1], r.names); err != nil {
				return fail("%v", err)
			}
		}
	}

	var step uint = 1
	switch len(rangeAndStep) {
	case 1:
	case 2:
		if step, err = parseUint(rangeAndStep[1]); err != nil {
			return fail("bad step: %v", err)
		}
		// "N/step" means "N-max/step".
		if singleDigit && extra == 0 {
			end = r.max
		}
		if step > 1 {
			extra = 0
		}
	default:
		return fail("too many slashes")
	}

	if start < r.min {
		return fail("beginning of range (%d) below minimum (%d)", start, r.min)
	}
	if end > r.max {
		return fail("end of range (%d) above maximum (%d)", end, r.max)
	}
	if start > end {
		return fail("beginning of range (%d) beyond end of range (%d)", start, end)
	}
	if step == 0 {
		return fail("step of range must be a positive number")
	}

	return getBits(start, end, step) | extra, nil
}

// parseIntOrName returns the (possibly-named) integer contained in expr.
func parseIntOrName(expr string, names map[string]uint) (uint, error) {
	if names != nil {
		if namedInt, ok := names[strings.ToLower(expr)]; ok {
			return namedInt, nil
		}
	}
	return parseUint(expr)
}

// parseUint accepts only plain decimal digits: no sign, no spaces.
func parseUint(expr string) (uint, error) {
	if expr == "" {
		return 0, errors.New("missing number")
	}
	var n uint
	for _, c := range expr {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("failed to parse int from %q", expr)
		}
		n = n*10 + uint(c-'0')
		if n > math.MaxUint16 {
			return 0, fmt.Errorf("number too large: %q", expr)
		}
	}
	return n, nil
}

// getBits sets all bits in the range [low, high], modulo the given step size.
func getBits(low, high, step uint) uint64 {
	var bits uint64

	// If step is 1, use shifts.
	if step == 1 {
		return ^(math.MaxUint64 << (high + 1)) & (math.MaxUint64 << low)
	}

	// Else, use a simple loop.
	for i := low; i <= high; i += step {
		bits |= 1 << i
	}
	return bits
}

// all returns all bits within the given bounds (plus the star bit).
func all(r bounds) uint64 {
	return getBits(r.min, r.max, 1) | starBit
}
