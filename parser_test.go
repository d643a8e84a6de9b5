package crony

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestErrors(t *testing.T) {
	invalidSpecs := []string{
		"",
		"   ",
		"xyz",
		"60 0 * * *",
		"0 60 * * *",
		"0 0 * * XYZ",
		"* * * *",
		"* * * * * *",
		"0 0 0 * *",
		"0 0 32 * *",
		"0 0 * 0 *",
		"0 0 * * 8",
		"*/0 * * * *",
		"5-1 * * * *",
		"1-2-3 * * * *",
		"*-5 * * * *",
		"1/2/3 * * * *",
		"-1 * * * *",
		"+1 * * * *",
		"1,,2 * * * *",
		",1 * * * *",
		"@fortnightly",
		"@every 5m",
		"@",
	}
	for _, spec := range invalidSpecs {
		_, err := ParseStandard(spec)
		if err == nil {
			t.Errorf("expected an error parsing: %q", spec)
			continue
		}
		if !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("%q: error %v does not wrap ErrInvalidSchedule", spec, err)
		}
	}
}

func TestFieldErrorsAreWrapped(t *testing.T) {
	_, err := ParseStandard("0 0 * 13 *")
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected a FieldError, got %v", err)
	}
	if fe.Field != FieldMonth || fe.Value != "13" {
		t.Errorf("unexpected FieldError %+v", fe)
	}
	if !strings.Contains(err.Error(), "end of range (13) above maximum (12) in month: 13") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestSpecTooLong(t *testing.T) {
	long := strings.Repeat("1,", MaxSpecLength) + "1 * * * *"
	_, err := ParseStandard(long)
	if err == nil || !strings.Contains(err.Error(), "spec too long") {
		t.Errorf("expected spec too long, got %v", err)
	}
}

func TestDescriptorsMatchFiveFieldForms(t *testing.T) {
	for descriptor, canonical := range Descriptors {
		if canonical == "" {
			continue
		}
		t.Run(descriptor, func(t *testing.T) {
			got, err := ParseStandard(descriptor)
			if err != nil {
				t.Fatal(err)
			}
			want, err := ParseStandard(canonical)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("%s = %+v, want %+v", descriptor, got, want)
			}
		})
	}
}

func TestIsDescriptor(t *testing.T) {
	for _, token := range []string{"@daily", "@HOURLY", "@reboot", "@Annually"} {
		if !IsDescriptor(token) {
			t.Errorf("IsDescriptor(%q) = false", token)
		}
	}
	for _, token := range []string{"daily", "@every", "*", ""} {
		if IsDescriptor(token) {
			t.Errorf("IsDescriptor(%q) = true", token)
		}
	}
}

func TestParseNormalizesSunday(t *testing.T) {
	seven, err := ParseStandard("0 0 * * 7")
	if err != nil {
		t.Fatal(err)
	}
	zero, err := ParseStandard("0 0 * * 0")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seven, zero) {
		t.Errorf("7 and 0 differ: %+v vs %+v", seven, zero)
	}
}

func TestParseNamesAreCaseInsensitive(t *testing.T) {
	a, err := ParseStandard("0 0 * jan-MAR mon-FRI")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseStandard("0 0 * 1-3 1-5")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("named and numeric forms differ: %+v vs %+v", a, b)
	}
}

func TestParserCache(t *testing.T) {
	p := NewParser().WithCache()

	first, err := p.Parse("*/5 * * * *")
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Parse("*/5 * * * *")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the cached schedule to be returned")
	}

	_, err1 := p.Parse("bogus")
	_, err2 := p.Parse("bogus")
	if err1 == nil || err1 != err2 {
		t.Errorf("expected the cached error, got %v and %v", err1, err2)
	}

	// Without a cache every call parses afresh.
	a, _ := ParseStandard("*/5 * * * *")
	b, _ := ParseStandard("*/5 * * * *")
	if a == b {
		t.Error("uncached parser returned the same pointer twice")
	}
}

func TestParserWithMaxSearchYears(t *testing.T) {
	sched, err := NewParser().WithMaxSearchYears(3).Parse("0 0 * * *")
	if err != nil {
		t.Fatal(err)
	}
	if got := sched.(*SpecSchedule).MaxSearchYears; got != 3 {
		t.Errorf("MaxSearchYears = %d, want 3", got)
	}
	sched, err = NewParser().WithMaxSearchYears(3).Parse("@daily")
	if err != nil {
		t.Fatal(err)
	}
	if got := sched.(*SpecSchedule).MaxSearchYears; got != 3 {
		t.Errorf("descriptor MaxSearchYears = %d, want 3", got)
	}
}
