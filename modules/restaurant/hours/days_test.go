package hours

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveDays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Weekday
	}{
		{"wrap around", "Fri-Mon", []Weekday{Monday, Friday, Saturday, Sunday}},
		{"plain range", "Mon-Fri", []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}},
		{"single and range", "Mon, Wed-Fri", []Weekday{Monday, Wednesday, Thursday, Friday}},
		{"range and single", "Mon-Thu, Sun", []Weekday{Monday, Tuesday, Wednesday, Thursday, Sunday}},
		{"mixed case", "sAT-sun", []Weekday{Saturday, Sunday}},
		{"whole week", "Mon-Sun", []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}},
		{"single day range", "Wed-Wed", []Weekday{Wednesday}},
		{"spaced range", "Mon - Wed", []Weekday{Monday, Tuesday, Wednesday}},
		{"duplicates collapse", "Mon, Mon-Tue, Tue", []Weekday{Monday, Tuesday}},
		{"unknown ignored", "Mon, Holiday, Fri", []Weekday{Monday, Friday}},
		{"bad range ignored", "Mon-Xyz, Sat", []Weekday{Saturday}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			set, err := ResolveDays(test.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := set.Days(); !reflect.DeepEqual(got, test.expected) {
				t.Fatalf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestResolveDaysEmpty(t *testing.T) {
	for _, input := range []string{"", "Tues", "Weds, Thurs", "Mon-Tue-Wed", "garbage text"} {
		_, err := ResolveDays(input)
		if !errors.Is(err, ErrInvalidDayToken) {
			t.Fatalf("expected ErrInvalidDayToken for %q, got %v", input, err)
		}
	}
}

func TestDaySet(t *testing.T) {
	s := NewDaySet(Sunday, Monday, Sunday)
	if s.Len() != 2 || !s.Has(Monday) || !s.Has(Sunday) || s.Has(Tuesday) {
		t.Fatalf("unexpected set %s", s)
	}
	if s.String() != "{Mon,Sun}" {
		t.Fatalf("unexpected string %s", s)
	}
	if s.Add(Weekday(9)) != s {
		t.Fatal("invalid weekday must not change the set")
	}
}

func TestParseWeekday(t *testing.T) {
	tests := map[string]Weekday{
		"Mon":       Monday,
		"monday":    Monday,
		" FRIDAY ":  Friday,
		"sun":       Sunday,
		"Wednesday": Wednesday,
	}
	for input, expected := range tests {
		got, err := ParseWeekday(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if got != expected {
			t.Fatalf("expected %s for %q, got %s", expected, input, got)
		}
	}

	for _, input := range []string{"", "Sunday-ish", "Tues", "holiday"} {
		if _, err := ParseWeekday(input); !errors.Is(err, ErrInvalidDayToken) {
			t.Fatalf("expected ErrInvalidDayToken for %q, got %v", input, err)
		}
	}
}
