package hours

import (
	"errors"
	"testing"
)

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input   string
		clock   string
		display string
	}{
		{"11 am", "11:00", "11:00 AM"},
		{"9:30pm", "21:30", "9:30 PM"},
		{"12 am", "00:00", "12:00 AM"},
		{"12 pm", "12:00", "12:00 PM"},
		{"12:30 am", "00:30", "12:30 AM"},
		{"11 a.m.", "11:00", "11:00 AM"},
		{"11.30 AM", "11:30", "11:30 AM"},
		{"  9 P.M ", "21:00", "9:00 PM"},
		{"1 Am", "01:00", "1:00 AM"},
		{"6:15 pm", "18:15", "6:15 PM"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := NormalizeTime(test.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Clock() != test.clock {
				t.Fatalf("expected clock %s, got %s", test.clock, got.Clock())
			}
			if got.String() != test.display {
				t.Fatalf("expected %s, got %s", test.display, got.String())
			}
		})
	}
}

func TestNormalizeTimeInvalid(t *testing.T) {
	for _, input := range []string{"", "noon", "13 pm", "0 am", "9:75 pm", "9:30", "21:00", "9 xm", "123 am"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeTime(input)
			if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Fatalf("expected ErrInvalidTimeFormat for %q, got %v", input, err)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("21:15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (TimeOfDay{Hour: 9, Minute: 15, Meridiem: PM}) {
		t.Fatalf("unexpected value %+v", got)
	}

	got, err = ParseClock("0:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Minutes() != 5 || got.String() != "12:05 AM" {
		t.Fatalf("unexpected value %s (%d)", got, got.Minutes())
	}

	for _, input := range []string{"24:00", "12:60", "9pm", "9", "", "09:5"} {
		if _, err := ParseClock(input); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Fatalf("expected ErrInvalidTimeFormat for %q, got %v", input, err)
		}
	}
}

func TestTimeOfDayFromMinutesRoundTrip(t *testing.T) {
	for m := 0; m < minutesPerDay; m++ {
		tod := TimeOfDayFromMinutes(m)
		if tod.Hour < 1 || tod.Hour > 12 {
			t.Fatalf("hour out of range for %d: %+v", m, tod)
		}
		if tod.Minutes() != m {
			t.Fatalf("expected %d minutes, got %d (%s)", m, tod.Minutes(), tod)
		}
		back, err := NormalizeTime(tod.String())
		if err != nil || back != tod {
			t.Fatalf("cannot normalize %q back: %v %+v", tod.String(), err, back)
		}
	}
}
