package hours

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Meridiem int

const (
	AM Meridiem = iota
	PM
)

func (m Meridiem) String() string {
	if m == PM {
		return "PM"
	}
	return "AM"
}

const minutesPerDay = 24 * 60

// timePattern is the loose 12-hour notation found in opening-hours strings:
// "11 am", "9:30pm", "11.30 AM", "11 a.m.".
const timePattern = `\d{1,2}(?:[:.]\d{2})?\s*[ap]\.?\s*m\.?`

var (
	validTime  = regexp.MustCompile(`(?i)^(\d{1,2})(?:[:.](\d{2}))?\s*([ap])\.?\s*m\.?$`)
	validClock = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// TimeOfDay is a 12-hour clock value. Comparisons go through Minutes.
type TimeOfDay struct {
	Hour     int
	Minute   int
	Meridiem Meridiem
}

// TimeOfDayFromMinutes builds the canonical value for an offset since
// midnight. Offsets outside a single day are folded into [0, 1439].
func TimeOfDayFromMinutes(m int) TimeOfDay {
	m %= minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	h24, minute := m/60, m%60

	t := TimeOfDay{Minute: minute, Meridiem: AM}
	if h24 >= 12 {
		t.Meridiem = PM
	}
	t.Hour = h24 % 12
	if t.Hour == 0 {
		t.Hour = 12
	}
	return t
}

// Minutes returns the offset since midnight: 12 AM is 0, 12 PM is 720.
func (t TimeOfDay) Minutes() int {
	h := t.Hour % 12
	if t.Meridiem == PM {
		h += 12
	}
	return h*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d %s", t.Hour, t.Minute, t.Meridiem)
}

// Clock formats the value in 24-hour "HH:MM" notation.
func (t TimeOfDay) Clock() string {
	m := t.Minutes()
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Clock() + `"`), nil
}

// NormalizeTime parses a loose 12-hour token. Minutes default to zero and
// the hour must be within [1, 12].
func NormalizeTime(text string) (TimeOfDay, error) {
	m := validTime.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidTimeFormat, text)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("%w: hour out of range in %q", ErrInvalidTimeFormat, text)
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return TimeOfDay{}, fmt.Errorf("%w: minute out of range in %q", ErrInvalidTimeFormat, text)
		}
	}

	meridiem := AM
	if strings.EqualFold(m[3], "p") {
		meridiem = PM
	}
	return TimeOfDay{Hour: hour, Minute: minute, Meridiem: meridiem}, nil
}

// ParseClock parses a 24-hour "HH:MM" query value.
func ParseClock(text string) (TimeOfDay, error) {
	m := validClock.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("%w: cannot parse %q, want HH:MM", ErrInvalidTimeFormat, text)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not a valid clock time", ErrInvalidTimeFormat, text)
	}
	return TimeOfDayFromMinutes(hour*60 + minute), nil
}
