package hours

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DaySet is a set of weekdays, one bit per day.
type DaySet uint8

func NewDaySet(days ...Weekday) DaySet {
	var s DaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

func (s DaySet) Add(d Weekday) DaySet {
	if !d.Valid() {
		return s
	}
	return s | 1<<uint(d)
}

func (s DaySet) Has(d Weekday) bool {
	return d.Valid() && s&(1<<uint(d)) != 0
}

func (s DaySet) IsEmpty() bool {
	return s == 0
}

func (s DaySet) Len() int {
	n := 0
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Days lists the members in week order.
func (s DaySet) Days() []Weekday {
	days := make([]Weekday, 0, s.Len())
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s DaySet) String() string {
	names := make([]string, 0, daysInWeek)
	for _, d := range s.Days() {
		names = append(names, d.Abbrev())
	}
	return "{" + strings.Join(names, ",") + "}"
}

func (s DaySet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, daysInWeek)
	for _, d := range s.Days() {
		names = append(names, d.String())
	}
	return json.Marshal(names)
}

// dayRange walks the week from start to end inclusive, wrapping through
// Sunday when end comes before start (Fri-Mon).
func dayRange(start, end Weekday) DaySet {
	var s DaySet
	for d := start; ; d = (d + 1) % daysInWeek {
		s = s.Add(d)
		if d == end {
			return s
		}
	}
}

// ResolveDays turns a days token such as "Mon-Thu, Sun" into a set.
// Unknown sub-tokens are skipped; an empty result is an error.
func ResolveDays(text string) (DaySet, error) {
	var set DaySet
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			bounds := strings.Split(part, "-")
			if len(bounds) != 2 {
				continue
			}
			start, okStart := lookupAbbrev(bounds[0])
			end, okEnd := lookupAbbrev(bounds[1])
			if okStart && okEnd {
				set |= dayRange(start, end)
			}
			continue
		}
		if d, ok := lookupAbbrev(part); ok {
			set = set.Add(d)
		}
	}
	if set.IsEmpty() {
		return 0, fmt.Errorf("%w: no weekday found in %q", ErrInvalidDayToken, text)
	}
	return set, nil
}
