// Package hours parses free-text restaurant opening hours such as
// "Mon-Thu, Sun 11:30 am - 9 pm / Fri-Sat 11:30 am - 9:30 pm" and answers
// point-in-time questions against the parsed schedule.
//
// Every function in this package is pure. Malformed clauses are dropped
// instead of failing the whole string, so a restaurant with unreadable hours
// simply never matches a day or time query.
package hours

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidDayToken   = errors.New("invalid day token")
)

// Weekday uses the canonical week order Monday..Sunday, so ranges walk
// forward by index and wrap after Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysInWeek = 7

var weekdayNames = [daysInWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var abbrevMap = map[string]Weekday{
	"mon": Monday,
	"tue": Tuesday,
	"wed": Wednesday,
	"thu": Thursday,
	"fri": Friday,
	"sat": Saturday,
	"sun": Sunday,
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Abbrev returns the three letter form used in opening-hours strings.
func (d Weekday) Abbrev() string {
	if !d.Valid() {
		return ""
	}
	return weekdayNames[d][:3]
}

func (d Weekday) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", d)
	}
	return []byte(`"` + d.String() + `"`), nil
}

// lookupAbbrev resolves a three letter day token, ignoring case.
func lookupAbbrev(s string) (Weekday, bool) {
	d, ok := abbrevMap[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// ParseWeekday accepts a full weekday name or its three letter abbreviation
// in any case. It is meant for query input; opening-hours strings only use
// abbreviations and go through ResolveDays.
func ParseWeekday(s string) (Weekday, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	if d, ok := abbrevMap[token]; ok {
		return d, nil
	}
	for i, name := range weekdayNames {
		if token == strings.ToLower(name) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q, want a weekday name or \"mon\", \"tue\", etc", ErrInvalidDayToken, s)
}
