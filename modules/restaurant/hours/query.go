package hours

import (
	"strings"
)

// Query is a restaurant listing filter, validated once at the boundary.
// Zero fields do not filter.
type Query struct {
	Name string
	Day  *Weekday
	Time *TimeOfDay
}

// ParseQuery validates raw request values. Empty strings leave the
// corresponding field unset.
func ParseQuery(name, day, clock string) (Query, error) {
	q := Query{Name: strings.TrimSpace(name)}

	if day = strings.TrimSpace(day); day != "" {
		d, err := ParseWeekday(day)
		if err != nil {
			return Query{}, err
		}
		q.Day = &d
	}
	if clock = strings.TrimSpace(clock); clock != "" {
		t, err := ParseClock(clock)
		if err != nil {
			return Query{}, err
		}
		q.Time = &t
	}
	return q, nil
}

// HasSchedule reports whether the query constrains day or time.
func (q Query) HasSchedule() bool {
	return q.Day != nil || q.Time != nil
}

// Applied lists the active filters in their request form.
func (q Query) Applied() map[string]string {
	applied := make(map[string]string, 3)
	if q.Name != "" {
		applied["name"] = q.Name
	}
	if q.Day != nil {
		applied["day"] = q.Day.String()
	}
	if q.Time != nil {
		applied["time"] = q.Time.Clock()
	}
	return applied
}

// IsOpenAt parses raw opening hours and a day/clock query and reports
// whether the restaurant is open. Only a malformed query is an error.
func IsOpenAt(raw, day, clock string) (bool, error) {
	q, err := ParseQuery("", day, clock)
	if err != nil {
		return false, err
	}
	return Parse(raw).IsOpenAt(q.Day, q.Time), nil
}
