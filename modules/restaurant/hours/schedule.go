package hours

import (
	"regexp"
	"strings"
)

const clauseSeparator = "/"

// validClause matches "<days> <time> - <time>". The days part is everything
// up to the first time token.
var validClause = regexp.MustCompile(`(?i)^(.+?)\s+(` + timePattern + `)\s*-\s*(` + timePattern + `)$`)

// ScheduleEntry is one parsed clause. Days is never empty.
type ScheduleEntry struct {
	Days  DaySet    `json:"days"`
	Open  TimeOfDay `json:"open"`
	Close TimeOfDay `json:"close"`
	Raw   string    `json:"raw"`
}

// Overnight reports whether the range crosses midnight.
func (e ScheduleEntry) Overnight() bool {
	return e.Close.Minutes() < e.Open.Minutes()
}

// Contains reports whether t falls within [Open, Close], both ends
// inclusive. Overnight ranges match after Open or before Close.
func (e ScheduleEntry) Contains(t TimeOfDay) bool {
	at, start, end := t.Minutes(), e.Open.Minutes(), e.Close.Minutes()
	if end < start {
		return at >= start || at <= end
	}
	return at >= start && at <= end
}

func (e ScheduleEntry) matches(day *Weekday, t *TimeOfDay) bool {
	if day != nil && !e.Days.Has(*day) {
		return false
	}
	if t != nil && !e.Contains(*t) {
		return false
	}
	return true
}

// ParseClause parses a single clause such as "Mon-Thu, Sun 11:30 am - 9 pm".
// It returns false for anything it cannot fully understand.
func ParseClause(text string) (ScheduleEntry, bool) {
	text = strings.TrimSpace(text)
	m := validClause.FindStringSubmatch(text)
	if m == nil {
		return ScheduleEntry{}, false
	}

	days, err := ResolveDays(m[1])
	if err != nil {
		return ScheduleEntry{}, false
	}
	open, err := NormalizeTime(m[2])
	if err != nil {
		return ScheduleEntry{}, false
	}
	closing, err := NormalizeTime(m[3])
	if err != nil {
		return ScheduleEntry{}, false
	}

	return ScheduleEntry{Days: days, Open: open, Close: closing, Raw: text}, true
}

// OpeningHours keeps the clause order of the source string.
type OpeningHours []ScheduleEntry

// Parse splits raw on "/" and keeps every clause that parses. It never
// fails; a string with nothing usable yields an empty schedule.
func Parse(raw string) OpeningHours {
	hours := OpeningHours{}
	for _, part := range strings.Split(raw, clauseSeparator) {
		if entry, ok := ParseClause(part); ok {
			hours = append(hours, entry)
		}
	}
	return hours
}

func (oh OpeningHours) IsEmpty() bool {
	return len(oh) == 0
}

// IsOpenAt reports whether any entry covers the given day and time. A nil
// day or time matches every entry on that axis. With both nil the answer is
// whether the schedule has any entry at all.
func (oh OpeningHours) IsOpenAt(day *Weekday, t *TimeOfDay) bool {
	for _, entry := range oh {
		if entry.matches(day, t) {
			return true
		}
	}
	return false
}
