package hours

import (
	"strings"
)

// Listing is the read-only view of a restaurant the filters need.
type Listing interface {
	GetName() string
	GetOpeningHours() string
}

// FilterByName keeps items whose name contains name, ignoring case.
func FilterByName[T Listing](items []T, name string) []T {
	needle := strings.ToLower(name)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.GetName()), needle) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByDayAndTime keeps items open at the given day and time. With both
// unset the input is returned unchanged, including restaurants whose hours
// cannot be parsed.
func FilterByDayAndTime[T Listing](items []T, day *Weekday, t *TimeOfDay) []T {
	if day == nil && t == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Parse(item.GetOpeningHours()).IsOpenAt(day, t) {
			out = append(out, item)
		}
	}
	return out
}

// Filter applies the name filter and then the day/time filter.
func Filter[T Listing](items []T, q Query) []T {
	if q.Name != "" {
		items = FilterByName(items, q.Name)
	}
	return FilterByDayAndTime(items, q.Day, q.Time)
}

// Unparseable returns the items whose opening hours yield no schedule entry.
func Unparseable[T Listing](items []T) []T {
	var out []T
	for _, item := range items {
		if Parse(item.GetOpeningHours()).IsEmpty() {
			out = append(out, item)
		}
	}
	return out
}
