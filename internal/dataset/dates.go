package dataset

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Slash and dash forms are month-first like
// pandas; when the month is out of range the day-first layout that follows
// picks the value up. Unpadded forms such as 1/5/2021 come after the padded
// ones in the same order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"01-02-2006",
	"02/01/2006",
	"02-01-2006",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1-2-2006",
	"2/1/2006",
	"2-1-2006",
	"01/02/2006 15:04:05",
	"02-01-2006 15:04:05",
	"02-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"20060102",
}

// ParseDate parses free-form date text into a calendar date at UTC midnight.
// It reports false for blank or unrecognised input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// toDate coerces a cell to a date, degrading to null on failure
func toDate(v Value) Value {
	switch v.Kind {
	case KindDate:
		return v
	case KindString:
		if t, ok := ParseDate(v.Str); ok {
			return DateValue(t)
		}
	}
	return Null()
}

// DaysBetween returns the inclusive day count from start to end
func DaysBetween(start, end time.Time) int64 {
	return DaySpan(start, end) + 1
}

// DaySpan returns the number of calendar days from start to end. Only the
// dates count, so spans wider than a time.Duration still come out right.
func DaySpan(start, end time.Time) int64 {
	return (midnight(end).Unix() - midnight(start).Unix()) / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
