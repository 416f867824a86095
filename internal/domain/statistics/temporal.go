package statistics

import (
	"strings"
	"time"
)

// Label pairs a stable bucket key with its display text
type Label struct {
	Key  string
	Text string
}

type session struct {
	Label
	from, to int
}

// day sessions cover [from, to); any other hour is night
var daySessions = [...]session{
	{Label{"morning", "Morning (6-10)"}, 6, 10},
	{Label{"midmorning", "Midmorning (10-12)"}, 10, 12},
	{Label{"midday", "Midday (12-14)"}, 12, 14},
	{Label{"afternoon", "Afternoon (14-18)"}, 14, 18},
	{Label{"evening", "Evening (18-22)"}, 18, 22},
}

var nightSession = Label{"night", "Night (22-6)"}

var weekdays = [...]Label{
	{"monday", "Monday"},
	{"tuesday", "Tuesday"},
	{"wednesday", "Wednesday"},
	{"thursday", "Thursday"},
	{"friday", "Friday"},
	{"saturday", "Saturday"},
	{"sunday", "Sunday"},
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp reads an ISO-8601 entry date. The wall clock of the text is kept;
// no conversion to another zone happens.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SessionOf returns the trading session of the timestamp's hour
func SessionOf(t time.Time) Label {
	hour := t.Hour()
	for _, s := range daySessions {
		if hour >= s.from && hour < s.to {
			return s.Label
		}
	}
	return nightSession
}

// Sessions lists every session in canonical order
func Sessions() []Label {
	labels := make([]Label, 0, len(daySessions)+1)
	for _, s := range daySessions {
		labels = append(labels, s.Label)
	}
	return append(labels, nightSession)
}

// WeekdayOf returns the weekday label of the timestamp
func WeekdayOf(t time.Time) Label {
	// time.Weekday starts on Sunday
	return weekdays[(int(t.Weekday())+6)%7]
}

// Weekdays lists Monday through Sunday
func Weekdays() []Label {
	return append([]Label(nil), weekdays[:]...)
}

// DayKey formats the calendar day as YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey formats the month as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthLabel formats the month for display, e.g. "March 2024"
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}
