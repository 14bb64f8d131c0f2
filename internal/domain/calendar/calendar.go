// Package calendar computes week boundaries and day buckets. Weeks start
// Monday and end Sunday, inclusive, in the timestamp's own location.
package calendar

import "time"

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MondayOfWeek returns midnight on the Monday of the week containing t.
func MondayOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// SundayOfWeek returns the last second of the week containing t, i.e.
// 23:59:59 on the Sunday six days after the week's Monday.
func SundayOfWeek(t time.Time) time.Time {
	sunday := MondayOfWeek(t).AddDate(0, 0, 6)
	y, m, d := sunday.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, sunday.Location())
}

// DaysOfWeek returns the seven days of the week containing t, Monday
// first, each at midnight.
func DaysOfWeek(t time.Time) []time.Time {
	monday := MondayOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// WeekStarts returns the Mondays of every week overlapping [start, end],
// ascending. An end before the first Monday yields an empty slice.
func WeekStarts(start, end time.Time) []time.Time {
	var weeks []time.Time
	for week := MondayOfWeek(start); !week.After(end); week = week.AddDate(0, 0, 7) {
		weeks = append(weeks, week)
	}
	return weeks
}

// DayNumber formats the day of month, e.g. "7".
func DayNumber(t time.Time) string {
	return t.Format("2")
}

// DayName formats the abbreviated weekday, e.g. "Mon".
func DayName(t time.Time) string {
	return t.Format("Mon")
}

// DayLabel formats the chart bucket label for a day, e.g. "Mon 7".
func DayLabel(t time.Time) string {
	return t.Format("Mon 2")
}

// WeekLabel formats a week-start date for display, e.g. "Apr 07".
func WeekLabel(t time.Time) string {
	return t.Format("Jan 02")
}
