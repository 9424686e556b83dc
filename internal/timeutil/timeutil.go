// Package timeutil holds the calendar arithmetic shared by the scheduling
// core. Every function is pure and uses the location of its argument.
package timeutil

import (
	"fmt"
	"time"
)

// DayLayout is the wire and storage format for calendar days
const DayLayout = "2006-01-02"

// StartOfDay returns midnight of the day containing t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's location
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddDays moves t by n calendar days, keeping the wall clock
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Hour is the hour-of-day component of t
func Hour(t time.Time) int {
	return t.Hour()
}

// At returns the wall-clock time hour:minute on the day containing day
func At(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}

// ParseDay parses a YYYY-MM-DD string as local midnight
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseClock parses "HH:MM" (24h) into hour and minute
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// MonthGrid returns the day cells of a month calendar: whole weeks starting
// on firstWeekday, padded with days of the neighbouring months.
func MonthGrid(month time.Time, firstWeekday time.Weekday) []time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	lead := (int(first.Weekday()) - int(firstWeekday) + 7) % 7
	start := AddDays(first, -lead)

	last := AddDays(first.AddDate(0, 1, 0), -1)
	span := lead + last.Day()
	weeks := (span + 6) / 7

	days := make([]time.Time, 0, weeks*7)
	for i := 0; i < weeks*7; i++ {
		days = append(days, AddDays(start, i))
	}
	return days
}
