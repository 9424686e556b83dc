// Package sleep resolves the nightly sleep window for a calendar day and
// answers which hours of the day fall inside it.
package sleep

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/timeutil"
)

// Default window: 22:00 on the anchor day until 06:00 the next morning.
const (
	DefaultStartHour = 22
	DefaultEndHour   = 6
	DefaultDuration  = 8 * time.Hour
)

// Bounds offered to users when they pick a sleep duration
const (
	MinDuration  = 4 * time.Hour
	MaxDuration  = 12 * time.Hour
	DurationStep = 30 * time.Minute
)

var ErrDurationOutOfRange = errors.New("sleep duration must be between 4h and 12h in 30 minute steps")

// FindForDay returns the first window anchored on day. Later duplicates are ignored.
func FindForDay(windows []domain.SleepWindow, day time.Time) (domain.SleepWindow, bool) {
	for _, w := range windows {
		if timeutil.SameDay(w.Day, day) {
			return w, true
		}
	}
	return domain.SleepWindow{}, false
}

// Resolve returns the explicit window when present, otherwise the default
// window for day. The default is not persisted and has no ID.
func Resolve(explicit *domain.SleepWindow, day time.Time) domain.SleepWindow {
	if explicit != nil {
		return *explicit
	}
	anchor := timeutil.StartOfDay(day)
	start := timeutil.At(anchor, DefaultStartHour, 0)
	end := timeutil.At(timeutil.AddDays(anchor, 1), DefaultEndHour, 0)
	return domain.SleepWindow{
		Day:      anchor,
		Start:    start,
		End:      end,
		Duration: end.Sub(start),
	}
}

// IsAsleep compares clock hours only; the dates carried by the window are ignored.
func IsAsleep(w domain.SleepWindow, hour int) bool {
	s, e := w.Start.Hour(), w.End.Hour()
	if s > e {
		return hour >= s || hour < e
	}
	return s <= hour && hour < e
}

// IsStartHour reports whether hour is the slot where the window begins
func IsStartHour(w domain.SleepWindow, hour int) bool {
	return w.Start.Hour() == hour
}

// Upsert sets the window for day to [start, end). An end at or before start
// is pushed forward by whole days, so end == start yields a 24h window.
// When existing is non-nil it is updated in place and keeps its ID.
func Upsert(existing *domain.SleepWindow, day, start, end time.Time) domain.SleepWindow {
	for !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	if existing != nil {
		existing.Day = timeutil.StartOfDay(day)
		existing.Start = start
		existing.End = end
		existing.Duration = end.Sub(start)
		return *existing
	}

	return domain.SleepWindow{
		ID:       uuid.New().String(),
		Day:      timeutil.StartOfDay(day),
		Start:    start,
		End:      end,
		Duration: end.Sub(start),
	}
}

// ValidateDuration enforces the [4h, 12h] range in half-hour steps. Upsert
// does not call it; stores and request handlers do.
func ValidateDuration(d time.Duration) error {
	if d < MinDuration || d > MaxDuration || d%DurationStep != 0 {
		return fmt.Errorf("%w: got %s", ErrDurationOutOfRange, d)
	}
	return nil
}

// FromStartAndDuration builds the start and end of a window beginning at
// startHour:startMinute on day and lasting hours.
func FromStartAndDuration(day time.Time, startHour, startMinute int, hours float64) (start, end time.Time) {
	start = timeutil.At(day, startHour, startMinute)
	d := time.Duration(math.Round(hours*60)) * time.Minute
	return start, start.Add(d)
}
