// Package gcal exports scheduled tasks to a Google Calendar.
package gcal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/timeutil"
)

// TaskIDProperty is the private extended property linking an event to its task
const TaskIDProperty = "timebox_id"

var ErrUnscheduled = errors.New("task has no day or time")

// Google Calendar event color ids
var categoryColors = map[domain.Category]string{
	domain.CategorySleep:    "9",
	domain.CategoryWork:     "7",
	domain.CategoryPersonal: "5",
	domain.CategoryHealth:   "10",
}

// ToEvent converts a task to a calendar event. Timed tasks keep their range,
// day-anchored tasks become all-day events.
func ToEvent(t domain.Task) (*calendar.Event, error) {
	summary := t.Title
	if t.Completed {
		summary = "✓ " + summary
	}

	desc := []string{"category: " + string(t.Category)}
	if t.Notes != "" {
		desc = append(desc, "", t.Notes)
	}

	event := &calendar.Event{
		Summary:     summary,
		Description: strings.Join(desc, "\n"),
		ColorId:     categoryColors[t.Category],
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{TaskIDProperty: t.ID},
		},
	}

	if start, end, ok := t.Schedule.Range(); ok {
		event.Start = &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)}
		event.End = &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)}
		return event, nil
	}
	if day, ok := t.Schedule.AnchorDay(); ok {
		// all-day end dates are exclusive
		event.Start = &calendar.EventDateTime{Date: timeutil.FormatDay(day)}
		event.End = &calendar.EventDateTime{Date: timeutil.FormatDay(timeutil.AddDays(day, 1))}
		return event, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnscheduled, t.ID)
}
