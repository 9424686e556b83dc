package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pbaille/timebox/internal/timeutil"
)

// ScheduleKind tags the variant held by a Schedule
type ScheduleKind string

const (
	KindUnscheduled ScheduleKind = "unscheduled"
	KindDay         ScheduleKind = "day"
	KindTimed       ScheduleKind = "timed"
)

// Schedule places a task in time. It is exactly one of: unscheduled,
// anchored to a calendar day, or a timed range with end after start.
// The zero value is unscheduled.
type Schedule struct {
	kind  ScheduleKind
	day   time.Time
	start time.Time
	end   time.Time
}

// Unscheduled returns a schedule with no day and no time
func Unscheduled() Schedule {
	return Schedule{kind: KindUnscheduled}
}

// OnDay anchors a task to the calendar day containing day
func OnDay(day time.Time) Schedule {
	return Schedule{kind: KindDay, day: timeutil.StartOfDay(day)}
}

// Timed returns a schedule spanning [start, end)
func Timed(start, end time.Time) (Schedule, error) {
	if !end.After(start) {
		return Schedule{}, ErrInvalidSchedule
	}
	return Schedule{kind: KindTimed, start: start, end: end}, nil
}

// TimedFor is Timed(start, start+d)
func TimedFor(start time.Time, d time.Duration) (Schedule, error) {
	return Timed(start, start.Add(d))
}

func (s Schedule) Kind() ScheduleKind {
	if s.kind == "" {
		return KindUnscheduled
	}
	return s.kind
}

func (s Schedule) IsTimed() bool {
	return s.kind == KindTimed
}

// AnchorDay returns the calendar day the schedule belongs to. Timed
// schedules belong to the day of their start.
func (s Schedule) AnchorDay() (time.Time, bool) {
	switch s.kind {
	case KindDay:
		return s.day, true
	case KindTimed:
		return timeutil.StartOfDay(s.start), true
	}
	return time.Time{}, false
}

// Range returns start and end for timed schedules
func (s Schedule) Range() (start, end time.Time, ok bool) {
	if s.kind != KindTimed {
		return time.Time{}, time.Time{}, false
	}
	return s.start, s.end, true
}

// Start returns the start time for timed schedules
func (s Schedule) Start() (time.Time, bool) {
	return s.start, s.kind == KindTimed
}

func (s Schedule) Duration() time.Duration {
	if s.kind != KindTimed {
		return DefaultDuration
	}
	return s.end.Sub(s.start)
}

func (s Schedule) String() string {
	switch s.kind {
	case KindDay:
		return timeutil.FormatDay(s.day)
	case KindTimed:
		return fmt.Sprintf("%s %s-%s", timeutil.FormatDay(s.start), s.start.Format("15:04"), s.end.Format("15:04"))
	}
	return string(KindUnscheduled)
}

type scheduleJSON struct {
	Kind  ScheduleKind `json:"kind"`
	Day   string       `json:"day,omitempty"`
	Start *time.Time   `json:"start,omitempty"`
	End   *time.Time   `json:"end,omitempty"`
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	out := scheduleJSON{Kind: s.Kind()}
	switch s.kind {
	case KindDay:
		out.Day = timeutil.FormatDay(s.day)
	case KindTimed:
		start, end := s.start, s.end
		out.Start, out.End = &start, &end
	}
	return json.Marshal(out)
}

func (s *Schedule) UnmarshalJSON(b []byte) error {
	var in scheduleJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "", KindUnscheduled:
		*s = Unscheduled()
	case KindDay:
		day, err := timeutil.ParseDay(in.Day)
		if err != nil {
			return fmt.Errorf("schedule day: %w", err)
		}
		*s = OnDay(day)
	case KindTimed:
		if in.Start == nil || in.End == nil {
			return ErrInvalidSchedule
		}
		timed, err := Timed(*in.Start, *in.End)
		if err != nil {
			return err
		}
		*s = timed
	default:
		return fmt.Errorf("unknown schedule kind %q", in.Kind)
	}
	return nil
}
