// Package schedule answers the day, slot and progress queries over a task
// snapshot. Functions never mutate their input slice.
package schedule

import (
	"slices"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/sleep"
	"github.com/pbaille/timebox/internal/timeutil"
)

// SlotsPerDay is the number of hourly buckets in a day
const SlotsPerDay = 24

// onDay matches day-anchored tasks by their anchor and timed tasks by
// the day of their start.
func onDay(t domain.Task, day time.Time) bool {
	anchor, ok := t.Schedule.AnchorDay()
	return ok && timeutil.SameDay(anchor, day)
}

// compareForDay orders timed tasks by start ahead of untimed tasks, which
// follow in creation order.
func compareForDay(a, b domain.Task) int {
	as, aTimed := a.Schedule.Start()
	bs, bTimed := b.Schedule.Start()
	switch {
	case aTimed && bTimed:
		if c := as.Compare(bs); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	case aTimed:
		return -1
	case bTimed:
		return 1
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

// TasksForDay returns the tasks anchored on, or starting on, day
func TasksForDay(tasks []domain.Task, day time.Time) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if onDay(t, day) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, compareForDay)
	return out
}

// TasksForSlot returns the timed tasks of day covering hour. A task covers
// the hours from its start hour up to, not including, its end hour, and
// always covers its start hour.
func TasksForSlot(tasks []domain.Task, day time.Time, hour int) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range TasksForDay(tasks, day) {
		start, end, ok := t.Schedule.Range()
		if !ok {
			continue
		}
		sh, eh := start.Hour(), end.Hour()
		if (sh <= hour && hour < eh) || sh == hour {
			out = append(out, t)
		}
	}
	return out
}

// UnscheduledTasks returns tasks with neither a day nor a time, oldest first
func UnscheduledTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.Schedule.Kind() == domain.KindUnscheduled {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Task) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

// Progress is the completion state of one day
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Ratio     float64 `json:"ratio"`
}

// DailyProgress counts completed tasks among TasksForDay. Ratio is zero for an empty day.
func DailyProgress(tasks []domain.Task, day time.Time) Progress {
	var p Progress
	for _, t := range TasksForDay(tasks, day) {
		p.Total++
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Ratio = float64(p.Completed) / float64(p.Total)
	}
	return p
}

// Slot is one hour of the daily timeline
type Slot struct {
	Hour       int           `json:"hour"`
	Asleep     bool          `json:"asleep"`
	SleepStart bool          `json:"sleep_start"`
	Tasks      []domain.Task `json:"tasks"`
}

// Timeline builds the 24 slots of day, marking the hours covered by window
func Timeline(tasks []domain.Task, window domain.SleepWindow, day time.Time) []Slot {
	dayTasks := TasksForDay(tasks, day)
	slots := make([]Slot, SlotsPerDay)
	for h := range slots {
		slots[h] = Slot{
			Hour:       h,
			Asleep:     sleep.IsAsleep(window, h),
			SleepStart: sleep.IsStartHour(window, h),
			Tasks:      TasksForSlot(dayTasks, day, h),
		}
	}
	return slots
}

// Durations offered when creating a task from a timeline slot
var SlotDurations = []time.Duration{
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	90 * time.Minute,
	2 * time.Hour,
	3 * time.Hour,
}

// SlotTask builds a timed task starting at hour:minute on day
func SlotTask(title string, category domain.Category, day time.Time, hour, minute int, d time.Duration, now time.Time) (domain.Task, error) {
	sched, err := domain.TimedFor(timeutil.At(day, hour, minute), d)
	if err != nil {
		return domain.Task{}, err
	}
	task := domain.NewTask(title, category, sched, now)
	if err := task.Validate(); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}
