package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/sleep"
)

var (
	day     = time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local)
	created = time.Date(2026, 10, 1, 8, 0, 0, 0, time.Local)
)

func at(h, m int) time.Time {
	return time.Date(2026, 10, 15, h, m, 0, 0, time.Local)
}

func timedTask(t *testing.T, id string, start, end time.Time, createdOffset time.Duration) domain.Task {
	t.Helper()
	s, err := domain.Timed(start, end)
	if err != nil {
		t.Fatalf("Timed(%v, %v): %v", start, end, err)
	}
	return domain.Task{ID: id, Title: id, Category: domain.CategoryWork, Schedule: s, CreatedAt: created.Add(createdOffset)}
}

func dayTask(id string, d time.Time, createdOffset time.Duration) domain.Task {
	return domain.Task{ID: id, Title: id, Category: domain.CategoryPersonal, Schedule: domain.OnDay(d), CreatedAt: created.Add(createdOffset)}
}

func looseTask(id string, createdOffset time.Duration) domain.Task {
	return domain.Task{ID: id, Title: id, Category: domain.CategoryPersonal, CreatedAt: created.Add(createdOffset)}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(t *testing.T, got []domain.Task, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range g {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestTasksForDayOrdering(t *testing.T) {
	tasks := []domain.Task{
		dayTask("anchored-late", day.Add(20*time.Hour), 3*time.Hour),
		timedTask(t, "afternoon", at(14, 0), at(15, 0), 0),
		dayTask("anchored-early", day, time.Hour),
		timedTask(t, "morning", at(9, 0), at(10, 0), 5*time.Hour),
		looseTask("loose", 0),
		timedTask(t, "tomorrow", at(9, 0).AddDate(0, 0, 1), at(10, 0).AddDate(0, 0, 1), 0),
		dayTask("yesterday", day.AddDate(0, 0, -1), 0),
	}
	got := TasksForDay(tasks, day.Add(12*time.Hour))
	equalIDs(t, got, "morning", "afternoon", "anchored-early", "anchored-late")

	if tasks[0].ID != "anchored-late" {
		t.Fatalf("input slice was reordered")
	}
}

func TestTasksForDayEmpty(t *testing.T) {
	if got := TasksForDay(nil, day); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestTasksForSlot(t *testing.T) {
	tasks := []domain.Task{timedTask(t, "meeting", at(9, 0), at(11, 0), 0)}
	for hour, want := range map[int]bool{8: false, 9: true, 10: true, 11: false} {
		got := TasksForSlot(tasks, day, hour)
		if (len(got) == 1) != want {
			t.Errorf("hour %d: got %v, want match=%v", hour, ids(got), want)
		}
	}
}

func TestTasksForSlotShortTask(t *testing.T) {
	tasks := []domain.Task{timedTask(t, "quick", at(9, 10), at(9, 25), 0)}
	equalIDs(t, TasksForSlot(tasks, day, 9), "quick")
	equalIDs(t, TasksForSlot(tasks, day, 10))
}

func TestTasksForSlotCrossingMidnight(t *testing.T) {
	tasks := []domain.Task{timedTask(t, "late", at(23, 0), at(23, 0).Add(2*time.Hour), 0)}
	equalIDs(t, TasksForSlot(tasks, day, 23), "late")
	equalIDs(t, TasksForSlot(tasks, day, 0))
}

func TestTasksForSlotSkipsDayAnchored(t *testing.T) {
	tasks := []domain.Task{dayTask("errand", day, 0)}
	for h := 0; h < SlotsPerDay; h++ {
		if got := TasksForSlot(tasks, day, h); len(got) != 0 {
			t.Fatalf("hour %d matched day-anchored task", h)
		}
	}
}

func TestUnscheduledTasks(t *testing.T) {
	tasks := []domain.Task{
		looseTask("second", 2*time.Hour),
		dayTask("anchored", day, 0),
		looseTask("first", time.Hour),
		timedTask(t, "timed", at(9, 0), at(10, 0), 0),
	}
	equalIDs(t, UnscheduledTasks(tasks), "first", "second")
}

func TestDailyProgress(t *testing.T) {
	done := timedTask(t, "done", at(9, 0), at(10, 0), 0)
	done.Completed = true
	tasks := []domain.Task{
		done,
		timedTask(t, "open", at(11, 0), at(12, 0), 0),
		dayTask("also-open", day, 0),
		looseTask("ignored", 0),
	}
	p := DailyProgress(tasks, day)
	if p.Completed != 1 || p.Total != 3 {
		t.Fatalf("progress = %+v", p)
	}
	if p.Ratio < 0.333 || p.Ratio > 0.334 {
		t.Fatalf("ratio = %v", p.Ratio)
	}
}

func TestDailyProgressEmptyDay(t *testing.T) {
	p := DailyProgress([]domain.Task{looseTask("x", 0)}, day)
	if p != (Progress{}) {
		t.Fatalf("progress = %+v, want zero", p)
	}
}

func TestTimeline(t *testing.T) {
	tasks := []domain.Task{timedTask(t, "meeting", at(9, 0), at(11, 0), 0)}
	slots := Timeline(tasks, sleep.Resolve(nil, day), day)
	if len(slots) != SlotsPerDay {
		t.Fatalf("got %d slots", len(slots))
	}
	for _, s := range slots {
		wantAsleep := s.Hour >= 22 || s.Hour < 6
		if s.Asleep != wantAsleep {
			t.Errorf("hour %d asleep = %v", s.Hour, s.Asleep)
		}
		if s.SleepStart != (s.Hour == 22) {
			t.Errorf("hour %d sleep start = %v", s.Hour, s.SleepStart)
		}
	}
	equalIDs(t, slots[9].Tasks, "meeting")
	equalIDs(t, slots[10].Tasks, "meeting")
	equalIDs(t, slots[11].Tasks)
}

func TestSlotTask(t *testing.T) {
	now := at(8, 0)
	task, err := SlotTask("focus", domain.CategoryWork, day, 14, 30, 90*time.Minute, now)
	if err != nil {
		t.Fatalf("SlotTask failed: %v", err)
	}
	start, end, ok := task.Schedule.Range()
	if !ok || !start.Equal(at(14, 30)) || !end.Equal(at(16, 0)) {
		t.Fatalf("range = %v-%v (%v)", start, end, ok)
	}
	if !task.CreatedAt.Equal(now) {
		t.Fatalf("created = %v", task.CreatedAt)
	}

	if _, err := SlotTask("", domain.CategoryWork, day, 9, 0, time.Hour, now); !errors.Is(err, domain.ErrEmptyTitle) {
		t.Fatalf("empty title err = %v", err)
	}
	if _, err := SlotTask("zero", domain.CategoryWork, day, 9, 0, 0, now); !errors.Is(err, domain.ErrInvalidSchedule) {
		t.Fatalf("zero duration err = %v", err)
	}
}
