package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/logging"
	"github.com/pbaille/timebox/internal/sleep"
)

var day = time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "timebox.db"), logging.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func timed(t *testing.T, title string, h int) domain.Task {
	t.Helper()
	sched, err := domain.TimedFor(day.Add(time.Duration(h)*time.Hour), 90*time.Minute)
	if err != nil {
		t.Fatalf("TimedFor: %v", err)
	}
	return domain.NewTask(title, domain.CategoryWork, sched, day.Add(time.Minute))
}

func TestTaskRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tasks := []domain.Task{
		timed(t, "standup", 9),
		domain.NewTask("groceries", domain.CategoryPersonal, domain.OnDay(day), day.Add(2*time.Minute)),
		domain.NewTask("someday", domain.CategoryHealth, domain.Unscheduled(), day.Add(3*time.Minute)),
	}
	tasks[1].Notes = "milk, eggs"
	for _, task := range tasks {
		if err := s.InsertTask(ctx, task); err != nil {
			t.Fatalf("InsertTask(%s): %v", task.Title, err)
		}
	}

	got, err := s.AllTasks(ctx)
	if err != nil {
		t.Fatalf("AllTasks: %v", err)
	}
	if len(got) != len(tasks) {
		t.Fatalf("got %d tasks, want %d", len(got), len(tasks))
	}
	for i, want := range tasks {
		g := got[i]
		if g.ID != want.ID || g.Title != want.Title || g.Notes != want.Notes || g.Category != want.Category {
			t.Errorf("task %d = %+v, want %+v", i, g, want)
		}
		if !g.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("task %d created = %v, want %v", i, g.CreatedAt, want.CreatedAt)
		}
		if g.Schedule.Kind() != want.Schedule.Kind() {
			t.Errorf("task %d kind = %q, want %q", i, g.Schedule.Kind(), want.Schedule.Kind())
		}
	}

	start, end, ok := got[0].Schedule.Range()
	if !ok || !start.Equal(day.Add(9*time.Hour)) || end.Sub(start) != 90*time.Minute {
		t.Errorf("timed range = %v-%v", start, end)
	}
	if anchor, ok := got[1].Schedule.AnchorDay(); !ok || !anchor.Equal(day) {
		t.Errorf("anchor = %v", anchor)
	}
}

func TestInsertRejectsInvalidTask(t *testing.T) {
	s := newTestStore(t)
	task := domain.NewTask(" ", domain.CategoryWork, domain.Unscheduled(), day)
	err := s.InsertTask(context.Background(), task)
	if !errors.Is(err, domain.ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != "insert" {
		t.Fatalf("expected insert OpError, got %T", err)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetTask(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateToggleDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := timed(t, "review", 14)
	if err := s.InsertTask(ctx, task); err != nil {
		t.Fatalf("InsertTask: %v", err)
	}

	task.Title = "review PR"
	task.Schedule = domain.OnDay(day)
	if err := s.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	got, err := s.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "review PR" || got.Schedule.Kind() != domain.KindDay {
		t.Fatalf("update not applied: %+v", got)
	}

	toggled, err := s.ToggleTask(ctx, task.ID)
	if err != nil || !toggled.Completed {
		t.Fatalf("ToggleTask = %+v, %v", toggled, err)
	}
	toggled, err = s.ToggleTask(ctx, task.ID)
	if err != nil || toggled.Completed {
		t.Fatalf("second ToggleTask = %+v, %v", toggled, err)
	}

	if err := s.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := s.DeleteTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if _, err := s.ToggleTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("toggle missing err = %v", err)
	}
	missing := timed(t, "ghost", 10)
	if err := s.UpdateTask(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing err = %v", err)
	}
}

func TestResolveTaskID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := timed(t, "a", 9)
	a.ID = "abc-111"
	b := timed(t, "b", 10)
	b.ID = "abd-222"
	for _, task := range []domain.Task{a, b} {
		if err := s.InsertTask(ctx, task); err != nil {
			t.Fatalf("InsertTask: %v", err)
		}
	}

	if id, err := s.ResolveTaskID(ctx, "abc"); err != nil || id != "abc-111" {
		t.Fatalf("ResolveTaskID(abc) = %q, %v", id, err)
	}
	if _, err := s.ResolveTaskID(ctx, "ab"); !errors.Is(err, ErrAmbiguousID) {
		t.Fatalf("ResolveTaskID(ab) err = %v", err)
	}
	if _, err := s.ResolveTaskID(ctx, "zz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ResolveTaskID(zz) err = %v", err)
	}
	if _, err := s.ResolveTaskID(ctx, "%"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wildcard prefix should not match, err = %v", err)
	}
}

func TestSleepWindowForDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	w, err := s.SleepWindowFor(ctx, day)
	if err != nil {
		t.Fatalf("SleepWindowFor: %v", err)
	}
	if w.ID != "" || w.Start.Hour() != sleep.DefaultStartHour || w.Duration != sleep.DefaultDuration {
		t.Fatalf("default window = %+v", w)
	}
	all, err := s.AllSleepWindows(ctx)
	if err != nil {
		t.Fatalf("AllSleepWindows: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("default window was persisted")
	}
}

func TestSaveSleepWindowIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := day.Add(22*time.Hour + 30*time.Minute)
	end := day.Add(6 * time.Hour) // before start, pushed to the next morning

	first, err := s.SaveSleepWindow(ctx, day, start, end)
	if err != nil {
		t.Fatalf("SaveSleepWindow: %v", err)
	}
	if first.Duration != 7*time.Hour+30*time.Minute {
		t.Fatalf("duration = %v", first.Duration)
	}
	second, err := s.SaveSleepWindow(ctx, day, start, end)
	if err != nil {
		t.Fatalf("second SaveSleepWindow: %v", err)
	}
	if second.ID != first.ID || !second.Start.Equal(first.Start) || !second.End.Equal(first.End) || second.Duration != first.Duration {
		t.Fatalf("second = %+v, want %+v", second, first)
	}

	all, err := s.AllSleepWindows(ctx)
	if err != nil {
		t.Fatalf("AllSleepWindows: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d windows, want 1", len(all))
	}

	resolved, err := s.SleepWindowFor(ctx, day.Add(12*time.Hour))
	if err != nil {
		t.Fatalf("SleepWindowFor: %v", err)
	}
	if resolved.ID != first.ID {
		t.Fatalf("resolved %q, want stored %q", resolved.ID, first.ID)
	}
}

func TestSaveSleepWindowReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	first, err := s.SaveSleepWindow(ctx, day, day.Add(22*time.Hour), day.Add(30*time.Hour))
	if err != nil {
		t.Fatalf("SaveSleepWindow: %v", err)
	}
	second, err := s.SaveSleepWindow(ctx, day, day.Add(23*time.Hour), day.Add(33*time.Hour))
	if err != nil {
		t.Fatalf("SaveSleepWindow: %v", err)
	}
	if second.ID != first.ID || second.Duration != 10*time.Hour {
		t.Fatalf("second = %+v", second)
	}
}

func TestSaveSleepWindowRejectsDuration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.SaveSleepWindow(ctx, day, day.Add(22*time.Hour), day.Add(24*time.Hour))
	if !errors.Is(err, sleep.ErrDurationOutOfRange) {
		t.Fatalf("err = %v, want ErrDurationOutOfRange", err)
	}
	all, _ := s.AllSleepWindows(ctx)
	if len(all) != 0 {
		t.Fatalf("rejected window was stored")
	}
}

func TestSaveSleepWindowConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := day.Add(21*time.Hour + time.Duration(i)*30*time.Minute)
			_, err := s.SaveSleepWindow(ctx, day, start, start.Add(8*time.Hour))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent save: %v", err)
		}
	}

	all, err := s.AllSleepWindows(ctx)
	if err != nil {
		t.Fatalf("AllSleepWindows: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d windows for one day", len(all))
	}
}
