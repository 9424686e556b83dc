package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/timeutil"
)

const selectTasks = "SELECT id, title, notes, completed, category, schedule_kind, scheduled_day, start_at, end_at, created_at FROM tasks"

type taskEntity struct {
	ID           string
	Title        string
	Notes        string
	Completed    bool
	Category     string
	ScheduleKind string
	ScheduledDay sql.NullString
	StartAt      sql.NullInt64
	EndAt        sql.NullInt64
	CreatedAt    int64
}

func toEntity(t domain.Task) taskEntity {
	e := taskEntity{
		ID:           t.ID,
		Title:        t.Title,
		Notes:        t.Notes,
		Completed:    t.Completed,
		Category:     string(t.Category),
		ScheduleKind: string(t.Schedule.Kind()),
		CreatedAt:    t.CreatedAt.UnixMilli(),
	}
	if day, ok := t.Schedule.AnchorDay(); ok && !t.Schedule.IsTimed() {
		e.ScheduledDay = sql.NullString{String: timeutil.FormatDay(day), Valid: true}
	}
	if start, end, ok := t.Schedule.Range(); ok {
		e.StartAt = sql.NullInt64{Int64: start.UnixMilli(), Valid: true}
		e.EndAt = sql.NullInt64{Int64: end.UnixMilli(), Valid: true}
	}
	return e
}

func (e taskEntity) toTask() (domain.Task, error) {
	t := domain.Task{
		ID:        e.ID,
		Title:     e.Title,
		Notes:     e.Notes,
		Completed: e.Completed,
		Category:  domain.Category(e.Category),
		CreatedAt: time.UnixMilli(e.CreatedAt),
	}
	switch domain.ScheduleKind(e.ScheduleKind) {
	case domain.KindDay:
		day, err := timeutil.ParseDay(e.ScheduledDay.String)
		if err != nil {
			return domain.Task{}, err
		}
		t.Schedule = domain.OnDay(day)
	case domain.KindTimed:
		s, err := domain.Timed(time.UnixMilli(e.StartAt.Int64), time.UnixMilli(e.EndAt.Int64))
		if err != nil {
			return domain.Task{}, err
		}
		t.Schedule = s
	default:
		t.Schedule = domain.Unscheduled()
	}
	return t, nil
}

func extractTask(row scannable) (domain.Task, error) {
	var e taskEntity
	err := row.Scan(&e.ID, &e.Title, &e.Notes, &e.Completed, &e.Category, &e.ScheduleKind,
		&e.ScheduledDay, &e.StartAt, &e.EndAt, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("scan task: %w", err)
	}
	return e.toTask()
}

// AllTasks returns a snapshot of every task, oldest first
func (s *Store) AllTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.dbGetter(ctx).QueryContext(ctx, selectTasks+" ORDER BY created_at")
	if err != nil {
		return nil, wrapTaskErr("list", "", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := extractTask(rows)
		if err != nil {
			return nil, wrapTaskErr("list", "", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapTaskErr("list", "", err)
	}
	return tasks, nil
}

// GetTask retrieves a task by ID
func (s *Store) GetTask(ctx context.Context, id string) (domain.Task, error) {
	row := s.dbGetter(ctx).QueryRowContext(ctx, selectTasks+" WHERE id = ?", id)
	t, err := extractTask(row)
	return t, wrapTaskErr("get", id, err)
}

// ResolveTaskID expands a unique id prefix to the full task id
func (s *Store) ResolveTaskID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", wrapTaskErr("resolve", prefix, ErrNotFound)
	}
	rows, err := s.dbGetter(ctx).QueryContext(ctx,
		"SELECT id FROM tasks WHERE id LIKE ? ESCAPE '\\' LIMIT 2",
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return "", wrapTaskErr("resolve", prefix, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", wrapTaskErr("resolve", prefix, err)
		}
		ids = append(ids, id)
	}
	switch len(ids) {
	case 0:
		return "", wrapTaskErr("resolve", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	}
	return "", wrapTaskErr("resolve", prefix, ErrAmbiguousID)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// InsertTask validates and stores a new task
func (s *Store) InsertTask(ctx context.Context, t domain.Task) error {
	if err := t.Validate(); err != nil {
		return wrapTaskErr("insert", t.ID, err)
	}
	e := toEntity(t)
	s.l.Debug("inserting task", "id", t.ID, "kind", e.ScheduleKind)

	_, err := s.dbGetter(ctx).ExecContext(ctx,
		`INSERT INTO tasks (id, title, notes, completed, category, schedule_kind, scheduled_day, start_at, end_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Notes, e.Completed, e.Category, e.ScheduleKind, e.ScheduledDay, e.StartAt, e.EndAt, e.CreatedAt,
	)
	return wrapTaskErr("insert", t.ID, err)
}

// UpdateTask overwrites the stored task with the same ID
func (s *Store) UpdateTask(ctx context.Context, t domain.Task) error {
	if err := t.Validate(); err != nil {
		return wrapTaskErr("update", t.ID, err)
	}
	e := toEntity(t)

	res, err := s.dbGetter(ctx).ExecContext(ctx,
		`UPDATE tasks SET title = ?, notes = ?, completed = ?, category = ?, schedule_kind = ?,
		 scheduled_day = ?, start_at = ?, end_at = ? WHERE id = ?`,
		e.Title, e.Notes, e.Completed, e.Category, e.ScheduleKind, e.ScheduledDay, e.StartAt, e.EndAt, e.ID,
	)
	if err != nil {
		return wrapTaskErr("update", t.ID, err)
	}
	return wrapTaskErr("update", t.ID, requireRow(res))
}

// DeleteTask removes a task
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.dbGetter(ctx).ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return wrapTaskErr("delete", id, err)
	}
	s.l.Debug("deleted task", "id", id)
	return wrapTaskErr("delete", id, requireRow(res))
}

// ToggleTask flips the completion flag and returns the updated task
func (s *Store) ToggleTask(ctx context.Context, id string) (domain.Task, error) {
	var out domain.Task
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		t, err := s.GetTask(ctx, id)
		if err != nil {
			return err
		}
		t.Completed = !t.Completed
		if _, err := s.dbGetter(ctx).ExecContext(ctx,
			"UPDATE tasks SET completed = ? WHERE id = ?", t.Completed, id,
		); err != nil {
			return wrapTaskErr("toggle", id, err)
		}
		out = t
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	s.l.Debug("toggled task", "id", id, "completed", out.Completed)
	return out, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
