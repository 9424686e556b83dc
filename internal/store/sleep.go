package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/sleep"
	"github.com/pbaille/timebox/internal/timeutil"
)

const selectSleepWindows = "SELECT id, day, start_at, end_at FROM sleep_windows"

func extractSleepWindow(row scannable) (domain.SleepWindow, error) {
	var (
		id, day    string
		start, end int64
	)
	err := row.Scan(&id, &day, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SleepWindow{}, ErrNotFound
	}
	if err != nil {
		return domain.SleepWindow{}, fmt.Errorf("scan sleep window: %w", err)
	}
	d, err := timeutil.ParseDay(day)
	if err != nil {
		return domain.SleepWindow{}, err
	}
	w := domain.SleepWindow{
		ID:    id,
		Day:   d,
		Start: time.UnixMilli(start),
		End:   time.UnixMilli(end),
	}
	w.Duration = w.End.Sub(w.Start)
	return w, nil
}

// AllSleepWindows returns every stored window ordered by day
func (s *Store) AllSleepWindows(ctx context.Context) ([]domain.SleepWindow, error) {
	rows, err := s.dbGetter(ctx).QueryContext(ctx, selectSleepWindows+" ORDER BY day")
	if err != nil {
		return nil, wrapSleepErr("list", "", err)
	}
	defer rows.Close()

	windows := make([]domain.SleepWindow, 0)
	for rows.Next() {
		w, err := extractSleepWindow(rows)
		if err != nil {
			return nil, wrapSleepErr("list", "", err)
		}
		windows = append(windows, w)
	}
	return windows, wrapSleepErr("list", "", rows.Err())
}

func (s *Store) explicitSleepWindow(ctx context.Context, day time.Time) (*domain.SleepWindow, error) {
	key := timeutil.FormatDay(day)
	w, err := extractSleepWindow(s.dbGetter(ctx).QueryRowContext(ctx, selectSleepWindows+" WHERE day = ?", key))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapSleepErr("get", key, err)
	}
	return &w, nil
}

// SleepWindowFor returns the stored window for day, or the default one.
// The default is never written.
func (s *Store) SleepWindowFor(ctx context.Context, day time.Time) (domain.SleepWindow, error) {
	explicit, err := s.explicitSleepWindow(ctx, day)
	if err != nil {
		return domain.SleepWindow{}, err
	}
	return sleep.Resolve(explicit, day), nil
}

// SaveSleepWindow sets the window anchored on day. Lookup, update-or-create
// and the write share one transaction.
func (s *Store) SaveSleepWindow(ctx context.Context, day, start, end time.Time) (domain.SleepWindow, error) {
	key := timeutil.FormatDay(day)
	var out domain.SleepWindow

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.explicitSleepWindow(ctx, day)
		if err != nil {
			return err
		}
		w := sleep.Upsert(existing, day, start, end)
		if err := sleep.ValidateDuration(w.Duration); err != nil {
			return wrapSleepErr("save", key, err)
		}

		db := s.dbGetter(ctx)
		if existing != nil {
			_, err = db.ExecContext(ctx,
				"UPDATE sleep_windows SET start_at = ?, end_at = ? WHERE id = ?",
				w.Start.UnixMilli(), w.End.UnixMilli(), w.ID,
			)
		} else {
			_, err = db.ExecContext(ctx,
				"INSERT INTO sleep_windows (id, day, start_at, end_at) VALUES (?, ?, ?, ?)",
				w.ID, key, w.Start.UnixMilli(), w.End.UnixMilli(),
			)
		}
		if err != nil {
			return wrapSleepErr("save", key, err)
		}
		out = w
		return nil
	})
	if err != nil {
		return domain.SleepWindow{}, err
	}
	s.l.Debug("saved sleep window", "day", key, "start", out.Start.Format("15:04"), "hours", out.Hours())
	return out, nil
}
