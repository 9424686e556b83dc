package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is the duration assumed for tasks without an explicit range
const DefaultDuration = time.Hour

var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidSchedule = errors.New("invalid schedule: end must be after start")
)

// Category is the closed set of task kinds
type Category string

const (
	CategorySleep    Category = "sleep"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
)

// Categories lists every valid category in display order
var Categories = []Category{CategorySleep, CategoryWork, CategoryPersonal, CategoryHealth}

// ParseCategory matches s case-insensitively against the known categories.
// An empty string yields CategoryPersonal.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryPersonal, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is one of Categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Task represents one unit of work
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	Schedule  Schedule  `json:"schedule"`
	Category  Category  `json:"category"`
}

// NewTask builds a task with a fresh identifier created at now
func NewTask(title string, category Category, schedule Schedule, now time.Time) Task {
	return Task{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		Schedule:  schedule,
		Category:  category,
	}
}

// Duration is the scheduled length of the task, DefaultDuration when untimed
func (t Task) Duration() time.Duration {
	return t.Schedule.Duration()
}

// HasExplicitSchedule reports whether both start and end are known
func (t Task) HasExplicitSchedule() bool {
	return t.Schedule.IsTimed()
}

// Validate checks the invariants a task must hold before it is stored
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, t.Category)
	}
	if start, end, ok := t.Schedule.Range(); ok && !end.After(start) {
		return ErrInvalidSchedule
	}
	return nil
}

// SleepWindow is one night's sleep interval anchored to a calendar day
type SleepWindow struct {
	ID       string        `json:"id"`
	Day      time.Time     `json:"day"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
}

// Hours is the window length in fractional hours
func (w SleepWindow) Hours() float64 {
	return w.Duration.Hours()
}
