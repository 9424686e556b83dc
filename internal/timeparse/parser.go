// Package timeparse pulls a clock time, and optionally the word "tomorrow",
// off the front of free text and returns the remaining text as a title.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/timeutil"
)

var (
	clockPattern    = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*((?i:am|pm))\s+(.+)$`)
	tomorrowPattern = regexp.MustCompile(`^(?i:tomorrow)\b`)
)

// Hour used when "tomorrow" is not followed by a clock time
const DefaultTomorrowHour = 9

// Result is a successful parse
type Result struct {
	At       time.Time
	Title    string
	Original string
}

// Schedule is a one-hour timed range starting at r.At
func (r Result) Schedule() domain.Schedule {
	s, err := domain.TimedFor(r.At, domain.DefaultDuration)
	if err != nil {
		return domain.Unscheduled()
	}
	return s
}

// Parser is safe for concurrent use
type Parser struct {
	now func() time.Time
}

type Option func(*Parser)

// WithClock sets the source of the current time
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse tries a leading clock time first, then a leading "tomorrow". It
// reports false when neither matches; the caller keeps the raw text.
func (p *Parser) Parse(text string) (Result, bool) {
	trimmed := strings.TrimSpace(text)
	now := p.now()

	if hour, minute, title, ok := matchClock(trimmed); ok {
		at := timeutil.At(now, hour, minute)
		if at.Before(now) {
			at = timeutil.AddDays(at, 1)
		}
		return Result{At: at, Title: title, Original: text}, true
	}

	loc := tomorrowPattern.FindStringIndex(trimmed)
	if loc == nil {
		return Result{}, false
	}
	rest := strings.TrimSpace(trimmed[loc[1]:])
	tomorrow := timeutil.AddDays(now, 1)

	// "tomorrow" always means the next calendar day; no rollover here.
	if hour, minute, title, ok := matchClock(rest); ok {
		return Result{At: timeutil.At(tomorrow, hour, minute), Title: title, Original: text}, true
	}

	title := rest
	if title == "" {
		title = trimmed
	}
	return Result{At: timeutil.At(tomorrow, DefaultTomorrowHour, 0), Title: title, Original: text}, true
}

// matchClock converts "<h>[:mm] am|pm <title>" to a 24-hour clock
func matchClock(s string) (hour, minute int, title string, ok bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, "", false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, "", false
	}

	pm := strings.EqualFold(m[3], "pm")
	switch {
	case pm && hour != 12:
		hour += 12
	case !pm && hour == 12:
		hour = 0
	}
	return hour, minute, m[4], true
}

var defaultParser = New()

// Parse uses the wall clock
func Parse(text string) (Result, bool) {
	return defaultParser.Parse(text)
}
