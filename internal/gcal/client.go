package gcal

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/logging"
)

// Client pushes tasks to one calendar
type Client struct {
	srv        *calendar.Service
	calendarID string
	l          logging.Logger
}

// NewClient wraps an existing service. Used directly by tests.
func NewClient(srv *calendar.Service, calendarID string, l logging.Logger) *Client {
	return &Client{srv: srv, calendarID: calendarID, l: l}
}

// Connect authorizes with the credentials in dir and looks up the calendar
// whose summary is calendarName.
func Connect(ctx context.Context, dir, calendarName string, l logging.Logger) (*Client, error) {
	httpClient, err := authorizedClient(ctx, dir, l)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	calendarID, err := findCalendar(ctx, srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewClient(srv, calendarID, l), nil
}

func findCalendar(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	list, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list calendars: %w", err)
	}
	for _, item := range list.Items {
		if item.Summary == name {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar %q not found", name)
}

// PushResult counts what Push did
type PushResult struct {
	Created int
	Updated int
	Skipped int
}

// Push creates or patches one event per scheduled task. Unscheduled tasks are skipped.
func (c *Client) Push(ctx context.Context, tasks []domain.Task) (PushResult, error) {
	var res PushResult
	for _, t := range tasks {
		event, err := ToEvent(t)
		if errors.Is(err, ErrUnscheduled) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}

		existing, err := c.findByTaskID(ctx, t.ID)
		if err != nil {
			return res, fmt.Errorf("search event for %s: %w", t.ID, err)
		}

		if existing != nil {
			if _, err := c.srv.Events.Patch(c.calendarID, existing.Id, event).Context(ctx).Do(); err != nil {
				return res, fmt.Errorf("patch event for %s: %w", t.ID, err)
			}
			c.l.Debug("patched event", "task", t.ID, "event", existing.Id)
			res.Updated++
			continue
		}

		created, err := c.srv.Events.Insert(c.calendarID, event).Context(ctx).Do()
		if err != nil {
			return res, fmt.Errorf("insert event for %s: %w", t.ID, err)
		}
		c.l.Debug("inserted event", "task", t.ID, "event", created.Id)
		res.Created++
	}
	return res, nil
}

func (c *Client) findByTaskID(ctx context.Context, taskID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", TaskIDProperty, taskID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}
