package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/schedule"
	"github.com/pbaille/timebox/internal/sleep"
	"github.com/pbaille/timebox/internal/timeutil"
)

// pathDay reads {date} as YYYY-MM-DD or "today"
func (s *Server) pathDay(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.PathValue("date")
	if raw == "today" {
		return timeutil.StartOfDay(s.now()), true
	}
	day, err := timeutil.ParseDay(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return day, true
}

func (s *Server) dayTasks(w http.ResponseWriter, r *http.Request) {
	day, ok := s.pathDay(w, r)
	if !ok {
		return
	}
	tasks, err := s.store.AllTasks(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"day":   timeutil.FormatDay(day),
		"tasks": schedule.TasksForDay(tasks, day),
	})
}

func pathHour(w http.ResponseWriter, r *http.Request) (int, bool) {
	hour, err := strconv.Atoi(r.PathValue("hour"))
	if err != nil || hour < 0 || hour >= schedule.SlotsPerDay {
		writeError(w, http.StatusBadRequest, "hour must be between 0 and 23")
		return 0, false
	}
	return hour, true
}

func (s *Server) slotTasks(w http.ResponseWriter, r *http.Request) {
	day, ok := s.pathDay(w, r)
	if !ok {
		return
	}
	hour, ok := pathHour(w, r)
	if !ok {
		return
	}
	tasks, err := s.store.AllTasks(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"day":   timeutil.FormatDay(day),
		"hour":  hour,
		"tasks": schedule.TasksForSlot(tasks, day, hour),
	})
}

// SlotTaskRequest creates a timed task from a timeline slot.
// Minutes defaults to 60.
type SlotTaskRequest struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Minute   int    `json:"minute,omitempty"`
	Minutes  int    `json:"minutes,omitempty"`
}

func (s *Server) addSlotTask(w http.ResponseWriter, r *http.Request) {
	day, ok := s.pathDay(w, r)
	if !ok {
		return
	}
	hour, ok := pathHour(w, r)
	if !ok {
		return
	}
	var req SlotTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Minute < 0 || req.Minute > 59 {
		writeError(w, http.StatusBadRequest, "minute must be between 0 and 59")
		return
	}
	if req.Minutes == 0 {
		req.Minutes = 60
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		s.fail(w, err)
		return
	}
	if req.Category == "" && s.classifier != nil {
		category = s.classifier.Classify(r.Context(), req.Title)
	}

	task, err := schedule.SlotTask(req.Title, category, day, hour, req.Minute,
		time.Duration(req.Minutes)*time.Minute, s.now())
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.InsertTask(r.Context(), task); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) dayProgress(w http.ResponseWriter, r *http.Request) {
	day, ok := s.pathDay(w, r)
	if !ok {
		return
	}
	tasks, err := s.store.AllTasks(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule.DailyProgress(tasks, day))
}

// TimelineResponse is one day's 24 slots plus the sleep window they were computed with
type TimelineResponse struct {
	Day   string          `json:"day"`
	Sleep SleepResponse   `json:"sleep"`
	Slots []schedule.Slot `json:"slots"`
}

func (s *Server) dayTimeline(w http.ResponseWriter, r *http.Request) {
	day, ok := s.pathDay(w, r)
	if !ok {
		return
	}
	tasks, err := s.store.AllTasks(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	window, err := s.store.SleepWindowFor(r.Context(), day)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TimelineResponse{
		Day:   timeutil.FormatDay(day),
		Sleep: toSleepResponse(window),
		Slots: schedule.Timeline(tasks, window, day),
	})
}

// SleepResponse is the wire form of a sleep window
type SleepResponse struct {
	ID      string    `json:"id,omitempty"`
	Day     string    `json:"day"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Hours   float64   `json:"hours"`
	Default bool      `json:"default"`
}

func toSleepResponse(w domain.SleepWindow) SleepResponse {
	return SleepResponse{
		ID:      w.ID,
		Day:     timeutil.FormatDay(w.Day),
		Start:   w.Start,
		End:     w.End,
		Hours:   w.Hours(),
		Default: w.ID == "",
	}
}

// PutSleepRequest sets a day's window from a start clock time and a length in hours
type PutSleepRequest struct {
	Start string  `json:"start"`
	Hours float64 `json:"hours"`
}

func (s *Server) getSleep(w http.ResponseWriter, r *http.Request) {
	day, ok := s.pathDay(w, r)
	if !ok {
		return
	}
	window, err := s.store.SleepWindowFor(r.Context(), day)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSleepResponse(window))
}

func (s *Server) putSleep(w http.ResponseWriter, r *http.Request) {
	day, ok := s.pathDay(w, r)
	if !ok {
		return
	}
	var req PutSleepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hour, minute, err := timeutil.ParseClock(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, end := sleep.FromStartAndDuration(day, hour, minute, req.Hours)
	if err := sleep.ValidateDuration(end.Sub(start)); err != nil {
		s.fail(w, err)
		return
	}

	window, err := s.store.SaveSleepWindow(r.Context(), day, start, end)
	if err != nil {
		s.fail(w, fmt.Errorf("save sleep: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, toSleepResponse(window))
}
