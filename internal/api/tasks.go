package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pbaille/timebox/internal/classifier"
	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/fetcher"
	"github.com/pbaille/timebox/internal/schedule"
	"github.com/pbaille/timebox/internal/timeutil"
)

// AddTaskRequest is the request body for creating a task
type AddTaskRequest struct {
	Text     string `json:"text"`
	Notes    string `json:"notes,omitempty"`
	Category string `json:"category,omitempty"`
	// Day anchors the task when the text carries no time (YYYY-MM-DD)
	Day string `json:"day,omitempty"`
}

// AddTaskResponse reports the stored task and whether a time was found in the text
type AddTaskResponse struct {
	Task   domain.Task `json:"task"`
	Parsed bool        `json:"parsed"`
}

func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	var req AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, domain.ErrEmptyTitle.Error())
		return
	}

	sched := domain.Unscheduled()
	if req.Day != "" {
		day, err := timeutil.ParseDay(req.Day)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		sched = domain.OnDay(day)
	}

	title, notes := text, req.Notes
	var parsed bool
	if fetcher.IsURL(text) {
		if s.fetchTitle != nil {
			fetched, err := s.fetchTitle(r.Context(), text)
			if err == nil {
				title = fetched
				notes = strings.TrimSpace(notes + "\n" + text)
			} else {
				s.l.Warn("could not fetch title", "url", text, "err", err)
			}
		}
	} else if res, ok := s.parser.Parse(text); ok {
		title, sched, parsed = res.Title, res.Schedule(), true
	}

	var category domain.Category
	if req.Category != "" {
		c, err := domain.ParseCategory(req.Category)
		if err != nil {
			s.fail(w, err)
			return
		}
		category = c
	} else if s.classifier != nil {
		category = s.classifier.Classify(r.Context(), title)
	} else {
		category = classifier.ByKeywords(title)
	}

	task := domain.NewTask(title, category, sched, s.now())
	task.Notes = notes
	if err := s.store.InsertTask(r.Context(), task); err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, AddTaskResponse{Task: task, Parsed: parsed})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.AllTasks(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}

func (s *Server) unscheduledTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.AllTasks(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": schedule.UnscheduledTasks(tasks),
	})
}

// getTask accepts a full id or a unique prefix
func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := s.store.ResolveTaskID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.ToggleTask(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
