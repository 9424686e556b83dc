package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/logging"
	"github.com/pbaille/timebox/internal/sleep"
	"github.com/pbaille/timebox/internal/store"
	"github.com/pbaille/timebox/internal/timeparse"
)

//go:generate mockgen -source=server.go -destination=mock_store_test.go -package=api

// Store is the persistence the server needs
type Store interface {
	AllTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	ResolveTaskID(ctx context.Context, prefix string) (string, error)
	InsertTask(ctx context.Context, t domain.Task) error
	DeleteTask(ctx context.Context, id string) error
	ToggleTask(ctx context.Context, id string) (domain.Task, error)
	SleepWindowFor(ctx context.Context, day time.Time) (domain.SleepWindow, error)
	SaveSleepWindow(ctx context.Context, day, start, end time.Time) (domain.SleepWindow, error)
}

// Classifier picks a category for a new task's title
type Classifier interface {
	Classify(ctx context.Context, title string) domain.Category
}

// TitleFetcher resolves a URL to a page title
type TitleFetcher func(ctx context.Context, url string) (string, error)

// Server handles HTTP requests for the timebox API
type Server struct {
	store      Store
	classifier Classifier
	fetchTitle TitleFetcher
	parser     *timeparse.Parser
	now        func() time.Time
	addr       string
	l          logging.Logger
}

type Option func(*Server)

func WithClassifier(c Classifier) Option {
	return func(s *Server) { s.classifier = c }
}

func WithTitleFetcher(f TitleFetcher) Option {
	return func(s *Server) { s.fetchTitle = f }
}

// WithClock sets the clock used for "today", creation times and parsing
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
		s.parser = timeparse.New(timeparse.WithClock(now))
	}
}

// New creates a new API server
func New(st Store, addr string, l logging.Logger, opts ...Option) *Server {
	s := &Server{
		store:  st,
		addr:   addr,
		l:      l,
		now:    time.Now,
		parser: timeparse.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler wrapped in CORS
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Tasks
	mux.HandleFunc("GET /tasks", s.listTasks)
	mux.HandleFunc("POST /tasks", s.addTask)
	mux.HandleFunc("GET /tasks/unscheduled", s.unscheduledTasks)
	mux.HandleFunc("GET /tasks/{id}", s.getTask)
	mux.HandleFunc("PATCH /tasks/{id}/toggle", s.toggleTask)
	mux.HandleFunc("DELETE /tasks/{id}", s.deleteTask)

	// Days
	mux.HandleFunc("GET /days/{date}/tasks", s.dayTasks)
	mux.HandleFunc("GET /days/{date}/slots/{hour}", s.slotTasks)
	mux.HandleFunc("POST /days/{date}/slots/{hour}", s.addSlotTask)
	mux.HandleFunc("GET /days/{date}/progress", s.dayProgress)
	mux.HandleFunc("GET /days/{date}/timeline", s.dayTimeline)
	mux.HandleFunc("GET /days/{date}/sleep", s.getSleep)
	mux.HandleFunc("PUT /days/{date}/sleep", s.putSleep)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withCORS(s.withLogging(mux))
}

// Run serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.l.Info("starting server", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.l.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		s.l.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps store and validation errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAmbiguousID):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, sleep.ErrDurationOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.l.Error("request failed", "err", err)
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
