// Package fakeapi is an in-memory stand-in for the Be+ activities and
// rockie endpoints, used for local development and tests.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request is one request as seen by the fake.
type Request struct {
	Method string
	Path   string
	Query  string
	Token  string
}

type activity struct {
	ActivityID   string          `json:"activity_id"`
	ActivityType string          `json:"activity_type"`
	ActivityData json.RawMessage `json:"activity_data,omitempty"`
}

type rockieData struct {
	RockieName string `json:"rockie_name"`
	Evolution  string `json:"evolution"`
}

type rockie struct {
	TenantID     string     `json:"tenant_id"`
	StudentID    string     `json:"student_id"`
	Level        int        `json:"level"`
	Experience   int        `json:"experience"`
	CreationDate string     `json:"creation_date"`
	RockieData   rockieData `json:"rockie_data"`
}

type failure struct {
	status int
	body   string
}

// Server holds all state behind one mutex.
type Server struct {
	mu         sync.Mutex
	activities map[identity][]activity
	rockies    map[identity]*rockie
	failures   map[string]failure
	requests   []Request

	now     func() time.Time
	metrics *metrics
	router  *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the time source used for creation dates.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates an empty fake.
func New(opts ...Option) *Server {
	s := &Server{
		activities: make(map[identity][]activity),
		rockies:    make(map[identity]*rockie),
		failures:   make(map[string]failure),
		now:        time.Now,
		metrics:    newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metrics.middleware)

	api := func(h http.HandlerFunc) http.Handler {
		return s.recordRequest(s.injectFailure(h))
	}
	r.Handle("/activities", api(s.listActivities)).Methods(http.MethodGet)
	r.Handle("/activities", api(s.createActivity)).Methods(http.MethodPost)
	r.Handle("/activities", api(s.deleteActivity)).Methods(http.MethodDelete)
	r.Handle("/rockie", api(s.getRockie)).Methods(http.MethodGet)
	r.Handle("/rockie", api(s.createRockie)).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Requests returns every API request served so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// FailNext makes the next request to method+path answer with status and a
// raw body instead of reaching its handler.
func (s *Server) FailNext(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// SeedActivity stores an activity for the caller identified by token.
func (s *Server) SeedActivity(token, activityType string, data json.RawMessage) string {
	id := identityForToken(token)
	a := activity{ActivityID: uuid.NewString(), ActivityType: activityType, ActivityData: data}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[id] = append(s.activities[id], a)
	s.updateGauges()
	return a.ActivityID
}

func identityForToken(token string) identity {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", token)
	id, _ := identify(r)
	return id
}

func (s *Server) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Token:  r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		f, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	})
}

func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	s.mu.Lock()
	items := append([]activity{}, s.activities[id]...)
	s.mu.Unlock()

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"body": map[string]any{"items": items, "count": len(items)},
	})
}

func (s *Server) createActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ActivityType string          `json:"activity_type"`
		ActivityData json.RawMessage `json:"activity_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}
	if strings.TrimSpace(req.ActivityType) == "" {
		writeError(w, http.StatusBadRequest, "activity_type is required")
		return
	}

	a := activity{ActivityID: uuid.NewString(), ActivityType: req.ActivityType, ActivityData: req.ActivityData}
	s.mu.Lock()
	s.activities[id] = append(s.activities[id], a)
	s.updateGauges()
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Activity created", "body": a})
}

func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ActivityID string `json:"activity_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActivityID == "" {
		writeError(w, http.StatusBadRequest, "activity_id is required")
		return
	}

	s.mu.Lock()
	items := s.activities[id]
	found := false
	for i, a := range items {
		if a.ActivityID == req.ActivityID {
			s.activities[id] = append(items[:i:i], items[i+1:]...)
			found = true
			break
		}
	}
	s.updateGauges()
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Activity not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Activity deleted", "body": map[string]string{"activity_id": req.ActivityID}})
}

func (s *Server) getRockie(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.mu.Lock()
	rk := s.rockies[id]
	s.mu.Unlock()

	if rk == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Rockie not found", "body": map[string]any{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"body": rk})
}

func (s *Server) createRockie(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		RockieName string `json:"rockie_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.RockieName) == "" {
		writeError(w, http.StatusBadRequest, "rockie_name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rockies[id] != nil {
		writeError(w, http.StatusConflict, "Rockie already exists")
		return
	}
	rk := &rockie{
		TenantID:     id.TenantID,
		StudentID:    id.StudentID,
		Level:        1,
		Experience:   0,
		CreationDate: s.now().UTC().Format(time.RFC3339),
		RockieData:   rockieData{RockieName: req.RockieName, Evolution: "pebble"},
	}
	s.rockies[id] = rk
	s.updateGauges()

	writeJSON(w, http.StatusOK, map[string]any{"body": rk})
}

// updateGauges must be called with s.mu held.
func (s *Server) updateGauges() {
	total := 0
	for _, items := range s.activities {
		total += len(items)
	}
	s.metrics.items.WithLabelValues("activities").Set(float64(total))
	s.metrics.items.WithLabelValues("rockie").Set(float64(len(s.rockies)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
