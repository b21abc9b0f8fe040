// Package daemon provides the long-running local HTTP service over one
// shared tracker.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/tracker"
	"github.com/theirongolddev/kcal/internal/watch"
)

// EventStateChanged is the type of every event published after the
// tracker's state or viewing day changes.
const EventStateChanged = "state_changed"

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	// DBPath is watched for writes from other processes. Empty disables
	// reloading.
	DBPath string
	// Interval is how often the service checks for a new local day.
	Interval time.Duration
}

// Event is emitted whenever the tracker changes.
type Event struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Cause     string          `json:"cause"`
	Timestamp time.Time       `json:"timestamp"`
	Dashboard model.Dashboard `json:"dashboard"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastReloadAt    time.Time `json:"last_reload_at,omitempty"`
	ReloadCount     int64     `json:"reload_count"`
	DBPath          string    `json:"db_path,omitempty"`
	Today           string    `json:"today"`
	Viewing         string    `json:"viewing"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// MutationResult is the body of every mutating endpoint.
type MutationResult struct {
	Changed   bool            `json:"changed"`
	Dashboard model.Dashboard `json:"dashboard"`
	Preset    *model.Preset   `json:"preset,omitempty"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	tracker *tracker.Tracker

	mu           sync.RWMutex
	startedAt    time.Time
	lastReloadAt time.Time
	reloadCount  int64
	lastError    string
	fingerprint  string
	today        string
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service serving t.
func New(cfg Config, t *tracker.Tracker) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = time.Minute
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8797"
	}

	s := &Service{
		cfg:       cfg,
		tracker:   t,
		startedAt: time.Now(),
		today:     t.Today(),
		subs:      make(map[int]chan Event),
	}
	s.fingerprint = s.currentFingerprint()
	return s
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)

	mux.HandleFunc("GET /v1/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /v1/chart", s.handleChart)
	mux.HandleFunc("GET /v1/history", s.handleHistory)
	mux.HandleFunc("GET /v1/presets", s.handlePresets)

	mux.HandleFunc("POST /v1/navigate", s.handleNavigate)
	mux.HandleFunc("POST /v1/adjust", s.handleAdjust)
	mux.HandleFunc("POST /v1/calories", s.handleSetCalories)
	mux.HandleFunc("POST /v1/goal", s.handleSetGoal)
	mux.HandleFunc("POST /v1/presets", s.handleAddPreset)
	mux.HandleFunc("DELETE /v1/presets/{id}", s.handleDeletePreset)
	mux.HandleFunc("POST /v1/presets/{id}/apply", s.handleApplyPreset)
	return mux
}

// Run serves the HTTP API and watches the store until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if s.cfg.DBPath != "" {
		w, err := watch.New(s.cfg.DBPath, log.Default())
		if err != nil {
			log.Printf("kcal daemon watch disabled: %v", err)
			s.setError(err)
		} else {
			defer func() { _ = w.Close() }()
			go w.Run(ctx, s.reload)
		}
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.checkDay()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// reload re-reads the store after another process wrote it and publishes
// an event when anything visible changed.
func (s *Service) reload() {
	s.tracker.Reload()

	s.mu.Lock()
	s.lastReloadAt = time.Now()
	s.reloadCount++
	s.mu.Unlock()

	s.publishIfChanged("reload")
}

// checkDay publishes an event when the local date rolls over.
func (s *Service) checkDay() {
	today := s.tracker.Today()

	s.mu.Lock()
	rolled := today != s.today
	s.today = today
	s.mu.Unlock()

	if rolled {
		s.publishChange("day_rollover")
	}
}

func (s *Service) currentFingerprint() string {
	data, err := json.Marshal(struct {
		State   model.State    `json:"state"`
		Presets []model.Preset `json:"presets"`
		Viewing string         `json:"viewing"`
	}{s.tracker.State(), s.tracker.Presets(), s.tracker.Viewing()})
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Service) publishIfChanged(cause string) {
	fp := s.currentFingerprint()

	s.mu.Lock()
	same := fp == s.fingerprint
	s.fingerprint = fp
	s.mu.Unlock()

	if !same {
		s.publishChange(cause)
	}
}

func (s *Service) publishChange(cause string) {
	dash := s.tracker.Dashboard()

	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      EventStateChanged,
		Cause:     cause,
		Timestamp: time.Now(),
		Dashboard: dash,
	}
	s.mu.Unlock()

	s.publishEvent(ev)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.lastError = ""
		return
	}
	s.lastError = err.Error()
}

func (s *Service) snapshotStatus() Status {
	today := s.tracker.Today()
	viewing := s.tracker.Viewing()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastReloadAt:    s.lastReloadAt,
		ReloadCount:     s.reloadCount,
		DBPath:          s.cfg.DBPath,
		Today:           today,
		Viewing:         viewing,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current dashboard immediately.
	writeSSE(w, Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Dashboard: s.tracker.Dashboard(),
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
