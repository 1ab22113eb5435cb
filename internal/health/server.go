// Package health serves the liveness, readiness and metrics routes of the
// odds import daemon.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/golf-edge/internal/metrics"
)

const (
	defaultPort        = 9090
	defaultMetricsPath = "/metrics"
	pingTimeout        = 3 * time.Second
)

// DatabasePinger checks that the odds store is reachable.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// ImportScheduler reports the state of the scheduled odds import.
type ImportScheduler interface {
	IsRunning() bool
	GetNextRun() time.Time
	Processed() int
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse is the body of /ready.
type ReadyResponse struct {
	Status         string            `json:"status"`
	Checks         map[string]string `json:"checks"`
	NextImport     string            `json:"next_import,omitempty"`
	ProcessedFiles int               `json:"processed_files"`
}

// Config holds the health server settings.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        int
	MetricsPath string
	Logger      *logrus.Logger
	DB          DatabasePinger
	Scheduler   ImportScheduler
}

// Server exposes health and metrics over HTTP.
type Server struct {
	cfg    Config
	server *http.Server

	mu    sync.RWMutex
	ready bool
}

// NewServer creates a health server. The port defaults to 9090 and the
// metrics path to /metrics.
func NewServer(cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = defaultMetricsPath
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Server{cfg: cfg}
}

// SetReady marks whether the daemon accepts work.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns the flag set by SetReady.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle(s.cfg.MetricsPath, metrics.Handler())
	return mux
}

// Start binds the port and serves in the background. A bind failure is
// returned to the caller.
func (s *Server) Start() error {
	addr := ":" + strconv.Itoa(s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.cfg.Logger.WithFields(logrus.Fields{
		"addr":    addr,
		"metrics": s.cfg.MetricsPath,
	}).Info("Health server listening")

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.cfg.Logger.WithError(err).Error("Health server error")
		}
	}()
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
	})
}

// handleReady is 503 until SetReady(true), and while the database or the
// import schedule is down.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{Status: "ok", Checks: map[string]string{"service": "ok"}}
	fail := func(check, state string) {
		resp.Status = "not_ready"
		resp.Checks[check] = state
	}

	if !s.IsReady() {
		fail("service", "not_ready")
	}

	if s.cfg.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := s.cfg.DB.Ping(ctx); err != nil {
			fail("database", "error: "+err.Error())
		} else {
			resp.Checks["database"] = "ok"
		}
	}

	if sched := s.cfg.Scheduler; sched != nil {
		resp.ProcessedFiles = sched.Processed()
		if !sched.IsRunning() {
			fail("import", "stopped")
		} else {
			resp.Checks["import"] = "ok"
			if next := sched.GetNextRun(); !next.IsZero() {
				resp.NextImport = next.UTC().Format(time.RFC3339)
			}
		}
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
