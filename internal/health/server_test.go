package health

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type stubScheduler struct {
	running   bool
	processed int
}

func (s stubScheduler) IsRunning() bool       { return s.running }
func (s stubScheduler) GetNextRun() time.Time { return time.Date(2024, 4, 11, 12, 0, 0, 0, time.UTC) }
func (s stubScheduler) Processed() int        { return s.processed }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s := NewServer(Config{ServiceName: "golf-edge", Version: "1.0.0"})
	h := s.Handler()

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "golf-edge", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name      string
		ready     bool
		db        DatabasePinger
		scheduler ImportScheduler
		want      int
	}{
		{name: "not marked ready", ready: false, want: http.StatusServiceUnavailable},
		{name: "ready without dependencies", ready: true, want: http.StatusOK},
		{name: "database down", ready: true, db: stubPinger{err: errors.New("refused")}, want: http.StatusServiceUnavailable},
		{name: "database up", ready: true, db: stubPinger{}, scheduler: stubScheduler{running: true}, want: http.StatusOK},
		{name: "scheduler stopped", ready: true, scheduler: stubScheduler{}, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{ServiceName: "golf-edge", DB: tt.db, Scheduler: tt.scheduler})
			s.SetReady(tt.ready)
			rec := get(t, s.Handler(), "/ready")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestReadyReportsImportState(t *testing.T) {
	s := NewServer(Config{Scheduler: stubScheduler{running: true, processed: 3}})
	s.SetReady(true)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(get(t, s.Handler(), "/ready").Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "2024-04-11T12:00:00Z", resp.NextImport)
	assert.Equal(t, 3, resp.ProcessedFiles)
	assert.Equal(t, "ok", resp.Checks["import"])
}

func TestReadyReportsDatabaseError(t *testing.T) {
	s := NewServer(Config{DB: stubPinger{err: errors.New("refused")}})
	s.SetReady(true)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(get(t, s.Handler(), "/ready").Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "error: refused", resp.Checks["database"])
}

func TestMetricsRoute(t *testing.T) {
	rec := get(t, NewServer(Config{}).Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "golf_edge_")

	custom := NewServer(Config{MetricsPath: "/internal/metrics"}).Handler()
	assert.Equal(t, http.StatusOK, get(t, custom, "/internal/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(t, custom, "/metrics").Code)
}

func TestStartAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := NewServer(Config{Port: port})
	require.NoError(t, s.Start())

	// a second bind on the same port fails up front
	assert.Error(t, NewServer(Config{Port: port}).Start())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}
