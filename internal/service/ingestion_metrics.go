package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about odds ingestion
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	Files            int
	FailedFiles      int
	Records          int
	Batches          int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{StartTime: time.Now()}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.Files = 0
	m.FailedFiles = 0
	m.Records = 0
	m.Batches = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordFile counts one file and whether it failed
func (m *IngestionMetrics) RecordFile(failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files++
	if failed {
		m.FailedFiles++
	}
}

// RecordBatch counts one inserted batch of records
func (m *IngestionMetrics) RecordBatch(records int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Batches++
	m.Records += records
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// RecordValidationError increments validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// Finish stamps the elapsed duration
func (m *IngestionMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// Snapshot returns a copy safe to read without the lock
func (m *IngestionMetrics) Snapshot() IngestionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return IngestionMetrics{
		StartTime:        m.StartTime,
		Duration:         m.Duration,
		Files:            m.Files,
		FailedFiles:      m.FailedFiles,
		Records:          m.Records,
		Batches:          m.Batches,
		ValidationErrors: m.ValidationErrors,
		Errors:           m.Errors,
	}
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{Files=%d, Failed=%d, Records=%d, Batches=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.Files, m.FailedFiles, m.Records, m.Batches, m.ValidationErrors, m.Errors, m.Duration,
	)
}
