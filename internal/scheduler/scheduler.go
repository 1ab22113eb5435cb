package scheduler

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Importer imports one odds file and returns the number of records written
type Importer interface {
	ImportFile(ctx context.Context, path string) (int, error)
}

// Scheduler runs periodic odds imports from a watch directory
type Scheduler struct {
	cron            *cron.Cron
	importer        Importer
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration

	processedMu sync.Mutex
	processed   map[string]time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(importer Importer, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		importer:        importer,
		logger:          logger.WithField("component", "scheduler"),
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
		processed:       make(map[string]time.Time),
	}
}

// ScheduleDirectoryImport schedules a scan of dir for new *.csv files
func (s *Scheduler) ScheduleDirectoryImport(cronExpression, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		imported, err := s.ImportNewFiles(ctx, dir)
		if err != nil {
			s.logger.WithError(err).WithField("dir", dir).Error("Scheduled odds import failed")
			return
		}
		if imported > 0 {
			s.logger.WithFields(logrus.Fields{"dir": dir, "files": imported}).Info("Scheduled odds import completed")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{"cron": cronExpression, "dir": dir}).Info("Scheduled directory import")
	return nil
}

// ImportNewFiles imports every *.csv in dir not seen before, in name order.
// A file that fails is still marked as processed so it is not retried every tick.
func (s *Scheduler) ImportNewFiles(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read watch directory: %w", err)
	}

	var pending []string
	s.processedMu.Lock()
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, seen := s.processed[path]; !seen {
			pending = append(pending, path)
		}
	}
	s.processedMu.Unlock()
	sort.Strings(pending)

	imported := 0
	for _, path := range pending {
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		rows, err := s.importer.ImportFile(ctx, path)
		s.markProcessed(path)
		if err != nil {
			s.logger.WithError(err).WithField("path", path).Warn("Odds file rejected")
			continue
		}
		imported++
		s.logger.WithFields(logrus.Fields{"path": path, "rows": rows}).Info("Odds file imported")
	}
	return imported, nil
}

func (s *Scheduler) markProcessed(path string) {
	s.processedMu.Lock()
	defer s.processedMu.Unlock()
	s.processed[path] = time.Now().UTC()
}

// Processed returns the number of files already handled
func (s *Scheduler) Processed() int {
	s.processedMu.Lock()
	defer s.processedMu.Unlock()
	return len(s.processed)
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop waits for running jobs up to the graceful timeout, then stops
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler did not stop within %v", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}
	return nextRun
}
