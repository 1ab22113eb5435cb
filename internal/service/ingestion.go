package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/golf-edge/internal/datasource"
	"github.com/yourusername/golf-edge/internal/logger"
	"github.com/yourusername/golf-edge/internal/metrics"
	"github.com/yourusername/golf-edge/internal/models"
	"github.com/yourusername/golf-edge/internal/repository"
)

// IngestionService imports odds exports into the odds repository
type IngestionService struct {
	oddsRepo  repository.OddsRepository
	audit     *logger.AuditLogger
	metrics   *IngestionMetrics
	logger    *logrus.Entry
	batchSize int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(oddsRepo repository.OddsRepository, log *logrus.Logger, batchSize int) *IngestionService {
	if batchSize <= 0 {
		batchSize = 500
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &IngestionService{
		oddsRepo:  oddsRepo,
		audit:     logger.NewAuditLogger(log),
		metrics:   NewIngestionMetrics(),
		logger:    log.WithField("component", "ingestion"),
		batchSize: batchSize,
	}
}

// ImportFile parses one odds CSV and inserts it in batches. A malformed file
// is rejected as a whole; nothing from it is written.
func (s *IngestionService) ImportFile(ctx context.Context, path string) (int, error) {
	s.logger.WithField("path", path).Info("Starting odds import")

	records, err := datasource.ReadOddsCSVFile(path)
	if err != nil {
		var recordErr *datasource.RecordError
		if errors.As(err, &recordErr) || errors.Is(err, models.ErrMissingColumn) {
			s.metrics.RecordValidationError()
		} else {
			s.metrics.RecordError()
		}
		s.metrics.RecordFile(true)
		metrics.RecordOddsImported("rejected", 1)
		s.audit.LogOddsImport(path, 0, err)
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	inserted, err := s.ImportRecords(ctx, records)
	s.metrics.RecordFile(err != nil)
	s.audit.LogOddsImport(path, inserted, err)
	if err != nil {
		return inserted, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return inserted, nil
}

// ImportRecords inserts already parsed records in batches and returns the
// number written. It stops at the first failed batch.
func (s *IngestionService) ImportRecords(ctx context.Context, records []models.OddsRecord) (int, error) {
	start := time.Now()
	inserted := 0

	for i := 0; i < len(records); i += s.batchSize {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		end := i + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]

		if err := s.oddsRepo.InsertBatch(ctx, batch); err != nil {
			s.metrics.RecordError()
			metrics.RecordOddsImported("failed", len(batch))
			s.logger.WithError(err).WithField("batch_start", i).Error("Error inserting odds batch")
			return inserted, err
		}

		inserted += len(batch)
		s.metrics.RecordBatch(len(batch))
		metrics.RecordOddsImported("imported", len(batch))
	}

	s.metrics.Finish()
	s.logger.WithFields(logrus.Fields{
		"records":     inserted,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Odds import complete")
	return inserted, nil
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}

// ResetMetrics resets ingestion metrics
func (s *IngestionService) ResetMetrics() {
	s.metrics.Reset()
}
