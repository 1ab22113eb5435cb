package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/golf-edge/internal/models"
)

// WagerRepository defines wager persistence
type WagerRepository interface {
	SaveBatch(ctx context.Context, runID uuid.UUID, wagers []models.Wager) error
	GetByTournament(ctx context.Context, tournament string) ([]models.Wager, error)
	GetSettled(ctx context.Context, runID uuid.UUID) ([]models.Wager, error)
}

// OddsRepository defines odds persistence
type OddsRepository interface {
	InsertBatch(ctx context.Context, odds []models.OddsRecord) error
	GetByTournament(ctx context.Context, tournament string, market models.MarketType) ([]models.OddsRecord, error)
	// OddsFor returns the outright board, so the repository can feed a backtest
	OddsFor(ctx context.Context, tournament string) ([]models.OddsRecord, error)
}

// BacktestResultRepository defines backtest result persistence
type BacktestResultRepository interface {
	SaveResult(ctx context.Context, result *models.BacktestResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestResult, error)
	GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error)
}
