package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/golf-edge/internal/database"
	"github.com/yourusername/golf-edge/internal/models"
)

// PostgresBacktestResultRepository implements BacktestResultRepository for PostgreSQL
type PostgresBacktestResultRepository struct {
	db database.Querier
}

// NewPostgresBacktestResultRepository creates a new backtest result repository
func NewPostgresBacktestResultRepository(db database.Querier) BacktestResultRepository {
	return &PostgresBacktestResultRepository{db: db}
}

// SaveResult inserts a backtest result, assigning an ID and timestamp when unset
func (r *PostgresBacktestResultRepository) SaveResult(ctx context.Context, result *models.BacktestResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO backtest_results (
			id, strategy_name, start_date, end_date, initial_bankroll, final_bankroll,
			total_bets, winning_bets, roi, sharpe_ratio, max_drawdown, p_value,
			is_significant, verdict, parameters, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`

	_, err := r.db.Exec(ctx, query,
		result.ID, result.StrategyName, result.StartDate, result.EndDate, result.InitialBankroll, result.FinalBankroll,
		result.TotalBets, result.WinningBets, result.ROI, result.SharpeRatio, result.MaxDrawdown, result.PValue,
		result.IsSignificant, result.Verdict, []byte(result.Parameters), result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save backtest result: %w", err)
	}
	return nil
}

const resultColumns = `id, strategy_name, start_date, end_date, initial_bankroll, final_bankroll,
			total_bets, winning_bets, roi, sharpe_ratio, max_drawdown, p_value,
			is_significant, verdict, parameters, created_at`

// GetByID retrieves one backtest result; a missing row is models.ErrNotFound
func (r *PostgresBacktestResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestResult, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resultColumns+` FROM backtest_results WHERE id = $1`, id)
	result, err := scanResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("backtest result %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get backtest result: %w", err)
	}
	return result, nil
}

// GetLatest retrieves the most recent backtest results
func (r *PostgresBacktestResultRepository) GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error) {
	query := `SELECT ` + resultColumns + ` FROM backtest_results ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest backtest results: %w", err)
	}
	defer rows.Close()

	var results []*models.BacktestResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan backtest result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func scanResult(row pgx.Row) (*models.BacktestResult, error) {
	result := &models.BacktestResult{}
	var params []byte
	if err := row.Scan(
		&result.ID, &result.StrategyName, &result.StartDate, &result.EndDate, &result.InitialBankroll, &result.FinalBankroll,
		&result.TotalBets, &result.WinningBets, &result.ROI, &result.SharpeRatio, &result.MaxDrawdown, &result.PValue,
		&result.IsSignificant, &result.Verdict, &params, &result.CreatedAt,
	); err != nil {
		return nil, err
	}
	result.Parameters = params
	return result, nil
}
