package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/golf-edge/internal/database"
	"github.com/yourusername/golf-edge/internal/models"
)

const wagerColumns = `id, tournament, player, stake, price, american_price, outcome, profit, placed_at, settled_at`

// PostgresWagerRepository implements WagerRepository for PostgreSQL
type PostgresWagerRepository struct {
	db database.Querier
}

// NewPostgresWagerRepository creates a new wager repository
func NewPostgresWagerRepository(db database.Querier) WagerRepository {
	return &PostgresWagerRepository{db: db}
}

// SaveBatch copies a run's wagers into the wagers table
func (r *PostgresWagerRepository) SaveBatch(ctx context.Context, runID uuid.UUID, wagers []models.Wager) error {
	if len(wagers) == 0 {
		return nil
	}

	columns := []string{"id", "run_id", "tournament", "player", "stake", "price", "american_price", "outcome", "profit", "placed_at", "settled_at"}
	rows := make([][]any, len(wagers))
	for i, w := range wagers {
		rows[i] = []any{
			w.ID, runID, w.Tournament, w.Player, w.Stake, w.Price,
			w.AmericanPrice, string(w.Outcome), w.Profit, w.PlacedAt, w.SettledAt,
		}
	}

	count, err := r.db.CopyFrom(ctx, pgx.Identifier{"wagers"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert wagers: %w", err)
	}
	if count != int64(len(wagers)) {
		return fmt.Errorf("inserted %d wagers, expected %d", count, len(wagers))
	}
	return nil
}

// GetByTournament retrieves all wagers placed on a tournament
func (r *PostgresWagerRepository) GetByTournament(ctx context.Context, tournament string) ([]models.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE tournament = $1 ORDER BY placed_at ASC`

	rows, err := r.db.Query(ctx, query, tournament)
	if err != nil {
		return nil, fmt.Errorf("failed to query wagers by tournament: %w", err)
	}
	return collectWagers(rows)
}

// GetSettled retrieves the settled wagers of one run in settlement order
func (r *PostgresWagerRepository) GetSettled(ctx context.Context, runID uuid.UUID) ([]models.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers
		WHERE run_id = $1 AND outcome <> 'pending'
		ORDER BY settled_at ASC, placed_at ASC`

	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settled wagers: %w", err)
	}
	return collectWagers(rows)
}

func collectWagers(rows pgx.Rows) ([]models.Wager, error) {
	defer rows.Close()

	var wagers []models.Wager
	for rows.Next() {
		var (
			w       models.Wager
			outcome string
		)
		if err := rows.Scan(
			&w.ID, &w.Tournament, &w.Player, &w.Stake, &w.Price, &w.AmericanPrice,
			&outcome, &w.Profit, &w.PlacedAt, &w.SettledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		w.Outcome = models.Outcome(outcome)
		wagers = append(wagers, w)
	}
	return wagers, rows.Err()
}
