package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/golf-edge/internal/database"
	"github.com/yourusername/golf-edge/internal/models"
)

var oddsColumns = []string{"tournament", "date", "player", "market_type", "bookmaker", "american_odds", "decimal_odds", "implied_probability"}

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db database.Querier
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db database.Querier) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// InsertBatch inserts odds records using COPY
func (o *PostgresOddsRepository) InsertBatch(ctx context.Context, odds []models.OddsRecord) error {
	if len(odds) == 0 {
		return nil
	}

	rows := make([][]any, len(odds))
	for i, rec := range odds {
		rows[i] = []any{
			rec.Tournament, rec.Date, rec.Player, string(rec.MarketType), rec.Bookmaker,
			rec.AmericanOdds, rec.DecimalOdds, rec.ImpliedProbability,
		}
	}

	count, err := o.db.CopyFrom(ctx, pgx.Identifier{"odds"}, oddsColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert odds: %w", err)
	}
	if count != int64(len(odds)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(odds))
	}
	return nil
}

// GetByTournament retrieves one market's board for a tournament
func (o *PostgresOddsRepository) GetByTournament(ctx context.Context, tournament string, market models.MarketType) ([]models.OddsRecord, error) {
	query := `
		SELECT tournament, date, player, market_type, bookmaker, american_odds, decimal_odds, implied_probability
		FROM odds
		WHERE tournament = $1 AND market_type = $2
		ORDER BY imported_at ASC, player ASC
	`

	rows, err := o.db.Query(ctx, query, tournament, string(market))
	if err != nil {
		return nil, fmt.Errorf("failed to query odds by tournament: %w", err)
	}
	defer rows.Close()

	var records []models.OddsRecord
	for rows.Next() {
		var (
			rec        models.OddsRecord
			marketType string
		)
		if err := rows.Scan(
			&rec.Tournament, &rec.Date, &rec.Player, &marketType, &rec.Bookmaker,
			&rec.AmericanOdds, &rec.DecimalOdds, &rec.ImpliedProbability,
		); err != nil {
			return nil, fmt.Errorf("failed to scan odds: %w", err)
		}
		rec.MarketType = models.MarketType(marketType)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// OddsFor returns the outright board for a tournament, letting the
// repository act as a backtest odds source.
func (o *PostgresOddsRepository) OddsFor(ctx context.Context, tournament string) ([]models.OddsRecord, error) {
	return o.GetByTournament(ctx, tournament, models.MarketTypeOutright)
}
