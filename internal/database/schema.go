package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS wagers (
		id             UUID PRIMARY KEY,
		run_id         UUID,
		tournament     TEXT NOT NULL,
		player         TEXT NOT NULL,
		stake          DOUBLE PRECISION NOT NULL CHECK (stake > 0),
		price          DOUBLE PRECISION NOT NULL CHECK (price > 1),
		american_price INTEGER,
		outcome        TEXT NOT NULL DEFAULT 'pending',
		profit         DOUBLE PRECISION,
		placed_at      TIMESTAMPTZ NOT NULL,
		settled_at     TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wagers_tournament ON wagers (tournament)`,
	`CREATE TABLE IF NOT EXISTS odds (
		tournament          TEXT NOT NULL,
		date                DATE NOT NULL,
		player              TEXT NOT NULL,
		market_type         TEXT NOT NULL,
		bookmaker           TEXT NOT NULL DEFAULT '',
		american_odds       INTEGER,
		decimal_odds        DOUBLE PRECISION NOT NULL CHECK (decimal_odds > 1),
		implied_probability DOUBLE PRECISION NOT NULL,
		imported_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_odds_tournament ON odds (tournament, market_type)`,
	`CREATE TABLE IF NOT EXISTS backtest_results (
		id               UUID PRIMARY KEY,
		strategy_name    TEXT NOT NULL,
		start_date       TIMESTAMPTZ,
		end_date         TIMESTAMPTZ,
		initial_bankroll DOUBLE PRECISION NOT NULL,
		final_bankroll   DOUBLE PRECISION NOT NULL,
		total_bets       INTEGER NOT NULL,
		winning_bets     INTEGER NOT NULL,
		roi              DOUBLE PRECISION NOT NULL,
		sharpe_ratio     DOUBLE PRECISION NOT NULL,
		max_drawdown     DOUBLE PRECISION NOT NULL,
		p_value          DOUBLE PRECISION NOT NULL,
		is_significant   BOOLEAN NOT NULL,
		verdict          TEXT NOT NULL,
		parameters       JSONB,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the wagers, odds and backtest_results tables if missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
