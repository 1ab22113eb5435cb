package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/golf-edge/internal/config"
)

func TestConnString(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Name: "golf", User: "edge", Password: "secret"}
	assert.Equal(t, "host=db port=5432 user=edge password=secret dbname=golf sslmode=disable", ConnString(cfg))

	cfg.Port = 6543
	cfg.SSLMode = "require"
	assert.Equal(t, "host=db port=6543 user=edge password=secret dbname=golf sslmode=require", ConnString(cfg))
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	db := SetupTestDB(t)
	defer TeardownTestDB(t, db)

	require.NoError(t, db.EnsureSchema(context.Background()))
	require.NoError(t, db.Ping(context.Background()))
}

func TestWithTransactionRollsBack(t *testing.T) {
	db := SetupTestDB(t)
	defer TeardownTestDB(t, db)
	ctx := context.Background()

	insert := `INSERT INTO odds (tournament, date, player, market_type, decimal_odds, implied_probability)
		VALUES ('Rollback Open', '2024-04-11', 'Alpha', 'outright', 3.0, 0.3333)`
	boom := errors.New("boom")
	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insert); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.Pool().QueryRow(ctx, "SELECT COUNT(*) FROM odds WHERE tournament = 'Rollback Open'").Scan(&n))
	assert.Equal(t, 0, n)

	require.NoError(t, db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insert)
		return err
	}))
	require.NoError(t, db.Pool().QueryRow(ctx, "SELECT COUNT(*) FROM odds WHERE tournament = 'Rollback Open'").Scan(&n))
	assert.Equal(t, 1, n)
}
