package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/golf-edge/internal/database"
	"github.com/yourusername/golf-edge/internal/models"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(sql, args)
	return called.Get(0).(pgconn.CommandTag), called.Error(1)
}

func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	called := m.Called(sql, args)
	rows, _ := called.Get(0).(pgx.Rows)
	return rows, called.Error(1)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(sql, args).Get(0).(pgx.Row)
}

func (m *mockQuerier) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	rows := 0
	for src.Next() {
		rows++
	}
	called := m.Called(table, columns, rows)
	return called.Get(0).(int64), called.Error(1)
}

func settledWager(t *testing.T, player string, outcome models.Outcome) models.Wager {
	t.Helper()
	w, err := models.NewWager("The Masters", player, 50, 5, nil)
	require.NoError(t, err)
	require.NoError(t, w.Settle(outcome, time.Now().UTC()))
	return *w
}

func TestWagerSaveBatchCopiesEveryRow(t *testing.T) {
	q := &mockQuerier{}
	q.On("CopyFrom", pgx.Identifier{"wagers"}, mock.Anything, 2).Return(int64(2), nil)

	repo := NewPostgresWagerRepository(q)
	err := repo.SaveBatch(context.Background(), uuid.New(), []models.Wager{
		settledWager(t, "Scottie Scheffler", models.OutcomeWon),
		settledWager(t, "Rory McIlroy", models.OutcomeLost),
	})
	require.NoError(t, err)
	q.AssertExpectations(t)
}

func TestWagerSaveBatchShortCopy(t *testing.T) {
	q := &mockQuerier{}
	q.On("CopyFrom", pgx.Identifier{"wagers"}, mock.Anything, 1).Return(int64(0), nil)

	err := NewPostgresWagerRepository(q).SaveBatch(context.Background(), uuid.New(), []models.Wager{
		settledWager(t, "Scottie Scheffler", models.OutcomeWon),
	})
	assert.Error(t, err)
}

func TestWagerSaveBatchEmptyIsNoop(t *testing.T) {
	q := &mockQuerier{}
	require.NoError(t, NewPostgresWagerRepository(q).SaveBatch(context.Background(), uuid.New(), nil))
	q.AssertNotCalled(t, "CopyFrom", mock.Anything, mock.Anything, mock.Anything)
}

func TestOddsInsertBatchWrapsErrors(t *testing.T) {
	q := &mockQuerier{}
	q.On("CopyFrom", pgx.Identifier{"odds"}, oddsColumns, 1).Return(int64(0), errors.New("connection reset"))

	err := NewPostgresOddsRepository(q).InsertBatch(context.Background(), []models.OddsRecord{
		{Tournament: "The Masters", Player: "Rory McIlroy", DecimalOdds: 12, ImpliedProbability: 1.0 / 12, MarketType: models.MarketTypeOutright},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestBacktestResultSaveAssignsIdentity(t *testing.T) {
	q := &mockQuerier{}
	q.On("Exec", mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	result := &models.BacktestResult{StrategyName: "weather", Verdict: "NO_EDGE"}
	require.NoError(t, NewPostgresBacktestResultRepository(q).SaveResult(context.Background(), result))

	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.False(t, result.CreatedAt.IsZero())
	q.AssertExpectations(t)
}

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

func TestBacktestResultGetByIDNotFound(t *testing.T) {
	q := &mockQuerier{}
	q.On("QueryRow", mock.Anything, mock.Anything).Return(errRow{err: pgx.ErrNoRows})

	_, err := NewPostgresBacktestResultRepository(q).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRepositoriesRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runID := uuid.New()
	wagers := []models.Wager{
		settledWager(t, "Scottie Scheffler", models.OutcomeWon),
		settledWager(t, "Rory McIlroy", models.OutcomeLost),
	}
	require.NoError(t, repos.Wager.SaveBatch(ctx, runID, wagers))

	settled, err := repos.Wager.GetSettled(ctx, runID)
	require.NoError(t, err)
	assert.Len(t, settled, 2)

	byTournament, err := repos.Wager.GetByTournament(ctx, "The Masters")
	require.NoError(t, err)
	assert.Len(t, byTournament, 2)

	odds := []models.OddsRecord{{
		Tournament: "The Masters", Date: time.Date(2024, 4, 11, 0, 0, 0, 0, time.UTC),
		Player: "Rory McIlroy", DecimalOdds: 12, ImpliedProbability: 1.0 / 12,
		MarketType: models.MarketTypeOutright,
	}}
	require.NoError(t, repos.Odds.InsertBatch(ctx, odds))
	board, err := repos.Odds.GetByTournament(ctx, "The Masters", models.MarketTypeOutright)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 12.0, board[0].DecimalOdds)

	result := &models.BacktestResult{StrategyName: "weather", Verdict: "NO_EDGE", Parameters: []byte(`{"kelly_fraction":0.25}`)}
	require.NoError(t, repos.BacktestResult.SaveResult(ctx, result))
	latest, err := repos.BacktestResult.GetLatest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, result.ID, latest[0].ID)

	fetched, err := repos.BacktestResult.GetByID(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, "NO_EDGE", fetched.Verdict)
}

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)
}
