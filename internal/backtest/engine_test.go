package backtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/golf-edge/internal/models"
	"github.com/yourusername/golf-edge/internal/strategy"
)

type fixedEstimator struct {
	dist  strategy.Distribution
	calls int
}

func (e *fixedEstimator) Name() string { return "fixed" }

func (e *fixedEstimator) Estimate(tournament *models.Tournament) strategy.Distribution {
	e.calls++
	return e.dist
}

type fakeTournaments struct {
	tournaments []models.Tournament
	err         error
}

func (f *fakeTournaments) Tournaments(ctx context.Context, start, end time.Time) ([]models.Tournament, error) {
	return f.tournaments, f.err
}

type fakeOdds struct{ boards map[string][]models.OddsRecord }

func (f *fakeOdds) OddsFor(ctx context.Context, tournament string) ([]models.OddsRecord, error) {
	return f.boards[tournament], nil
}

type fakeWeather struct{ calls int }

func (f *fakeWeather) TournamentWeather(ctx context.Context, course string, start time.Time) (*models.WeatherSummary, error) {
	f.calls++
	return &models.WeatherSummary{AvgWindMPH: 12}, nil
}

func board(tournament string) []models.OddsRecord {
	prices := map[string]float64{"Alpha": 3.0, "Bravo": 5.0, "Charlie": 4.0}
	var records []models.OddsRecord
	for player, price := range prices {
		records = append(records, models.OddsRecord{
			Tournament:  tournament,
			Player:      player,
			DecimalOdds: price,
			MarketType:  models.MarketTypeOutright,
		})
	}
	return records
}

// newTestEngine bets Alpha (edge 0.5 at 3.0) and Bravo (edge 0.5 at 5.0) in every event
func newTestEngine(t *testing.T, tournaments []models.Tournament, opts ...EngineOption) (*Engine, *fixedEstimator) {
	t.Helper()
	estimator := &fixedEstimator{dist: strategy.Distribution{"Alpha": 0.5, "Bravo": 0.3, "Charlie": 0.2}}
	odds := &fakeOdds{boards: map[string][]models.OddsRecord{}}
	for _, tour := range tournaments {
		odds.boards[tour.Name] = board(tour.Name)
	}

	cfg := BacktestConfig{
		Estimator: "fixed",
		Staking:   strategy.DefaultStakingParameters(),
		Report:    DefaultReportOptions(),
	}
	engine, err := NewEngine(cfg, estimator, &fakeTournaments{tournaments: tournaments}, odds, opts...)
	require.NoError(t, err)
	return engine, estimator
}

func TestEngineRunSettlesAgainstWinner(t *testing.T) {
	day := time.Date(2024, 4, 11, 0, 0, 0, 0, time.UTC)
	tournaments := []models.Tournament{
		{Name: "RBC Heritage", Date: day.AddDate(0, 0, 7)},
		{Name: "The Masters", Date: day, Winner: "alpha"},
	}
	engine, estimator := newTestEngine(t, tournaments)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, estimator.calls)
	assert.Equal(t, 2, result.Tournaments)
	require.Len(t, result.Wagers, 4)

	masters := result.Wagers[:2]
	assert.Equal(t, "The Masters", masters[0].Tournament)
	assert.Equal(t, day, masters[0].PlacedAt)
	require.NotNil(t, masters[0].SettledAt)
	assert.Equal(t, day.Add(tournamentLength), *masters[0].SettledAt)

	byPlayer := map[string]models.Wager{}
	for _, w := range masters {
		byPlayer[w.Player] = w
	}
	assert.Equal(t, models.OutcomeWon, byPlayer["Alpha"].Outcome)
	assert.InDelta(t, 50.0, byPlayer["Alpha"].Stake, 1e-9)
	assert.Equal(t, models.OutcomeLost, byPlayer["Bravo"].Outcome)
	assert.InDelta(t, 31.25, byPlayer["Bravo"].Stake, 1e-9)

	for _, w := range result.Wagers[2:] {
		assert.Equal(t, models.OutcomePending, w.Outcome)
	}

	assert.Equal(t, 2, result.Report.TotalBets)
	assert.Equal(t, 2, result.Report.PendingBets)
	assert.InDelta(t, 68.75, result.Report.TotalProfit, 1e-9)
	assert.InDelta(t, 1068.75, result.Report.FinalBankroll, 1e-9)
	assert.Len(t, result.EquityCurve, 2)
}

func TestEngineEnrichesWeather(t *testing.T) {
	weather := &fakeWeather{}
	tournaments := []models.Tournament{{Name: "The Open", Date: time.Date(2024, 7, 18, 0, 0, 0, 0, time.UTC), Course: "Royal Troon"}}
	engine, _ := newTestEngine(t, tournaments, WithWeather(weather))
	engine.config.EnrichWeather = true

	_, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, weather.calls)
}

func TestEngineNoValueBets(t *testing.T) {
	tournaments := []models.Tournament{{Name: "The Masters", Date: time.Now(), Winner: "Alpha"}}
	engine, estimator := newTestEngine(t, tournaments)
	estimator.dist = strategy.Distribution{"Alpha": 0.1, "Bravo": 0.1, "Charlie": 0.8}
	engine.config.Staking.MinEdge = 5

	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Wagers)
	assert.Equal(t, VerdictNoEdge, Verdict(result.Report))
}

func TestEngineCancelled(t *testing.T) {
	tournaments := []models.Tournament{{Name: "The Masters", Date: time.Now()}}
	engine, _ := newTestEngine(t, tournaments)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineSourceError(t *testing.T) {
	cfg := BacktestConfig{Estimator: "fixed", Staking: strategy.DefaultStakingParameters()}
	source := &fakeTournaments{err: errors.New("file missing")}
	engine, err := NewEngine(cfg, &fixedEstimator{}, source, &fakeOdds{})
	require.NoError(t, err)

	_, err = engine.Run(context.Background())
	assert.ErrorContains(t, err, "file missing")
}

func TestNewEngineValidation(t *testing.T) {
	cfg := BacktestConfig{Estimator: "fixed", Staking: strategy.DefaultStakingParameters()}
	est := &fixedEstimator{}
	tours := &fakeTournaments{}
	odds := &fakeOdds{}

	_, err := NewEngine(cfg, nil, tours, odds)
	assert.Error(t, err)
	_, err = NewEngine(cfg, est, nil, odds)
	assert.Error(t, err)
	_, err = NewEngine(cfg, est, tours, nil)
	assert.Error(t, err)

	cfg.Staking.Bankroll = 0
	_, err = NewEngine(cfg, est, tours, odds)
	assert.Error(t, err)
}
