package backtest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/golf-edge/internal/datasource"
	"github.com/yourusername/golf-edge/internal/ledger"
	"github.com/yourusername/golf-edge/internal/logger"
	"github.com/yourusername/golf-edge/internal/metrics"
	"github.com/yourusername/golf-edge/internal/models"
	"github.com/yourusername/golf-edge/internal/strategy"
)

// tournamentLength is how long after the start date wagers are settled
const tournamentLength = 4 * 24 * time.Hour

// Engine replays historical tournaments through an estimator and a ledger
type Engine struct {
	config      BacktestConfig
	estimator   strategy.Estimator
	tournaments datasource.TournamentSource
	odds        datasource.OddsSource
	weather     datasource.WeatherSource
	logger      *logrus.Logger
	strategyLog *logger.StrategyLogger
	audit       *logger.AuditLogger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithWeather enables weather enrichment for tournaments that lack it
func WithWeather(source datasource.WeatherSource) EngineOption {
	return func(e *Engine) {
		e.weather = source
	}
}

// WithLogger sets the base logger
func WithLogger(l *logrus.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// Result is the outcome of one backtest run
type Result struct {
	RunID       uuid.UUID
	Tournaments int
	Wagers      []models.Wager
	Report      MetricsReport
	EquityCurve EquityCurve
}

// NewEngine creates a new backtesting engine
func NewEngine(cfg BacktestConfig, estimator strategy.Estimator, tournaments datasource.TournamentSource, odds datasource.OddsSource, opts ...EngineOption) (*Engine, error) {
	if estimator == nil {
		return nil, fmt.Errorf("estimator is required")
	}
	if tournaments == nil {
		return nil, fmt.Errorf("tournament source is required")
	}
	if odds == nil {
		return nil, fmt.Errorf("odds source is required")
	}
	if err := cfg.Staking.Validate(); err != nil {
		return nil, fmt.Errorf("invalid staking parameters: %w", err)
	}

	e := &Engine{
		config:      cfg,
		estimator:   estimator,
		tournaments: tournaments,
		odds:        odds,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logrus.New()
		e.logger.SetOutput(io.Discard)
	}
	e.strategyLog = logger.NewStrategyLogger(e.logger)
	e.audit = logger.NewAuditLogger(e.logger)
	return e, nil
}

// Config returns the backtest configuration
func (e *Engine) Config() BacktestConfig {
	return e.config
}

// Run replays every tournament in the configured range oldest first.
// Cancellation is checked between tournaments.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	name := e.estimator.Name()
	entry := e.logger.WithFields(logrus.Fields{"component": "backtest", "estimator": name})

	result, err := e.run(ctx, entry)
	metrics.RecordBacktestDuration(time.Since(started).Seconds())
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.RecordBacktestRun(name, "cancelled")
		return nil, err
	case err != nil:
		metrics.RecordBacktestRun(name, "failure")
		return nil, err
	}

	metrics.RecordBacktestRun(name, "success")
	metrics.UpdateBacktestResult(name, result.Report.ROI, result.Report.PValue)
	entry.WithFields(logrus.Fields{
		"tournaments": result.Tournaments,
		"wagers":      result.Report.TotalBets,
		"roi":         result.Report.ROI,
		"p_value":     result.Report.PValue,
		"verdict":     Verdict(result.Report),
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("Backtest complete")
	return result, nil
}

func (e *Engine) run(ctx context.Context, entry *logrus.Entry) (*Result, error) {
	entry.WithFields(logrus.Fields{"start": e.config.StartDate, "end": e.config.EndDate}).Info("Starting backtest run")

	tournaments, err := e.tournaments.Tournaments(ctx, e.config.StartDate, e.config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tournaments[i].Date.Before(tournaments[j].Date)
	})

	bankroll, err := ledger.NewBankroll(e.config.Staking.Bankroll)
	if err != nil {
		return nil, err
	}
	var simNow time.Time
	led := ledger.New(
		ledger.WithBankroll(bankroll),
		ledger.WithObserver(e.audit),
		ledger.WithClock(func() time.Time { return simNow }),
	)

	for i := range tournaments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := &tournaments[i]
		simNow = t.Date
		if err := e.processTournament(ctx, t, led, &simNow, entry); err != nil {
			return nil, fmt.Errorf("tournament %q: %w", t.Name, err)
		}
	}

	snapshot := led.Snapshot()
	report, err := BuildReport(ctx, snapshot, bankroll.Initial(), e.config.Report)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:       uuid.New(),
		Tournaments: len(tournaments),
		Wagers:      snapshot,
		Report:      report,
		EquityCurve: BuildEquityCurve(snapshot, bankroll.Initial()),
	}, nil
}

func (e *Engine) processTournament(ctx context.Context, t *models.Tournament, led *ledger.Ledger, simNow *time.Time, entry *logrus.Entry) error {
	name := e.estimator.Name()
	if e.config.EnrichWeather && e.weather != nil {
		datasource.Enrich(ctx, e.weather, t, entry)
	}

	estimateStart := time.Now()
	dist := e.estimator.Estimate(t)
	elapsed := time.Since(estimateStart)
	metrics.RecordEstimate(name, elapsed.Seconds())

	board, err := e.odds.OddsFor(ctx, t.Name)
	if err != nil {
		return fmt.Errorf("failed to load odds: %w", err)
	}
	entry.WithFields(logrus.Fields{
		"tournament": t.Name,
		"prices":     len(board),
		"overround":  models.Overround(board),
	}).Debug("Odds board loaded")
	bets := strategy.FindValueBets(board, dist, e.config.Staking.MinEdge)
	metrics.RecordValueBets(len(bets))
	e.strategyLog.LogEstimate(name, t.Name, len(dist), len(bets), float64(elapsed.Microseconds())/1000)

	bankroll := led.Bankroll()
	available := bankroll.Current()
	var placed []uuid.UUID
	for _, vb := range bets {
		fraction := strategy.SizeStake(vb.Edge, vb.DecimalOdds, e.config.Staking)
		amount := fraction * available
		if amount <= 0 {
			e.strategyLog.LogStakeDecision(name, t.Name, vb.Player, "skip", vb.OurProb, vb.MarketProb, vb.Edge, fraction, 0, vb.DecimalOdds)
			continue
		}

		wager, err := led.Place(t.Name, vb.Player, amount, vb.DecimalOdds, vb.AmericanOdds)
		if err != nil {
			return fmt.Errorf("failed to place wager on %s: %w", vb.Player, err)
		}
		placed = append(placed, wager.ID)
		metrics.RecordWagerPlaced(vb.Edge, fraction)
		e.strategyLog.LogStakeDecision(name, t.Name, vb.Player, "bet", vb.OurProb, vb.MarketProb, vb.Edge, fraction, amount, vb.DecimalOdds)
	}

	if !t.HasResult() {
		metrics.UpdatePendingWagers(len(led.Pending()))
		return nil
	}

	*simNow = t.Date.Add(tournamentLength)
	before := bankroll.Current()
	for _, id := range placed {
		outcome := models.OutcomeLost
		w, err := led.Get(id)
		if err != nil {
			return err
		}
		if strings.EqualFold(w.Player, t.Winner) {
			outcome = models.OutcomeWon
		}
		if _, err := led.Settle(id, outcome); err != nil {
			return fmt.Errorf("failed to settle wager %s: %w", id, err)
		}
		metrics.RecordWagerSettled(string(outcome))
	}

	current := bankroll.Current()
	metrics.UpdateBankroll(current)
	metrics.UpdateDrawdown(bankroll.Drawdown())
	metrics.UpdatePendingWagers(len(led.Pending()))
	if len(placed) > 0 {
		e.strategyLog.LogBankrollUpdate(name, t.Name, current-before, current, len(placed))
	}
	if alert := e.config.MaxDrawdownAlert; alert > 0 && bankroll.Drawdown() >= alert {
		e.strategyLog.LogDrawdown(name, bankroll.Drawdown()*100, bankroll.Peak(), current)
	}
	return nil
}
