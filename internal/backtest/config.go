package backtest

import (
	"fmt"
	"time"

	"github.com/yourusername/golf-edge/internal/config"
	"github.com/yourusername/golf-edge/internal/strategy"
)

// BacktestConfig holds everything one backtest run needs
type BacktestConfig struct {
	StartDate        time.Time
	EndDate          time.Time
	Estimator        string
	Components       []string
	Weights          []float64
	Staking          strategy.StakingParameters
	Report           ReportOptions
	EnrichWeather    bool
	MaxDrawdownAlert float64
	OutputPath       string
}

// FromConfig converts app config to backtest config. Empty dates leave the
// range open.
func FromConfig(cfg *config.Config) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("config is required")
	}

	var start, end time.Time
	var err error
	if cfg.Backtest.StartDate != "" {
		if start, err = time.Parse("2006-01-02", cfg.Backtest.StartDate); err != nil {
			return BacktestConfig{}, fmt.Errorf("invalid start date: %w", err)
		}
	}
	if cfg.Backtest.EndDate != "" {
		if end, err = time.Parse("2006-01-02", cfg.Backtest.EndDate); err != nil {
			return BacktestConfig{}, fmt.Errorf("invalid end date: %w", err)
		}
	}

	analysis := cfg.Analysis
	bt := BacktestConfig{
		StartDate:  start,
		EndDate:    end,
		Estimator:  cfg.Backtest.Estimator,
		Components: cfg.Backtest.Components,
		Weights:    cfg.Backtest.Weights,
		Staking: strategy.StakingParameters{
			Bankroll:      cfg.Staking.Bankroll,
			KellyFraction: cfg.Staking.KellyFraction,
			MinEdge:       cfg.Staking.MinEdge,
			MaxBetPct:     cfg.Staking.MaxBetPct,
		},
		Report: ReportOptions{
			Analysis: AnalysisOptions{
				RiskFreeRate:   analysis.RiskFreeRate,
				PeriodsPerYear: analysis.PeriodsPerYear,
			},
			SignificanceLevel: analysis.SignificanceLevel,
			Confidence:        analysis.Confidence,
			Seed:              analysis.BootstrapSeed,
			Workers:           analysis.BootstrapWorkers,
			SampleSize: SampleSizeParams{
				WinRate:    analysis.SampleSize.WinRate,
				AvgOdds:    analysis.SampleSize.AvgOdds,
				Confidence: analysis.SampleSize.Confidence,
				Power:      analysis.SampleSize.Power,
			},
		},
		EnrichWeather:    cfg.Backtest.EnrichWeather,
		MaxDrawdownAlert: cfg.Backtest.MaxDrawdownAlert,
		OutputPath:       cfg.Backtest.OutputPath,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() && b.StartDate.After(b.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if b.Estimator == "" {
		return fmt.Errorf("estimator is required")
	}
	if err := b.Staking.Validate(); err != nil {
		return fmt.Errorf("invalid staking parameters: %w", err)
	}
	if b.MaxDrawdownAlert < 0 || b.MaxDrawdownAlert > 1 {
		return fmt.Errorf("max drawdown alert must be between 0 and 1")
	}
	return nil
}
