package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/golf-edge/internal/config"
	"github.com/yourusername/golf-edge/internal/logger"
	"github.com/yourusername/golf-edge/internal/strategy"
)

func TestQuoteEdge(t *testing.T) {
	staking := strategy.DefaultStakingParameters()

	q, err := quoteEdge(0.3, "+400", staking)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, q.DecimalOdds, 1e-9)
	assert.InDelta(t, 0.2, q.MarketProb, 1e-9)
	assert.InDelta(t, 0.5, q.Edge, 1e-9)
	assert.InDelta(t, 0.5, q.ExpectedValue, 1e-9)
	assert.InDelta(t, 0.125, q.FullKelly, 1e-9)
	assert.InDelta(t, 0.03125, q.StakeFraction, 1e-9)
	assert.Equal(t, "31.25", q.Stake.StringFixed(2))
	assert.True(t, q.IsValue)

	var buf bytes.Buffer
	require.NoError(t, q.write(&buf))
	assert.Contains(t, buf.String(), "$31.25")
}

func TestQuoteEdgeNoValue(t *testing.T) {
	q, err := quoteEdge(0.1, "5.0", strategy.DefaultStakingParameters())
	require.NoError(t, err)
	assert.Less(t, q.Edge, 0.0)
	assert.Equal(t, 0.0, q.StakeFraction)
	assert.True(t, q.Stake.IsZero())
	assert.False(t, q.IsValue)
}

func TestQuoteEdgeErrors(t *testing.T) {
	staking := strategy.DefaultStakingParameters()

	_, err := quoteEdge(1.5, "+400", staking)
	assert.Error(t, err)
	_, err = quoteEdge(0.2, "evens", staking)
	assert.Error(t, err)

	staking.KellyFraction = 0
	_, err = quoteEdge(0.2, "+400", staking)
	assert.Error(t, err)
}

func TestSampleSizeParamsFallsBackToConfig(t *testing.T) {
	cfg = &config.Config{Analysis: config.AnalysisConfig{
		SampleSize: config.SampleSizeConfig{WinRate: 0.1, AvgOdds: 15, Confidence: 0.95, Power: 0.8},
	}}

	cmd := &cobra.Command{}
	cmd.Flags().Float64Var(&sampleSizeFlags.WinRate, "win-rate", 0, "")
	cmd.Flags().Float64Var(&sampleSizeFlags.AvgOdds, "avg-odds", 0, "")
	cmd.Flags().Float64Var(&sampleSizeFlags.Confidence, "confidence", 0, "")
	cmd.Flags().Float64Var(&sampleSizeFlags.Power, "power", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--avg-odds", "21"}))

	params := sampleSizeParams(cmd)
	assert.Equal(t, 0.1, params.WinRate)
	assert.Equal(t, 21.0, params.AvgOdds)
	assert.Equal(t, 0.95, params.Confidence)
	assert.Equal(t, 0.8, params.Power)
}

func TestApplyBacktestOverrides(t *testing.T) {
	c := &config.Config{
		Backtest: config.BacktestConfig{Estimator: "combined", StartDate: "2024-01-01"},
		Staking:  config.StakingConfig{Bankroll: 1000, KellyFraction: 0.25, MinEdge: 0.05, MaxBetPct: 0.05},
	}
	backtestFlags.estimator = "form"
	backtestFlags.endDate = "2024-12-31"
	backtestFlags.kelly = 0.5
	backtestFlags.minEdge = -1
	t.Cleanup(func() { backtestFlags.estimator, backtestFlags.endDate, backtestFlags.kelly = "", "", 0 })

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	applyBacktestOverrides(c, logger.NewAuditLogger(log))
	assert.Equal(t, "form", c.Backtest.Estimator)
	assert.Equal(t, "2024-01-01", c.Backtest.StartDate)
	assert.Equal(t, "2024-12-31", c.Backtest.EndDate)
	assert.Equal(t, 0.5, c.Staking.KellyFraction)
	assert.Equal(t, 0.05, c.Staking.MinEdge)
	assert.Contains(t, buf.String(), `"parameter_name":"kelly_fraction"`)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AWS_SECRETS_ENABLED", "")
	loaded, err := loadConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "golf-edge", loaded.App.Name)
	assert.Equal(t, 1000.0, loaded.Staking.Bankroll)
	assert.Equal(t, "combined", loaded.Backtest.Estimator)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("staking:\n  kelly_fraction: 2\n"), 0o644))

	_, err := loadConfig(context.Background(), path)
	assert.ErrorContains(t, err, "invalid configuration")
}
