package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/golf-edge/internal/config"
	"github.com/yourusername/golf-edge/internal/strategy"
)

func testAppConfig() *config.Config {
	return &config.Config{
		Staking: config.StakingConfig{Bankroll: 1000, KellyFraction: 0.25, MinEdge: 0.05, MaxBetPct: 0.05},
		Analysis: config.AnalysisConfig{
			RiskFreeRate:      0.02,
			PeriodsPerYear:    52,
			SignificanceLevel: 0.05,
			Confidence:        0.95,
			BootstrapSeed:     42,
			SampleSize:        config.SampleSizeConfig{WinRate: 0.1, AvgOdds: 15, Confidence: 0.95, Power: 0.8},
		},
		Backtest: config.BacktestConfig{
			StartDate:  "2024-01-01",
			EndDate:    "2024-06-30",
			Estimator:  "combined",
			Components: []string{"form", "course_fit"},
			Weights:    []float64{0.6, 0.4},
		},
	}
}

func TestFromConfig(t *testing.T) {
	bt, err := FromConfig(testAppConfig())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bt.StartDate)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), bt.EndDate)
	assert.Equal(t, "combined", bt.Estimator)
	assert.Equal(t, []float64{0.6, 0.4}, bt.Weights)
	assert.Equal(t, strategy.DefaultStakingParameters(), bt.Staking)
	assert.Equal(t, int64(42), bt.Report.Seed)
	assert.Equal(t, DefaultSampleSizeParams(), bt.Report.SampleSize)
}

func TestFromConfigOpenRange(t *testing.T) {
	cfg := testAppConfig()
	cfg.Backtest.StartDate = ""
	cfg.Backtest.EndDate = ""

	bt, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, bt.StartDate.IsZero())
	assert.True(t, bt.EndDate.IsZero())
}

func TestFromConfigErrors(t *testing.T) {
	_, err := FromConfig(nil)
	assert.Error(t, err)

	cfg := testAppConfig()
	cfg.Backtest.StartDate = "01/02/2024"
	_, err = FromConfig(cfg)
	assert.ErrorContains(t, err, "invalid start date")

	cfg = testAppConfig()
	cfg.Backtest.StartDate = "2024-07-01"
	_, err = FromConfig(cfg)
	assert.ErrorContains(t, err, "start date must be before end date")
}

func TestBacktestConfigValidate(t *testing.T) {
	valid := BacktestConfig{Estimator: "form", Staking: strategy.DefaultStakingParameters()}
	assert.NoError(t, valid.Validate())

	noEstimator := valid
	noEstimator.Estimator = ""
	assert.Error(t, noEstimator.Validate())

	badStaking := valid
	badStaking.Staking.KellyFraction = 0
	assert.Error(t, badStaking.Validate())

	badAlert := valid
	badAlert.MaxDrawdownAlert = 1.5
	assert.Error(t, badAlert.Validate())
}
