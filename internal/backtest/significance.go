package backtest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultSignificanceLevel is the p-value threshold for IsSignificant
	DefaultSignificanceLevel = 0.05

	minSampleFloor     = 30
	degenerateSampleN  = 100
	defaultSampleWin   = 0.10
	defaultSampleOdds  = 15.0
	defaultSampleConf  = 0.95
	defaultSamplePower = 0.8
)

// OneSidedPValue tests whether the mean per-wager profit is above zero.
//
// It runs a two-sided one-sample t-test against zero and folds it: a positive
// mean halves the two-sided p-value, anything else reports 1 - p/2. Fewer
// than two observations give 1.0.
func OneSidedPValue(profits []float64) float64 {
	n := len(profits)
	if n < 2 {
		return 1.0
	}

	mean := average(profits)
	std := sampleStddev(profits)
	if std == 0 {
		if mean > 0 {
			return 0
		}
		return 1.0
	}

	t := mean / (std / math.Sqrt(float64(n)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	twoSided := 2 * (1 - dist.CDF(math.Abs(t)))

	if t > 0 {
		return twoSided / 2
	}
	return 1 - twoSided/2
}

// SampleSizeParams are the assumptions behind MinimumSampleSize
type SampleSizeParams struct {
	WinRate    float64 `json:"win_rate"`
	AvgOdds    float64 `json:"avg_odds"`
	Confidence float64 `json:"confidence"`
	Power      float64 `json:"power"`
}

// DefaultSampleSizeParams models a 10% strike rate at 15.0
func DefaultSampleSizeParams() SampleSizeParams {
	return SampleSizeParams{
		WinRate:    defaultSampleWin,
		AvgOdds:    defaultSampleOdds,
		Confidence: defaultSampleConf,
		Power:      defaultSamplePower,
	}
}

// MinimumSampleSize projects how many wagers are needed before a true edge
// of the assumed shape would test significant, using the normal
// approximation n = ((z_alpha + z_beta) / effect)^2. The result is at least
// 30; degenerate inputs give 100.
func MinimumSampleSize(p SampleSizeParams) int {
	w, o := p.WinRate, p.AvgOdds

	expected := w*(o-1) - (1 - w)
	spread := w*(o-1)*(o-1) + (1 - w)
	if spread <= 0 {
		return degenerateSampleN
	}
	effect := expected / math.Sqrt(spread)
	if effect == 0 || math.IsNaN(effect) {
		return degenerateSampleN
	}

	alpha := 1 - p.Confidence
	zAlpha := distuv.UnitNormal.Quantile(1 - alpha/2)
	zBeta := distuv.UnitNormal.Quantile(p.Power)

	n := math.Ceil(math.Pow((zAlpha+zBeta)/effect, 2))
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return degenerateSampleN
	}
	if n < minSampleFloor {
		return minSampleFloor
	}
	return int(n)
}
