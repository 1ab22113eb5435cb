package strategy

import (
	"fmt"
	"math"
)

// StakingParameters configure how an edge is turned into a stake.
// They are fixed per strategy instance; the live bankroll is tracked by the ledger.
type StakingParameters struct {
	Bankroll      float64 `json:"bankroll"`
	KellyFraction float64 `json:"kelly_fraction"`
	MinEdge       float64 `json:"min_edge"`
	MaxBetPct     float64 `json:"max_bet_pct"`
}

// DefaultStakingParameters returns a quarter-Kelly setup capped at 5% per bet
func DefaultStakingParameters() StakingParameters {
	return StakingParameters{
		Bankroll:      1000,
		KellyFraction: 0.25,
		MinEdge:       0.05,
		MaxBetPct:     0.05,
	}
}

// Validate checks parameter ranges
func (p StakingParameters) Validate() error {
	if p.Bankroll <= 0 {
		return fmt.Errorf("bankroll must be positive")
	}
	if p.KellyFraction <= 0 || p.KellyFraction > 1 {
		return fmt.Errorf("kelly fraction must be in (0, 1]")
	}
	if p.MinEdge < 0 {
		return fmt.Errorf("min edge cannot be negative")
	}
	if p.MaxBetPct <= 0 || p.MaxBetPct > 1 {
		return fmt.Errorf("max bet pct must be in (0, 1]")
	}
	return nil
}

// Edge returns the relative edge of our probability over the market's.
// A non-positive market probability carries no information and yields 0.
func Edge(ourProb, marketProb float64) float64 {
	if marketProb <= 0 {
		return 0
	}
	return (ourProb - marketProb) / marketProb
}

// SizeStake converts an edge into a fraction of bankroll using fractional Kelly,
// clamped to [0, MaxBetPct].
//
// The win probability is recovered from the edge as p = (edge+1)/(b+1), which
// inverts Edge exactly when the market probability is 1/price. Edge and SizeStake
// are coupled: an edge computed any other way will be mis-sized.
func SizeStake(edge, price float64, params StakingParameters) float64 {
	if edge <= 0 || price <= 1 {
		return 0
	}
	b := price - 1
	p := (edge + 1) / (b + 1)
	q := 1 - p

	kelly := (p*b - q) / b
	kelly *= params.KellyFraction

	if kelly <= 0 || math.IsNaN(kelly) {
		return 0
	}
	return math.Min(kelly, params.MaxBetPct)
}

// FullKelly returns the unscaled, unclamped Kelly fraction implied by SizeStake
func FullKelly(edge, price float64) float64 {
	if edge <= 0 || price <= 1 {
		return 0
	}
	b := price - 1
	p := (edge + 1) / (b + 1)
	return (p*b - (1 - p)) / b
}

// ExpectedValue returns the expected profit per unit staked
func ExpectedValue(probability, price float64) float64 {
	return probability*price - 1
}

// NormalizeProbability ensures probability in [0,1]
func NormalizeProbability(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
