package strategy

import (
	"fmt"
	"math"
	"strings"

	"github.com/yourusername/golf-edge/internal/models"
)

const weightTolerance = 1e-6

// CombinedEstimator blends several estimators with fixed weights.
//
// The output covers the union of players seen by any sub-estimator. A player
// missing from one sub-estimate contributes 0 from it (it is not dropped), and the
// blend is normalized once at the end. Sub-estimate values outside [0,1] or NaN
// are clamped before weighting. This differs from the per-estimator floor
// applied to unknown players inside each heuristic, and both behaviours are kept.
type CombinedEstimator struct {
	estimators []Estimator
	weights    []float64
}

// NewCombinedEstimator creates a combined estimator. Nil weights mean equal weights.
func NewCombinedEstimator(estimators []Estimator, weights []float64) (*CombinedEstimator, error) {
	if len(estimators) == 0 {
		return nil, fmt.Errorf("at least one estimator is required")
	}
	if weights == nil {
		weights = make([]float64, len(estimators))
		for i := range weights {
			weights[i] = 1 / float64(len(estimators))
		}
	}
	if len(weights) != len(estimators) {
		return nil, fmt.Errorf("got %d weights for %d estimators", len(weights), len(estimators))
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("weight %d is negative: %f", i, w)
		}
		total += w
	}
	if math.Abs(total-1) > weightTolerance {
		return nil, fmt.Errorf("weights must sum to 1, got %f", total)
	}

	return &CombinedEstimator{
		estimators: append([]Estimator(nil), estimators...),
		weights:    append([]float64(nil), weights...),
	}, nil
}

// Name returns estimator name
func (c *CombinedEstimator) Name() string {
	names := make([]string, len(c.estimators))
	for i, e := range c.estimators {
		names[i] = e.Name()
	}
	return "combined(" + strings.Join(names, "+") + ")"
}

// Estimate blends the sub-estimates
func (c *CombinedEstimator) Estimate(tournament *models.Tournament) Distribution {
	estimates := make([]Distribution, len(c.estimators))
	players := make(map[string]struct{})
	for i, e := range c.estimators {
		estimates[i] = e.Estimate(tournament)
		for player := range estimates[i] {
			players[player] = struct{}{}
		}
	}

	combined := make(Distribution, len(players))
	for player := range players {
		weighted := 0.0
		for i, estimate := range estimates {
			weighted += NormalizeProbability(estimate[player]) * c.weights[i]
		}
		combined[player] = weighted
	}
	return combined.Normalize()
}

// Weights returns a copy of the blend weights
func (c *CombinedEstimator) Weights() []float64 {
	return append([]float64(nil), c.weights...)
}

// GetParameters returns estimator parameters
func (c *CombinedEstimator) GetParameters() map[string]interface{} {
	names := make([]string, len(c.estimators))
	for i, e := range c.estimators {
		names[i] = e.Name()
	}
	return map[string]interface{}{
		"estimators": names,
		"weights":    c.Weights(),
	}
}
