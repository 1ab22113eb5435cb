package strategy

import "github.com/yourusername/golf-edge/internal/models"

// FormEstimator scores players by recency-weighted recent finishes
type FormEstimator struct {
	Lookback       int
	RecencyWeights []float64
	Floor          float64
}

// NewFormEstimator creates a form estimator over the last five events
func NewFormEstimator() *FormEstimator {
	return &FormEstimator{
		Lookback:       5,
		RecencyWeights: []float64{0.35, 0.25, 0.20, 0.15, 0.05},
		Floor:          0.01,
	}
}

// Name returns estimator name
func (e *FormEstimator) Name() string {
	return "form"
}

// Estimate converts finish positions to 1/(finish+1) scores, most recent first
func (e *FormEstimator) Estimate(tournament *models.Tournament) Distribution {
	raw := make(Distribution)
	if tournament == nil {
		return raw
	}

	for _, player := range tournament.Players {
		finishes := player.RecentFinishes
		if len(finishes) > e.Lookback {
			finishes = finishes[:e.Lookback]
		}
		if len(finishes) == 0 {
			raw[player.Name] = e.Floor
			continue
		}

		weightedSum := 0.0
		weightTotal := 0.0
		for i, finish := range finishes {
			if i >= len(e.RecencyWeights) {
				break
			}
			weight := e.RecencyWeights[i]
			weightedSum += weight / float64(finish+1)
			weightTotal += weight
		}

		score := 0.0
		if weightTotal > 0 {
			score = weightedSum / weightTotal
		}
		raw[player.Name] = score
	}
	return raw.Normalize()
}

// GetParameters returns estimator parameters
func (e *FormEstimator) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"lookback":        e.Lookback,
		"recency_weights": e.RecencyWeights,
		"floor":           e.Floor,
	}
}
