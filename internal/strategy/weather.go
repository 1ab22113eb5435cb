package strategy

import "github.com/yourusername/golf-edge/internal/models"

const (
	defaultWindThresholdMPH = 15.0
	defaultBaseProbability  = 0.02
	windBoostScale          = 0.1
)

// WeatherEstimator boosts wind specialists when the tournament is windy.
// Players without a base probability start from a 2% floor.
type WeatherEstimator struct {
	WindThresholdMPH float64
	BaseProbability  float64
}

// NewWeatherEstimator creates a weather estimator with default thresholds
func NewWeatherEstimator() *WeatherEstimator {
	return &WeatherEstimator{
		WindThresholdMPH: defaultWindThresholdMPH,
		BaseProbability:  defaultBaseProbability,
	}
}

// Name returns estimator name
func (e *WeatherEstimator) Name() string {
	return "weather"
}

// Estimate scores each player from their base probability and wind record
func (e *WeatherEstimator) Estimate(tournament *models.Tournament) Distribution {
	raw := make(Distribution)
	if tournament == nil {
		return raw
	}
	windy := tournament.WindMPH() > e.WindThresholdMPH

	for _, player := range tournament.Players {
		base := e.BaseProbability
		if player.BaseProbability != nil {
			base = *player.BaseProbability
		}
		if windy {
			raw[player.Name] = base * (1 + player.WindPerformance*windBoostScale)
			continue
		}
		raw[player.Name] = base
	}
	return raw.Normalize()
}

// GetParameters returns estimator parameters
func (e *WeatherEstimator) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"wind_threshold_mph": e.WindThresholdMPH,
		"base_probability":   e.BaseProbability,
	}
}
