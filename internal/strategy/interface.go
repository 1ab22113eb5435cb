package strategy

import (
	"sort"

	"github.com/yourusername/golf-edge/internal/models"
)

// Estimator produces a win-probability distribution over a tournament field.
// Implementations compute raw scores and normalize once before returning.
type Estimator interface {
	Name() string
	Estimate(tournament *models.Tournament) Distribution
}

// Distribution maps a player name to a win probability
type Distribution map[string]float64

// Sum returns the total probability mass
func (d Distribution) Sum() float64 {
	total := 0.0
	for _, p := range d {
		total += p
	}
	return total
}

// Normalize returns a copy scaled to sum to 1. A distribution with no
// positive mass is returned unchanged.
func (d Distribution) Normalize() Distribution {
	total := d.Sum()
	out := make(Distribution, len(d))
	for player, p := range d {
		if total > 0 {
			out[player] = p / total
		} else {
			out[player] = p
		}
	}
	return out
}

// Players returns player names in sorted order
func (d Distribution) Players() []string {
	players := make([]string, 0, len(d))
	for player := range d {
		players = append(players, player)
	}
	sort.Strings(players)
	return players
}

// EstimatorMetadata describes an estimator for logging and persistence
type EstimatorMetadata struct {
	Name       string                 `json:"name"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// Describe returns the name and, when the estimator exposes them, its parameters
func Describe(e Estimator) EstimatorMetadata {
	meta := EstimatorMetadata{Name: e.Name()}
	if p, ok := e.(interface{ GetParameters() map[string]interface{} }); ok {
		meta.Parameters = p.GetParameters()
	}
	return meta
}
