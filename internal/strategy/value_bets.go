package strategy

import (
	"sort"

	"github.com/yourusername/golf-edge/internal/models"
)

// ValueBet is a priced player whose estimated probability beats the market
type ValueBet struct {
	Player        string  `json:"player"`
	OurProb       float64 `json:"our_prob"`
	MarketProb    float64 `json:"market_prob"`
	Edge          float64 `json:"edge"`
	DecimalOdds   float64 `json:"decimal_odds"`
	AmericanOdds  *int    `json:"american_odds,omitempty"`
	ExpectedValue float64 `json:"expected_value"`
}

// FindValueBets compares a distribution against one tournament's odds board and
// returns bets with edge >= minEdge, best edge first. Players with no price, or a
// price that does not imply a probability, are excluded.
func FindValueBets(odds []models.OddsRecord, dist Distribution, minEdge float64) []ValueBet {
	byPlayer := make(map[string]models.OddsRecord, len(odds))
	for _, record := range odds {
		if _, seen := byPlayer[record.Player]; seen {
			continue
		}
		byPlayer[record.Player] = record
	}

	var bets []ValueBet
	for _, player := range dist.Players() {
		record, ok := byPlayer[player]
		if !ok {
			continue
		}
		marketProb, ok := models.DecimalToProbability(record.DecimalOdds)
		if !ok {
			continue
		}
		ourProb := dist[player]
		edge := Edge(ourProb, marketProb)
		if edge < minEdge {
			continue
		}
		bets = append(bets, ValueBet{
			Player:        player,
			OurProb:       ourProb,
			MarketProb:    marketProb,
			Edge:          edge,
			DecimalOdds:   record.DecimalOdds,
			AmericanOdds:  record.AmericanOdds,
			ExpectedValue: ExpectedValue(ourProb, record.DecimalOdds),
		})
	}

	sort.SliceStable(bets, func(i, j int) bool {
		return bets[i].Edge > bets[j].Edge
	})
	return bets
}
