package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MarketType represents the bet market a price was quoted for
type MarketType string

const (
	MarketTypeOutright MarketType = "outright"
	MarketTypeTop5     MarketType = "top5"
	MarketTypeTop10    MarketType = "top10"
)

// OddsRecord is one bookmaker price for one player in one tournament
type OddsRecord struct {
	Tournament         string     `db:"tournament" json:"tournament" validate:"required"`
	Date               time.Time  `db:"date" json:"date" validate:"required"`
	Player             string     `db:"player" json:"player" validate:"required"`
	AmericanOdds       *int       `db:"american_odds" json:"american_odds,omitempty"`
	DecimalOdds        float64    `db:"decimal_odds" json:"decimal_odds" validate:"gt=1"`
	ImpliedProbability float64    `db:"implied_probability" json:"implied_probability" validate:"gt=0,lte=1"`
	Bookmaker          string     `db:"bookmaker" json:"bookmaker"`
	MarketType         MarketType `db:"market_type" json:"market_type"`
}

var hundred = decimal.NewFromInt(100)

// AmericanToDecimal converts American odds (+400, -200) to decimal odds
func AmericanToDecimal(american int) float64 {
	amount := decimal.NewFromInt(int64(american))
	if american > 0 {
		return amount.Div(hundred).Add(decimal.NewFromInt(1)).InexactFloat64()
	}
	return hundred.Div(amount.Abs()).Add(decimal.NewFromInt(1)).InexactFloat64()
}

// DecimalToProbability returns the implied probability of decimal odds.
// ok is false when the price is not greater than 1.
func DecimalToProbability(price float64) (float64, bool) {
	if price <= 1 || math.IsNaN(price) {
		return 0, false
	}
	return 1 / price, true
}

// AmericanToProbability returns the implied probability of American odds
func AmericanToProbability(american int) float64 {
	if american > 0 {
		return 100 / float64(american+100)
	}
	a := math.Abs(float64(american))
	return a / (a + 100)
}

// Overround returns the bookmaker margin of one tournament board as a percentage,
// i.e. the excess of summed implied probabilities over 1.0.
func Overround(records []OddsRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range records {
		total += r.ImpliedProbability
	}
	return math.Round((total-1)*100*100) / 100
}
