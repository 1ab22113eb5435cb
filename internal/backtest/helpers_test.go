package backtest

import (
	"time"

	"github.com/yourusername/golf-edge/internal/models"
)

var settleTime = time.Date(2024, 4, 14, 18, 0, 0, 0, time.UTC)

func settledWager(player string, stake, price float64, won bool) models.Wager {
	w, err := models.NewWager("The Masters", player, stake, price, nil)
	if err != nil {
		panic(err)
	}
	outcome := models.OutcomeLost
	if won {
		outcome = models.OutcomeWon
	}
	if err := w.Settle(outcome, settleTime); err != nil {
		panic(err)
	}
	return *w
}

func pendingWager(player string, stake, price float64) models.Wager {
	w, err := models.NewWager("The Masters", player, stake, price, nil)
	if err != nil {
		panic(err)
	}
	return *w
}

// scenarioWagers loses 50 and wins 440 from a 40 stake at 12.0
func scenarioWagers() []models.Wager {
	return []models.Wager{
		settledWager("Jon Rahm", 50, 8.0, false),
		settledWager("Scottie Scheffler", 40, 12.0, true),
	}
}

func intPtr(v int) *int { return &v }
