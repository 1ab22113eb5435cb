// Package logger provides strategy-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// StrategyLogger provides dedicated logging for estimation and staking.
type StrategyLogger struct {
	*logrus.Entry
}

// NewStrategyLogger creates a new strategy logger.
func NewStrategyLogger(baseLogger *logrus.Logger) *StrategyLogger {
	return &StrategyLogger{
		Entry: baseLogger.WithField("component", "strategy"),
	}
}

// LogEstimate logs a completed probability estimate for one tournament.
func (sl *StrategyLogger) LogEstimate(estimator, tournament string, playersScored, valueBets int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"estimator":            estimator,
		"tournament":           tournament,
		"players_scored":       playersScored,
		"value_bets":           valueBets,
		"estimate_duration_ms": durationMs,
	}).Info("Probability estimate completed")
}

// LogStakeDecision logs whether a value bet was staked and why.
func (sl *StrategyLogger) LogStakeDecision(estimator, tournament, player, decision string, ourProb, marketProb, edge, stakeFraction, stakeAmount, odds float64) {
	sl.WithFields(logrus.Fields{
		"estimator":      estimator,
		"tournament":     tournament,
		"player":         player,
		"decision":       decision,
		"our_prob":       ourProb,
		"market_prob":    marketProb,
		"edge":           edge,
		"stake_fraction": stakeFraction,
		"stake_amount":   stakeAmount,
		"odds":           odds,
	}).Debug("Stake decision made")
}

// LogBankrollUpdate logs the bankroll after a tournament settles.
func (sl *StrategyLogger) LogBankrollUpdate(estimator, tournament string, profit, bankroll float64, wagersSettled int) {
	sl.WithFields(logrus.Fields{
		"estimator":      estimator,
		"tournament":     tournament,
		"profit":         profit,
		"bankroll":       bankroll,
		"wagers_settled": wagersSettled,
	}).Info("Bankroll updated")
}

// LogDrawdown logs drawdown events.
func (sl *StrategyLogger) LogDrawdown(estimator string, drawdownPercent, peakBankroll, currentBankroll float64) {
	sl.WithFields(logrus.Fields{
		"estimator":        estimator,
		"drawdown_percent": drawdownPercent,
		"peak_bankroll":    peakBankroll,
		"current_bankroll": currentBankroll,
	}).Warn("Strategy drawdown threshold exceeded")
}
