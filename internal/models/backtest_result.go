package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BacktestResult represents a persisted backtest run
type BacktestResult struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	StrategyName    string          `db:"strategy_name" json:"strategy_name"`
	StartDate       time.Time       `db:"start_date" json:"start_date"`
	EndDate         time.Time       `db:"end_date" json:"end_date"`
	InitialBankroll float64         `db:"initial_bankroll" json:"initial_bankroll"`
	FinalBankroll   float64         `db:"final_bankroll" json:"final_bankroll"`
	TotalBets       int             `db:"total_bets" json:"total_bets"`
	WinningBets     int             `db:"winning_bets" json:"winning_bets"`
	ROI             float64         `db:"roi" json:"roi"`
	SharpeRatio     float64         `db:"sharpe_ratio" json:"sharpe_ratio"`
	MaxDrawdown     float64         `db:"max_drawdown" json:"max_drawdown"`
	PValue          float64         `db:"p_value" json:"p_value"`
	IsSignificant   bool            `db:"is_significant" json:"is_significant"`
	Verdict         string          `db:"verdict" json:"verdict"`
	Parameters      json.RawMessage `db:"parameters" json:"parameters"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
