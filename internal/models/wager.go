package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Outcome represents the settlement state of a wager
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
)

// Wager represents a single outright bet. It is mutated exactly once, at settlement.
type Wager struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Tournament    string     `db:"tournament" json:"tournament"`
	Player        string     `db:"player" json:"player"`
	Stake         float64    `db:"stake" json:"stake" validate:"gt=0"`
	Price         float64    `db:"price" json:"price" validate:"gt=1"`
	AmericanPrice *int       `db:"american_price" json:"american_price,omitempty"`
	Outcome       Outcome    `db:"outcome" json:"outcome"`
	Profit        *float64   `db:"profit" json:"profit,omitempty"`
	PlacedAt      time.Time  `db:"placed_at" json:"placed_at"`
	SettledAt     *time.Time `db:"settled_at" json:"settled_at,omitempty"`
}

// NewWager creates a pending wager after checking the stake and price invariants
func NewWager(tournament, player string, stake, price float64, americanPrice *int) (*Wager, error) {
	if !(stake > 0) || math.IsInf(stake, 0) {
		return nil, fmt.Errorf("%w: got %.4f", ErrInvalidStake, stake)
	}
	if !(price > 1.0) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("%w: got %.4f", ErrInvalidPrice, price)
	}
	return &Wager{
		ID:            uuid.New(),
		Tournament:    tournament,
		Player:        player,
		Stake:         stake,
		Price:         price,
		AmericanPrice: americanPrice,
		Outcome:       OutcomePending,
		PlacedAt:      time.Now().UTC(),
	}, nil
}

// Settle assigns the outcome and profit. A wager settles once.
func (w *Wager) Settle(outcome Outcome, at time.Time) error {
	if w.Outcome != OutcomePending {
		return fmt.Errorf("%w: %s", ErrAlreadySettled, w.ID)
	}
	var profit float64
	switch outcome {
	case OutcomeWon:
		profit = w.Stake*w.Price - w.Stake
	case OutcomeLost:
		profit = -w.Stake
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
	w.Outcome = outcome
	w.Profit = &profit
	w.SettledAt = &at
	return nil
}

// IsSettled checks if the wager has been settled
func (w *Wager) IsSettled() bool {
	return w.Outcome != OutcomePending && w.Profit != nil
}

// Won reports whether the wager settled as a winner
func (w *Wager) Won() bool {
	return w.Outcome == OutcomeWon
}

// ProfitOrZero returns realized profit, or 0 while pending
func (w *Wager) ProfitOrZero() float64 {
	if w.Profit == nil {
		return 0
	}
	return *w.Profit
}

// PotentialReturn is the amount credited back on a win
func (w *Wager) PotentialReturn() float64 {
	return w.Stake * w.Price
}

// Clone returns a deep copy safe to hand to readers
func (w *Wager) Clone() Wager {
	c := *w
	if w.AmericanPrice != nil {
		a := *w.AmericanPrice
		c.AmericanPrice = &a
	}
	if w.Profit != nil {
		p := *w.Profit
		c.Profit = &p
	}
	if w.SettledAt != nil {
		s := *w.SettledAt
		c.SettledAt = &s
	}
	return c
}
