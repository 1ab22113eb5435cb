// Package ledger records wagers in placement order and settles them.
//
// A Ledger has a single owner (a backtest run or a live strategy) that places and
// settles wagers. Analysis code reads deep-copied snapshots and never mutates.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/golf-edge/internal/models"
)

// Observer is notified after a wager is placed or settled
type Observer interface {
	WagerPlaced(wager models.Wager)
	WagerSettled(wager models.Wager, bankroll float64)
}

// Option configures a Ledger
type Option func(*Ledger)

// WithBankroll makes the ledger own a bankroll that settlement updates
func WithBankroll(b *Bankroll) Option {
	return func(l *Ledger) {
		l.bankroll = b
	}
}

// WithObserver registers an observer
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		l.observers = append(l.observers, o)
	}
}

// WithClock overrides the time source used for placement and settlement
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Ledger is an append-only sequence of wagers
type Ledger struct {
	mu        sync.RWMutex
	wagers    []*models.Wager
	index     map[uuid.UUID]int
	bankroll  *Bankroll
	observers []Observer
	now       func() time.Time
}

// New creates an empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{
		index: make(map[uuid.UUID]int),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Bankroll returns the owned bankroll, or nil when tracking is off
func (l *Ledger) Bankroll() *Bankroll {
	return l.bankroll
}

// Place appends a pending wager
func (l *Ledger) Place(tournament, player string, amount, price float64, americanPrice *int) (*models.Wager, error) {
	wager, err := models.NewWager(tournament, player, amount, price, americanPrice)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	wager.PlacedAt = l.now()
	l.index[wager.ID] = len(l.wagers)
	l.wagers = append(l.wagers, wager)
	placed := wager.Clone()
	l.mu.Unlock()

	for _, o := range l.observers {
		o.WagerPlaced(placed)
	}
	return &placed, nil
}

// Settle assigns the outcome to a pending wager. When the ledger owns a
// bankroll, the stake is debited and the return credited under the same lock,
// so readers never observe half of the update.
func (l *Ledger) Settle(id uuid.UUID, outcome models.Outcome) (models.Wager, error) {
	l.mu.Lock()
	i, ok := l.index[id]
	if !ok {
		l.mu.Unlock()
		return models.Wager{}, fmt.Errorf("%w: %s", models.ErrWagerNotFound, id)
	}
	wager := l.wagers[i]
	if err := wager.Settle(outcome, l.now()); err != nil {
		l.mu.Unlock()
		return models.Wager{}, err
	}

	balance := 0.0
	if l.bankroll != nil {
		credit := 0.0
		if wager.Won() {
			credit = wager.PotentialReturn()
		}
		l.bankroll.settle(wager.Stake, credit)
		balance = l.bankroll.Current()
	}
	settled := wager.Clone()
	l.mu.Unlock()

	for _, o := range l.observers {
		o.WagerSettled(settled, balance)
	}
	return settled, nil
}

// Get returns a copy of one wager
func (l *Ledger) Get(id uuid.UUID) (models.Wager, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.index[id]
	if !ok {
		return models.Wager{}, fmt.Errorf("%w: %s", models.ErrWagerNotFound, id)
	}
	return l.wagers[i].Clone(), nil
}

// Snapshot returns deep copies of all wagers in placement order
func (l *Ledger) Snapshot() []models.Wager {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Wager, len(l.wagers))
	for i, w := range l.wagers {
		out[i] = w.Clone()
	}
	return out
}

// Settled returns copies of settled wagers in placement order
func (l *Ledger) Settled() []models.Wager {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Wager, 0, len(l.wagers))
	for _, w := range l.wagers {
		if w.IsSettled() {
			out = append(out, w.Clone())
		}
	}
	return out
}

// Pending returns copies of wagers awaiting settlement
func (l *Ledger) Pending() []models.Wager {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.Wager
	for _, w := range l.wagers {
		if !w.IsSettled() {
			out = append(out, w.Clone())
		}
	}
	return out
}

// Len returns the number of wagers placed
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.wagers)
}
