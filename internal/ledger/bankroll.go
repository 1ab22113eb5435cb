package ledger

import (
	"fmt"
	"sync"
)

// Bankroll is the live balance of a strategy run. It is only changed by
// settlement, through the ledger that owns it.
type Bankroll struct {
	mu      sync.RWMutex
	initial float64
	current float64
	peak    float64
}

// NewBankroll creates a bankroll with a positive starting balance
func NewBankroll(initial float64) (*Bankroll, error) {
	if initial <= 0 {
		return nil, fmt.Errorf("initial bankroll must be positive, got %.2f", initial)
	}
	return &Bankroll{initial: initial, current: initial, peak: initial}, nil
}

// Initial returns the starting balance
func (b *Bankroll) Initial() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initial
}

// Current returns the live balance
func (b *Bankroll) Current() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Peak returns the highest balance seen
func (b *Bankroll) Peak() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.peak
}

// Drawdown returns the current peak-to-trough decline as a fraction
func (b *Bankroll) Drawdown() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.peak <= 0 || b.current >= b.peak {
		return 0
	}
	return (b.peak - b.current) / b.peak
}

// Growth returns the change since the start as a percentage
func (b *Bankroll) Growth() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return (b.current - b.initial) / b.initial * 100
}

// settle debits the stake and credits the return in one step
func (b *Bankroll) settle(stake, credit float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current -= stake
	b.current += credit
	if b.current > b.peak {
		b.peak = b.current
	}
}
