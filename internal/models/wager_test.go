package models

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWagerRejectsInvalidInput(t *testing.T) {
	_, err := NewWager("Masters", "A", 0, 5.0, nil)
	assert.True(t, errors.Is(err, ErrInvalidStake))

	_, err = NewWager("Masters", "A", 10, 1.0, nil)
	assert.True(t, errors.Is(err, ErrInvalidPrice))

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = NewWager("Masters", "A", bad, 5.0, nil)
		assert.ErrorIs(t, err, ErrInvalidStake, "stake %v", bad)

		_, err = NewWager("Masters", "A", 10, bad, nil)
		assert.ErrorIs(t, err, ErrInvalidPrice, "price %v", bad)
	}
}

func TestWagerSettle(t *testing.T) {
	now := time.Now().UTC()

	won, err := NewWager("Masters", "A", 40, 12.0, nil)
	require.NoError(t, err)
	assert.False(t, won.IsSettled())
	assert.Equal(t, 0.0, won.ProfitOrZero())

	require.NoError(t, won.Settle(OutcomeWon, now))
	assert.True(t, won.IsSettled())
	assert.InDelta(t, 440.0, won.ProfitOrZero(), 1e-9)

	lost, err := NewWager("Masters", "B", 50, 15.0, nil)
	require.NoError(t, err)
	require.NoError(t, lost.Settle(OutcomeLost, now))
	assert.InDelta(t, -50.0, lost.ProfitOrZero(), 1e-9)
}

func TestWagerSettlesOnce(t *testing.T) {
	w, err := NewWager("Masters", "A", 10, 3.0, nil)
	require.NoError(t, err)

	assert.True(t, errors.Is(w.Settle(OutcomePending, time.Now()), ErrInvalidOutcome))
	require.NoError(t, w.Settle(OutcomeLost, time.Now()))
	assert.True(t, errors.Is(w.Settle(OutcomeWon, time.Now()), ErrAlreadySettled))
	assert.Equal(t, OutcomeLost, w.Outcome)
}

func TestWagerCloneIsDeep(t *testing.T) {
	american := 1100
	w, err := NewWager("Masters", "A", 40, 12.0, &american)
	require.NoError(t, err)
	require.NoError(t, w.Settle(OutcomeWon, time.Now()))

	c := w.Clone()
	*c.Profit = 0
	*c.AmericanPrice = 0
	assert.InDelta(t, 440.0, *w.Profit, 1e-9)
	assert.Equal(t, 1100, *w.AmericanPrice)
}
