package repository

import (
	"fmt"

	"github.com/yourusername/golf-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Wager          WagerRepository
	Odds           OddsRepository
	BacktestResult BacktestResultRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	pool := db.Pool()
	return &Repositories{
		Wager:          NewPostgresWagerRepository(pool),
		Odds:           NewPostgresOddsRepository(pool),
		BacktestResult: NewPostgresBacktestResultRepository(pool),
	}, nil
}
