package repository

import (
	"fmt"

	"github.com/yourusername/quant-backtest/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Bars    BarRepository
	Results BacktestResultRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Bars:    NewPostgresBarRepository(db),
		Results: NewPostgresBacktestResultRepository(db),
	}, nil
}
