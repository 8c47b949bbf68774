// Package repository provides data access layers for bars and backtest results.
package repository

import (
	"context"
	"time"

	"github.com/yourusername/quant-backtest/internal/models"
)

// BarRepository defines persistence for daily OHLCV bars
type BarRepository interface {
	// UpsertBars inserts or updates bars for a symbol
	UpsertBars(ctx context.Context, symbol string, bars models.Series) error

	// GetRange retrieves bars for a symbol within a date range, ordered by date
	GetRange(ctx context.Context, symbol string, startDate, endDate time.Time) (models.Series, error)

	// LatestDate returns the most recent bar date stored for a symbol
	LatestDate(ctx context.Context, symbol string) (time.Time, error)
}

// BacktestResultRepository defines persistence for backtest results
type BacktestResultRepository interface {
	// SaveResult inserts a backtest result
	SaveResult(ctx context.Context, result *models.BacktestResult) error

	// GetByStrategy retrieves results for a strategy, newest first
	GetByStrategy(ctx context.Context, strategy string, limit int) ([]*models.BacktestResult, error)

	// GetLatest retrieves the most recent results across all strategies
	GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error)
}
