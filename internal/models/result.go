package models

import (
	"time"

	"github.com/google/uuid"
)

// BacktestResult is a persisted metrics snapshot for one completed run.
type BacktestResult struct {
	ID              uuid.UUID `json:"id"`
	Symbol          string    `json:"symbol"`
	Strategy        string    `json:"strategy"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	InitialCapital  float64   `json:"initial_capital"`
	FinalEquity     float64   `json:"final_equity"`
	TotalReturn     float64   `json:"total_return"`
	BenchmarkReturn float64   `json:"benchmark_return"`
	WinRate         float64   `json:"win_rate"`
	MaxDrawdown     float64   `json:"max_drawdown"`
	SharpeRatio     float64   `json:"sharpe_ratio"`
	CreatedAt       time.Time `json:"created_at"`
}
