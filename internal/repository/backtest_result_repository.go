package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quant-backtest/internal/database"
	"github.com/yourusername/quant-backtest/internal/models"
)

const errScanBacktestResult = "failed to scan backtest result: %w"

const backtestResultColumns = `
	id, symbol, strategy, start_date, end_date, initial_capital,
	final_equity, total_return, benchmark_return, win_rate, max_drawdown,
	sharpe_ratio, created_at`

// PostgresBacktestResultRepository implements BacktestResultRepository for PostgreSQL
type PostgresBacktestResultRepository struct {
	db *database.DB
}

// NewPostgresBacktestResultRepository creates a new backtest result repository
func NewPostgresBacktestResultRepository(db *database.DB) BacktestResultRepository {
	return &PostgresBacktestResultRepository{db: db}
}

// SaveResult inserts a backtest result
func (r *PostgresBacktestResultRepository) SaveResult(ctx context.Context, result *models.BacktestResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO backtest_results (` + backtestResultColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		result.ID, result.Symbol, result.Strategy, result.StartDate, result.EndDate,
		result.InitialCapital, result.FinalEquity, result.TotalReturn, result.BenchmarkReturn,
		result.WinRate, result.MaxDrawdown, result.SharpeRatio, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save backtest result: %w", err)
	}
	return nil
}

// GetByStrategy retrieves results for a strategy, newest first
func (r *PostgresBacktestResultRepository) GetByStrategy(ctx context.Context, strategy string, limit int) ([]*models.BacktestResult, error) {
	query := `
		SELECT ` + backtestResultColumns + `
		FROM backtest_results WHERE strategy = $1 ORDER BY created_at DESC LIMIT $2
	`
	rows, err := r.db.GetPool().Query(ctx, query, strategy, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// GetLatest retrieves the most recent results across all strategies
func (r *PostgresBacktestResultRepository) GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error) {
	query := `
		SELECT ` + backtestResultColumns + `
		FROM backtest_results ORDER BY created_at DESC LIMIT $1
	`
	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest backtest results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanResults(rows rowScanner) ([]*models.BacktestResult, error) {
	var results []*models.BacktestResult
	for rows.Next() {
		result := &models.BacktestResult{}
		if err := rows.Scan(
			&result.ID, &result.Symbol, &result.Strategy, &result.StartDate, &result.EndDate,
			&result.InitialCapital, &result.FinalEquity, &result.TotalReturn, &result.BenchmarkReturn,
			&result.WinRate, &result.MaxDrawdown, &result.SharpeRatio, &result.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf(errScanBacktestResult, err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
