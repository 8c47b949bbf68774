package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/quant-backtest/internal/database"
	"github.com/yourusername/quant-backtest/internal/models"
)

const errScanBar = "failed to scan bar: %w"

// PostgresBarRepository implements BarRepository for PostgreSQL
type PostgresBarRepository struct {
	db *database.DB
}

// NewPostgresBarRepository creates a new bar repository
func NewPostgresBarRepository(db *database.DB) BarRepository {
	return &PostgresBarRepository{db: db}
}

// UpsertBars inserts or updates bars for a symbol in one batch
func (r *PostgresBarRepository) UpsertBars(ctx context.Context, symbol string, bars models.Series) error {
	if symbol == "" {
		return models.ErrSymbolRequired
	}
	if len(bars) == 0 {
		return nil
	}

	query := `
		INSERT INTO daily_bars (symbol, bar_date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, bar_date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume
	`

	batch := &pgx.Batch{}
	for _, bar := range bars {
		batch.Queue(query, symbol, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range bars {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert bars for %s: %w", symbol, err)
		}
	}
	return nil
}

// GetRange retrieves bars for a symbol within a date range, ordered by date
func (r *PostgresBarRepository) GetRange(ctx context.Context, symbol string, startDate, endDate time.Time) (models.Series, error) {
	query := `
		SELECT bar_date, open, high, low, close, volume
		FROM daily_bars
		WHERE symbol = $1 AND bar_date >= $2 AND bar_date <= $3
		ORDER BY bar_date ASC
	`
	rows, err := r.db.GetPool().Query(ctx, query, symbol, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	var bars models.Series
	for rows.Next() {
		var bar models.Bar
		if err := rows.Scan(&bar.Date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf(errScanBar, err)
		}
		bars = append(bars, bar)
	}
	return bars, rows.Err()
}

// LatestDate returns the most recent bar date stored for a symbol
func (r *PostgresBarRepository) LatestDate(ctx context.Context, symbol string) (time.Time, error) {
	query := `SELECT bar_date FROM daily_bars WHERE symbol = $1 ORDER BY bar_date DESC LIMIT 1`

	var latest time.Time
	err := r.db.GetPool().QueryRow(ctx, query, symbol).Scan(&latest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, models.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to query latest bar date: %w", err)
	}
	return latest, nil
}
