package database

import (
	"context"
	"fmt"

	"github.com/yourusername/quant-backtest/internal/config"
)

// schema holds the tables used by the bar cache and result store. Kept
// inline rather than in a migrations tool because there are only two
// tables and they never reference each other.
const schema = `
CREATE TABLE IF NOT EXISTS daily_bars (
	symbol      TEXT             NOT NULL,
	bar_date    DATE             NOT NULL,
	open        DOUBLE PRECISION NOT NULL,
	high        DOUBLE PRECISION NOT NULL,
	low         DOUBLE PRECISION NOT NULL,
	close       DOUBLE PRECISION NOT NULL,
	volume      DOUBLE PRECISION NOT NULL DEFAULT 0,
	PRIMARY KEY (symbol, bar_date)
);

CREATE TABLE IF NOT EXISTS backtest_results (
	id               UUID             PRIMARY KEY,
	symbol           TEXT             NOT NULL,
	strategy         TEXT             NOT NULL,
	start_date       DATE             NOT NULL,
	end_date         DATE             NOT NULL,
	initial_capital  DOUBLE PRECISION NOT NULL,
	final_equity     DOUBLE PRECISION NOT NULL,
	total_return     DOUBLE PRECISION NOT NULL,
	benchmark_return DOUBLE PRECISION NOT NULL,
	win_rate         DOUBLE PRECISION NOT NULL,
	max_drawdown     DOUBLE PRECISION NOT NULL,
	sharpe_ratio     DOUBLE PRECISION NOT NULL,
	created_at       TIMESTAMPTZ      NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_backtest_results_strategy
	ON backtest_results (strategy, created_at DESC);
`

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}
