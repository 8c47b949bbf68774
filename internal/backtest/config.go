package backtest

import (
	"fmt"
	"time"

	"github.com/yourusername/quant-backtest/internal/config"
)

// Config holds the parameters of one backtest run.
type Config struct {
	StartDate      time.Time
	EndDate        time.Time
	InitialCapital float64
	CommissionRate float64
	AuxSymbol      string
	OutputPath     string
	PersistResults bool
}

// FromConfig converts app config to backtest config.
func FromConfig(cfg *config.BacktestConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("backtest config is required")
	}
	start, err := time.Parse("2006-01-02", cfg.StartDate)
	if err != nil {
		return Config{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", cfg.EndDate)
	if err != nil {
		return Config{}, fmt.Errorf("invalid end date: %w", err)
	}

	bt := Config{
		StartDate:      start,
		EndDate:        end,
		InitialCapital: cfg.InitialCapital,
		CommissionRate: cfg.CommissionRate,
		AuxSymbol:      cfg.AuxSymbol,
		OutputPath:     cfg.OutputPath,
		PersistResults: cfg.PersistResults,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters.
func (c Config) Validate() error {
	if c.StartDate.After(c.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive")
	}
	if c.CommissionRate < 0 || c.CommissionRate > 0.1 {
		return fmt.Errorf("commission rate must be between 0 and 0.1")
	}
	return nil
}
