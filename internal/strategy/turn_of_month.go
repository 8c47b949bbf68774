package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/models"
)

// TurnOfMonthStrategy holds the asset through the turn-of-the-month
// window: the last four trading days of each month and the first three of
// the next. Months with fewer than seven trading days are skipped.
type TurnOfMonthStrategy struct {
	BaseStrategy
	TailDays int
	HeadDays int
	MinDays  int
}

// NewTurnOfMonthStrategy creates the turn-of-the-month strategy.
func NewTurnOfMonthStrategy() *TurnOfMonthStrategy {
	return &TurnOfMonthStrategy{
		BaseStrategy: BaseStrategy{NameValue: "turn_of_month"},
		TailDays:     4,
		HeadDays:     3,
		MinDays:      7,
	}
}

// GetParameters returns the tunable parameters.
func (s *TurnOfMonthStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"tail_days": s.TailDays,
		"head_days": s.HeadDays,
	}
}

// GenerateSignals groups bars by calendar month and marks the window bars.
func (s *TurnOfMonthStrategy) GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error) {
	_ = ctx
	bars := input.Bars
	long := make([]bool, len(bars))

	start := 0
	for start < len(bars) {
		end := start
		for end < len(bars) &&
			bars[end].Date.Month() == bars[start].Date.Month() &&
			bars[end].Date.Year() == bars[start].Date.Year() {
			end++
		}
		if end-start >= s.MinDays {
			for i := end - s.TailDays; i < end; i++ {
				long[i] = true
			}
			for i := start; i < start+s.HeadDays; i++ {
				long[i] = true
			}
		}
		start = end
	}

	return scanMomentary(len(bars), func(i int) bool { return long[i] }), nil
}
