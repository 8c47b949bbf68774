package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/indicator"
	"github.com/yourusername/quant-backtest/internal/models"
)

// MA200TrendStrategy is the classic 200-day moving average trend filter:
// long while the close sits above its 200-day SMA, flat otherwise.
type MA200TrendStrategy struct {
	BaseStrategy
	Window int
}

// NewMA200TrendStrategy creates the trend strategy.
func NewMA200TrendStrategy() *MA200TrendStrategy {
	return &MA200TrendStrategy{
		BaseStrategy: BaseStrategy{NameValue: "ma200_trend"},
		Window:       200,
	}
}

// GetParameters returns the tunable parameters.
func (s *MA200TrendStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{"window": s.Window}
}

// GenerateSignals emits a long signal on each bar whose close is above the
// moving average. The condition covers every bar, so no carry is needed.
func (s *MA200TrendStrategy) GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error) {
	_ = ctx
	closes := input.Bars.Closes()
	ma := indicator.SMA(closes, s.Window)

	return scanMomentary(len(closes), func(i int) bool {
		return closes[i] > ma[i] // NaN warmup compares false
	}), nil
}
