package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/models"
)

// DailyDCAStrategy buys every bar; the DCA simulator handles its
// fixed-fraction accounting.
type DailyDCAStrategy struct {
	BaseStrategy
}

// NewDailyDCAStrategy creates the dollar-cost-averaging strategy.
func NewDailyDCAStrategy() *DailyDCAStrategy {
	return &DailyDCAStrategy{BaseStrategy: BaseStrategy{NameValue: "daily_dca"}}
}

// Routing routes DCA signals to the dollar-cost-averaging simulator.
func (s *DailyDCAStrategy) Routing() CapitalRouting {
	return RouteDCA
}

// GenerateSignals emits a buy on every bar.
func (s *DailyDCAStrategy) GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error) {
	_ = ctx
	return scanMomentary(len(input.Bars), func(int) bool { return true }), nil
}
