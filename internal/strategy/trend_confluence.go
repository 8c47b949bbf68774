package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/indicator"
	"github.com/yourusername/quant-backtest/internal/models"
)

// TrendConfluenceStrategy is long while the close sits above a
// monthly-anchored VWAP and the volatility index trades below its 20-day
// mean. Without auxiliary data the volatility condition passes.
type TrendConfluenceStrategy struct {
	BaseStrategy
	VolMA int
}

// NewTrendConfluenceStrategy creates the trend-confluence strategy.
func NewTrendConfluenceStrategy() *TrendConfluenceStrategy {
	return &TrendConfluenceStrategy{
		BaseStrategy: BaseStrategy{NameValue: "trend_confluence"},
		VolMA:        20,
	}
}

// GetParameters returns the tunable parameters.
func (s *TrendConfluenceStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{"vol_ma": s.VolMA}
}

// GenerateSignals emits a long signal wherever both conditions hold.
func (s *TrendConfluenceStrategy) GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error) {
	_ = ctx
	bars := input.Bars
	closes := bars.Closes()
	vwap := indicator.AnchoredVWAP(bars)

	volOK := func(i int) bool { return true }
	if len(input.Aux) > 0 {
		vol := indicator.AlignForwardFill(bars.Dates(), input.Aux)
		volMA := indicator.SMA(vol, s.VolMA)
		volOK = func(i int) bool { return vol[i] < volMA[i] }
	}

	return scanMomentary(len(bars), func(i int) bool {
		return closes[i] > vwap[i] && volOK(i)
	}), nil
}
