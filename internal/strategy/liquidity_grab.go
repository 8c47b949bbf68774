package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/indicator"
	"github.com/yourusername/quant-backtest/internal/models"
)

// LiquidityGrabStrategy trades daily swing failure patterns, long only.
//
// A bullish SFP sweeps the prior day's low but closes back above it; the
// entry additionally requires the close above the 200-day SMA. The position
// unwinds on a bearish SFP against the prior day's high or on a trend
// break below the SMA.
type LiquidityGrabStrategy struct {
	BaseStrategy
	TrendMA int
}

// NewLiquidityGrabStrategy creates the SFP strategy.
func NewLiquidityGrabStrategy() *LiquidityGrabStrategy {
	return &LiquidityGrabStrategy{
		BaseStrategy: BaseStrategy{NameValue: "liquidity_grab"},
		TrendMA:      200,
	}
}

// GetParameters returns the tunable parameters.
func (s *LiquidityGrabStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{"trend_ma": s.TrendMA}
}

// GenerateSignals scans the series with carried position state.
func (s *LiquidityGrabStrategy) GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error) {
	_ = ctx
	bars := input.Bars
	closes := bars.Closes()
	ma := indicator.SMA(closes, s.TrendMA)

	enter := func(i int) bool {
		if i == 0 {
			return false
		}
		pdl := bars[i-1].Low
		return bars[i].Low < pdl && bars[i].Close > pdl && bars[i].Close > ma[i]
	}
	exit := func(i int) bool {
		if i == 0 {
			return false
		}
		pdh := bars[i-1].High
		bearishSFP := bars[i].High > pdh && bars[i].Close < pdh
		trendBreak := bars[i].Close < ma[i]
		return bearishSFP || trendBreak
	}
	return scanPersistent(len(bars), enter, exit), nil
}
