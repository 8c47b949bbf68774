package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/indicator"
	"github.com/yourusername/quant-backtest/internal/models"
)

// MeanReversionStrategy buys RSI dips inside an uptrend and exits on
// overbought readings or a trend break. The signal is persistent: the
// position is held across bars where neither condition fires.
type MeanReversionStrategy struct {
	BaseStrategy
	RSIPeriod int
	BuyBelow  float64
	SellAbove float64
	TrendMA   int
}

// NewMeanReversionStrategy creates the RSI mean-reversion strategy.
func NewMeanReversionStrategy() *MeanReversionStrategy {
	return &MeanReversionStrategy{
		BaseStrategy: BaseStrategy{NameValue: "mean_reversion"},
		RSIPeriod:    14,
		BuyBelow:     45,
		SellAbove:    70,
		TrendMA:      200,
	}
}

// GetParameters returns the tunable parameters.
func (s *MeanReversionStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"rsi_period": s.RSIPeriod,
		"buy_below":  s.BuyBelow,
		"sell_above": s.SellAbove,
		"trend_ma":   s.TrendMA,
	}
}

// GenerateSignals scans the series with carried position state.
func (s *MeanReversionStrategy) GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error) {
	_ = ctx
	closes := input.Bars.Closes()
	rsi := indicator.RSI(closes, s.RSIPeriod)
	ma := indicator.SMA(closes, s.TrendMA)

	enter := func(i int) bool {
		return rsi[i] < s.BuyBelow && closes[i] > ma[i]
	}
	exit := func(i int) bool {
		return rsi[i] > s.SellAbove || closes[i] < ma[i]
	}
	return scanPersistent(len(closes), enter, exit), nil
}
