package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/indicator"
	"github.com/yourusername/quant-backtest/internal/models"
)

// VIXSwitchStrategy holds the asset while the volatility index trades
// below its 50-day mean and sits in cash otherwise. Without auxiliary
// data it stays flat for the whole run.
type VIXSwitchStrategy struct {
	BaseStrategy
	VolMA int
}

// NewVIXSwitchStrategy creates the volatility switch strategy.
func NewVIXSwitchStrategy() *VIXSwitchStrategy {
	return &VIXSwitchStrategy{
		BaseStrategy: BaseStrategy{NameValue: "vix_switch"},
		VolMA:        50,
	}
}

// GetParameters returns the tunable parameters.
func (s *VIXSwitchStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{"vol_ma": s.VolMA}
}

// GenerateSignals emits a long signal wherever the volatility filter holds.
func (s *VIXSwitchStrategy) GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error) {
	_ = ctx
	n := len(input.Bars)
	if len(input.Aux) == 0 {
		return scanMomentary(n, func(int) bool { return false }), nil
	}

	vol := indicator.AlignForwardFill(input.Bars.Dates(), input.Aux)
	volMA := indicator.SMA(vol, s.VolMA)
	return scanMomentary(n, func(i int) bool {
		return vol[i] < volMA[i]
	}), nil
}
