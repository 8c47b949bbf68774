package strategy

import (
	"math"

	"github.com/yourusername/quant-backtest/internal/models"
)

// BaseStrategy provides shared scaffolding for signal generators.
type BaseStrategy struct {
	NameValue string
}

// Name returns the strategy name.
func (b *BaseStrategy) Name() string {
	return b.NameValue
}

// GetParameters returns an empty parameter map; strategies with tunables
// override this.
func (b *BaseStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{}
}

// scanPersistent builds a forward-filled flat/long signal series from
// per-bar enter/exit conditions. The position state is carried explicitly
// bar to bar: an enter bar flips to long, an exit bar flips to flat, and
// every other bar inherits the previous state. Exit wins when both fire
// on the same bar.
func scanPersistent(n int, enter, exit func(i int) bool) models.SignalSeries {
	signals := make(models.SignalSeries, n)
	long := false
	for i := 0; i < n; i++ {
		switch {
		case exit(i):
			long = false
		case enter(i):
			long = true
		}
		sig := models.HoldSignal(0)
		if long {
			sig.Decision = models.DecisionBuy
		}
		signals[i] = sig
	}
	return signals
}

// scanMomentary builds a signal series where the position holds only while
// the condition itself holds: no carry between bars.
func scanMomentary(n int, long func(i int) bool) models.SignalSeries {
	signals := make(models.SignalSeries, n)
	for i := 0; i < n; i++ {
		sig := models.HoldSignal(0)
		if long(i) {
			sig.Decision = models.DecisionBuy
		}
		signals[i] = sig
	}
	return signals
}

// valueOr substitutes a fallback for NaN warmup values.
func valueOr(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}
