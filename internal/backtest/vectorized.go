package backtest

import (
	"math"

	"github.com/yourusername/quant-backtest/internal/models"
)

// RunVectorized converts a forward-filled flat/long signal series into a
// capital curve with one-bar execution lag and proportional commission.
//
// A signal observed at bar t's close is acted on at bar t+1's open:
// Position[t] = Signal[t-1]. Bar returns are open-to-open, so the final
// bar has no defined return and its equity simply carries forward; total
// return metrics must read the second-to-last value. The benchmark holds
// the same open-to-open exposure from bar 0 with no commission.
func RunVectorized(bars models.Series, signals models.SignalSeries, cfg Config) (CapitalCurve, error) {
	if len(bars) == 0 {
		return CapitalCurve{}, nil
	}
	if len(signals) != len(bars) {
		return nil, models.ErrSeriesMismatch
	}

	positions := signals.Positions()
	curve := make(CapitalCurve, len(bars))

	equity := cfg.InitialCapital
	benchmark := cfg.InitialCapital
	prevPosition := 0.0

	for t, bar := range bars {
		position := 0.0
		if t > 0 {
			position = positions[t-1]
		}

		marketReturn := 0.0
		if t < len(bars)-1 && bar.Open != 0 {
			marketReturn = (bars[t+1].Open - bar.Open) / bar.Open
		}

		strategyReturn := position * marketReturn
		cost := math.Abs(position-prevPosition) * cfg.CommissionRate
		netReturn := strategyReturn - cost

		// The final bar's return is undefined (no next open); it
		// contributes nothing to either curve.
		if t < len(bars)-1 {
			equity *= 1 + netReturn
			benchmark *= 1 + marketReturn
		} else {
			netReturn = 0
		}

		curve[t] = CurvePoint{
			Date:            bar.Date,
			Open:            bar.Open,
			Close:           bar.Close,
			Position:        position,
			MarketReturn:    marketReturn,
			StrategyReturn:  strategyReturn,
			Cost:            cost,
			NetReturn:       netReturn,
			Equity:          equity,
			BenchmarkEquity: benchmark,
		}
		prevPosition = position
	}

	return curve, nil
}
