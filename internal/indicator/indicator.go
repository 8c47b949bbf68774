// Package indicator implements the technical indicators consumed by the
// signal generators. Warmup values are NaN; callers decide how to treat them.
package indicator

import (
	"math"
	"time"

	"github.com/yourusername/quant-backtest/internal/models"
)

// SMA computes a simple moving average. The first window-1 values are NaN.
func SMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	sum := 0.0
	nanInWindow := 0
	for i, v := range values {
		if math.IsNaN(v) {
			nanInWindow++
		} else {
			sum += v
		}
		if i >= window {
			if old := values[i-window]; math.IsNaN(old) {
				nanInWindow--
			} else {
				sum -= old
			}
		}
		// A window containing any NaN has no defined average yet.
		if i >= window-1 && nanInWindow == 0 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// RSI computes the relative strength index from rolling simple means of
// gains and losses.
//
// When the rolling loss is zero the division yields +Inf and the formula
// collapses to RSI=100. The grid tier thresholds were tuned against this
// behavior, so it is kept rather than special-cased.
func RSI(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) < 2 || period <= 0 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	gains[0] = math.NaN()
	losses[0] = math.NaN()
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	// Rolling means start once `period` deltas exist (index period onward).
	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i >= period {
			avgGain := gainSum / float64(period)
			avgLoss := lossSum / float64(period)
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// AnchoredVWAP computes a volume-weighted average price re-anchored at the
// start of each calendar month.
func AnchoredVWAP(bars models.Series) []float64 {
	out := make([]float64, len(bars))
	var cumTPV, cumVol float64
	var anchor time.Month
	var anchorYear int

	for i, bar := range bars {
		if i == 0 || bar.Date.Month() != anchor || bar.Date.Year() != anchorYear {
			anchor = bar.Date.Month()
			anchorYear = bar.Date.Year()
			cumTPV = 0
			cumVol = 0
		}
		typical := (bar.High + bar.Low + bar.Close) / 3
		cumTPV += typical * bar.Volume
		cumVol += bar.Volume
		if cumVol == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = cumTPV / cumVol
	}
	return out
}

// AlignForwardFill aligns an auxiliary close series (e.g. a volatility
// index) to the given trading dates, carrying the last known value forward
// across gaps. Dates before the first auxiliary observation are NaN.
func AlignForwardFill(dates []time.Time, aux models.Series) []float64 {
	out := make([]float64, len(dates))
	last := math.NaN()
	j := 0
	for i, date := range dates {
		for j < len(aux) && !aux[j].Date.After(date) {
			last = aux[j].Close
			j++
		}
		out[i] = last
	}
	return out
}
