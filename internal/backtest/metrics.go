package backtest

import (
	"encoding/json"
	"math"

	"github.com/yourusername/quant-backtest/internal/models"
)

const tradingDaysPerYear = 252

// Metrics is the performance snapshot of one completed capital curve.
type Metrics struct {
	TotalReturn     float64 `json:"total_return"`
	BenchmarkReturn float64 `json:"benchmark_return"`
	WinRate         float64 `json:"win_rate"`
	MaxDrawdown     float64 `json:"max_drawdown"`
	SharpeRatio     float64 `json:"sharpe_ratio"`
	FinalEquity     float64 `json:"final_equity"`
}

// ToJSON exports metrics to JSON.
func (m Metrics) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

// CalculateVectorizedMetrics computes metrics for the lagged vectorized
// path. The final bar has no defined next-open return, so total and
// benchmark returns read the second-to-last equity values.
func CalculateVectorizedMetrics(curve CapitalCurve, initialCapital float64) Metrics {
	if len(curve) == 0 || initialCapital <= 0 {
		return Metrics{}
	}

	settled := curve[len(curve)-1]
	if len(curve) >= 2 {
		settled = curve[len(curve)-2]
	}

	m := Metrics{
		TotalReturn:     settled.Equity/initialCapital - 1,
		BenchmarkReturn: settled.BenchmarkEquity/initialCapital - 1,
		MaxDrawdown:     maxDrawdown(equities(curve)),
		SharpeRatio:     annualizedSharpe(curve.Returns()),
		FinalEquity:     settled.Equity,
	}

	// Win rate over active days only: bars where a position was held.
	active := 0
	wins := 0
	for _, p := range curve {
		if p.Position == 0 {
			continue
		}
		active++
		if p.NetReturn > 0 {
			wins++
		}
	}
	if active > 0 {
		m.WinRate = float64(wins) / float64(active)
	}

	return m
}

// CalculateDCAMetrics computes metrics for the DCA path. Win rate is not
// meaningful for a strategy that buys every bar and is reported as 0.
func CalculateDCAMetrics(curve CapitalCurve, initialCapital float64) Metrics {
	if len(curve) == 0 || initialCapital <= 0 {
		return Metrics{}
	}
	final := curve[len(curve)-1]
	return Metrics{
		TotalReturn:     (final.Equity - initialCapital) / initialCapital,
		BenchmarkReturn: (final.BenchmarkEquity - initialCapital) / initialCapital,
		MaxDrawdown:     maxDrawdown(equities(curve)),
		SharpeRatio:     annualizedSharpe(curve.Returns()),
		FinalEquity:     final.Equity,
	}
}

// CalculatePyramidMetrics merges the ledger's own metrics with the
// benchmark return read from the curve.
func CalculatePyramidMetrics(portfolio *Portfolio, curve CapitalCurve, initialCapital float64) Metrics {
	m := portfolio.Metrics()
	if len(curve) > 0 && initialCapital > 0 {
		final := curve[len(curve)-1]
		m.BenchmarkReturn = (final.BenchmarkEquity - initialCapital) / initialCapital
	}
	return m
}

// ToResult converts metrics to a persistable result row.
func (m Metrics) ToResult(symbol, strategyName string, cfg Config) *models.BacktestResult {
	return &models.BacktestResult{
		Symbol:          symbol,
		Strategy:        strategyName,
		StartDate:       cfg.StartDate,
		EndDate:         cfg.EndDate,
		InitialCapital:  cfg.InitialCapital,
		FinalEquity:     m.FinalEquity,
		TotalReturn:     m.TotalReturn,
		BenchmarkReturn: m.BenchmarkReturn,
		WinRate:         m.WinRate,
		MaxDrawdown:     m.MaxDrawdown,
		SharpeRatio:     m.SharpeRatio,
	}
}

// maxDrawdown returns the most negative peak-to-trough decline of the
// equity series, as a non-positive fraction.
func maxDrawdown(equity []float64) float64 {
	minDD := 0.0
	peak := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}
		dd := (v - peak) / peak
		if dd < minDD {
			minDD = dd
		}
	}
	return minDD
}

// annualizedSharpe computes mean/std of the daily returns scaled by
// sqrt(252). Fewer than 2 samples or zero variance yield 0, never NaN.
func annualizedSharpe(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := average(returns)
	std := stddev(returns, mean)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation.
func stddev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func equities(curve CapitalCurve) []float64 {
	out := make([]float64, len(curve))
	for i, p := range curve {
		out[i] = p.Equity
	}
	return out
}
