// Package metrics provides a centralized Prometheus metrics registry
// for the backtesting engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quant_backtest",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by strategy and status",
	}, []string{"strategy", "status"})

	StrategySignalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quant_backtest",
		Name:      "strategy_signals_total",
		Help:      "Total number of buy and sell signals generated by strategy",
	}, []string{"strategy", "side"})

	BarsFetchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quant_backtest",
		Name:      "bars_fetched_total",
		Help:      "Total number of daily bars fetched by source",
	}, []string{"source"})
)

// Gauge metrics
var (
	LastTotalReturn = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "quant_backtest",
		Name:      "last_total_return",
		Help:      "Total return of the most recent backtest run by strategy",
	}, []string{"strategy"})

	LastMaxDrawdown = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "quant_backtest",
		Name:      "last_max_drawdown",
		Help:      "Maximum drawdown of the most recent backtest run by strategy",
	}, []string{"strategy"})

	LastSharpeRatio = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "quant_backtest",
		Name:      "last_sharpe_ratio",
		Help:      "Annualized Sharpe ratio of the most recent backtest run by strategy",
	}, []string{"strategy"})
)

// Histogram metrics
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "quant_backtest",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes and returns the global Prometheus registry
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(StrategySignalsTotal)
		registry.MustRegister(BarsFetchedTotal)

		registry.MustRegister(LastTotalReturn)
		registry.MustRegister(LastMaxDrawdown)
		registry.MustRegister(LastSharpeRatio)

		registry.MustRegister(BacktestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordBacktestRun records a backtest run event.
// status should be one of: "success", "failure"
func RecordBacktestRun(strategy, status string) {
	BacktestRunsTotal.WithLabelValues(strategy, status).Inc()
}

// RecordStrategySignal records a generated signal.
// side should be "buy" or "sell"
func RecordStrategySignal(strategy, side string) {
	StrategySignalsTotal.WithLabelValues(strategy, side).Inc()
}

// RecordBarsFetched records bars retrieved from a data source.
func RecordBarsFetched(source string, count int) {
	BarsFetchedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordBacktestDuration records backtest duration.
func RecordBacktestDuration(durationSeconds float64) {
	BacktestDuration.Observe(durationSeconds)
}

// UpdateRunGauges publishes headline metrics of the latest run.
func UpdateRunGauges(strategy string, totalReturn, maxDrawdown, sharpe float64) {
	LastTotalReturn.WithLabelValues(strategy).Set(totalReturn)
	LastMaxDrawdown.WithLabelValues(strategy).Set(maxDrawdown)
	LastSharpeRatio.WithLabelValues(strategy).Set(sharpe)
}
