package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/quant-backtest/internal/datasource"
	"github.com/yourusername/quant-backtest/internal/metrics"
	"github.com/yourusername/quant-backtest/internal/models"
	"github.com/yourusername/quant-backtest/internal/repository"
	"github.com/yourusername/quant-backtest/internal/strategy"
)

// Engine orchestrates backtesting runs: it fetches bars, generates
// signals and routes them to the right capital simulator.
type Engine struct {
	config   Config
	source   datasource.DataSource
	registry *strategy.Registry
	results  repository.BacktestResultRepository
	logger   *logrus.Logger
}

// RunReport is the complete output of one backtest run.
type RunReport struct {
	RunID     uuid.UUID
	Symbol    string
	Strategy  string
	Routing   strategy.CapitalRouting
	Curve     CapitalCurve
	Portfolio *Portfolio // only set for ledger-routed strategies
	Metrics   Metrics
}

// NewEngine creates a new backtesting engine
func NewEngine(cfg Config, source datasource.DataSource, registry *strategy.Registry, logger *logrus.Logger) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("data source is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("strategy registry is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config:   cfg,
		source:   source,
		registry: registry,
		logger:   logger,
	}, nil
}

// WithResultRepository enables result persistence for subsequent runs
func (e *Engine) WithResultRepository(repo repository.BacktestResultRepository) *Engine {
	e.results = repo
	return e
}

// Config returns the backtest configuration
func (e *Engine) Config() Config {
	return e.config
}

// Run executes one strategy against one symbol over the configured window
func (e *Engine) Run(ctx context.Context, symbol, strategyName string) (*RunReport, error) {
	started := time.Now()
	runID := uuid.New()

	log := e.logger.WithFields(logrus.Fields{
		"run_id":   runID,
		"symbol":   symbol,
		"strategy": strategyName,
		"start":    e.config.StartDate.Format("2006-01-02"),
		"end":      e.config.EndDate.Format("2006-01-02"),
	})
	log.Info("Starting backtest run")

	report, err := e.run(ctx, runID, symbol, strategyName)
	metrics.RecordBacktestDuration(time.Since(started).Seconds())
	if err != nil {
		metrics.RecordBacktestRun(strategyName, "failure")
		log.WithError(err).Error("Backtest run failed")
		return nil, err
	}

	metrics.RecordBacktestRun(strategyName, "success")
	metrics.UpdateRunGauges(strategyName,
		report.Metrics.TotalReturn,
		report.Metrics.MaxDrawdown,
		report.Metrics.SharpeRatio,
	)
	log.WithFields(logrus.Fields{
		"total_return": report.Metrics.TotalReturn,
		"max_drawdown": report.Metrics.MaxDrawdown,
		"sharpe":       report.Metrics.SharpeRatio,
		"final_equity": report.Metrics.FinalEquity,
		"elapsed":      time.Since(started),
	}).Info("Backtest run complete")

	return report, nil
}

func (e *Engine) run(ctx context.Context, runID uuid.UUID, symbol, strategyName string) (*RunReport, error) {
	if symbol == "" {
		return nil, models.ErrSymbolRequired
	}

	strat, err := e.registry.Build(strategyName)
	if err != nil {
		return nil, err
	}

	bars, err := e.source.FetchDailyBars(ctx, symbol, e.config.StartDate, e.config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, models.ErrNoData
	}
	metrics.RecordBarsFetched(e.source.Name(), len(bars))

	var aux models.Series
	if e.config.AuxSymbol != "" {
		aux, err = e.source.FetchDailyBars(ctx, e.config.AuxSymbol, e.config.StartDate, e.config.EndDate)
		if err != nil {
			// Auxiliary data is best effort: strategies that need it
			// degrade to flat rather than failing the run.
			e.logger.WithError(err).WithField("aux_symbol", e.config.AuxSymbol).
				Warn("Failed to fetch auxiliary series, continuing without it")
			aux = nil
		}
	}

	signals, err := strat.GenerateSignals(ctx, strategy.Input{Bars: bars, Aux: aux})
	if err != nil {
		return nil, fmt.Errorf("failed to generate signals: %w", err)
	}
	recordSignalCounts(strategyName, signals)

	report := &RunReport{
		RunID:    runID,
		Symbol:   symbol,
		Strategy: strategyName,
		Routing:  strategy.RoutingFor(strat),
	}

	switch report.Routing {
	case RouteDCA:
		report.Curve, err = RunDCA(bars, e.config)
		if err != nil {
			return nil, err
		}
		report.Metrics = CalculateDCAMetrics(report.Curve, e.config.InitialCapital)

	case RoutePyramid:
		report.Curve, report.Portfolio, err = RunPyramid(bars, signals, e.config)
		if err != nil {
			return nil, err
		}
		report.Metrics = CalculatePyramidMetrics(report.Portfolio, report.Curve, e.config.InitialCapital)

	default:
		report.Curve, err = RunVectorized(bars, signals, e.config)
		if err != nil {
			return nil, err
		}
		report.Metrics = CalculateVectorizedMetrics(report.Curve, e.config.InitialCapital)
	}

	if e.config.PersistResults && e.results != nil {
		result := report.Metrics.ToResult(symbol, strategyName, e.config)
		result.ID = runID
		if err := e.results.SaveResult(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to persist result: %w", err)
		}
	}

	return report, nil
}

// Compare runs every registered strategy against one symbol
func (e *Engine) Compare(ctx context.Context, symbol string) ([]*RunReport, error) {
	names := e.registry.Names()
	reports := make([]*RunReport, 0, len(names))
	for _, name := range names {
		report, err := e.Run(ctx, symbol, name)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", name, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Routing aliases keep the switch above readable without importing the
// strategy package at every call site.
const (
	RouteVectorized = strategy.RouteVectorized
	RouteDCA        = strategy.RouteDCA
	RoutePyramid    = strategy.RoutePyramid
)

func recordSignalCounts(strategyName string, signals models.SignalSeries) {
	for _, sig := range signals {
		switch sig.Decision {
		case models.DecisionBuy:
			metrics.RecordStrategySignal(strategyName, "buy")
		case models.DecisionSell:
			metrics.RecordStrategySignal(strategyName, "sell")
		}
	}
}
