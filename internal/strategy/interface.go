package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/models"
)

// Strategy defines the interface for per-bar signal generators.
type Strategy interface {
	Name() string
	GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error)
	GetParameters() map[string]interface{}
}

// Input provides a generator with its aligned inputs for one run.
type Input struct {
	Bars models.Series
	// Aux is an optional auxiliary index series (e.g. a volatility index);
	// generators that use it forward-fill it onto the bar dates.
	Aux models.Series
}

// CapitalRouting tells the engine which simulator a strategy's signals
// are meant for.
type CapitalRouting int

const (
	// RouteVectorized runs the flat/long signal series through the
	// vectorized backtester.
	RouteVectorized CapitalRouting = iota
	// RouteDCA runs the dollar-cost-averaging simulator.
	RouteDCA
	// RoutePyramid replays grid signals through the portfolio ledger.
	RoutePyramid
)

// Router is implemented by strategies that need a non-default simulator.
// Strategies that do not implement it get RouteVectorized.
type Router interface {
	Routing() CapitalRouting
}

// RoutingFor returns the capital routing for a strategy.
func RoutingFor(s Strategy) CapitalRouting {
	if r, ok := s.(Router); ok {
		return r.Routing()
	}
	return RouteVectorized
}
