package strategy

import (
	"fmt"
	"sort"

	"github.com/yourusername/quant-backtest/internal/models"
)

// Registry maps configured strategy names to constructors.
type Registry struct {
	constructors map[string]func() Strategy
}

// NewRegistry creates a registry with all built-in strategies registered.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[string]func() Strategy)}
	r.Register("pyramid_grid", func() Strategy { return NewPyramidGridStrategy() })
	r.Register("ma200_trend", func() Strategy { return NewMA200TrendStrategy() })
	r.Register("mean_reversion", func() Strategy { return NewMeanReversionStrategy() })
	r.Register("liquidity_grab", func() Strategy { return NewLiquidityGrabStrategy() })
	r.Register("trend_confluence", func() Strategy { return NewTrendConfluenceStrategy() })
	r.Register("vix_switch", func() Strategy { return NewVIXSwitchStrategy() })
	r.Register("turn_of_month", func() Strategy { return NewTurnOfMonthStrategy() })
	r.Register("daily_dca", func() Strategy { return NewDailyDCAStrategy() })
	return r
}

// Register adds a constructor under the given name.
func (r *Registry) Register(name string, build func() Strategy) {
	r.constructors[name] = build
}

// Build constructs a fresh strategy instance by name. Each backtest run
// gets its own instance so runs never share state.
func (r *Registry) Build(name string) (Strategy, error) {
	build, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownStrategy, name)
	}
	return build(), nil
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
