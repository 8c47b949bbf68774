package strategy

import (
	"context"

	"github.com/yourusername/quant-backtest/internal/indicator"
	"github.com/yourusername/quant-backtest/internal/models"
)

// GridLevel describes one tier of the pyramid accumulation policy.
type GridLevel struct {
	Level     int
	Drop      float64 // drawdown threshold that arms this tier
	BuyRatio  float64 // fraction of initial capital to deploy
	RSIFilter bool    // tier additionally requires RSI < 40
}

// PyramidGridStrategy implements a five-level pyramid accumulation and
// de-risking policy.
//
// Capital allocation: 20% core position bought unconditionally on the first
// bar (level 0), 60% split across four add-on tiers, 20% held in reserve
// and never deployed by the generator. Take-profit unwinds the most recent
// add-on tier (LIFO) and never touches the level-0 core.
type PyramidGridStrategy struct {
	BaseStrategy

	Levels        []GridLevel
	ProfitTrigger float64 // gain over the last buy that arms take-profit
	SellRatio     float64 // fraction of the most recent lot liquidated
	RSIPeriod     int
	RSIThreshold  float64
}

// NewPyramidGridStrategy creates the grid strategy with its tuned defaults.
func NewPyramidGridStrategy() *PyramidGridStrategy {
	return &PyramidGridStrategy{
		BaseStrategy: BaseStrategy{NameValue: "pyramid_grid"},
		Levels: []GridLevel{
			{Level: 0, Drop: 0.00, BuyRatio: 0.20},
			{Level: 1, Drop: 0.05, BuyRatio: 0.10, RSIFilter: true},
			{Level: 2, Drop: 0.08, BuyRatio: 0.15},
			{Level: 3, Drop: 0.12, BuyRatio: 0.15},
			{Level: 4, Drop: 0.15, BuyRatio: 0.20},
		},
		ProfitTrigger: 0.05,
		SellRatio:     0.80,
		RSIPeriod:     14,
		RSIThreshold:  40,
	}
}

// Routing routes grid signals to the portfolio ledger replay.
func (s *PyramidGridStrategy) Routing() CapitalRouting {
	return RoutePyramid
}

// GetParameters returns the tunable parameters.
func (s *PyramidGridStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"profit_trigger": s.ProfitTrigger,
		"sell_ratio":     s.SellRatio,
		"rsi_period":     s.RSIPeriod,
		"rsi_threshold":  s.RSIThreshold,
		"levels":         len(s.Levels),
	}
}

// gridState is the accumulator threaded through the bar loop.
type gridState struct {
	avgCost      float64         // anchor price from the level-0 buy
	lastBuyPrice float64         // price of the most recent buy
	lastBuyLevel int             // tier of the most recent buy
	currentLevel int             // highest tier reached so far
	buyPrices    map[int]float64 // per-tier buy price history
}

// GenerateSignals walks the price series once, emitting at most one buy or
// sell per bar in priority order: first-bar core buy, then take-profit,
// then the lowest add-on tier whose drawdown threshold triggers.
func (s *PyramidGridStrategy) GenerateSignals(ctx context.Context, input Input) (models.SignalSeries, error) {
	_ = ctx
	bars := input.Bars
	signals := make(models.SignalSeries, 0, len(bars))
	if len(bars) == 0 {
		return signals, nil
	}

	closes := bars.Closes()
	rsi := indicator.RSI(closes, s.RSIPeriod)

	state := gridState{lastBuyLevel: -1, buyPrices: make(map[int]float64)}

	for i := range bars {
		price := closes[i]
		currentRSI := valueOr(rsi[i], 50)

		if i == 0 {
			state.avgCost = price
			state.lastBuyPrice = price
			state.lastBuyLevel = 0
			state.currentLevel = 0
			state.buyPrices[0] = price
			signals = append(signals, models.Signal{
				Decision:     models.DecisionBuy,
				BuyLevel:     0,
				BuyAmount:    s.Levels[0].BuyRatio,
				CurrentLevel: 0,
			})
			continue
		}

		if sig, ok := s.takeProfit(&state, price); ok {
			signals = append(signals, sig)
			continue
		}

		if sig, ok := s.addOn(&state, price, currentRSI); ok {
			signals = append(signals, sig)
			continue
		}

		signals = append(signals, models.HoldSignal(state.currentLevel))
	}

	return signals, nil
}

// takeProfit checks the +5% unwind condition. The level-0 core is never
// sold: take-profit only arms while the last buy sits above level 0.
func (s *PyramidGridStrategy) takeProfit(state *gridState, price float64) (models.Signal, bool) {
	if state.lastBuyLevel <= 0 {
		return models.Signal{}, false
	}
	profit := (price - state.lastBuyPrice) / state.lastBuyPrice
	if profit < s.ProfitTrigger {
		return models.Signal{}, false
	}

	// Step back exactly one tier and restore that tier's buy anchors.
	state.currentLevel = max(0, state.lastBuyLevel-1)
	state.lastBuyLevel = state.currentLevel
	if recorded, ok := state.buyPrices[state.currentLevel]; ok {
		state.lastBuyPrice = recorded
	} else {
		// No recorded price for the tier we retraced to; approximate
		// with the average cost rather than abort the unwind.
		state.lastBuyPrice = state.avgCost
	}

	return models.Signal{
		Decision:     models.DecisionSell,
		BuyLevel:     -1,
		SellRatio:    s.SellRatio,
		CurrentLevel: state.currentLevel,
	}, true
}

// addOn scans tiers 1..4 in ascending order and buys the first one whose
// drawdown threshold triggers. Tier 1 measures the drop from the level-0
// average cost and requires an oversold RSI; deeper tiers measure the drop
// from the previous tier's buy price. At most one tier is added per bar.
func (s *PyramidGridStrategy) addOn(state *gridState, price, currentRSI float64) (models.Signal, bool) {
	for _, lvl := range s.Levels[1:] {
		if lvl.Level <= state.currentLevel {
			continue
		}

		var drop float64
		if lvl.Level == 1 {
			drop = (state.avgCost - price) / state.avgCost
		} else {
			drop = (state.lastBuyPrice - price) / state.lastBuyPrice
		}

		trigger := drop >= lvl.Drop
		if lvl.RSIFilter {
			trigger = trigger && currentRSI < s.RSIThreshold
		}
		if !trigger {
			continue
		}

		state.lastBuyPrice = price
		state.lastBuyLevel = lvl.Level
		state.currentLevel = lvl.Level
		state.buyPrices[lvl.Level] = price

		return models.Signal{
			Decision:     models.DecisionBuy,
			BuyLevel:     lvl.Level,
			BuyAmount:    lvl.BuyRatio,
			CurrentLevel: lvl.Level,
		}, true
	}
	return models.Signal{}, false
}
