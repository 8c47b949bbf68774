package models

// Decision is the per-bar trading decision emitted by a signal generator.
type Decision int

const (
	DecisionSell Decision = -1
	DecisionHold Decision = 0
	DecisionBuy  Decision = 1
)

// Signal is one bar's decision. For the pyramid grid strategy it also
// carries the grid-level bookkeeping; other strategies leave those fields
// at their zero values (BuyLevel -1 means "no buy").
type Signal struct {
	Decision     Decision `json:"decision"`
	BuyLevel     int      `json:"buy_level"`
	BuyAmount    float64  `json:"buy_amount"`
	SellRatio    float64  `json:"sell_ratio"`
	CurrentLevel int      `json:"current_level"`
}

// HoldSignal returns a no-op signal carrying the given grid level forward.
func HoldSignal(currentLevel int) Signal {
	return Signal{
		Decision:     DecisionHold,
		BuyLevel:     -1,
		CurrentLevel: currentLevel,
	}
}

// SignalSeries is a per-bar decision sequence aligned to a price Series.
//
// Standard long/flat strategies use forward-filled semantics: once Decision
// becomes Buy it means "in position" until a Hold/Sell bar appears. The grid
// strategy emits one-shot buy/sell events instead.
type SignalSeries []Signal

// Positions renders the series as {0,1} position values for the
// vectorized backtester.
func (ss SignalSeries) Positions() []float64 {
	positions := make([]float64, len(ss))
	for i, sig := range ss {
		if sig.Decision == DecisionBuy {
			positions[i] = 1
		}
	}
	return positions
}
