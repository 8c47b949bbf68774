package backtest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// CurvePoint is one bar of a simulated capital trajectory. The plain
// price/equity columns are always populated; the remaining columns belong
// to specific simulation paths and are zero elsewhere.
type CurvePoint struct {
	Date            time.Time `json:"date"`
	Open            float64   `json:"open"`
	Close           float64   `json:"close"`
	Equity          float64   `json:"equity"`
	BenchmarkEquity float64   `json:"benchmark_equity"`

	// Vectorized path
	Position       float64 `json:"position,omitempty"`
	MarketReturn   float64 `json:"market_return,omitempty"`
	StrategyReturn float64 `json:"strategy_return,omitempty"`
	Cost           float64 `json:"cost,omitempty"`
	NetReturn      float64 `json:"net_return,omitempty"`

	// DCA path
	SharesBought  float64 `json:"shares_bought,omitempty"`
	TotalInvested float64 `json:"total_invested,omitempty"`

	// Ledger path
	Cash           float64 `json:"cash,omitempty"`
	CoreShares     float64 `json:"core_shares,omitempty"`
	TradableShares float64 `json:"tradable_shares,omitempty"`
	TotalShares    float64 `json:"total_shares,omitempty"`
	AvgCost        float64 `json:"avg_cost,omitempty"`
}

// CapitalCurve is the per-bar result table of one backtest run. It is
// created fresh per run and owned by the caller; runs never share curves.
type CapitalCurve []CurvePoint

// Returns computes periodic equity returns from the curve.
func (c CapitalCurve) Returns() []float64 {
	if len(c) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(c)-1)
	for i := 1; i < len(c); i++ {
		prev := c[i-1].Equity
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (c[i].Equity-prev)/prev)
	}
	return returns
}

// FinalEquity returns the last equity value, or 0 for an empty curve.
func (c CapitalCurve) FinalEquity() float64 {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].Equity
}

// ToCSV exports the curve to a CSV string.
func (c CapitalCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,open,close,position,net_return,equity,benchmark_equity,cash,core_shares,tradable_shares,avg_cost\n")
	for _, p := range c {
		buf.WriteString(p.Date.Format("2006-01-02"))
		for _, v := range []float64{p.Open, p.Close, p.Position, p.NetReturn, p.Equity, p.BenchmarkEquity, p.Cash, p.CoreShares, p.TradableShares, p.AvgCost} {
			buf.WriteString(",")
			buf.WriteString(strconv.FormatFloat(v, 'f', 6, 64))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the curve to a JSON string.
func (c CapitalCurve) ToJSON() string {
	data, _ := json.Marshal(c)
	return string(data)
}
