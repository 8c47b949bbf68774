package backtest

import (
	"github.com/yourusername/quant-backtest/internal/models"
)

// Portfolio is the event-driven ledger behind the pyramid grid replay.
//
// It tracks cash, a permanent list of core lots, and a LIFO stack of
// tradable lots. Buys are clamped to available cash, never rejected;
// sells only ever touch the top of the tradable stack, and the unsold
// remainder of a partially liquidated lot migrates into the core list.
type Portfolio struct {
	initialCapital float64
	commission     float64

	cash     float64
	core     []models.Lot
	tradable []models.Lot

	equityHistory []float64
	cashHistory   []float64
	dailyReturns  []float64
}

// NewPortfolio creates a ledger with the full capital in cash.
func NewPortfolio(initialCapital, commission float64) *Portfolio {
	return &Portfolio{
		initialCapital: initialCapital,
		commission:     commission,
		cash:           initialCapital,
	}
}

// Cash returns the current cash balance.
func (p *Portfolio) Cash() float64 { return p.cash }

// CoreShares returns the share count across all core lots.
func (p *Portfolio) CoreShares() float64 {
	total := 0.0
	for _, lot := range p.core {
		total += lot.Shares
	}
	return total
}

// TradableShares returns the share count across the tradable stack.
func (p *Portfolio) TradableShares() float64 {
	total := 0.0
	for _, lot := range p.tradable {
		total += lot.Shares
	}
	return total
}

// TotalShares returns the share count across both lot pools.
func (p *Portfolio) TotalShares() float64 {
	return p.CoreShares() + p.TradableShares()
}

// EquityHistory returns the recorded per-bar equity values.
func (p *Portfolio) EquityHistory() []float64 { return p.equityHistory }

// CashHistory returns the recorded per-bar cash balances.
func (p *Portfolio) CashHistory() []float64 { return p.cashHistory }

// DailyReturns returns the recorded per-bar equity returns.
func (p *Portfolio) DailyReturns() []float64 { return p.dailyReturns }

// AvgCost returns the value-weighted average entry price across all lots.
// Core lots without a recorded price are estimated at the current price;
// the imprecision is accepted.
func (p *Portfolio) AvgCost(currentPrice float64) float64 {
	totalShares := p.TotalShares()
	if totalShares == 0 {
		return 0
	}
	value := 0.0
	for _, lot := range p.core {
		price := lot.Price
		if price == 0 {
			price = currentPrice
		}
		value += lot.Shares * price
	}
	for _, lot := range p.tradable {
		value += lot.Shares * lot.Price
	}
	return value / totalShares
}

// Buy converts up to `amount` of cash into shares at `price`, charging
// commission on the spent amount. A request beyond available cash is
// clamped to a partial fill; the ledger never borrows. Returns the shares
// acquired (0 when cash is exhausted).
func (p *Portfolio) Buy(price, amount float64, level int) float64 {
	if amount > p.cash {
		amount = p.cash
	}
	if amount <= 0 || price <= 0 {
		return 0
	}

	fee := amount * p.commission
	shares := (amount - fee) / price

	lot := models.Lot{Shares: shares, Price: price, Level: level}
	if level == 0 {
		p.core = append(p.core, lot)
	} else {
		p.tradable = append(p.tradable, lot)
	}

	p.cash -= amount
	return shares
}

// SellLIFO liquidates `sellRatio` of the top tradable lot at `price` and
// credits the net proceeds to cash. The unsold remainder of the lot
// becomes a new core lot before the original is popped: this is the
// mechanism that gradually migrates liquidated tradable capital into the
// permanent core. A no-op when the stack is empty. Returns shares sold.
func (p *Portfolio) SellLIFO(price, sellRatio float64) float64 {
	if len(p.tradable) == 0 {
		return 0
	}

	top := &p.tradable[len(p.tradable)-1]
	sharesToSell := top.Shares * sellRatio
	if sharesToSell <= 0 {
		return 0
	}

	proceeds := sharesToSell * price
	fee := proceeds * p.commission
	p.cash += proceeds - fee

	top.Shares -= sharesToSell
	if top.Shares > 0 {
		p.core = append(p.core, models.Lot{
			Shares: top.Shares,
			Price:  top.Price,
			Level:  top.Level,
		})
	}
	p.tradable = p.tradable[:len(p.tradable)-1]

	return sharesToSell
}

// UpdateValue marks the portfolio to the given close price and appends to
// the history. Must be called exactly once per bar, after that bar's
// buy/sell instructions. Returns the total equity.
func (p *Portfolio) UpdateValue(closePrice float64) float64 {
	equity := p.cash + p.TotalShares()*closePrice

	if len(p.equityHistory) > 0 {
		prev := p.equityHistory[len(p.equityHistory)-1]
		p.dailyReturns = append(p.dailyReturns, (equity-prev)/prev)
	} else {
		p.dailyReturns = append(p.dailyReturns, 0)
	}

	p.equityHistory = append(p.equityHistory, equity)
	p.cashHistory = append(p.cashHistory, p.cash)
	return equity
}

// Metrics computes the performance snapshot from the recorded history.
func (p *Portfolio) Metrics() Metrics {
	if len(p.equityHistory) == 0 {
		return Metrics{}
	}

	final := p.equityHistory[len(p.equityHistory)-1]
	m := Metrics{
		TotalReturn: (final - p.initialCapital) / p.initialCapital,
		MaxDrawdown: maxDrawdown(p.equityHistory),
		SharpeRatio: annualizedSharpe(p.dailyReturns),
		FinalEquity: final,
	}

	// Ledger win rate counts every recorded day with a positive return
	// over all recorded days; it deliberately differs from the
	// active-day definition used by the vectorized path.
	if len(p.dailyReturns) > 1 {
		positive := 0
		for _, r := range p.dailyReturns {
			if r > 0 {
				positive++
			}
		}
		m.WinRate = float64(positive) / float64(len(p.dailyReturns))
	}

	return m
}
