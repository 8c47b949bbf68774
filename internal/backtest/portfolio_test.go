package backtest

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestNewPortfolioStartsAllCash(t *testing.T) {
	p := NewPortfolio(10000, 0)

	if p.Cash() != 10000 {
		t.Errorf("expected cash 10000, got %f", p.Cash())
	}
	if p.TotalShares() != 0 {
		t.Errorf("expected no shares, got %f", p.TotalShares())
	}
}

func TestBuyCoreLot(t *testing.T) {
	p := NewPortfolio(10000, 0)

	shares := p.Buy(100, 2000, 0)

	if !almostEqual(shares, 20) {
		t.Errorf("expected 20 shares, got %f", shares)
	}
	if !almostEqual(p.CoreShares(), 20) {
		t.Errorf("expected 20 core shares, got %f", p.CoreShares())
	}
	if p.TradableShares() != 0 {
		t.Errorf("expected no tradable shares, got %f", p.TradableShares())
	}
	if !almostEqual(p.Cash(), 8000) {
		t.Errorf("expected cash 8000, got %f", p.Cash())
	}
}

func TestBuyChargesCommission(t *testing.T) {
	p := NewPortfolio(10000, 0.001)

	shares := p.Buy(100, 1000, 2)

	// 1000 spent, 1 paid in fees, 999 converted at 100.
	if !almostEqual(shares, 9.99) {
		t.Errorf("expected 9.99 shares, got %f", shares)
	}
	if !almostEqual(p.Cash(), 9000) {
		t.Errorf("expected cash 9000, got %f", p.Cash())
	}
}

func TestBuyClampsToAvailableCash(t *testing.T) {
	p := NewPortfolio(1000, 0)

	shares := p.Buy(10, 5000, 1)

	if !almostEqual(shares, 100) {
		t.Errorf("expected clamp to 100 shares, got %f", shares)
	}
	if p.Cash() != 0 {
		t.Errorf("expected cash exhausted, got %f", p.Cash())
	}

	// Further buys are no-ops, never debt.
	if got := p.Buy(10, 500, 2); got != 0 {
		t.Errorf("expected 0 shares with no cash, got %f", got)
	}
	if p.Cash() < 0 {
		t.Errorf("cash went negative: %f", p.Cash())
	}
}

func TestSellLIFOPartialLotMigratesRemainderToCore(t *testing.T) {
	p := NewPortfolio(10000, 0)
	p.Buy(100, 1000, 1) // 10 tradable shares

	sold := p.SellLIFO(110, 0.80)

	if !almostEqual(sold, 8) {
		t.Errorf("expected 8 shares sold, got %f", sold)
	}
	if p.TradableShares() != 0 {
		t.Errorf("expected tradable stack empty, got %f", p.TradableShares())
	}
	if !almostEqual(p.CoreShares(), 2) {
		t.Errorf("expected 2-share remainder in core, got %f", p.CoreShares())
	}
	if !almostEqual(p.Cash(), 9000+8*110) {
		t.Errorf("expected cash %f, got %f", 9000+8*110.0, p.Cash())
	}
}

func TestSellLIFOTakesTopOfStack(t *testing.T) {
	p := NewPortfolio(10000, 0)
	p.Buy(100, 1000, 1) // 10 shares @ 100
	p.Buy(80, 800, 2)   // 10 shares @ 80, on top

	p.SellLIFO(90, 1.0)

	// The level-2 lot goes entirely; the level-1 lot is untouched.
	if !almostEqual(p.TradableShares(), 10) {
		t.Errorf("expected 10 tradable shares left, got %f", p.TradableShares())
	}
	if !almostEqual(p.AvgCost(90), 100) {
		t.Errorf("expected remaining lot priced at 100, got %f", p.AvgCost(90))
	}
}

func TestSellLIFONeverTouchesCore(t *testing.T) {
	p := NewPortfolio(10000, 0)
	p.Buy(100, 2000, 0) // core only

	sold := p.SellLIFO(120, 0.80)

	if sold != 0 {
		t.Errorf("expected no-op sell with empty tradable stack, got %f shares", sold)
	}
	if !almostEqual(p.CoreShares(), 20) {
		t.Errorf("core was touched: %f shares", p.CoreShares())
	}
}

func TestUpdateValueEquityIdentity(t *testing.T) {
	p := NewPortfolio(10000, 0)
	p.Buy(100, 2000, 0)
	p.Buy(90, 1500, 2)

	equity := p.UpdateValue(95)

	want := p.Cash() + p.TotalShares()*95
	if !almostEqual(equity, want) {
		t.Errorf("equity identity violated: got %f, want %f", equity, want)
	}
}

func TestDailyReturnsFirstBarIsZero(t *testing.T) {
	p := NewPortfolio(10000, 0)
	p.Buy(100, 2000, 0)

	p.UpdateValue(100)
	p.UpdateValue(110)

	returns := p.DailyReturns()
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if returns[0] != 0 {
		t.Errorf("expected first-bar return 0, got %f", returns[0])
	}
	// 20 shares gained 10 each on 10000 equity.
	if !almostEqual(returns[1], 0.02) {
		t.Errorf("expected return 0.02, got %f", returns[1])
	}
}

func TestAvgCostWeightsAcrossPools(t *testing.T) {
	p := NewPortfolio(10000, 0)
	p.Buy(100, 1000, 1)
	p.Buy(200, 2000, 0)

	// 10 tradable shares @ 100 plus 10 core shares @ 200.
	if !almostEqual(p.AvgCost(150), 150) {
		t.Errorf("expected weighted avg cost 150, got %f", p.AvgCost(150))
	}
}

func TestAvgCostEmptyPortfolio(t *testing.T) {
	p := NewPortfolio(10000, 0)
	if p.AvgCost(100) != 0 {
		t.Errorf("expected avg cost 0 with no lots, got %f", p.AvgCost(100))
	}
}

func TestPortfolioMetrics(t *testing.T) {
	p := NewPortfolio(10000, 0)
	p.Buy(100, 10000, 1)

	p.UpdateValue(100)
	p.UpdateValue(110)
	p.UpdateValue(105)

	m := p.Metrics()

	if !almostEqual(m.TotalReturn, 0.05) {
		t.Errorf("expected total return 0.05, got %f", m.TotalReturn)
	}
	if !almostEqual(m.FinalEquity, 10500) {
		t.Errorf("expected final equity 10500, got %f", m.FinalEquity)
	}
	// One positive day out of three recorded days.
	if !almostEqual(m.WinRate, 1.0/3.0) {
		t.Errorf("expected win rate 1/3, got %f", m.WinRate)
	}
	// Peak 11000 to trough 10500.
	if !almostEqual(m.MaxDrawdown, (10500.0-11000.0)/11000.0) {
		t.Errorf("unexpected max drawdown %f", m.MaxDrawdown)
	}
}
