package backtest

import (
	"errors"
	"testing"
	"time"

	"github.com/yourusername/quant-backtest/internal/models"
)

func gridBars(prices ...float64) models.Series {
	bars := make(models.Series, len(prices))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, price := range prices {
		bars[i] = models.Bar{
			Date:  base.AddDate(0, 0, i),
			Open:  price,
			High:  price,
			Low:   price,
			Close: price,
		}
	}
	return bars
}

func buySignal(level int, amount float64) models.Signal {
	return models.Signal{
		Decision:     models.DecisionBuy,
		BuyLevel:     level,
		BuyAmount:    amount,
		CurrentLevel: level,
	}
}

func sellSignal(ratio float64, currentLevel int) models.Signal {
	return models.Signal{
		Decision:     models.DecisionSell,
		BuyLevel:     -1,
		SellRatio:    ratio,
		CurrentLevel: currentLevel,
	}
}

func TestRunPyramidReplay(t *testing.T) {
	bars := gridBars(100, 90, 95)
	signals := models.SignalSeries{
		buySignal(0, 0.20),
		buySignal(2, 0.15),
		sellSignal(0.80, 0),
	}

	curve, portfolio, err := RunPyramid(bars, signals, testConfig(10000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Bar 0: 2000 of core at 100.
	if !almostEqual(curve[0].CoreShares, 20) {
		t.Errorf("expected 20 core shares, got %f", curve[0].CoreShares)
	}
	if !almostEqual(curve[0].Cash, 8000) {
		t.Errorf("expected cash 8000, got %f", curve[0].Cash)
	}
	if !almostEqual(curve[0].Equity, 10000) {
		t.Errorf("expected equity 10000, got %f", curve[0].Equity)
	}

	// Bar 1: 1500 of tradable at 90.
	wantTradable := 1500.0 / 90
	if !almostEqual(curve[1].TradableShares, wantTradable) {
		t.Errorf("expected %f tradable shares, got %f", wantTradable, curve[1].TradableShares)
	}
	if !almostEqual(curve[1].Cash, 6500) {
		t.Errorf("expected cash 6500, got %f", curve[1].Cash)
	}

	// Bar 2: 80% of the top lot sold at 95, remainder migrates to core.
	soldShares := wantTradable * 0.80
	if curve[2].TradableShares != 0 {
		t.Errorf("expected tradable stack empty, got %f", curve[2].TradableShares)
	}
	if !almostEqual(curve[2].CoreShares, 20+wantTradable*0.20) {
		t.Errorf("expected remainder in core, got %f", curve[2].CoreShares)
	}
	if !almostEqual(curve[2].Cash, 6500+soldShares*95) {
		t.Errorf("expected cash %f, got %f", 6500+soldShares*95, curve[2].Cash)
	}

	// The final equity identity holds on the portfolio too.
	if !almostEqual(portfolio.Cash()+portfolio.TotalShares()*95, curve[2].Equity) {
		t.Error("curve equity does not match the ledger")
	}
}

func TestRunPyramidDeterministic(t *testing.T) {
	bars := gridBars(100, 95, 88, 92, 97, 90)
	signals := models.SignalSeries{
		buySignal(0, 0.20),
		models.HoldSignal(0),
		buySignal(2, 0.15),
		models.HoldSignal(2),
		sellSignal(0.80, 1),
		models.HoldSignal(1),
	}

	first, _, err := RunPyramid(bars, signals, testConfig(10000, 0.001))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := RunPyramid(bars, signals, testConfig(10000, 0.001))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("replay diverged at bar %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRunPyramidBuyAmountsUseInitialCapital(t *testing.T) {
	bars := gridBars(100, 50)
	signals := models.SignalSeries{
		buySignal(0, 0.20),
		buySignal(4, 0.20),
	}

	_, portfolio, err := RunPyramid(bars, signals, testConfig(10000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both buys deploy 2000 even though equity moved between bars.
	if !almostEqual(portfolio.Cash(), 6000) {
		t.Errorf("expected cash 6000 after two 20%% buys, got %f", portfolio.Cash())
	}
}

func TestRunPyramidLengthMismatch(t *testing.T) {
	bars := gridBars(100, 90)
	_, _, err := RunPyramid(bars, models.SignalSeries{buySignal(0, 0.20)}, testConfig(10000, 0))
	if !errors.Is(err, models.ErrSeriesMismatch) {
		t.Errorf("expected ErrSeriesMismatch, got %v", err)
	}
}

func TestRunPyramidEmptySeries(t *testing.T) {
	curve, portfolio, err := RunPyramid(models.Series{}, models.SignalSeries{}, testConfig(10000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(curve) != 0 {
		t.Errorf("expected empty curve, got %d points", len(curve))
	}
	if portfolio.Cash() != 10000 {
		t.Errorf("expected untouched ledger, got cash %f", portfolio.Cash())
	}
}
