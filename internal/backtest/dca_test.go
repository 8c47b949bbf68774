package backtest

import (
	"testing"
	"time"

	"github.com/yourusername/quant-backtest/internal/models"
)

func TestRunDCASplitsCapitalEvenly(t *testing.T) {
	bars := models.Series{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Open: 100, Close: 100},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, Close: 110},
	}

	curve, err := RunDCA(bars, testConfig(10000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(curve[0].SharesBought, 50) {
		t.Errorf("expected 50 shares on bar 0, got %f", curve[0].SharesBought)
	}
	if !almostEqual(curve[0].Cash, 5000) {
		t.Errorf("expected 5000 idle cash after bar 0, got %f", curve[0].Cash)
	}
	if !almostEqual(curve[0].Equity, 10000) {
		t.Errorf("expected equity 10000 after bar 0, got %f", curve[0].Equity)
	}

	if !almostEqual(curve[1].TotalShares, 100) {
		t.Errorf("expected 100 total shares, got %f", curve[1].TotalShares)
	}
	if curve[1].Cash != 0 {
		t.Errorf("expected cash fully invested, got %f", curve[1].Cash)
	}
	if !almostEqual(curve[1].Equity, 11000) {
		t.Errorf("expected equity 11000, got %f", curve[1].Equity)
	}
	// Lump sum at bar 0's open marked to bar 1's close.
	if !almostEqual(curve[1].BenchmarkEquity, 11000) {
		t.Errorf("expected benchmark 11000, got %f", curve[1].BenchmarkEquity)
	}
}

func TestRunDCAEmptySeries(t *testing.T) {
	curve, err := RunDCA(models.Series{}, testConfig(10000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(curve) != 0 {
		t.Errorf("expected empty curve, got %d points", len(curve))
	}
}

func TestRunDCAFallingMarketBeatsLumpSum(t *testing.T) {
	// Prices halve then recover; averaging in buys the dip, lump sum
	// rides the whole drawdown.
	bars := barsFromOpens(100, 50, 100)

	curve, err := RunDCA(bars, testConfig(9000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final := curve[len(curve)-1]
	if final.Equity <= final.BenchmarkEquity {
		t.Errorf("expected DCA equity %f to beat benchmark %f on a V-shaped path",
			final.Equity, final.BenchmarkEquity)
	}
	// 3000 at 100, 3000 at 50, 3000 at 100: 120 shares at close 100.
	if !almostEqual(final.Equity, 12000) {
		t.Errorf("expected equity 12000, got %f", final.Equity)
	}
}
