package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/quant-backtest/internal/models"
)

func seriesFromCloses(closes []float64) models.Series {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make(models.Series, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1,
		}
	}
	return bars
}

func TestPyramidGridBuysCoreOnFirstBar(t *testing.T) {
	s := NewPyramidGridStrategy()
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses([]float64{100})})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	sig := signals[0]
	if sig.Decision != models.DecisionBuy || sig.BuyLevel != 0 {
		t.Errorf("expected level-0 buy, got %+v", sig)
	}
	if sig.BuyAmount != 0.20 {
		t.Errorf("expected core buy amount 0.20, got %v", sig.BuyAmount)
	}
}

func TestPyramidGridEmptySeries(t *testing.T) {
	s := NewPyramidGridStrategy()
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: models.Series{}})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	if len(signals) != 0 {
		t.Fatalf("expected no signals, got %d", len(signals))
	}
}

func TestPyramidGridSkipsGatedTierAndBuysNext(t *testing.T) {
	// A 9% drop arms both tier 1 and tier 2, but tier 1 requires an
	// oversold RSI and the warmup fallback of 50 fails that gate, so the
	// buy lands on tier 2.
	s := NewPyramidGridStrategy()
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses([]float64{100, 91})})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	sig := signals[1]
	if sig.Decision != models.DecisionBuy || sig.BuyLevel != 2 {
		t.Fatalf("expected tier-2 buy, got %+v", sig)
	}
	if sig.BuyAmount != 0.15 {
		t.Errorf("expected tier-2 buy amount 0.15, got %v", sig.BuyAmount)
	}
}

func TestPyramidGridTierOneRequiresOversoldRSI(t *testing.T) {
	// A 6% drop sits between the tier-1 and tier-2 thresholds. Without an
	// oversold RSI no tier triggers.
	s := NewPyramidGridStrategy()
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses([]float64{100, 94})})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	if signals[1].Decision != models.DecisionHold {
		t.Fatalf("expected hold while RSI gate fails, got %+v", signals[1])
	}
}

func TestPyramidGridTierOneBuysWhenOversold(t *testing.T) {
	// Thirteen up bars seed the RSI window, then two hard down bars push
	// it below 40 while the close sits 6% under the level-0 anchor.
	closes := make([]float64, 0, 16)
	for i := 0; i <= 13; i++ {
		closes = append(closes, 100+float64(i))
	}
	closes = append(closes, 104, 94)

	s := NewPyramidGridStrategy()
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses(closes)})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	for i := 1; i < 15; i++ {
		if signals[i].Decision != models.DecisionHold {
			t.Fatalf("expected hold at bar %d, got %+v", i, signals[i])
		}
	}
	last := signals[15]
	if last.Decision != models.DecisionBuy || last.BuyLevel != 1 {
		t.Fatalf("expected tier-1 buy on oversold dip, got %+v", last)
	}
	if last.BuyAmount != 0.10 {
		t.Errorf("expected tier-1 buy amount 0.10, got %v", last.BuyAmount)
	}
}

func TestPyramidGridDeeperTiersMeasureFromLastBuy(t *testing.T) {
	// After the tier-2 buy at 91 the tier-3 threshold is measured from 91,
	// not from the level-0 anchor. 83 is a 17% drop from the anchor but
	// only 8.8% from the last buy, so nothing triggers; 80 crosses 12%.
	s := NewPyramidGridStrategy()
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses([]float64{100, 91, 83})})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	if signals[2].Decision != models.DecisionHold {
		t.Fatalf("expected hold at 8.8%% below last buy, got %+v", signals[2])
	}

	signals, err = s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses([]float64{100, 91, 80})})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	if signals[2].Decision != models.DecisionBuy || signals[2].BuyLevel != 3 {
		t.Fatalf("expected tier-3 buy at 12%% below last buy, got %+v", signals[2])
	}
}

func TestPyramidGridTakeProfitStepsBackOneTier(t *testing.T) {
	// Tier-2 buy at 91, then a 5.5% bounce unwinds it: the sell carries
	// the configured ratio and the state retraces to level 1.
	s := NewPyramidGridStrategy()
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses([]float64{100, 91, 96})})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	sig := signals[2]
	if sig.Decision != models.DecisionSell {
		t.Fatalf("expected take-profit sell, got %+v", sig)
	}
	if sig.SellRatio != 0.80 {
		t.Errorf("expected sell ratio 0.80, got %v", sig.SellRatio)
	}
	if sig.CurrentLevel != 1 {
		t.Errorf("expected retrace to level 1, got %d", sig.CurrentLevel)
	}
}

func TestPyramidGridCoreIsNeverSold(t *testing.T) {
	// A 6% gain over the level-0 core must not arm take-profit.
	s := NewPyramidGridStrategy()
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses([]float64{100, 106})})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	if signals[1].Decision != models.DecisionHold {
		t.Fatalf("expected hold above the core buy, got %+v", signals[1])
	}
}

func TestPyramidGridTakeProfitRestoresTierPrice(t *testing.T) {
	// Climb to tier 3 (buy at 80), take profit at 85 back to tier 2. The
	// last-buy anchor must be restored to the recorded tier-2 price of 91:
	// at 84 the restored anchor shows a loss, so no second take-profit
	// fires. An unrestored anchor of 80 would show +5% and sell again.
	s := NewPyramidGridStrategy()
	closes := []float64{100, 91, 80, 85, 84}
	signals, err := s.GenerateSignals(context.Background(), Input{Bars: seriesFromCloses(closes)})
	if err != nil {
		t.Fatalf("GenerateSignals: %v", err)
	}
	if signals[3].Decision != models.DecisionSell || signals[3].CurrentLevel != 2 {
		t.Fatalf("expected take-profit back to level 2, got %+v", signals[3])
	}
	if signals[4].Decision != models.DecisionHold {
		t.Fatalf("expected hold against the restored tier price, got %+v", signals[4])
	}
	if signals[4].CurrentLevel != 2 {
		t.Errorf("expected hold to carry level 2, got %d", signals[4].CurrentLevel)
	}
}

func TestPyramidGridRoutesToPortfolioReplay(t *testing.T) {
	if got := RoutingFor(NewPyramidGridStrategy()); got != RoutePyramid {
		t.Fatalf("expected RoutePyramid, got %v", got)
	}
}
