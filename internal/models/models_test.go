package models

import (
	"testing"
	"time"
)

func TestSignalSeriesPositions(t *testing.T) {
	ss := SignalSeries{
		{Decision: DecisionHold},
		{Decision: DecisionBuy},
		{Decision: DecisionSell},
		{Decision: DecisionBuy},
	}
	got := ss.Positions()
	want := []float64{0, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHoldSignalCarriesLevel(t *testing.T) {
	sig := HoldSignal(3)
	if sig.Decision != DecisionHold || sig.CurrentLevel != 3 || sig.BuyLevel != -1 {
		t.Fatalf("unexpected hold signal %+v", sig)
	}
}

func TestSeriesBetweenInclusive(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	s := Series{
		{Date: day(1)},
		{Date: day(2)},
		{Date: day(3)},
		{Date: day(4)},
	}

	got := s.Between(day(2), day(3))
	if len(got) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(got))
	}
	if !got[0].Date.Equal(day(2)) || !got[1].Date.Equal(day(3)) {
		t.Errorf("expected inclusive bounds, got %v and %v", got[0].Date, got[1].Date)
	}
}

func TestLotValue(t *testing.T) {
	lot := Lot{Shares: 10, Price: 100, Level: 2}
	if got := lot.Value(110); got != 1100 {
		t.Fatalf("expected marked value 1100, got %v", got)
	}
}
