package strategy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yourusername/quant-backtest/internal/models"
)

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	want := []string{
		"daily_dca",
		"liquidity_grab",
		"ma200_trend",
		"mean_reversion",
		"pyramid_grid",
		"trend_confluence",
		"turn_of_month",
		"vix_switch",
	}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected names %v, got %v", want, got)
	}
}

func TestRegistryBuildUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Build("nope")
	if !errors.Is(err, models.ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestRegistryBuildsFreshInstances(t *testing.T) {
	r := NewRegistry()
	a, err := r.Build("pyramid_grid")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := r.Build("pyramid_grid")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a == b {
		t.Fatal("expected each build to return a distinct instance")
	}
	if a.Name() != "pyramid_grid" {
		t.Errorf("expected name pyramid_grid, got %s", a.Name())
	}
}
