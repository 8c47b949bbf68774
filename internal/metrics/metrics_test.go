package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordBacktestRun(t *testing.T) {
	before := testutil.ToFloat64(BacktestRunsTotal.WithLabelValues("test_strategy", "success"))
	RecordBacktestRun("test_strategy", "success")
	after := testutil.ToFloat64(BacktestRunsTotal.WithLabelValues("test_strategy", "success"))
	if after != before+1 {
		t.Fatalf("expected counter to increment, before=%v after=%v", before, after)
	}
}

func TestRecordBarsFetched(t *testing.T) {
	before := testutil.ToFloat64(BarsFetchedTotal.WithLabelValues("test_source"))
	RecordBarsFetched("test_source", 250)
	after := testutil.ToFloat64(BarsFetchedTotal.WithLabelValues("test_source"))
	if after != before+250 {
		t.Fatalf("expected counter to grow by 250, before=%v after=%v", before, after)
	}
}

func TestUpdateRunGauges(t *testing.T) {
	UpdateRunGauges("test_strategy", 0.12, -0.05, 1.3)

	if got := testutil.ToFloat64(LastTotalReturn.WithLabelValues("test_strategy")); got != 0.12 {
		t.Errorf("expected total return gauge 0.12, got %v", got)
	}
	if got := testutil.ToFloat64(LastMaxDrawdown.WithLabelValues("test_strategy")); got != -0.05 {
		t.Errorf("expected drawdown gauge -0.05, got %v", got)
	}
	if got := testutil.ToFloat64(LastSharpeRatio.WithLabelValues("test_strategy")); got != 1.3 {
		t.Errorf("expected sharpe gauge 1.3, got %v", got)
	}
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	RecordBacktestRun("handler_strategy", "success")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "quant_backtest_backtest_runs_total") {
		t.Error("expected exported counter in scrape output")
	}
}

func TestGetRegistryIsSingleton(t *testing.T) {
	if GetRegistry() != GetRegistry() {
		t.Fatal("expected a single shared registry")
	}
}
