package backtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats a run report for terminal output
func GenerateConsoleReport(report *RunReport) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Symbol: %s\n", report.Symbol))
	builder.WriteString(fmt.Sprintf("Strategy: %s\n", report.Strategy))
	builder.WriteString(fmt.Sprintf("Total Return: %.2f%%\n", report.Metrics.TotalReturn*100))
	builder.WriteString(fmt.Sprintf("Benchmark Return: %.2f%%\n", report.Metrics.BenchmarkReturn*100))
	builder.WriteString(fmt.Sprintf("Final Equity: %.2f\n", report.Metrics.FinalEquity))
	builder.WriteString(fmt.Sprintf("Sharpe Ratio: %.2f\n", report.Metrics.SharpeRatio))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%%\n", report.Metrics.MaxDrawdown*100))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", report.Metrics.WinRate*100))
	return builder.String()
}

// GenerateComparisonReport formats a strategy-comparison table
func GenerateComparisonReport(reports []*RunReport) string {
	var builder strings.Builder
	builder.WriteString("Strategy Comparison\n")
	builder.WriteString("===================\n")
	builder.WriteString(fmt.Sprintf("%-20s %12s %12s %10s %10s %10s\n",
		"strategy", "return", "benchmark", "sharpe", "drawdown", "win_rate"))
	for _, r := range reports {
		builder.WriteString(fmt.Sprintf("%-20s %11.2f%% %11.2f%% %10.2f %9.2f%% %9.2f%%\n",
			r.Strategy,
			r.Metrics.TotalReturn*100,
			r.Metrics.BenchmarkReturn*100,
			r.Metrics.SharpeRatio,
			r.Metrics.MaxDrawdown*100,
			r.Metrics.WinRate*100,
		))
	}
	return builder.String()
}

// WriteCurveCSV exports the capital curve for spreadsheets
func WriteCurveCSV(report *RunReport, outputDir string) (string, error) {
	path := filepath.Join(outputDir, fmt.Sprintf("%s_%s_curve.csv", report.Symbol, report.Strategy))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(report.Curve.ToCSV()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteMetricsJSON exports run metrics as JSON
func WriteMetricsJSON(report *RunReport, outputDir string) (string, error) {
	path := filepath.Join(outputDir, fmt.Sprintf("%s_%s_metrics.json", report.Symbol, report.Strategy))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(report.Metrics.ToJSON()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
