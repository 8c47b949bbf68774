package service

import (
	"fmt"

	"github.com/yourusername/quant-backtest/internal/models"
)

// BarValidator checks fetched bars before they reach the store
type BarValidator struct{}

// NewBarValidator creates a new bar validator
func NewBarValidator() *BarValidator {
	return &BarValidator{}
}

// ValidateBar returns the problems found in a single bar
func (v *BarValidator) ValidateBar(bar models.Bar) []string {
	var problems []string

	if bar.Date.IsZero() {
		problems = append(problems, "missing date")
	}
	if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
		problems = append(problems, "non-positive price")
	}
	if bar.High < bar.Low {
		problems = append(problems, "high below low")
	}
	if bar.High < bar.Open || bar.High < bar.Close {
		problems = append(problems, "high below open or close")
	}
	if bar.Low > bar.Open || bar.Low > bar.Close {
		problems = append(problems, "low above open or close")
	}
	if bar.Volume < 0 {
		problems = append(problems, "negative volume")
	}

	return problems
}

// ValidateSeries checks ordering across the series and each bar in it.
// It returns the indexes of invalid bars together with their problems.
func (v *BarValidator) ValidateSeries(bars models.Series) map[int][]string {
	invalid := make(map[int][]string)

	for i, bar := range bars {
		problems := v.ValidateBar(bar)
		if i > 0 && !bar.Date.After(bars[i-1].Date) {
			problems = append(problems, fmt.Sprintf("date not after previous bar (%s)", bars[i-1].Date.Format("2006-01-02")))
		}
		if len(problems) > 0 {
			invalid[i] = problems
		}
	}

	return invalid
}
