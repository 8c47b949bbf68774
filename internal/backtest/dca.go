package backtest

import (
	"github.com/yourusername/quant-backtest/internal/models"
)

// RunDCA simulates dollar-cost averaging: the initial capital is split
// evenly across every bar and each slice buys at that bar's open.
// Uninvested capital is carried as idle cash inside equity, and the
// benchmark is a lump-sum buy of the full capital at bar 0's open marked
// to each close. No commission is modeled on this path; the simplification
// is deliberate, not an oversight.
func RunDCA(bars models.Series, cfg Config) (CapitalCurve, error) {
	if len(bars) == 0 {
		return CapitalCurve{}, nil
	}

	dailyAmount := cfg.InitialCapital / float64(len(bars))
	initialOpen := bars[0].Open

	curve := make(CapitalCurve, len(bars))
	totalShares := 0.0
	totalInvested := 0.0

	for t, bar := range bars {
		sharesBought := 0.0
		if bar.Open != 0 {
			sharesBought = dailyAmount / bar.Open
		}
		totalShares += sharesBought
		totalInvested += dailyAmount
		cash := cfg.InitialCapital - totalInvested

		benchmark := 0.0
		if initialOpen != 0 {
			benchmark = bar.Close / initialOpen * cfg.InitialCapital
		}

		curve[t] = CurvePoint{
			Date:            bar.Date,
			Open:            bar.Open,
			Close:           bar.Close,
			SharesBought:    sharesBought,
			TotalShares:     totalShares,
			TotalInvested:   totalInvested,
			Cash:            cash,
			Equity:          totalShares*bar.Close + cash,
			BenchmarkEquity: benchmark,
		}
	}

	return curve, nil
}
