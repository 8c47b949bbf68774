package backtest

import (
	"github.com/yourusername/quant-backtest/internal/models"
)

// RunPyramid replays grid signals through a fresh Portfolio ledger,
// bar by bar. Buys and sells execute at the bar's open; the portfolio
// is marked to the bar's close afterwards. Buy amounts are fractions of
// the *initial* capital, not of current equity. The benchmark is a
// lump-sum buy at bar 0's open marked to each close.
//
// Replaying the same signal series against a fresh ledger is
// deterministic: identical inputs always produce identical histories.
func RunPyramid(bars models.Series, signals models.SignalSeries, cfg Config) (CapitalCurve, *Portfolio, error) {
	if len(bars) == 0 {
		return CapitalCurve{}, NewPortfolio(cfg.InitialCapital, cfg.CommissionRate), nil
	}
	if len(signals) != len(bars) {
		return nil, nil, models.ErrSeriesMismatch
	}

	portfolio := NewPortfolio(cfg.InitialCapital, cfg.CommissionRate)
	initialOpen := bars[0].Open
	curve := make(CapitalCurve, len(bars))

	for t, bar := range bars {
		sig := signals[t]

		switch {
		case sig.Decision == models.DecisionBuy && sig.BuyAmount > 0:
			portfolio.Buy(bar.Open, cfg.InitialCapital*sig.BuyAmount, sig.BuyLevel)
		case sig.Decision == models.DecisionSell && sig.SellRatio > 0:
			portfolio.SellLIFO(bar.Open, sig.SellRatio)
		}

		equity := portfolio.UpdateValue(bar.Close)

		benchmark := 0.0
		if initialOpen != 0 {
			benchmark = bar.Close / initialOpen * cfg.InitialCapital
		}

		curve[t] = CurvePoint{
			Date:            bar.Date,
			Open:            bar.Open,
			Close:           bar.Close,
			Equity:          equity,
			BenchmarkEquity: benchmark,
			Cash:            portfolio.Cash(),
			CoreShares:      portfolio.CoreShares(),
			TradableShares:  portfolio.TradableShares(),
			TotalShares:     portfolio.TotalShares(),
			AvgCost:         portfolio.AvgCost(bar.Close),
		}
	}

	return curve, portfolio, nil
}
