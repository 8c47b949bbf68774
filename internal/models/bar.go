package models

import "time"

// Bar represents a single trading day of OHLCV data.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is an ordered sequence of daily bars with unique ascending dates.
type Series []Bar

// Closes returns the close prices of the series.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// Opens returns the open prices of the series.
func (s Series) Opens() []float64 {
	opens := make([]float64, len(s))
	for i, bar := range s {
		opens[i] = bar.Open
	}
	return opens
}

// Dates returns the trading dates of the series.
func (s Series) Dates() []time.Time {
	dates := make([]time.Time, len(s))
	for i, bar := range s {
		dates[i] = bar.Date
	}
	return dates
}

// Between returns the sub-series with dates in [start, end] inclusive.
func (s Series) Between(start, end time.Time) Series {
	out := make(Series, 0, len(s))
	for _, bar := range s {
		if bar.Date.Before(start) || bar.Date.After(end) {
			continue
		}
		out = append(out, bar)
	}
	return out
}
