package service

import (
	"strings"
	"testing"
	"time"

	"github.com/yourusername/quant-backtest/internal/models"
)

func validBar(date time.Time) models.Bar {
	return models.Bar{
		Date:   date,
		Open:   100,
		High:   102,
		Low:    99,
		Close:  101,
		Volume: 1000,
	}
}

func TestValidateBarAcceptsValid(t *testing.T) {
	v := NewBarValidator()
	if problems := v.ValidateBar(validBar(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}

func TestValidateBarRejections(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	v := NewBarValidator()

	cases := []struct {
		name string
		bar  models.Bar
		want string
	}{
		{
			name: "missing date",
			bar:  models.Bar{Open: 100, High: 102, Low: 99, Close: 101},
			want: "missing date",
		},
		{
			name: "non-positive price",
			bar:  models.Bar{Date: date, Open: 0, High: 102, Low: 99, Close: 101},
			want: "non-positive price",
		},
		{
			name: "high below low",
			bar:  models.Bar{Date: date, Open: 100, High: 98, Low: 99, Close: 98},
			want: "high below low",
		},
		{
			name: "high below close",
			bar:  models.Bar{Date: date, Open: 100, High: 100, Low: 99, Close: 101},
			want: "high below open or close",
		},
		{
			name: "low above open",
			bar:  models.Bar{Date: date, Open: 100, High: 103, Low: 101, Close: 102},
			want: "low above open or close",
		},
		{
			name: "negative volume",
			bar: models.Bar{
				Date: date, Open: 100, High: 102, Low: 99, Close: 101, Volume: -1,
			},
			want: "negative volume",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			problems := v.ValidateBar(tc.bar)
			if len(problems) == 0 {
				t.Fatal("expected problems")
			}
			found := false
			for _, p := range problems {
				if strings.Contains(p, tc.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected problem containing %q, got %v", tc.want, problems)
			}
		})
	}
}

func TestValidateSeriesFlagsOrderingAndBadBars(t *testing.T) {
	v := NewBarValidator()
	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	bars := models.Series{
		validBar(d1),
		validBar(d2),
		validBar(d2), // duplicate date
		{Date: d2.AddDate(0, 0, 1), Open: -1, High: 102, Low: 99, Close: 101},
	}

	invalid := v.ValidateSeries(bars)
	if len(invalid) != 2 {
		t.Fatalf("expected 2 invalid bars, got %v", invalid)
	}
	if _, ok := invalid[2]; !ok {
		t.Error("expected the duplicate-date bar at index 2 to be flagged")
	}
	if _, ok := invalid[3]; !ok {
		t.Error("expected the negative-price bar at index 3 to be flagged")
	}
	if _, ok := invalid[0]; ok {
		t.Error("did not expect the first bar to be flagged")
	}
}
