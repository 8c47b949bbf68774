package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/quant-backtest/internal/models"
)

const (
	stooqSourceName = "stooq"
	stooqDateFormat = "2006-01-02"
)

// StooqClient implements DataSource for the Stooq daily-quotes CSV endpoint
type StooqClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	enabled    bool
	logger     *logrus.Logger
}

// NewStooqClient creates a new Stooq CSV client
func NewStooqClient(httpClient *RateLimitedHTTPClient, baseURL string, enabled bool, logger *logrus.Logger) *StooqClient {
	if baseURL == "" {
		baseURL = "https://stooq.com"
	}
	return &StooqClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *StooqClient) Name() string {
	return stooqSourceName
}

// IsEnabled returns whether this data source is currently enabled
func (c *StooqClient) IsEnabled() bool {
	return c.enabled
}

// FetchDailyBars retrieves daily OHLCV bars for a symbol within the date range
func (c *StooqClient) FetchDailyBars(ctx context.Context, symbol string, startDate, endDate time.Time) (models.Series, error) {
	if !c.enabled {
		return nil, NewDataSourceError(stooqSourceName, ErrCodeUnknown, "data source is disabled", ErrSourceDisabled)
	}
	if symbol == "" {
		return nil, NewDataSourceError(stooqSourceName, ErrCodeInvalidData, "symbol is required", models.ErrSymbolRequired)
	}

	url := fmt.Sprintf("%s/q/d/l/?s=%s&d1=%s&d2=%s&i=d",
		c.baseURL,
		normalizeStooqSymbol(symbol),
		startDate.Format("20060102"),
		endDate.Format("20060102"),
	)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(stooqSourceName, ErrCodeNetworkError, "failed to fetch daily bars", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError(stooqSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(stooqSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	bars, err := parseStooqCSV(resp.Body)
	if err != nil {
		return nil, NewDataSourceError(stooqSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	if len(bars) == 0 {
		return nil, NewDataSourceError(stooqSourceName, ErrCodeNotFound, fmt.Sprintf("no data for symbol %s", symbol), models.ErrNoData)
	}

	c.logger.WithFields(logrus.Fields{
		"source": stooqSourceName,
		"symbol": symbol,
		"bars":   len(bars),
	}).Debug("Fetched daily bars")

	return bars, nil
}

// normalizeStooqSymbol maps a plain ticker onto Stooq's naming scheme.
// US equities carry a ".us" suffix; index symbols prefixed with "^" are
// passed through lowercased.
func normalizeStooqSymbol(symbol string) string {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if strings.HasPrefix(s, "^") || strings.Contains(s, ".") {
		return s
	}
	return s + ".us"
}

// parseStooqCSV parses the Date,Open,High,Low,Close,Volume CSV body.
// Rows with non-numeric fields (Stooq marks gaps as "N/D") are skipped.
func parseStooqCSV(r io.Reader) (models.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return models.Series{}, nil
	}

	bars := make(models.Series, 0, len(records)-1)
	var prev time.Time
	for _, record := range records[1:] {
		if len(record) < 5 {
			continue
		}

		date, err := time.Parse(stooqDateFormat, record[0])
		if err != nil {
			continue
		}
		if !prev.IsZero() && !date.After(prev) {
			return nil, fmt.Errorf("bars out of order at %s", record[0])
		}

		open, err := parsePrice(record[1])
		if err != nil {
			continue
		}
		high, err := parsePrice(record[2])
		if err != nil {
			continue
		}
		low, err := parsePrice(record[3])
		if err != nil {
			continue
		}
		closePrice, err := parsePrice(record[4])
		if err != nil {
			continue
		}

		volume := 0.0
		if len(record) >= 6 {
			if v, err := parsePrice(record[5]); err == nil {
				volume = v
			}
		}

		bars = append(bars, models.Bar{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
		prev = date
	}

	return bars, nil
}

// parsePrice parses a price field through decimal to avoid accumulating
// float artifacts from the raw text.
func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
