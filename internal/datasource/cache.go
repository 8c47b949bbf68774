package datasource

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/quant-backtest/internal/models"
)

// CachedSource decorates a DataSource with an in-memory TTL cache so
// repeated backtests over the same window do not refetch bars.
type CachedSource struct {
	inner  DataSource
	cache  *gocache.Cache
	ttl    time.Duration
	logger *logrus.Logger
}

// NewCachedSource wraps source with a TTL cache
func NewCachedSource(source DataSource, ttl time.Duration, logger *logrus.Logger) *CachedSource {
	return &CachedSource{
		inner:  source,
		cache:  gocache.New(ttl, 2*ttl),
		ttl:    ttl,
		logger: logger,
	}
}

// Name returns the name of the underlying data source
func (c *CachedSource) Name() string {
	return c.inner.Name()
}

// IsEnabled returns whether the underlying data source is enabled
func (c *CachedSource) IsEnabled() bool {
	return c.inner.IsEnabled()
}

// FetchDailyBars returns cached bars when available, otherwise fetches
// from the underlying source and stores the result.
func (c *CachedSource) FetchDailyBars(ctx context.Context, symbol string, startDate, endDate time.Time) (models.Series, error) {
	key := cacheKey(symbol, startDate, endDate)

	if cached, found := c.cache.Get(key); found {
		if bars, ok := cached.(models.Series); ok {
			c.logger.WithField("symbol", symbol).Debug("Bar cache hit")
			return bars, nil
		}
	}

	bars, err := c.inner.FetchDailyBars(ctx, symbol, startDate, endDate)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, bars, c.ttl)
	return bars, nil
}

// Flush drops every cached entry
func (c *CachedSource) Flush() {
	c.cache.Flush()
}

func cacheKey(symbol string, startDate, endDate time.Time) string {
	return fmt.Sprintf("%s|%s|%s", symbol, startDate.Format("20060102"), endDate.Format("20060102"))
}
