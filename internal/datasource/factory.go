package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/quant-backtest/internal/config"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewDataSource creates a new DataSource based on the provided configuration
func (f *Factory) NewDataSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (DataSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	switch cfg.Name {
	case stooqSourceName:
		return NewStooqClient(httpClient, cfg.BaseURL, cfg.Enabled, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Name)
	}
}

// NewPrimarySource builds the first enabled data source from configuration,
// wrapped in a TTL cache.
func (f *Factory) NewPrimarySource() (DataSource, error) {
	for _, srcCfg := range f.config.Data.Sources {
		if !srcCfg.Enabled {
			f.logger.WithField("source", srcCfg.Name).Debug("Skipping disabled data source")
			continue
		}

		httpCfg := DefaultHTTPClientConfig()
		if srcCfg.RateLimit > 0 {
			httpCfg.RateLimit = srcCfg.RateLimit
		}

		source, err := f.NewDataSource(srcCfg, NewRateLimitedHTTPClient(httpCfg, f.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		ttl := time.Duration(f.config.Data.CacheTTLSeconds) * time.Second
		f.logger.WithFields(logrus.Fields{
			"source":    srcCfg.Name,
			"cache_ttl": ttl,
		}).Info("Created data source")

		return NewCachedSource(source, ttl, f.logger), nil
	}

	return nil, fmt.Errorf("no enabled data sources configured")
}
