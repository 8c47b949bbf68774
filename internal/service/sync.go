// Package service provides the market data synchronization workflow.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/quant-backtest/internal/datasource"
	"github.com/yourusername/quant-backtest/internal/models"
	"github.com/yourusername/quant-backtest/internal/repository"
)

// SyncService fetches daily bars from a data source and stores them in
// the bar repository
type SyncService struct {
	source    datasource.DataSource
	barRepo   repository.BarRepository
	validator *BarValidator
	metrics   *SyncMetrics
	logger    *logrus.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(source datasource.DataSource, barRepo repository.BarRepository, logger *logrus.Logger) *SyncService {
	return &SyncService{
		source:    source,
		barRepo:   barRepo,
		validator: NewBarValidator(),
		metrics:   NewSyncMetrics(),
		logger:    logger,
	}
}

// SyncHistorical fetches and stores bars for the given symbols over a
// fixed date range. Errors on one symbol do not abort the others.
func (s *SyncService) SyncHistorical(ctx context.Context, symbols []string, startDate, endDate time.Time) (*SyncMetrics, error) {
	s.metrics.Reset()
	s.metrics.TotalSymbols = len(symbols)
	startTime := time.Now()

	s.logger.WithFields(logrus.Fields{
		"source":  s.source.Name(),
		"symbols": len(symbols),
		"start":   startDate.Format("2006-01-02"),
		"end":     endDate.Format("2006-01-02"),
	}).Info("Starting historical bar sync")

	var firstErr error
	for _, symbol := range symbols {
		if err := s.syncSymbol(ctx, symbol, startDate, endDate); err != nil {
			s.metrics.Errors++
			if firstErr == nil {
				firstErr = err
			}
			s.logger.WithError(err).WithField("symbol", symbol).Error("Failed to sync symbol")
			continue
		}
		s.metrics.SyncedSymbols++
	}

	s.metrics.Duration = time.Since(startTime)
	s.logger.WithField("metrics", s.metrics.String()).Info("Historical bar sync complete")

	if s.metrics.SyncedSymbols == 0 && firstErr != nil {
		return s.metrics, fmt.Errorf("no symbols synced: %w", firstErr)
	}
	return s.metrics, nil
}

// SyncIncremental fetches bars newer than the latest stored date for
// each symbol. Symbols with no stored bars fall back to lookback days.
func (s *SyncService) SyncIncremental(ctx context.Context, symbols []string, lookbackDays int) (*SyncMetrics, error) {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}

	endDate := time.Now().UTC()
	fallbackStart := endDate.AddDate(0, 0, -lookbackDays)

	s.metrics.Reset()
	s.metrics.TotalSymbols = len(symbols)
	startTime := time.Now()

	for _, symbol := range symbols {
		startDate := fallbackStart
		latest, err := s.barRepo.LatestDate(ctx, symbol)
		switch {
		case err == nil:
			startDate = latest.AddDate(0, 0, 1)
		case errors.Is(err, models.ErrNotFound):
			// First sync for this symbol, use the fallback window
		default:
			s.metrics.Errors++
			s.logger.WithError(err).WithField("symbol", symbol).Error("Failed to read latest bar date")
			continue
		}

		if !startDate.Before(endDate) {
			s.metrics.SyncedSymbols++
			continue
		}

		if err := s.syncSymbol(ctx, symbol, startDate, endDate); err != nil {
			s.metrics.Errors++
			s.logger.WithError(err).WithField("symbol", symbol).Error("Failed to sync symbol")
			continue
		}
		s.metrics.SyncedSymbols++
	}

	s.metrics.Duration = time.Since(startTime)
	s.logger.WithField("metrics", s.metrics.String()).Info("Incremental bar sync complete")

	return s.metrics, nil
}

// syncSymbol fetches, validates and stores one symbol's bars
func (s *SyncService) syncSymbol(ctx context.Context, symbol string, startDate, endDate time.Time) error {
	bars, err := s.source.FetchDailyBars(ctx, symbol, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to fetch bars: %w", err)
	}

	invalid := s.validator.ValidateSeries(bars)
	if len(invalid) > 0 {
		s.metrics.ValidationErrors += len(invalid)
		clean := make(models.Series, 0, len(bars))
		for i, bar := range bars {
			if problems, bad := invalid[i]; bad {
				s.logger.WithFields(logrus.Fields{
					"symbol":   symbol,
					"date":     bar.Date.Format("2006-01-02"),
					"problems": problems,
				}).Warn("Dropping invalid bar")
				continue
			}
			clean = append(clean, bar)
		}
		bars = clean
	}

	if len(bars) == 0 {
		return models.ErrNoData
	}

	if err := s.barRepo.UpsertBars(ctx, symbol, bars); err != nil {
		return fmt.Errorf("failed to store bars: %w", err)
	}

	s.metrics.TotalBars += len(bars)
	return nil
}

// GetMetrics returns the counters of the most recent sync pass
func (s *SyncService) GetMetrics() *SyncMetrics {
	return s.metrics
}
