package service

import (
	"fmt"
	"time"
)

// SyncMetrics tracks counters for one synchronization pass
type SyncMetrics struct {
	TotalSymbols     int
	SyncedSymbols    int
	TotalBars        int
	ValidationErrors int
	Errors           int
	Duration         time.Duration
}

// NewSyncMetrics creates zeroed sync metrics
func NewSyncMetrics() *SyncMetrics {
	return &SyncMetrics{}
}

// Reset zeroes all counters
func (m *SyncMetrics) Reset() {
	*m = SyncMetrics{}
}

// String formats the metrics for log output
func (m *SyncMetrics) String() string {
	return fmt.Sprintf("symbols=%d/%d bars=%d validation_errors=%d errors=%d duration=%v",
		m.SyncedSymbols, m.TotalSymbols, m.TotalBars, m.ValidationErrors, m.Errors, m.Duration)
}
