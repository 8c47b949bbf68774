package models

import "errors"

// Custom errors
var (
	ErrNoData          = errors.New("no price data available")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrSeriesMismatch  = errors.New("signal series length does not match price series")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key violation")
	ErrSymbolRequired  = errors.New("symbol is required")
)
