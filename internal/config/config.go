// Package config provides configuration management for the quant-backtest
// application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig       `mapstructure:"app" validate:"required"`
	Database *DatabaseConfig `mapstructure:"database" validate:"omitempty"`
	Data     DataConfig      `mapstructure:"data" validate:"required"`
	Backtest BacktestConfig  `mapstructure:"backtest" validate:"required"`
	Metrics  MetricsConfig   `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents the optional Postgres bar cache. When absent
// the application runs with the in-memory cache only.
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// DataConfig represents market-data retrieval configuration
type DataConfig struct {
	Sources         []DataSourceConfig `mapstructure:"sources" validate:"required,min=1,dive"`
	Symbols         []string           `mapstructure:"symbols" validate:"required,min=1"`
	CacheTTLSeconds int                `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RefreshSchedule string             `mapstructure:"refresh_schedule"`
}

// DataSourceConfig represents a single market-data provider
type DataSourceConfig struct {
	Name      string  `mapstructure:"name" validate:"required"`
	Enabled   bool    `mapstructure:"enabled"`
	BaseURL   string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey    string  `mapstructure:"api_key"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate      string  `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string  `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	InitialCapital float64 `mapstructure:"initial_capital" validate:"required,gt=0"`
	CommissionRate float64 `mapstructure:"commission_rate" validate:"gte=0,lte=0.1"`
	AuxSymbol      string  `mapstructure:"aux_symbol"`
	OutputPath     string  `mapstructure:"output_path" validate:"required"`
	PersistResults bool    `mapstructure:"persist_results"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HasDatabase reports whether a Postgres bar cache is configured
func (c *Config) HasDatabase() bool {
	return c.Database != nil
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	if c.Database == nil {
		return ""
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
