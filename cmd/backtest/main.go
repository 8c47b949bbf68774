// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/quant-backtest/internal/backtest"
	"github.com/yourusername/quant-backtest/internal/config"
	"github.com/yourusername/quant-backtest/internal/database"
	"github.com/yourusername/quant-backtest/internal/datasource"
	"github.com/yourusername/quant-backtest/internal/logger"
	"github.com/yourusername/quant-backtest/internal/repository"
	"github.com/yourusername/quant-backtest/internal/strategy"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		symbol       = flag.String("symbol", "SPY", "Symbol to backtest")
		strategyName = flag.String("strategy", "pyramid_grid", "Strategy name to test")
		startDate    = flag.String("start-date", "", "Override start date (YYYY-MM-DD)")
		endDate      = flag.String("end-date", "", "Override end date (YYYY-MM-DD)")
		compare      = flag.Bool("compare", false, "Run every registered strategy and print a comparison table")
		listOnly     = flag.Bool("list", false, "List registered strategies and exit")
		output       = flag.String("output", "", "Override output directory for curve and metrics files")
		writeFiles   = flag.Bool("write", false, "Write curve CSV and metrics JSON to the output directory")
	)
	flag.Parse()

	registry := strategy.NewRegistry()
	if *listOnly {
		for _, name := range registry.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	ctx := context.Background()

	btConfig := buildBacktestConfig(cfg, *output, *startDate, *endDate, log)
	engine := buildEngine(ctx, cfg, btConfig, registry, log)

	if *compare {
		reports, err := engine.Compare(ctx, *symbol)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		fmt.Print(backtest.GenerateComparisonReport(reports))
		if *writeFiles {
			writeArtifacts(reports, btConfig.OutputPath, log)
		}
		return
	}

	report, err := engine.Run(ctx, *symbol, *strategyName)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}
	fmt.Print(backtest.GenerateConsoleReport(report))
	if *writeFiles {
		writeArtifacts([]*backtest.RunReport{report}, btConfig.OutputPath, log)
	}
}

func loadConfigWithSecrets(path string) *config.Config {
	bootLog := logrus.New()

	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		bootLog.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			bootLog.Fatal("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			bootLog.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		bootLog.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildBacktestConfig(cfg *config.Config, output, startOverride, endOverride string, log *logrus.Logger) backtest.Config {
	btConfig, err := backtest.FromConfig(&cfg.Backtest)
	if err != nil {
		log.Fatalf("Invalid backtest config: %v", err)
	}
	if output != "" {
		btConfig.OutputPath = output
	}
	if startOverride != "" {
		parsed, err := time.Parse("2006-01-02", startOverride)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
		btConfig.StartDate = parsed
	}
	if endOverride != "" {
		parsed, err := time.Parse("2006-01-02", endOverride)
		if err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
		btConfig.EndDate = parsed
	}
	if err := btConfig.Validate(); err != nil {
		log.Fatalf("Invalid backtest config: %v", err)
	}
	return btConfig
}

func buildEngine(ctx context.Context, cfg *config.Config, btConfig backtest.Config, registry *strategy.Registry, log *logrus.Logger) *backtest.Engine {
	source, err := datasource.NewFactory(cfg, log).NewPrimarySource()
	if err != nil {
		log.Fatalf("Failed to create data source: %v", err)
	}

	engine, err := backtest.NewEngine(btConfig, source, registry, log)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	if btConfig.PersistResults && cfg.HasDatabase() {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		repos, err := repository.NewRepositories(db)
		if err != nil {
			log.Fatalf("Failed to create repositories: %v", err)
		}
		engine.WithResultRepository(repos.Results)
	}

	return engine
}

func writeArtifacts(reports []*backtest.RunReport, outputDir string, log *logrus.Logger) {
	for _, report := range reports {
		csvPath, err := backtest.WriteCurveCSV(report, outputDir)
		if err != nil {
			log.Fatalf("Failed to write curve CSV: %v", err)
		}
		jsonPath, err := backtest.WriteMetricsJSON(report, outputDir)
		if err != nil {
			log.Fatalf("Failed to write metrics JSON: %v", err)
		}
		log.WithFields(logrus.Fields{
			"curve":   csvPath,
			"metrics": jsonPath,
		}).Info("Wrote backtest artifacts")
	}
}
