// Package main provides the entry point for the market data sync service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/quant-backtest/internal/config"
	"github.com/yourusername/quant-backtest/internal/database"
	"github.com/yourusername/quant-backtest/internal/datasource"
	"github.com/yourusername/quant-backtest/internal/health"
	"github.com/yourusername/quant-backtest/internal/logger"
	"github.com/yourusername/quant-backtest/internal/repository"
	"github.com/yourusername/quant-backtest/internal/scheduler"
	"github.com/yourusername/quant-backtest/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile   string
	lookbackDays int

	log     *logrus.Logger
	cfg     *config.Config
	db      *database.DB
	syncSvc *service.SyncService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	runCmd.Flags().IntVar(&lookbackDays, "lookback-days", 30, "Fallback window for symbols without stored bars")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "datasync",
	Short: "Synchronize daily market data into the bar store",
	Long:  `Fetches daily OHLCV bars from the configured data source and stores them in PostgreSQL, either once or on a schedule.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return setupDependencies(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one incremental sync pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
		defer cancel()

		metrics, err := syncSvc.SyncIncremental(ctx, cfg.Data.Symbols, lookbackDays)
		if err != nil {
			return err
		}
		if metrics.Errors > 0 {
			return fmt.Errorf("sync finished with %d errors", metrics.Errors)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync scheduler with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched := scheduler.NewScheduler(syncSvc, log)
		schedule := cfg.Data.RefreshSchedule
		if schedule == "" {
			// 22:30 UTC on weekdays, after the US close
			schedule = "0 30 22 * * 1-5"
		}
		if err := sched.ScheduleIncrementalSync(schedule, cfg.Data.Symbols, lookbackDays); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		healthServer := health.NewServer(health.Config{
			ServiceName: "datasync",
			Version:     Version,
			Commit:      GitCommit,
			Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
			MetricsPath: cfg.Metrics.Path,
			Logger:      log,
			DB:          db,
		})
		if err := healthServer.Start(ctx); err != nil {
			return err
		}
		healthServer.SetReady(true)

		log.WithFields(logrus.Fields{
			"schedule": schedule,
			"next_run": sched.GetNextRun(),
			"symbols":  len(cfg.Data.Symbols),
		}).Info("Data sync service running")

		<-ctx.Done()
		log.Info("Shutting down data sync service")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("datasync %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	log = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	if !cfg.HasDatabase() {
		return fmt.Errorf("datasync requires a database section in the configuration")
	}

	var err error
	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	source, err := datasource.NewFactory(cfg, log).NewPrimarySource()
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}

	syncSvc = service.NewSyncService(source, repos.Bars, log)
	return nil
}
