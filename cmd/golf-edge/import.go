package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/golf-edge/internal/database"
	"github.com/yourusername/golf-edge/internal/health"
	"github.com/yourusername/golf-edge/internal/repository"
	"github.com/yourusername/golf-edge/internal/scheduler"
	"github.com/yourusername/golf-edge/internal/service"
)

var importOddsCmd = &cobra.Command{
	Use:   "import-odds FILE...",
	Short: "Import odds CSV files into the database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, ingestion, err := openIngestion(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		var failed int
		for _, path := range args {
			if _, err := ingestion.ImportFile(ctx, path); err != nil {
				failed++
				appLog.WithError(err).WithField("path", path).Error("Import failed")
			}
		}
		fmt.Fprintln(os.Stdout, ingestion.GetMetrics().String())
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed to import", failed, len(args))
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled odds imports with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func openIngestion(ctx context.Context) (*database.DB, *service.IngestionService, error) {
	if !cfg.DatabaseEnabled() {
		return nil, nil, fmt.Errorf("odds import requires a configured database")
	}
	db, err := database.Initialize(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, service.NewIngestionService(repos.Odds, appLog, cfg.Ingestion.BatchSize), nil
}

func runServe(ctx context.Context) error {
	if !cfg.Ingestion.Enabled {
		return fmt.Errorf("ingestion.enabled must be true to serve")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, ingestion, err := openIngestion(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	sched := scheduler.NewScheduler(ingestion, appLog)
	if err := sched.ScheduleDirectoryImport(cfg.Ingestion.Schedule, cfg.Ingestion.WatchDir); err != nil {
		return err
	}

	// Pick up files already waiting before the first tick
	if _, err := sched.ImportNewFiles(ctx, cfg.Ingestion.WatchDir); err != nil {
		appLog.WithError(err).Warn("Initial import scan failed")
	}
	if err := sched.Start(); err != nil {
		return err
	}

	server := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        cfg.Metrics.Port,
		MetricsPath: cfg.Metrics.Path,
		Logger:      appLog,
		DB:          db,
		Scheduler:   sched,
	})
	if err := server.Start(); err != nil {
		_ = sched.Stop()
		return err
	}
	server.SetReady(true)

	appLog.WithField("watch_dir", cfg.Ingestion.WatchDir).Info("golf-edge serving")
	<-ctx.Done()

	server.SetReady(false)
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Scheduler did not stop cleanly")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Health server did not stop cleanly")
	}
	appLog.Info("golf-edge stopped")
	return nil
}
