package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/golf-edge/internal/backtest"
	"github.com/yourusername/golf-edge/internal/config"
	"github.com/yourusername/golf-edge/internal/database"
	"github.com/yourusername/golf-edge/internal/datasource"
	"github.com/yourusername/golf-edge/internal/logger"
	"github.com/yourusername/golf-edge/internal/models"
	"github.com/yourusername/golf-edge/internal/repository"
	"github.com/yourusername/golf-edge/internal/strategy"
)

var backtestFlags struct {
	estimator   string
	tournaments string
	odds        string
	startDate   string
	endDate     string
	output      string
	persist     bool
	kelly       float64
	minEdge     float64
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay historical tournaments and report ROI significance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBacktest(cmd.Context())
	},
}

func init() {
	f := backtestCmd.Flags()
	f.StringVar(&backtestFlags.estimator, "estimator", "", "Estimator name (weather, form, course_fit, combined)")
	f.StringVar(&backtestFlags.tournaments, "tournaments", "", "Tournament YAML file")
	f.StringVar(&backtestFlags.odds, "odds", "", "Odds CSV file; the database is used when empty")
	f.StringVar(&backtestFlags.startDate, "start-date", "", "Override start date (YYYY-MM-DD)")
	f.StringVar(&backtestFlags.endDate, "end-date", "", "Override end date (YYYY-MM-DD)")
	f.StringVar(&backtestFlags.output, "output", "", "Directory for report.txt, report.csv and report.json")
	f.BoolVar(&backtestFlags.persist, "persist", false, "Save wagers and the result to the database")
	f.Float64Var(&backtestFlags.kelly, "kelly-fraction", 0, "Override staking.kelly_fraction")
	f.Float64Var(&backtestFlags.minEdge, "min-edge", -1, "Override staking.min_edge")
}

// applyBacktestOverrides copies set flags over the loaded config. Staking
// changes are written to the audit log when audit is non-nil.
func applyBacktestOverrides(c *config.Config, audit *logger.AuditLogger) {
	bt := &c.Backtest
	if backtestFlags.estimator != "" {
		bt.Estimator = backtestFlags.estimator
	}
	if backtestFlags.tournaments != "" {
		bt.TournamentsPath = backtestFlags.tournaments
	}
	if backtestFlags.odds != "" {
		bt.OddsPath = backtestFlags.odds
	}
	if backtestFlags.startDate != "" {
		bt.StartDate = backtestFlags.startDate
	}
	if backtestFlags.endDate != "" {
		bt.EndDate = backtestFlags.endDate
	}
	if backtestFlags.output != "" {
		bt.OutputPath = backtestFlags.output
	}
	if backtestFlags.persist {
		bt.PersistResults = true
	}

	staking := &c.Staking
	if backtestFlags.kelly > 0 && backtestFlags.kelly != staking.KellyFraction {
		if audit != nil {
			audit.LogStakingParameterChange("kelly_fraction", staking.KellyFraction, backtestFlags.kelly, "cli")
		}
		staking.KellyFraction = backtestFlags.kelly
	}
	if backtestFlags.minEdge >= 0 && backtestFlags.minEdge != staking.MinEdge {
		if audit != nil {
			audit.LogStakingParameterChange("min_edge", staking.MinEdge, backtestFlags.minEdge, "cli")
		}
		staking.MinEdge = backtestFlags.minEdge
	}
}

func runBacktest(ctx context.Context) error {
	applyBacktestOverrides(cfg, logger.NewAuditLogger(appLog))
	btConfig, err := backtest.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid backtest config: %w", err)
	}
	if cfg.Backtest.TournamentsPath == "" {
		return fmt.Errorf("a tournament file is required (--tournaments or backtest.tournaments_path)")
	}

	estimator, err := strategy.NewRegistry().Resolve(btConfig.Estimator, btConfig.Components, btConfig.Weights)
	if err != nil {
		return err
	}

	tournaments, err := datasource.LoadTournamentFile(cfg.Backtest.TournamentsPath)
	if err != nil {
		return err
	}

	var db *database.DB
	if cfg.DatabaseEnabled() {
		db, err = database.Initialize(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
	}
	var repos *repository.Repositories
	if db != nil {
		if repos, err = repository.NewRepositories(db); err != nil {
			return err
		}
	}

	var odds datasource.OddsSource
	switch {
	case cfg.Backtest.OddsPath != "":
		records, err := datasource.ReadOddsCSVFile(cfg.Backtest.OddsPath)
		if err != nil {
			return err
		}
		odds = datasource.NewOddsBoard(records, models.MarketTypeOutright)
	case repos != nil:
		odds = repos.Odds
	default:
		return fmt.Errorf("an odds source is required (--odds or a configured database)")
	}

	opts := []backtest.EngineOption{backtest.WithLogger(appLog)}
	if btConfig.EnrichWeather {
		opts = append(opts, backtest.WithWeather(newWeatherClient(cfg)))
	}
	engine, err := backtest.NewEngine(btConfig, estimator, tournaments, odds, opts...)
	if err != nil {
		return err
	}

	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	if err := backtest.WriteTextReport(os.Stdout, result.Report); err != nil {
		return err
	}
	if btConfig.OutputPath != "" {
		if err := backtest.SaveReports(btConfig.OutputPath, result.Report); err != nil {
			return fmt.Errorf("failed to save reports: %w", err)
		}
		curvePath := filepath.Join(btConfig.OutputPath, "equity_curve.csv")
		if err := os.WriteFile(curvePath, []byte(result.EquityCurve.ToCSV()), 0o644); err != nil {
			return fmt.Errorf("failed to save equity curve: %w", err)
		}
		appLog.WithField("dir", btConfig.OutputPath).Info("Reports written")
	}

	if cfg.Backtest.PersistResults {
		if db == nil {
			return fmt.Errorf("persist_results requires a configured database")
		}
		return persistRun(ctx, db, btConfig, estimator, result)
	}
	return nil
}

// persistRun stores the wagers and the result row in one transaction
func persistRun(ctx context.Context, db *database.DB, btConfig backtest.BacktestConfig, estimator strategy.Estimator, result *backtest.Result) error {
	meta := strategy.Describe(estimator)
	params := map[string]interface{}{"staking": btConfig.Staking}
	if meta.Parameters != nil {
		params["estimator"] = meta.Parameters
	}
	record, err := backtest.ToResult(result.Report, backtest.RunMeta{
		Estimator:  meta.Name,
		StartDate:  btConfig.StartDate,
		EndDate:    btConfig.EndDate,
		Parameters: params,
	})
	if err != nil {
		return err
	}
	record.ID = result.RunID

	err = db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := repository.NewPostgresWagerRepository(tx).SaveBatch(ctx, result.RunID, result.Wagers); err != nil {
			return err
		}
		return repository.NewPostgresBacktestResultRepository(tx).SaveResult(ctx, record)
	})
	if err != nil {
		return err
	}

	appLog.WithFields(logrus.Fields{
		"run_id": result.RunID,
		"wagers": len(result.Wagers),
	}).Info("Backtest persisted")
	return nil
}

func newWeatherClient(c *config.Config) *datasource.WeatherClient {
	httpCfg := datasource.DefaultHTTPClientConfig()
	if c.Weather.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(c.Weather.TimeoutSeconds) * time.Second
	}
	httpCfg.MaxRetries = c.Weather.RetryAttempts
	if c.Weather.RequestsPerSecond > 0 {
		httpCfg.RateLimit = c.Weather.RequestsPerSecond
	}
	ttl := time.Duration(c.Weather.CacheTTLMinutes) * time.Minute
	return datasource.NewWeatherClient(datasource.NewRateLimitedHTTPClient(httpCfg, appLog), c.Weather.BaseURL, ttl, appLog)
}
