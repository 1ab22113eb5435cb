// Package main provides the golf-edge command line tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/golf-edge/internal/config"
	"github.com/yourusername/golf-edge/internal/logger"
	"github.com/yourusername/golf-edge/internal/metrics"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:           "golf-edge",
	Short:         "Golf outright betting edge finder and backtester",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd.Context(), configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
		metrics.InitRegistry()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(backtestCmd, importOddsCmd, sampleSizeCmd, edgeCmd, serveCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the file (when present) over defaults, or the file named by
// GOLF_EDGE_CONFIG_PATH, overlays AWS secrets
// when AWS_SECRETS_ENABLED=true, and validates the result.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	loaded, err := config.LoadWithDefaults(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ReloadFromEnv(loaded); err != nil {
		return nil, fmt.Errorf("failed to load config from GOLF_EDGE_CONFIG_PATH: %w", err)
	}

	if config.SecretsEnabled() {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, loaded, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(loaded); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return loaded, nil
}
