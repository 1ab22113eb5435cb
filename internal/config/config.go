// Package config provides configuration management for golf-edge.
package config

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Staking   StakingConfig   `mapstructure:"staking" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	Backtest  BacktestConfig  `mapstructure:"backtest" validate:"required"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat   string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
}

// DatabaseConfig represents database connection configuration.
// An empty host disables persistence.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required_with=Host"`
	User           string `mapstructure:"user" validate:"required_with=Host"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// StakingConfig holds the fractional Kelly parameters
type StakingConfig struct {
	Bankroll      float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	KellyFraction float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	MinEdge       float64 `mapstructure:"min_edge" validate:"gte=0"`
	MaxBetPct     float64 `mapstructure:"max_bet_pct" validate:"required,gt=0,lte=1"`
}

// AnalysisConfig configures performance and significance analysis
type AnalysisConfig struct {
	RiskFreeRate      float64          `mapstructure:"risk_free_rate" validate:"gte=0,lte=1"`
	PeriodsPerYear    float64          `mapstructure:"periods_per_year" validate:"required,gt=0"`
	SignificanceLevel float64          `mapstructure:"significance_level" validate:"required,gt=0,lt=1"`
	Confidence        float64          `mapstructure:"confidence" validate:"required,gt=0,lt=1"`
	BootstrapSeed     int64            `mapstructure:"bootstrap_seed"`
	BootstrapWorkers  int              `mapstructure:"bootstrap_workers" validate:"gte=0"`
	SampleSize        SampleSizeConfig `mapstructure:"sample_size" validate:"required"`
}

// SampleSizeConfig holds the assumptions for the minimum sample size projection
type SampleSizeConfig struct {
	WinRate    float64 `mapstructure:"win_rate" validate:"required,gt=0,lt=1"`
	AvgOdds    float64 `mapstructure:"avg_odds" validate:"required,gt=1"`
	Confidence float64 `mapstructure:"confidence" validate:"required,gt=0,lt=1"`
	Power      float64 `mapstructure:"power" validate:"required,gt=0,lt=1"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate        string    `mapstructure:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate          string    `mapstructure:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Estimator        string    `mapstructure:"estimator" validate:"required"`
	Components       []string  `mapstructure:"components"`
	Weights          []float64 `mapstructure:"weights"`
	TournamentsPath  string    `mapstructure:"tournaments_path"`
	OddsPath         string    `mapstructure:"odds_path"`
	OutputPath       string    `mapstructure:"output_path"`
	EnrichWeather    bool      `mapstructure:"enrich_weather"`
	PersistResults   bool      `mapstructure:"persist_results"`
	MaxDrawdownAlert float64   `mapstructure:"max_drawdown_alert" validate:"gte=0,lte=1"`
}

// WeatherConfig configures the historical weather collaborator
type WeatherConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"omitempty,url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"omitempty,gt=0"`
	CacheTTLMinutes   int     `mapstructure:"cache_ttl_minutes" validate:"omitempty,gt=0"`
}

// IngestionConfig configures scheduled odds imports
type IngestionConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	WatchDir  string `mapstructure:"watch_dir" validate:"required_if=Enabled true"`
	Schedule  string `mapstructure:"schedule" validate:"omitempty,cron"`
	BatchSize int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// DatabaseEnabled reports whether a database is configured
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Host != ""
}
