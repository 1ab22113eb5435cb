// Package metrics provides the centralized Prometheus registry for golf-edge.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	WagersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "golf_edge",
		Name:      "wagers_placed_total",
		Help:      "Total number of wagers placed",
	})
	WagersSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golf_edge",
		Name:      "wagers_settled_total",
		Help:      "Total number of wagers settled by outcome",
	}, []string{"outcome"})
	EstimatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golf_edge",
		Name:      "estimates_total",
		Help:      "Total number of probability estimates by estimator",
	}, []string{"estimator"})
	ValueBetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "golf_edge",
		Name:      "value_bets_total",
		Help:      "Total number of value bets identified",
	})
	OddsImportedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golf_edge",
		Name:      "odds_imported_total",
		Help:      "Total number of odds records imported by status",
	}, []string{"status"})
	WeatherRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golf_edge",
		Name:      "weather_requests_total",
		Help:      "Total number of weather lookups by source",
	}, []string{"source"})
)

// Gauge metrics
var (
	CurrentBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "golf_edge",
		Name:      "current_bankroll",
		Help:      "Current bankroll in currency units",
	})
	CurrentDrawdown = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "golf_edge",
		Name:      "current_drawdown_ratio",
		Help:      "Current peak-to-trough drawdown as a fraction",
	})
	PendingWagers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "golf_edge",
		Name:      "pending_wagers",
		Help:      "Number of placed wagers awaiting settlement",
	})
)

// Histogram metrics
var (
	StakeFraction = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "golf_edge",
		Name:      "stake_fraction",
		Help:      "Fraction of bankroll staked per wager",
		Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.02, 0.03, 0.04, 0.05, 0.1},
	})
	WagerEdge = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "golf_edge",
		Name:      "wager_edge",
		Help:      "Relative edge of placed wagers",
		Buckets:   []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1, 2, 5},
	})
	EstimateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "golf_edge",
		Name:      "estimate_duration_seconds",
		Help:      "Duration of probability estimation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(WagersPlacedTotal)
		registry.MustRegister(WagersSettledTotal)
		registry.MustRegister(EstimatesTotal)
		registry.MustRegister(ValueBetsTotal)
		registry.MustRegister(OddsImportedTotal)
		registry.MustRegister(WeatherRequestsTotal)

		// Register gauge metrics
		registry.MustRegister(CurrentBankroll)
		registry.MustRegister(CurrentDrawdown)
		registry.MustRegister(PendingWagers)

		// Register histogram metrics
		registry.MustRegister(StakeFraction)
		registry.MustRegister(WagerEdge)
		registry.MustRegister(EstimateDuration)

		// Register backtest metrics
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(BacktestROI)
		registry.MustRegister(BacktestPValue)
		registry.MustRegister(BootstrapDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordWagerPlaced records a placement with its edge and bankroll fraction.
func RecordWagerPlaced(edge, stakeFraction float64) {
	WagersPlacedTotal.Inc()
	WagerEdge.Observe(edge)
	StakeFraction.Observe(stakeFraction)
}

// RecordWagerSettled records a settlement event.
func RecordWagerSettled(outcome string) {
	WagersSettledTotal.WithLabelValues(outcome).Inc()
}

// RecordEstimate records one estimator invocation.
func RecordEstimate(estimator string, durationSeconds float64) {
	EstimatesTotal.WithLabelValues(estimator).Inc()
	EstimateDuration.Observe(durationSeconds)
}

// RecordValueBets records value bets found for a tournament.
func RecordValueBets(count int) {
	ValueBetsTotal.Add(float64(count))
}

// RecordOddsImported records imported odds rows.
// status should be one of: "imported", "failed"
func RecordOddsImported(status string, count int) {
	OddsImportedTotal.WithLabelValues(status).Add(float64(count))
}

// RecordWeatherRequest records a weather lookup.
// source should be one of: "cache", "api", "fallback"
func RecordWeatherRequest(source string) {
	WeatherRequestsTotal.WithLabelValues(source).Inc()
}

// UpdateBankroll updates the current bankroll gauge.
func UpdateBankroll(amount float64) {
	CurrentBankroll.Set(amount)
}

// UpdateDrawdown updates the current drawdown gauge.
func UpdateDrawdown(ratio float64) {
	CurrentDrawdown.Set(ratio)
}

// UpdatePendingWagers updates the pending wagers gauge.
func UpdatePendingWagers(count int) {
	PendingWagers.Set(float64(count))
}
