// Package metrics defines backtesting-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golf_edge",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by estimator and status",
	}, []string{"estimator", "status"})
)

// Backtest histograms
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "golf_edge",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
	BootstrapDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "golf_edge",
		Name:      "bootstrap_duration_seconds",
		Help:      "Duration of bootstrap ROI confidence interval runs in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)

// Backtest gauge vectors
var (
	BacktestROI = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "golf_edge",
		Name:      "backtest_roi_percent",
		Help:      "ROI of the latest backtest run per estimator",
	}, []string{"estimator"})
	BacktestPValue = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "golf_edge",
		Name:      "backtest_p_value",
		Help:      "One-sided p-value of the latest backtest run per estimator",
	}, []string{"estimator"})
)

// RecordBacktestRun records a backtest run event.
// status should be one of: "success", "failure", "cancelled"
func RecordBacktestRun(estimator, status string) {
	BacktestRunsTotal.WithLabelValues(estimator, status).Inc()
}

// RecordBacktestDuration records backtest duration.
func RecordBacktestDuration(durationSeconds float64) {
	BacktestDuration.Observe(durationSeconds)
}

// RecordBootstrapDuration records how long one bootstrap took.
func RecordBootstrapDuration(durationSeconds float64) {
	BootstrapDuration.Observe(durationSeconds)
}

// UpdateBacktestResult publishes headline figures for the latest run.
func UpdateBacktestResult(estimator string, roi, pValue float64) {
	BacktestROI.WithLabelValues(estimator).Set(roi)
	BacktestPValue.WithLabelValues(estimator).Set(pValue)
}
