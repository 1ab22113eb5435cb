package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/golf-edge/internal/models"
)

// ReportOptions configures BuildReport
type ReportOptions struct {
	Analysis          AnalysisOptions
	SignificanceLevel float64
	Confidence        float64
	Seed              int64
	Workers           int
	SampleSize        SampleSizeParams
}

// DefaultReportOptions returns the standard analysis setup with seed 42
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Analysis:          DefaultAnalysisOptions(),
		SignificanceLevel: DefaultSignificanceLevel,
		Confidence:        0.95,
		Seed:              42,
		SampleSize:        DefaultSampleSizeParams(),
	}
}

// MetricsReport is the full analysis of one ledger snapshot
type MetricsReport struct {
	PerformanceMetrics
	PValue                float64               `json:"p_value"`
	IsSignificant         bool                  `json:"is_significant"`
	SignificanceLevel     float64               `json:"significance_level"`
	ROIConfidenceInterval ROIConfidenceInterval `json:"roi_confidence_interval"`
	MinimumSampleSize     int                   `json:"minimum_sample_size"`
	InitialBankroll       float64               `json:"initial_bankroll"`
	FinalBankroll         float64               `json:"final_bankroll"`
	BankrollGrowth        float64               `json:"bankroll_growth"`
	PendingBets           int                   `json:"pending_bets"`
}

// BuildReport analyzes a ledger snapshot. Each call computes a fresh report;
// nothing is cached between calls. A negative Confidence selects 0.95; zero
// is kept and yields the median resample as both bounds.
func BuildReport(ctx context.Context, wagers []models.Wager, initialBankroll float64, opts ReportOptions) (MetricsReport, error) {
	if opts.SignificanceLevel <= 0 {
		opts.SignificanceLevel = DefaultSignificanceLevel
	}
	if opts.Confidence < 0 {
		opts.Confidence = 0.95
	}

	settled := settledOnly(wagers)
	perf := Analyze(settled, initialBankroll, opts.Analysis)

	ci, err := BootstrapROI(ctx, settled, opts.Confidence, opts.Seed, opts.Workers)
	if err != nil {
		return MetricsReport{}, fmt.Errorf("bootstrap failed: %w", err)
	}

	pValue := OneSidedPValue(profits(settled))
	final := initialBankroll + perf.TotalProfit
	growth := 0.0
	if initialBankroll > 0 {
		growth = (final - initialBankroll) / initialBankroll * 100
	}

	return MetricsReport{
		PerformanceMetrics:    perf,
		PValue:                pValue,
		IsSignificant:         pValue < opts.SignificanceLevel,
		SignificanceLevel:     opts.SignificanceLevel,
		ROIConfidenceInterval: ci,
		MinimumSampleSize:     MinimumSampleSize(opts.SampleSize),
		InitialBankroll:       initialBankroll,
		FinalBankroll:         final,
		BankrollGrowth:        growth,
		PendingBets:           len(wagers) - len(settled),
	}, nil
}

// RunMeta describes the backtest a report came from
type RunMeta struct {
	Estimator  string
	StartDate  time.Time
	EndDate    time.Time
	Parameters map[string]interface{}
}

// ToResult converts a report into a persistable BacktestResult
func ToResult(report MetricsReport, meta RunMeta) (*models.BacktestResult, error) {
	params, err := json.Marshal(meta.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}

	return &models.BacktestResult{
		ID:              uuid.New(),
		StrategyName:    meta.Estimator,
		StartDate:       meta.StartDate,
		EndDate:         meta.EndDate,
		InitialBankroll: report.InitialBankroll,
		FinalBankroll:   report.FinalBankroll,
		TotalBets:       report.TotalBets,
		WinningBets:     report.WinningBets,
		ROI:             report.ROI,
		SharpeRatio:     report.SharpeRatio,
		MaxDrawdown:     report.MaxDrawdown,
		PValue:          report.PValue,
		IsSignificant:   report.IsSignificant,
		Verdict:         Verdict(report),
		Parameters:      params,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
