package backtest

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdict(t *testing.T) {
	tests := []struct {
		name     string
		report   MetricsReport
		expected string
	}{
		{"no bets", MetricsReport{}, VerdictNoEdge},
		{
			"significant and clears threshold",
			MetricsReport{PerformanceMetrics: PerformanceMetrics{TotalBets: 10, VigAdjustedROI: 8}, IsSignificant: true},
			VerdictEdge,
		},
		{
			"clears threshold without significance",
			MetricsReport{PerformanceMetrics: PerformanceMetrics{TotalBets: 10, VigAdjustedROI: 8}},
			VerdictNeedsMoreData,
		},
		{
			"significant but thin",
			MetricsReport{PerformanceMetrics: PerformanceMetrics{TotalBets: 10, VigAdjustedROI: 3}, IsSignificant: true},
			VerdictNoEdge,
		},
		{
			"losing",
			MetricsReport{PerformanceMetrics: PerformanceMetrics{TotalBets: 10, VigAdjustedROI: -12}},
			VerdictNoEdge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Verdict(tt.report))
		})
	}
}

func TestBuildReportScenario(t *testing.T) {
	report, err := BuildReport(context.Background(), scenarioWagers(), 1000, DefaultReportOptions())
	require.NoError(t, err)

	assert.InDelta(t, 433.33, report.ROI, 0.01)
	assert.False(t, report.IsSignificant)
	assert.Equal(t, DefaultSignificanceLevel, report.SignificanceLevel)
	assert.Equal(t, 644, report.MinimumSampleSize)
	assert.InDelta(t, 1390.0, report.FinalBankroll, 1e-9)
	assert.InDelta(t, 39.0, report.BankrollGrowth, 1e-9)
	assert.Equal(t, VerdictNeedsMoreData, Verdict(report))
}

func TestBuildReportConfidence(t *testing.T) {
	opts := DefaultReportOptions()
	opts.Confidence = 0
	report, err := BuildReport(context.Background(), scenarioWagers(), 1000, opts)
	require.NoError(t, err)
	ci := report.ROIConfidenceInterval
	assert.Equal(t, 0.0, ci.Confidence)
	assert.Equal(t, ci.Lower, ci.Upper)

	opts.Confidence = -1
	report, err = BuildReport(context.Background(), scenarioWagers(), 1000, opts)
	require.NoError(t, err)
	assert.Equal(t, 0.95, report.ROIConfidenceInterval.Confidence)
}

func TestBuildReportIsFreshEachCall(t *testing.T) {
	wagers := scenarioWagers()
	first, err := BuildReport(context.Background(), wagers, 1000, DefaultReportOptions())
	require.NoError(t, err)

	wagers = append(wagers, settledWager("Rory McIlroy", 60, 9.0, false))
	second, err := BuildReport(context.Background(), wagers, 1000, DefaultReportOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, first.TotalBets)
	assert.Equal(t, 3, second.TotalBets)
	assert.NotEqual(t, first.ROI, second.ROI)
}

func TestBuildReportCountsPending(t *testing.T) {
	wagers := append(scenarioWagers(), pendingWager("Rory McIlroy", 60, 9.0))
	report, err := BuildReport(context.Background(), wagers, 1000, DefaultReportOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalBets)
	assert.Equal(t, 1, report.PendingBets)
}

func TestWriteTextReport(t *testing.T) {
	t.Run("no bets", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTextReport(&buf, MetricsReport{}))
		assert.Equal(t, NoBetsMessage+"\n", buf.String())
	})

	t.Run("sections and conclusion", func(t *testing.T) {
		report, err := BuildReport(context.Background(), scenarioWagers(), 1000, DefaultReportOptions())
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteTextReport(&buf, report))
		out := buf.String()

		assert.True(t, strings.HasPrefix(out, "=== ROI Analysis Report ==="))
		for _, section := range []string{"Performance", "Financial", "Risk", "Statistical Validation"} {
			assert.Contains(t, out, section)
		}
		assert.Contains(t, out, "433.33%")
		assert.Contains(t, out, "ROI 95% CI")
		assert.Contains(t, out, "Conclusion: Positive ROI but needs more data for significance (NEEDS_MORE_DATA)")
	})
}

func TestWriteCSV(t *testing.T) {
	report, err := BuildReport(context.Background(), scenarioWagers(), 1000, DefaultReportOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, report))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"metric", "value"}, rows[0])

	values := make(map[string]string, len(rows))
	for _, row := range rows[1:] {
		values[row[0]] = row[1]
	}
	assert.Equal(t, "2", values["total_bets"])
	assert.Equal(t, "433.3333", values["roi"])
	assert.Equal(t, VerdictNeedsMoreData, values["verdict"])
}

func TestSaveReports(t *testing.T) {
	report, err := BuildReport(context.Background(), scenarioWagers(), 1000, DefaultReportOptions())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, SaveReports(dir, report))

	for _, name := range []string{"report.txt", "report.csv", "report.json"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, VerdictNeedsMoreData, decoded["verdict"])
	assert.Equal(t, float64(2), decoded["total_bets"])
}

func TestToResult(t *testing.T) {
	report, err := BuildReport(context.Background(), scenarioWagers(), 1000, DefaultReportOptions())
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	result, err := ToResult(report, RunMeta{
		Estimator:  "combined",
		StartDate:  start,
		EndDate:    start.AddDate(0, 6, 0),
		Parameters: map[string]interface{}{"kelly_fraction": 0.25},
	})
	require.NoError(t, err)

	assert.Equal(t, "combined", result.StrategyName)
	assert.Equal(t, 2, result.TotalBets)
	assert.Equal(t, VerdictNeedsMoreData, result.Verdict)
	assert.JSONEq(t, `{"kelly_fraction":0.25}`, string(result.Parameters))
}
