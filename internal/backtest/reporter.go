package backtest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Verdicts
const (
	VerdictEdge          = "EDGE"
	VerdictNeedsMoreData = "NEEDS_MORE_DATA"
	VerdictNoEdge        = "NO_EDGE"
)

// verdictROIThreshold is the vig-adjusted ROI in percent a strategy must clear
const verdictROIThreshold = 3.0

// NoBetsMessage is the whole text report for an empty ledger
const NoBetsMessage = "No bets to analyze."

// Verdict classifies a report. A significant result also needs a
// vig-adjusted ROI above 3%; a high ROI alone only asks for more data.
func Verdict(report MetricsReport) string {
	if report.TotalBets == 0 {
		return VerdictNoEdge
	}
	clears := report.VigAdjustedROI > verdictROIThreshold
	switch {
	case report.IsSignificant && clears:
		return VerdictEdge
	case clears:
		return VerdictNeedsMoreData
	default:
		return VerdictNoEdge
	}
}

func conclusion(verdict string) string {
	switch verdict {
	case VerdictEdge:
		return "Strategy shows statistically significant positive edge"
	case VerdictNeedsMoreData:
		return "Positive ROI but needs more data for significance"
	default:
		return "No significant edge detected - review strategy"
	}
}

// WriteTextReport renders the report as sectioned tables followed by a conclusion
func WriteTextReport(w io.Writer, report MetricsReport) error {
	if report.TotalBets == 0 {
		_, err := fmt.Fprintln(w, NoBetsMessage)
		return err
	}

	ci := report.ROIConfidenceInterval
	significant := "No"
	if report.IsSignificant {
		significant = "Yes"
	}

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"Performance", [][2]string{
			{"Total Bets", strconv.Itoa(report.TotalBets)},
			{"Win Rate", fmt.Sprintf("%.1f%%", report.WinRate)},
			{"ROI", fmt.Sprintf("%.2f%%", report.ROI)},
			{"Vig-Adjusted ROI", fmt.Sprintf("%.2f%%", report.VigAdjustedROI)},
			{fmt.Sprintf("ROI %.0f%% CI", ci.Confidence*100), fmt.Sprintf("(%.2f%%, %.2f%%)", ci.Lower, ci.Upper)},
		}},
		{"Financial", [][2]string{
			{"Total Staked", fmt.Sprintf("$%.2f", report.TotalStaked)},
			{"Total Profit", fmt.Sprintf("$%.2f", report.TotalProfit)},
			{"Average Stake", fmt.Sprintf("$%.2f", report.AvgStake)},
			{"Average Odds", fmt.Sprintf("%.2f", report.AvgOdds)},
			{"Final Bankroll", fmt.Sprintf("$%.2f", report.FinalBankroll)},
			{"Bankroll Growth", fmt.Sprintf("%.2f%%", report.BankrollGrowth)},
		}},
		{"Risk", [][2]string{
			{"Sharpe Ratio", fmt.Sprintf("%.2f", report.SharpeRatio)},
			{"Max Drawdown", fmt.Sprintf("%.1f%%", report.MaxDrawdown)},
			{"Biggest Win", fmt.Sprintf("$%.2f", report.BiggestWin)},
			{"Biggest Loss", fmt.Sprintf("$%.2f", report.BiggestLoss)},
		}},
		{"Statistical Validation", [][2]string{
			{"P-value", fmt.Sprintf("%.4f", report.PValue)},
			{"Statistically Significant", significant},
			{"Minimum Bets Needed", strconv.Itoa(report.MinimumSampleSize)},
		}},
	}

	if _, err := fmt.Fprintln(w, "=== ROI Analysis Report ==="); err != nil {
		return err
	}
	for _, section := range sections {
		fmt.Fprintf(w, "\n%s\n", section.title)
		table := tablewriter.NewWriter(w)
		table.Header("Metric", "Value")
		for _, row := range section.rows {
			if err := table.Append(row[0], row[1]); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	verdict := Verdict(report)
	_, err := fmt.Fprintf(w, "\nConclusion: %s (%s)\n", conclusion(verdict), verdict)
	return err
}

// WriteCSV writes the headline metrics as metric,value rows
func WriteCSV(w io.Writer, report MetricsReport) error {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	rows := [][]string{
		{"metric", "value"},
		{"total_bets", strconv.Itoa(report.TotalBets)},
		{"winning_bets", strconv.Itoa(report.WinningBets)},
		{"win_rate", f(report.WinRate)},
		{"total_staked", f(report.TotalStaked)},
		{"total_profit", f(report.TotalProfit)},
		{"roi", f(report.ROI)},
		{"vig_estimate", f(report.VigEstimate)},
		{"vig_adjusted_roi", f(report.VigAdjustedROI)},
		{"roi_ci_lower", f(report.ROIConfidenceInterval.Lower)},
		{"roi_ci_upper", f(report.ROIConfidenceInterval.Upper)},
		{"sharpe_ratio", f(report.SharpeRatio)},
		{"max_drawdown", f(report.MaxDrawdown)},
		{"p_value", f(report.PValue)},
		{"is_significant", strconv.FormatBool(report.IsSignificant)},
		{"minimum_sample_size", strconv.Itoa(report.MinimumSampleSize)},
		{"final_bankroll", f(report.FinalBankroll)},
		{"verdict", Verdict(report)},
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv report: %w", err)
	}
	return nil
}

// ToJSON exports the report with its verdict
func (r MetricsReport) ToJSON() (string, error) {
	payload := struct {
		MetricsReport
		Verdict string `json:"verdict"`
	}{r, Verdict(r)}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveReports writes report.txt, report.csv and report.json into dir
func SaveReports(dir string, report MetricsReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	writers := map[string]func(io.Writer) error{
		"report.txt":  func(w io.Writer) error { return WriteTextReport(w, report) },
		"report.csv":  func(w io.Writer) error { return WriteCSV(w, report) },
		"report.json": func(w io.Writer) error { return writeJSON(w, report) },
	}
	for name, write := range writers {
		if err := writeFile(filepath.Join(dir, name), write); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, report MetricsReport) error {
	data, err := report.ToJSON()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, data)
	return err
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
