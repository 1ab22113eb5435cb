package backtest

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/golf-edge/internal/models"
)

const (
	// DefaultRiskFreeRate is the annual rate subtracted from per-wager returns
	DefaultRiskFreeRate = 0.02
	// DefaultPeriodsPerYear assumes one betting round per week
	DefaultPeriodsPerYear = 52.0

	// assumedFieldSize is the number of genuine contenders the vig heuristic
	// scales mean implied probability by. It is an approximation, not derived
	// from the real market.
	assumedFieldSize = 20.0
	defaultVigPct    = 5.0
	maxVigPct        = 10.0
)

// AnalysisOptions configures the risk-adjusted metrics
type AnalysisOptions struct {
	RiskFreeRate   float64
	PeriodsPerYear float64
}

// DefaultAnalysisOptions returns a 2% annual rate over weekly periods
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{RiskFreeRate: DefaultRiskFreeRate, PeriodsPerYear: DefaultPeriodsPerYear}
}

// PerformanceMetrics summarizes a set of settled wagers
type PerformanceMetrics struct {
	TotalBets      int     `json:"total_bets"`
	WinningBets    int     `json:"winning_bets"`
	LosingBets     int     `json:"losing_bets"`
	WinRate        float64 `json:"win_rate"`
	TotalStaked    float64 `json:"total_staked"`
	TotalProfit    float64 `json:"total_profit"`
	ROI            float64 `json:"roi"`
	VigEstimate    float64 `json:"vig_estimate"`
	VigAdjustedROI float64 `json:"vig_adjusted_roi"`
	AvgOdds        float64 `json:"avg_odds"`
	AvgStake       float64 `json:"avg_stake"`
	BiggestWin     float64 `json:"biggest_win"`
	BiggestLoss    float64 `json:"biggest_loss"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
	MaxDrawdown    float64 `json:"max_drawdown"`
}

// Analyze computes PerformanceMetrics over the settled wagers of a ledger
// snapshot, in the order given. Pending wagers are ignored.
func Analyze(wagers []models.Wager, initialBankroll float64, opts AnalysisOptions) PerformanceMetrics {
	settled := settledOnly(wagers)
	metrics := PerformanceMetrics{TotalBets: len(settled)}
	if len(settled) == 0 {
		return metrics
	}

	if opts.PeriodsPerYear <= 0 {
		opts.PeriodsPerYear = DefaultPeriodsPerYear
	}

	oddsSum := 0.0
	haveWin, haveLoss := false, false
	for _, w := range settled {
		profit := w.ProfitOrZero()
		metrics.TotalStaked += w.Stake
		metrics.TotalProfit += profit
		oddsSum += w.Price

		if w.Won() {
			metrics.WinningBets++
			if !haveWin || profit > metrics.BiggestWin {
				metrics.BiggestWin = profit
				haveWin = true
			}
		} else {
			metrics.LosingBets++
			if !haveLoss || profit < metrics.BiggestLoss {
				metrics.BiggestLoss = profit
				haveLoss = true
			}
		}
	}

	n := float64(len(settled))
	metrics.WinRate = float64(metrics.WinningBets) / n * 100
	metrics.AvgOdds = oddsSum / n
	metrics.AvgStake = metrics.TotalStaked / n
	metrics.ROI = ROI(settled)
	metrics.VigEstimate = EstimateVig(settled)
	metrics.VigAdjustedROI = metrics.ROI - metrics.VigEstimate
	metrics.SharpeRatio = SharpeRatio(perWagerReturns(settled), opts)
	metrics.MaxDrawdown = MaxDrawdown(profits(settled), initialBankroll)

	return metrics
}

// ToJSON exports metrics to JSON
func (m PerformanceMetrics) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

// ROI returns total profit over total stake as a percentage, 0 when nothing was staked
func ROI(wagers []models.Wager) float64 {
	staked, profit := 0.0, 0.0
	for _, w := range wagers {
		staked += w.Stake
		profit += w.ProfitOrZero()
	}
	return roiPct(profit, staked)
}

func roiPct(profit, staked float64) float64 {
	if staked == 0 {
		return 0
	}
	return profit / staked * 100
}

// MaxDrawdown returns the largest peak-to-date decline of the bankroll series
// initialBankroll + cumulative profit, as a non-negative percentage. Points
// whose running peak is not positive are skipped.
func MaxDrawdown(profits []float64, initialBankroll float64) float64 {
	if len(profits) == 0 {
		return 0
	}

	cumulative := initialBankroll
	peak := math.Inf(-1)
	worst := 0.0
	for _, p := range profits {
		cumulative += p
		if cumulative > peak {
			peak = cumulative
		}
		if peak <= 0 {
			continue
		}
		if dd := (cumulative - peak) / peak; dd < worst {
			worst = dd
		}
	}
	return math.Abs(worst) * 100
}

// SharpeRatio annualizes the mean excess per-wager return over its sample
// standard deviation. Fewer than two returns or zero variance yield 0.
func SharpeRatio(returns []float64, opts AnalysisOptions) float64 {
	if len(returns) < 2 {
		return 0
	}
	periods := opts.PeriodsPerYear
	if periods <= 0 {
		periods = DefaultPeriodsPerYear
	}

	periodRate := opts.RiskFreeRate / periods
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - periodRate
	}

	std := sampleStddev(excess)
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	return math.Sqrt(periods) * average(excess) / std
}

// EstimateVig approximates the bookmaker margin in percent from the mean
// implied probability of wagers carrying an American price, assuming a
// twenty-contender field. Without American prices it returns 5; the result
// is capped at 10.
func EstimateVig(wagers []models.Wager) float64 {
	var implied []float64
	for _, w := range wagers {
		if w.AmericanPrice == nil || *w.AmericanPrice == 0 {
			continue
		}
		implied = append(implied, models.AmericanToProbability(*w.AmericanPrice))
	}
	if len(implied) == 0 {
		return defaultVigPct
	}

	total := average(implied) * assumedFieldSize
	vig := defaultVigPct
	if total > 1 {
		vig = (total - 1) * 100
	}
	return math.Min(vig, maxVigPct)
}

func settledOnly(wagers []models.Wager) []models.Wager {
	settled := make([]models.Wager, 0, len(wagers))
	for _, w := range wagers {
		if w.IsSettled() {
			settled = append(settled, w)
		}
	}
	return settled
}

func profits(wagers []models.Wager) []float64 {
	out := make([]float64, len(wagers))
	for i, w := range wagers {
		out[i] = w.ProfitOrZero()
	}
	return out
}

func perWagerReturns(wagers []models.Wager) []float64 {
	out := make([]float64, 0, len(wagers))
	for _, w := range wagers {
		if w.Stake > 0 {
			out = append(out, w.ProfitOrZero()/w.Stake)
		}
	}
	return out
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// sampleStddev uses the n-1 denominator
func sampleStddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}
