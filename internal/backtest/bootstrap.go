package backtest

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/golf-edge/internal/metrics"
	"github.com/yourusername/golf-edge/internal/models"
)

// BootstrapResamples is the fixed number of bootstrap draws
const BootstrapResamples = 1000

// ROIConfidenceInterval is a percentile bootstrap interval for ROI in percent
type ROIConfidenceInterval struct {
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Confidence float64 `json:"confidence"`
}

// BootstrapROI resamples wagers with replacement and returns the central
// confidence interval of the resampled ROI.
//
// Each draw gets its own seed taken in order from one source seeded with
// seed, so the result is identical for any worker count. Resamples with zero
// total stake are skipped. With fewer than two wagers, or when every
// resample is skipped, the interval collapses to the point ROI.
func BootstrapROI(ctx context.Context, wagers []models.Wager, confidence float64, seed int64, workers int) (ROIConfidenceInterval, error) {
	start := time.Now()
	defer func() { metrics.RecordBootstrapDuration(time.Since(start).Seconds()) }()

	roi := ROI(wagers)
	degenerate := ROIConfidenceInterval{Lower: roi, Upper: roi, Confidence: confidence}
	n := len(wagers)
	if n < 2 {
		return degenerate, nil
	}

	stakes := make([]float64, n)
	gains := make([]float64, n)
	for i := range wagers {
		stakes[i] = wagers[i].Stake
		gains[i] = wagers[i].ProfitOrZero()
	}

	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, BootstrapResamples)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > BootstrapResamples {
		workers = BootstrapResamples
	}

	samples := make([]float64, BootstrapResamples)
	g, gctx := errgroup.WithContext(ctx)
	chunk := (BootstrapResamples + workers - 1) / workers
	for lo := 0; lo < BootstrapResamples; lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > BootstrapResamples {
			hi = BootstrapResamples
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				samples[i] = resampleROI(rand.New(rand.NewSource(seeds[i])), stakes, gains)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ROIConfidenceInterval{}, err
	}

	kept := samples[:0]
	for _, s := range samples {
		if !math.IsNaN(s) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return degenerate, nil
	}
	sort.Float64s(kept)

	tail := (1 - confidence) / 2
	return ROIConfidenceInterval{
		Lower:      percentile(kept, tail),
		Upper:      percentile(kept, 1-tail),
		Confidence: confidence,
	}, nil
}

// resampleROI returns NaN when the resample staked nothing
func resampleROI(rng *rand.Rand, stakes, gains []float64) float64 {
	n := len(stakes)
	staked, profit := 0.0, 0.0
	for j := 0; j < n; j++ {
		k := rng.Intn(n)
		staked += stakes[k]
		profit += gains[k]
	}
	if staked == 0 {
		return math.NaN()
	}
	return profit / staked * 100
}

// percentile interpolates linearly between the two closest ranks of a
// sorted slice; q is in [0, 1].
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
