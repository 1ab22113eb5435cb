package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/golf-edge/internal/backtest"
	"github.com/yourusername/golf-edge/internal/datasource"
	"github.com/yourusername/golf-edge/internal/models"
	"github.com/yourusername/golf-edge/internal/strategy"
)

var sampleSizeFlags backtest.SampleSizeParams

var sampleSizeCmd = &cobra.Command{
	Use:   "sample-size",
	Short: "Estimate how many bets are needed to confirm an edge",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := sampleSizeParams(cmd)
		n := backtest.MinimumSampleSize(params)
		_, err := fmt.Fprintf(os.Stdout, "Minimum bets needed: %d (win rate %.1f%%, avg odds %.2f, confidence %.0f%%, power %.0f%%)\n",
			n, params.WinRate*100, params.AvgOdds, params.Confidence*100, params.Power*100)
		return err
	},
}

var edgeFlags struct {
	prob float64
	odds string
}

var edgeCmd = &cobra.Command{
	Use:   "edge",
	Short: "Compute edge and Kelly stake for one price",
	RunE: func(cmd *cobra.Command, args []string) error {
		staking := strategy.StakingParameters{
			Bankroll:      cfg.Staking.Bankroll,
			KellyFraction: cfg.Staking.KellyFraction,
			MinEdge:       cfg.Staking.MinEdge,
			MaxBetPct:     cfg.Staking.MaxBetPct,
		}
		quote, err := quoteEdge(edgeFlags.prob, edgeFlags.odds, staking)
		if err != nil {
			return err
		}
		return quote.write(os.Stdout)
	},
}

func init() {
	f := sampleSizeCmd.Flags()
	f.Float64Var(&sampleSizeFlags.WinRate, "win-rate", 0, "Expected strike rate (defaults to config)")
	f.Float64Var(&sampleSizeFlags.AvgOdds, "avg-odds", 0, "Average decimal odds (defaults to config)")
	f.Float64Var(&sampleSizeFlags.Confidence, "confidence", 0, "Confidence level (defaults to config)")
	f.Float64Var(&sampleSizeFlags.Power, "power", 0, "Statistical power (defaults to config)")

	edgeCmd.Flags().Float64Var(&edgeFlags.prob, "prob", 0, "Estimated win probability")
	edgeCmd.Flags().StringVar(&edgeFlags.odds, "odds", "", "Price as American (+400) or decimal (5.0)")
	_ = edgeCmd.MarkFlagRequired("prob")
	_ = edgeCmd.MarkFlagRequired("odds")
}

// sampleSizeParams takes each flag that was set and falls back to config
func sampleSizeParams(cmd *cobra.Command) backtest.SampleSizeParams {
	s := cfg.Analysis.SampleSize
	params := backtest.SampleSizeParams{WinRate: s.WinRate, AvgOdds: s.AvgOdds, Confidence: s.Confidence, Power: s.Power}
	flags := cmd.Flags()
	if flags.Changed("win-rate") {
		params.WinRate = sampleSizeFlags.WinRate
	}
	if flags.Changed("avg-odds") {
		params.AvgOdds = sampleSizeFlags.AvgOdds
	}
	if flags.Changed("confidence") {
		params.Confidence = sampleSizeFlags.Confidence
	}
	if flags.Changed("power") {
		params.Power = sampleSizeFlags.Power
	}
	return params
}

type edgeQuote struct {
	Probability   float64
	DecimalOdds   float64
	MarketProb    float64
	Edge          float64
	ExpectedValue float64
	FullKelly     float64
	StakeFraction float64
	Stake         decimal.Decimal
	IsValue       bool
}

func quoteEdge(prob float64, rawOdds string, staking strategy.StakingParameters) (edgeQuote, error) {
	if prob <= 0 || prob >= 1 {
		return edgeQuote{}, fmt.Errorf("probability must be in (0, 1), got %v", prob)
	}
	if err := staking.Validate(); err != nil {
		return edgeQuote{}, err
	}
	price, _, err := datasource.ParseOdds(rawOdds)
	if err != nil {
		return edgeQuote{}, err
	}
	marketProb, _ := models.DecimalToProbability(price)

	edge := strategy.Edge(prob, marketProb)
	fraction := strategy.SizeStake(edge, price, staking)
	return edgeQuote{
		Probability:   prob,
		DecimalOdds:   price,
		MarketProb:    marketProb,
		Edge:          edge,
		ExpectedValue: strategy.ExpectedValue(prob, price),
		FullKelly:     strategy.FullKelly(edge, price),
		StakeFraction: fraction,
		Stake:         decimal.NewFromFloat(fraction * staking.Bankroll).Round(2),
		IsValue:       edge >= staking.MinEdge,
	}, nil
}

func (q edgeQuote) write(w io.Writer) error {
	pct := func(v float64) string { return strconv.FormatFloat(v*100, 'f', 2, 64) + "%" }
	value := "No"
	if q.IsValue {
		value = "Yes"
	}

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Decimal Odds", strconv.FormatFloat(q.DecimalOdds, 'f', 2, 64)},
		{"Market Probability", pct(q.MarketProb)},
		{"Our Probability", pct(q.Probability)},
		{"Edge", pct(q.Edge)},
		{"Expected Value", pct(q.ExpectedValue)},
		{"Full Kelly", pct(q.FullKelly)},
		{"Stake Fraction", pct(q.StakeFraction)},
		{"Stake", "$" + q.Stake.StringFixed(2)},
		{"Value Bet", value},
	}
	for _, row := range rows {
		if err := table.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	return table.Render()
}
