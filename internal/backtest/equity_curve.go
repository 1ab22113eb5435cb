package backtest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yourusername/golf-edge/internal/models"
)

// EquityPoint is the bankroll after one settled wager
type EquityPoint struct {
	Time       time.Time `json:"time"`
	Tournament string    `json:"tournament"`
	Player     string    `json:"player"`
	Value      float64   `json:"value"`
	Drawdown   float64   `json:"drawdown"`
	PnL        float64   `json:"pnl"`
}

// EquityCurve represents a time-series of equity points
type EquityCurve []EquityPoint

// BuildEquityCurve replays the settled wagers of a snapshot in order.
// Drawdown is measured against the peak-to-date including the initial bankroll.
func BuildEquityCurve(wagers []models.Wager, initialBankroll float64) EquityCurve {
	settled := settledOnly(wagers)
	curve := make(EquityCurve, 0, len(settled))

	value, peak := initialBankroll, initialBankroll
	for _, w := range settled {
		pnl := w.ProfitOrZero()
		value += pnl
		if value > peak {
			peak = value
		}
		drawdown := 0.0
		if peak > 0 && value < peak {
			drawdown = (peak - value) / peak
		}

		point := EquityPoint{
			Tournament: w.Tournament,
			Player:     w.Player,
			Value:      value,
			Drawdown:   drawdown,
			PnL:        pnl,
		}
		if w.SettledAt != nil {
			point.Time = *w.SettledAt
		}
		curve = append(curve, point)
	}
	return curve
}

// GetReturns calculates the return of each point relative to the previous one
func (e EquityCurve) GetReturns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1].Value
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (e[i].Value-prev)/prev)
	}
	return returns
}

// MaxDrawdown returns the worst drawdown fraction on the curve
func (e EquityCurve) MaxDrawdown() float64 {
	worst := 0.0
	for _, p := range e {
		if p.Drawdown > worst {
			worst = p.Drawdown
		}
	}
	return worst
}

// ToCSV exports equity curve to CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("time,tournament,player,value,drawdown,pnl\n")
	for _, point := range e {
		buf.WriteString(point.Time.Format(time.RFC3339))
		buf.WriteString(",")
		buf.WriteString(strconv.Quote(point.Tournament))
		buf.WriteString(",")
		buf.WriteString(strconv.Quote(point.Player))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Value))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Drawdown))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.PnL))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports equity curve to JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
