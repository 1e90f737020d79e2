package backtest

import "math"

// Metrics are derived from the trade ledger and equity curve on demand; they
// are never authoritative state.
type Metrics struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`
	AvgWin        float64 `json:"avg_win"`
	AvgLoss       float64 `json:"avg_loss"`
	ProfitFactor  float64 `json:"profit_factor"`
	SharpeRatio   float64 `json:"sharpe_ratio"`
	MaxDrawdown   float64 `json:"max_drawdown"`
	TotalReturn   float64 `json:"total_return"`
	FinalCapital  float64 `json:"final_capital"`
}

// ComputeMetrics recomputes performance figures from scratch.
//
// Profit factor is +Inf when there are winners and no losers, and 0 when
// there are no winners at all. Sharpe annualizes step returns as
// (mean*252)/(std*sqrt(252)) and falls back to 0 with fewer than two returns
// or zero variance. Max drawdown is expressed as a non-positive fraction of
// the running equity peak.
func ComputeMetrics(trades []Trade, equity []EquityPoint, initialCapital float64) Metrics {
	m := Metrics{FinalCapital: initialCapital}
	if len(equity) > 0 {
		m.FinalCapital = equity[len(equity)-1].Equity
	}
	if len(trades) == 0 && len(equity) == 0 {
		return m
	}

	var grossProfit, grossLoss float64
	for _, t := range trades {
		switch {
		case t.PnL > 0:
			m.WinningTrades++
			grossProfit += t.PnL
		case t.PnL < 0:
			m.LosingTrades++
			grossLoss += -t.PnL
		}
	}
	m.TotalTrades = len(trades)
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades)
	}
	if m.WinningTrades > 0 {
		m.AvgWin = grossProfit / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = -grossLoss / float64(m.LosingTrades)
	}

	switch {
	case grossLoss > 0:
		m.ProfitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		m.ProfitFactor = math.Inf(1)
	}

	m.SharpeRatio = sharpe(equity)
	m.MaxDrawdown = maxDrawdown(equity)
	if initialCapital > 0 {
		m.TotalReturn = (m.FinalCapital - initialCapital) / initialCapital
	}
	return m
}

func sharpe(equity []EquityPoint) float64 {
	returns := make([]float64, 0, len(equity))
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Equity
		if prev == 0 {
			continue
		}
		returns = append(returns, equity[i].Equity/prev-1)
	}
	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)
	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return (mean * 252) / (std * math.Sqrt(252))
}

func maxDrawdown(equity []EquityPoint) float64 {
	if len(equity) == 0 {
		return 0
	}
	peak := equity[0].Equity
	worst := 0.0
	for _, p := range equity {
		if p.Equity > peak {
			peak = p.Equity
		}
		if peak > 0 {
			dd := (p.Equity - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst
}
