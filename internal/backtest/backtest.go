// Package backtest replays daily bars through the aggregator with a
// walk-forward stride, holds at most one position per symbol, and derives
// performance metrics from the resulting trade ledger.
package backtest

import (
	"time"

	"github.com/luxapientia/TradingSuite/internal/signal"
)

// Position is the single open exposure a symbol may carry.
type Position struct {
	Side            signal.Direction
	EntryDate       time.Time
	EntryPrice      float64
	Size            float64
	EntryConfidence float64
}

// Trade is a closed Position. Immutable once appended to the ledger.
type Trade struct {
	Symbol          string           `json:"symbol"`
	Side            signal.Direction `json:"side"`
	EntryDate       time.Time        `json:"entry_date"`
	ExitDate        time.Time        `json:"exit_date"`
	EntryPrice      float64          `json:"entry_price"`
	ExitPrice       float64          `json:"exit_price"`
	Size            float64          `json:"size"`
	PnL             float64          `json:"pnl"`
	Commission      float64          `json:"commission"`
	DaysHeld        int              `json:"days_held"`
	EntryConfidence float64          `json:"signal_confidence"`
}

// EquityPoint is the running capital after one simulation step. Point zero is
// the initial capital before any step runs.
type EquityPoint struct {
	Step   int       `json:"step"`
	Date   time.Time `json:"date"`
	Equity float64   `json:"equity"`
}

// Result is the full outcome of one symbol's walk-forward run.
type Result struct {
	Symbol      string        `json:"symbol"`
	Trades      []Trade       `json:"trades"`
	Metrics     Metrics       `json:"metrics"`
	EquityCurve []EquityPoint `json:"equity_curve"`
}

// LeaderboardEntry summarizes one symbol for the cross-symbol ranking.
type LeaderboardEntry struct {
	Symbol       string  `json:"symbol"`
	TotalReturn  float64 `json:"total_return"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	ProfitFactor float64 `json:"profit_factor"`
	TotalTrades  int     `json:"total_trades"`
	WinRate      float64 `json:"win_rate"`
}

// Summary holds every symbol's result plus the leaderboard sorted by Sharpe
// ratio, best first.
type Summary struct {
	Results     map[string]Result  `json:"results"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
