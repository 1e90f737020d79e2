package backtest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/luxapientia/TradingSuite/internal/aggregate"
	"github.com/luxapientia/TradingSuite/internal/config"
	"github.com/luxapientia/TradingSuite/internal/engine"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/metrics"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// Decider produces one aggregated decision for a bar window. Satisfied by
// *aggregate.Aggregator.
type Decider interface {
	Decide(ctx context.Context, symbol string, bars []market.Bar, minConfidence float64) aggregate.Decision
}

// TradeRecorder captures closed trades for later inspection.
type TradeRecorder interface {
	Record(Trade)
}

// Runner walks a bar history forward at a fixed stride, asking the decider
// for a call at each step. Runners share no mutable state across symbols, so
// one Runner serves concurrent per-symbol runs.
type Runner struct {
	decider       Decider
	cfg           config.Backtest
	minConfidence float64
	recorder      TradeRecorder
	log           zerolog.Logger
}

// NewRunner wires a runner; recorder may be nil.
func NewRunner(decider Decider, cfg config.Backtest, minConfidence float64, recorder TradeRecorder, log zerolog.Logger) *Runner {
	return &Runner{
		decider:       decider,
		cfg:           cfg,
		minConfidence: minConfidence,
		recorder:      recorder,
		log:           log,
	}
}

// Run executes the walk-forward simulation for one symbol. Bars must be
// ordered by date; fewer bars than the warm-up window is reported via
// engine.ErrInsufficientData.
func (r *Runner) Run(ctx context.Context, symbol string, bars []market.Bar) (Result, error) {
	window := r.cfg.WindowSize
	if len(bars) < window {
		return Result{}, fmt.Errorf("%s: %d bars, need %d: %w", symbol, len(bars), window, engine.ErrInsufficientData)
	}

	capital := r.cfg.InitialCapital
	equity := []EquityPoint{{Step: 0, Date: bars[window-1].Date, Equity: capital}}
	var pos *Position
	var trades []Trade
	step := 0

	for i := window; i < len(bars); i += r.cfg.StepSize {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		bar := bars[i]
		price := bar.Close

		if pos != nil {
			daysHeld := calendarDays(pos.EntryDate, bar.Date)
			if daysHeld >= r.cfg.MinHoldingDays {
				trade := r.close(symbol, pos, bar, price)
				capital += trade.PnL
				trades = append(trades, trade)
				pos = nil
			}
		}

		if pos == nil {
			decision := r.decider.Decide(ctx, symbol, bars[i-window:i+1], r.minConfidence)
			if decision.Decision != signal.Flat {
				size := positionSize(price, decision.StopLossPct, capital)
				if size > 0 {
					pos = &Position{
						Side:            decision.Decision,
						EntryDate:       bar.Date,
						EntryPrice:      price,
						Size:            size,
						EntryConfidence: decision.Confidence,
					}
					r.log.Info().
						Str("symbol", symbol).
						Str("side", string(pos.Side)).
						Float64("size", size).
						Float64("price", price).
						Msg("opened position")
				}
			}
		}

		step++
		equity = append(equity, EquityPoint{Step: step, Date: bar.Date, Equity: capital})
	}

	if pos != nil {
		last := bars[len(bars)-1]
		trade := r.close(symbol, pos, last, last.Close)
		capital += trade.PnL
		trades = append(trades, trade)
		equity[len(equity)-1].Equity = capital
	}

	return Result{
		Symbol:      symbol,
		Trades:      trades,
		Metrics:     ComputeMetrics(trades, equity, r.cfg.InitialCapital),
		EquityCurve: equity,
	}, nil
}

// RunAll backtests every symbol concurrently and ranks them by Sharpe ratio.
// Symbols that fail are logged and left out of the summary.
func (r *Runner) RunAll(ctx context.Context, data map[string][]market.Bar) Summary {
	var mu sync.Mutex
	results := make(map[string]Result, len(data))

	var wg sync.WaitGroup
	for symbol, bars := range data {
		wg.Add(1)
		go func(symbol string, bars []market.Bar) {
			defer wg.Done()
			res, err := r.Run(ctx, symbol, bars)
			if err != nil {
				r.log.Error().Err(err).Str("symbol", symbol).Msg("backtest failed")
				return
			}
			mu.Lock()
			results[symbol] = res
			mu.Unlock()
		}(symbol, bars)
	}
	wg.Wait()

	leaderboard := make([]LeaderboardEntry, 0, len(results))
	for symbol, res := range results {
		leaderboard = append(leaderboard, LeaderboardEntry{
			Symbol:       symbol,
			TotalReturn:  res.Metrics.TotalReturn,
			SharpeRatio:  res.Metrics.SharpeRatio,
			MaxDrawdown:  res.Metrics.MaxDrawdown,
			ProfitFactor: res.Metrics.ProfitFactor,
			TotalTrades:  res.Metrics.TotalTrades,
			WinRate:      res.Metrics.WinRate,
		})
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		return leaderboard[i].SharpeRatio > leaderboard[j].SharpeRatio
	})

	return Summary{Results: results, Leaderboard: leaderboard}
}

func (r *Runner) close(symbol string, pos *Position, bar market.Bar, exitPrice float64) Trade {
	direction := 1.0
	if pos.Side == signal.Short {
		direction = -1.0
	}
	gross := direction * (exitPrice - pos.EntryPrice) * pos.Size
	commission := (pos.EntryPrice + exitPrice) * pos.Size * r.cfg.CommissionRate
	trade := Trade{
		Symbol:          symbol,
		Side:            pos.Side,
		EntryDate:       pos.EntryDate,
		ExitDate:        bar.Date,
		EntryPrice:      pos.EntryPrice,
		ExitPrice:       exitPrice,
		Size:            pos.Size,
		PnL:             gross - commission,
		Commission:      commission,
		DaysHeld:        calendarDays(pos.EntryDate, bar.Date),
		EntryConfidence: pos.EntryConfidence,
	}
	if r.recorder != nil {
		r.recorder.Record(trade)
	}
	metrics.TradesClosedTotal.WithLabelValues(symbol, string(trade.Side)).Inc()
	r.log.Info().
		Str("symbol", symbol).
		Str("side", string(trade.Side)).
		Float64("pnl", trade.PnL).
		Int("days_held", trade.DaysHeld).
		Msg("closed position")
	return trade
}

// positionSize risks 2% of capital against the stop distance, capped so the
// notional never exceeds 95% of capital.
func positionSize(price, slPct, capital float64) float64 {
	if price <= 0 || slPct <= 0 || capital <= 0 {
		return 0
	}
	size := capital * 0.02 / (price * slPct)
	return math.Min(size, capital*0.95/price)
}

// calendarDays counts whole days between two dates, not bars.
func calendarDays(entry, exit time.Time) int {
	return int(exit.Sub(entry).Hours() / 24)
}
