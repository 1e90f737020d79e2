package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/luxapientia/TradingSuite/internal/aggregate"
	"github.com/luxapientia/TradingSuite/internal/backtest"
	"github.com/luxapientia/TradingSuite/internal/config"
	"github.com/luxapientia/TradingSuite/internal/engine"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/metrics"
	"github.com/luxapientia/TradingSuite/internal/util"
)

func main() {
	_ = godotenv.Load() // best-effort

	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			lg := util.NewLogger("info")
			lg.Fatal().Err(err).Msg("load config")
		}
		cfg = loaded
	}
	log := util.NewLogger(cfg.App.LogLevel)

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engines := engine.BuildAll(cfg.Engines)
	agg := aggregate.New(engines, aggregate.Options{
		EngineTimeout:  cfg.Aggregation.EngineTimeout(),
		StopLossPct:    cfg.Aggregation.StopLossPct,
		TakeProfitMult: cfg.Aggregation.TakeProfitMult,
	}, log)

	var recorder backtest.TradeRecorder
	if cfg.Backtest.TradesPath != "" {
		jsonl, err := backtest.NewJSONLRecorder(cfg.Backtest.TradesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open trade recorder")
		}
		defer jsonl.Close()
		recorder = jsonl
	}

	runner := backtest.NewRunner(agg, cfg.Backtest, cfg.Aggregation.MinConfidence, recorder, log)

	data := make(map[string][]market.Bar, len(cfg.Data.Symbols))
	for i, symbol := range cfg.Data.Symbols {
		if cfg.Data.BarsDir != "" {
			bars, err := market.LoadJSON(filepath.Join(cfg.Data.BarsDir, symbol+".json"))
			if err != nil {
				log.Fatal().Err(err).Str("symbol", symbol).Msg("load bars")
			}
			data[symbol] = bars
			continue
		}
		data[symbol] = market.Synthetic(symbol, cfg.Data.SyntheticBars, cfg.Data.Seed+int64(i))
	}

	log.Info().Int("symbols", len(data)).Int("bars", cfg.Data.SyntheticBars).Msg("backtest started")
	summary := runner.RunAll(ctx, data)

	fmt.Println("LEADERBOARD")
	for i, entry := range summary.Leaderboard {
		fmt.Printf("%d. %s: %.1f%% return, %.3f Sharpe, %.1f%% MaxDD, %d trades, %.1f%% win rate\n",
			i+1, entry.Symbol,
			entry.TotalReturn*100, entry.SharpeRatio, entry.MaxDrawdown*100,
			entry.TotalTrades, entry.WinRate*100)
	}
	log.Info().Int("symbols", len(summary.Results)).Msg("backtest finished")
}
