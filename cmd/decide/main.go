package main

import (
	"context"
	"encoding/json"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/luxapientia/TradingSuite/internal/aggregate"
	"github.com/luxapientia/TradingSuite/internal/config"
	"github.com/luxapientia/TradingSuite/internal/engine"
	"github.com/luxapientia/TradingSuite/internal/market"
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

	symbol := ""
	if len(cfg.Data.Symbols) > 0 {
		symbol = cfg.Data.Symbols[0]
	}
	if len(os.Args) > 1 {
		symbol = os.Args[1]
	}
	if symbol == "" {
		log.Fatal().Msg("no symbol configured or given")
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bars := market.Synthetic(symbol, cfg.Data.SyntheticBars, cfg.Data.Seed)

	agg := aggregate.New(engine.BuildAll(cfg.Engines), aggregate.Options{
		EngineTimeout:  cfg.Aggregation.EngineTimeout(),
		StopLossPct:    cfg.Aggregation.StopLossPct,
		TakeProfitMult: cfg.Aggregation.TakeProfitMult,
	}, log)

	decision := agg.Decide(ctx, symbol, bars, cfg.Aggregation.MinConfidence)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(decision); err != nil {
		log.Fatal().Err(err).Msg("encode decision")
	}
}
