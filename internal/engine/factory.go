package engine

import (
	"github.com/luxapientia/TradingSuite/internal/config"
)

// BuildAll constructs the full engine suite from configuration. The order is
// stable so aggregation components line up run to run.
func BuildAll(cfg config.Engines) []Engine {
	return []Engine{
		NewBandFollow(cfg.BandFollow.ATRPeriod, cfg.BandFollow.Multiplier),
		NewAdaptiveBand(cfg.AdaptiveBand.ATRPeriod, cfg.AdaptiveBand.Multiplier, cfg.AdaptiveBand.AlphaPeriod),
		NewCloud(cfg.Cloud.TenkanPeriod, cfg.Cloud.KijunPeriod, cfg.Cloud.SenkouBPeriod),
		NewBreakout(cfg.Breakout.EntryPeriod, cfg.Breakout.ExitPeriod),
		NewComposite(cfg.Composite.RSIPeriod, cfg.Composite.SmoothPeriod, cfg.Composite.ChannelPeriod, cfg.Composite.OscillatorPeriod),
		NewMeanRev(cfg.MeanRev.RSIPeriod, cfg.MeanRev.RSIOversold, cfg.MeanRev.RSIOverbought,
			cfg.MeanRev.BandPeriod, cfg.MeanRev.BandStdDev, cfg.MeanRev.ADXPeriod, cfg.MeanRev.ADXThreshold),
		NewCrossover(cfg.Crossover.EMAFast, cfg.Crossover.EMASlow,
			cfg.Crossover.MACDFast, cfg.Crossover.MACDSlow, cfg.Crossover.MACDSignal),
	}
}
