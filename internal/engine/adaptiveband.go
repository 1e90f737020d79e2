package engine

import (
	"fmt"

	"github.com/luxapientia/TradingSuite/internal/indicator"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// AdaptiveBand is the band follower with an exponential pull toward the
// tighter envelope bound, trading later flips for fewer whipsaws. The base
// strength starts higher than BandFollow's to reflect the smoother signal.
type AdaptiveBand struct {
	atrPeriod   int
	multiplier  float64
	alphaPeriod int
}

// NewAdaptiveBand builds the adaptive follower; non-positive parameters fall
// back to 14/2.0/21.
func NewAdaptiveBand(atrPeriod int, multiplier float64, alphaPeriod int) AdaptiveBand {
	if atrPeriod <= 0 {
		atrPeriod = 14
	}
	if multiplier <= 0 {
		multiplier = 2.0
	}
	if alphaPeriod <= 0 {
		alphaPeriod = 21
	}
	return AdaptiveBand{atrPeriod: atrPeriod, multiplier: multiplier, alphaPeriod: alphaPeriod}
}

func (a AdaptiveBand) Name() string { return "adaptive_band" }

func (a AdaptiveBand) Evaluate(bars []market.Bar) (signal.Decision, error) {
	const minBars = 50
	if len(bars) < minBars {
		return signal.Decision{}, insufficient(a.Name(), len(bars), minBars)
	}

	highs, lows, closes := market.Highs(bars), market.Lows(bars), market.Closes(bars)
	atr := indicator.ATR(highs, lows, closes, a.atrPeriod)
	band := indicator.SmoothedBandSeries(highs, lows, closes, atr, a.multiplier, a.alphaPeriod)

	last := len(bars) - 1
	cur, prev := band[last], band[last-1]

	sc := &score{strength: 0.6}
	var dir signal.Direction
	switch {
	case cur.Direction == 1 && prev.Direction == -1:
		dir = signal.Long
		sc.note("Adaptive band changed from bearish to bullish")
	case cur.Direction == -1 && prev.Direction == 1:
		dir = signal.Short
		sc.note("Adaptive band changed from bullish to bearish")
	case cur.Direction == 1:
		dir = signal.Long
		sc.note("Adaptive band remains bullish")
	default:
		dir = signal.Short
		sc.note("Adaptive band remains bearish")
	}

	trend := market.AnalyzeTrend(bars, conditionPeriod)
	vol := market.AnalyzeVolatility(bars, conditionPeriod)

	switch {
	case dir == signal.Long && trend.Direction == market.TrendUp:
		sc.add(0.2, "Trend analysis confirms bullish direction")
	case dir == signal.Short && trend.Direction == market.TrendDown:
		sc.add(0.2, "Trend analysis confirms bearish direction")
	default:
		sc.add(-0.1, "Trend analysis conflicts with adaptive band signal")
	}

	// Performs best in established trends with calm volatility.
	switch {
	case vol.Level == market.VolatilityNormal && trend.Strength > 0.6:
		sc.add(0.15, "Strong trend with normal volatility - optimal conditions")
	case vol.Level == market.VolatilityHigh:
		sc.add(-0.05, "High volatility reduces signal reliability")
	case trend.Strength < 0.3:
		sc.add(-0.1, "Weak trend reduces signal strength")
	}

	slPct, tpMult := 0.025, 1.5
	price := closes[last]
	if v := atr[last]; indicator.Valid(v) && v > 0 {
		slPct = clamp(v*1.5/price, 0.015, 0.04)
		sc.note(fmt.Sprintf("Stop loss adjusted based on ATR: %.3f", slPct))
	}

	conf := signal.Confidence(sc.strength, trend.Strength, vol.Factor)
	return signal.New(dir, conf, slPct, tpMult, sc.rationale), nil
}
