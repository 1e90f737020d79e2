package engine

import (
	"fmt"

	"github.com/luxapientia/TradingSuite/internal/indicator"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// BandFollow rides the directional ATR band: the call follows the band
// direction, flipping when the close crosses the opposite envelope bound.
type BandFollow struct {
	atrPeriod  int
	multiplier float64
}

// NewBandFollow builds the band follower; non-positive parameters fall back
// to the conventional 10/3.0.
func NewBandFollow(atrPeriod int, multiplier float64) BandFollow {
	if atrPeriod <= 0 {
		atrPeriod = 10
	}
	if multiplier <= 0 {
		multiplier = 3.0
	}
	return BandFollow{atrPeriod: atrPeriod, multiplier: multiplier}
}

func (b BandFollow) Name() string { return "band_follow" }

// Evaluate computes the band recurrence over the full history and signals in
// the direction of the final band state.
func (b BandFollow) Evaluate(bars []market.Bar) (signal.Decision, error) {
	const minBars = 50
	if len(bars) < minBars {
		return signal.Decision{}, insufficient(b.Name(), len(bars), minBars)
	}

	highs, lows, closes := market.Highs(bars), market.Lows(bars), market.Closes(bars)
	atr := indicator.ATR(highs, lows, closes, b.atrPeriod)
	band := indicator.BandSeries(highs, lows, closes, atr, b.multiplier)

	last := len(bars) - 1
	cur, prev := band[last], band[last-1]

	sc := &score{strength: 0.5}
	var dir signal.Direction
	switch {
	case cur.Direction == 1 && prev.Direction == -1:
		dir = signal.Long
		sc.note("Band direction changed from bearish to bullish")
	case cur.Direction == -1 && prev.Direction == 1:
		dir = signal.Short
		sc.note("Band direction changed from bullish to bearish")
	case cur.Direction == 1:
		dir = signal.Long
		sc.note("Band direction remains bullish")
	default:
		dir = signal.Short
		sc.note("Band direction remains bearish")
	}

	trend := market.AnalyzeTrend(bars, conditionPeriod)
	vol := market.AnalyzeVolatility(bars, conditionPeriod)

	switch {
	case dir == signal.Long && trend.Direction == market.TrendUp:
		sc.add(0.2, "Trend analysis confirms bullish direction")
	case dir == signal.Short && trend.Direction == market.TrendDown:
		sc.add(0.2, "Trend analysis confirms bearish direction")
	default:
		sc.add(-0.1, "Trend analysis conflicts with band signal")
	}
	sc.adjustForVolatility(vol)

	slPct, tpMult := 0.025, 1.5
	price := closes[last]
	if a := atr[last]; indicator.Valid(a) && a > 0 {
		slPct = clamp(a*2/price, 0.015, 0.05)
		sc.note(fmt.Sprintf("Stop loss adjusted based on ATR: %.3f", slPct))
	}

	conf := signal.Confidence(sc.strength, trend.Strength, vol.Factor)
	return signal.New(dir, conf, slPct, tpMult, sc.rationale), nil
}
