package engine

import (
	"fmt"
	"math"

	"github.com/luxapientia/TradingSuite/internal/indicator"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// Breakout trades Donchian channel breaches: LONG when the close crosses
// above the entry-period high from below, SHORT on the mirror, with the
// tighter exit-period channel force-flattening an adverse recross.
type Breakout struct {
	entryPeriod int
	exitPeriod  int
	atrPeriod   int
}

// NewBreakout builds the channel engine; non-positive periods fall back to
// the classic 20/10.
func NewBreakout(entryPeriod, exitPeriod int) Breakout {
	if entryPeriod <= 0 {
		entryPeriod = 20
	}
	if exitPeriod <= 0 {
		exitPeriod = 10
	}
	return Breakout{entryPeriod: entryPeriod, exitPeriod: exitPeriod, atrPeriod: 14}
}

func (b Breakout) Name() string { return "breakout" }

func (b Breakout) Evaluate(bars []market.Bar) (signal.Decision, error) {
	minBars := b.entryPeriod + 1
	if len(bars) < minBars {
		return signal.Decision{}, insufficient(b.Name(), len(bars), minBars)
	}

	highs, lows, closes := market.Highs(bars), market.Lows(bars), market.Closes(bars)
	entryHigh := indicator.DonchianHigh(highs, b.entryPeriod)
	entryLow := indicator.DonchianLow(lows, b.entryPeriod)
	exitHigh := indicator.DonchianHigh(highs, b.exitPeriod)
	exitLow := indicator.DonchianLow(lows, b.exitPeriod)

	last := len(bars) - 1
	price, prevPrice := closes[last], closes[last-1]

	// Channels are read one bar back so a close is judged against history it
	// was not part of; a cross "from below" means the previous close had not
	// already breached its own prior channel (or the channel did not exist
	// yet, the first bar out of warm-up).
	hi, lo := entryHigh[last-1], entryLow[last-1]
	prevHi, prevLo := math.NaN(), math.NaN()
	if last >= 2 {
		prevHi, prevLo = entryHigh[last-2], entryLow[last-2]
	}

	sc := &score{strength: 0.5}
	dir := signal.Flat

	switch {
	case indicator.Valid(hi) && price > hi && (!indicator.Valid(prevHi) || prevPrice <= prevHi):
		dir = signal.Long
		sc.note(fmt.Sprintf("Price broke above %d-day high", b.entryPeriod))
		sc.note("Channel entry signal triggered")
	case indicator.Valid(lo) && price < lo && (!indicator.Valid(prevLo) || prevPrice >= prevLo):
		dir = signal.Short
		sc.note(fmt.Sprintf("Price broke below %d-day low", b.entryPeriod))
		sc.note("Channel entry signal triggered")
	}

	// Adverse recross of the tighter exit channel flattens the call.
	if dir == signal.Long && indicator.Valid(exitLow[last-1]) && price <= exitLow[last-1] {
		dir = signal.Flat
		sc.note(fmt.Sprintf("Price dropped below %d-day low", b.exitPeriod))
		sc.note("Channel exit signal triggered")
	} else if dir == signal.Short && indicator.Valid(exitHigh[last-1]) && price >= exitHigh[last-1] {
		dir = signal.Flat
		sc.note(fmt.Sprintf("Price rose above %d-day high", b.exitPeriod))
		sc.note("Channel exit signal triggered")
	}

	trend := market.AnalyzeTrend(bars, conditionPeriod)
	vol := market.AnalyzeVolatility(bars, conditionPeriod)

	if dir != signal.Flat {
		channelWidth := (hi - lo) / price
		if channelWidth > 0.05 {
			sc.add(0.2, "Wide channel indicates strong breakout")
		} else {
			sc.add(-0.1, "Narrow channel may indicate weak breakout")
		}

		switch {
		case dir == signal.Long && trend.Direction == market.TrendUp:
			sc.add(0.2, "Trend analysis confirms bullish direction")
		case dir == signal.Short && trend.Direction == market.TrendDown:
			sc.add(0.2, "Trend analysis confirms bearish direction")
		default:
			sc.add(-0.1, "Trend analysis conflicts with signal")
		}
	}
	sc.adjustForVolatility(vol)

	slPct, tpMult := 0.025, 2.0
	atr := indicator.ATR(highs, lows, closes, b.atrPeriod)
	if a := atr[last]; indicator.Valid(a) && a > 0 {
		slPct = clamp(a*2/price, 0.02, 0.06)
		sc.note(fmt.Sprintf("Stop loss set at 2*ATR: %.3f", slPct))
	}

	conf := signal.Confidence(sc.strength, trend.Strength, vol.Factor)
	return signal.New(dir, conf, slPct, tpMult, sc.rationale), nil
}
