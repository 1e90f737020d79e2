package engine

import (
	"fmt"

	"github.com/luxapientia/TradingSuite/internal/indicator"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// Composite blends three independent votes: a smoothed-RSI line/signal cross,
// the channel-midline direction, and a cumulative accumulation/distribution
// oscillator. A direction needs at least two of the three to agree.
type Composite struct {
	rsiPeriod        int
	smoothPeriod     int
	channelPeriod    int
	oscillatorPeriod int
}

// NewComposite builds the voting engine; non-positive parameters fall back to
// 14/5/10/20.
func NewComposite(rsiPeriod, smoothPeriod, channelPeriod, oscillatorPeriod int) Composite {
	if rsiPeriod <= 0 {
		rsiPeriod = 14
	}
	if smoothPeriod <= 0 {
		smoothPeriod = 5
	}
	if channelPeriod <= 0 {
		channelPeriod = 10
	}
	if oscillatorPeriod <= 0 {
		oscillatorPeriod = 20
	}
	return Composite{
		rsiPeriod:        rsiPeriod,
		smoothPeriod:     smoothPeriod,
		channelPeriod:    channelPeriod,
		oscillatorPeriod: oscillatorPeriod,
	}
}

func (c Composite) Name() string { return "composite" }

func (c Composite) Evaluate(bars []market.Bar) (signal.Decision, error) {
	const minBars = 100
	if len(bars) < minBars {
		return signal.Decision{}, insufficient(c.Name(), len(bars), minBars)
	}

	highs, lows, closes := market.Highs(bars), market.Lows(bars), market.Closes(bars)
	last := len(bars) - 1
	price := closes[last]

	// Vote 1: smoothed-RSI line versus its signal, anchored at the midline.
	line, sigLine, smoothedRSI := indicator.SmoothedRSIPair(closes, c.rsiPeriod, c.smoothPeriod)
	momentum := signal.Flat
	if indicator.Valid(line[last]) && indicator.Valid(sigLine[last]) && indicator.Valid(smoothedRSI[last]) {
		if line[last] > sigLine[last] && smoothedRSI[last] > 50 {
			momentum = signal.Long
		} else if line[last] < sigLine[last] && smoothedRSI[last] < 50 {
			momentum = signal.Short
		}
	}

	// Vote 2: channel-midline direction fold plus price beyond the midline.
	mid, chanDir := indicator.SSLDirection(highs, lows, closes, c.channelPeriod)
	channel := signal.Flat
	if indicator.Valid(mid[last]) {
		if chanDir[last] == 1 && price > mid[last] {
			channel = signal.Long
		} else if chanDir[last] == -1 && price < mid[last] {
			channel = signal.Short
		}
	}

	// Vote 3: accumulation oscillator rising above zero or falling below it.
	osc := indicator.AccumulationOscillator(highs, lows, closes, c.oscillatorPeriod)
	flow := signal.Flat
	if indicator.Valid(osc[last]) && indicator.Valid(osc[last-1]) {
		if osc[last] > osc[last-1] && osc[last] > 0 {
			flow = signal.Long
		} else if osc[last] < osc[last-1] && osc[last] < 0 {
			flow = signal.Short
		}
	}

	votes := []signal.Direction{momentum, channel, flow}
	var longVotes, shortVotes int
	for _, v := range votes {
		switch v {
		case signal.Long:
			longVotes++
		case signal.Short:
			shortVotes++
		}
	}

	sc := &score{}
	dir := signal.Flat
	switch {
	case longVotes >= 2:
		dir = signal.Long
		sc.strength = 0.4 + float64(longVotes)*0.2
		sc.note(fmt.Sprintf("Composite consensus: %d/3 indicators bullish", longVotes))
	case shortVotes >= 2:
		dir = signal.Short
		sc.strength = 0.4 + float64(shortVotes)*0.2
		sc.note(fmt.Sprintf("Composite consensus: %d/3 indicators bearish", shortVotes))
	default:
		sc.note("Composite consensus: No clear direction")
	}
	sc.note(fmt.Sprintf("MOMENTUM: %s", momentum))
	sc.note(fmt.Sprintf("CHANNEL: %s", channel))
	sc.note(fmt.Sprintf("FLOW: %s", flow))

	trend := market.AnalyzeTrend(bars, conditionPeriod)
	vol := market.AnalyzeVolatility(bars, conditionPeriod)

	if dir != signal.Flat {
		if trend.Strength > 0.6 {
			sc.add(0.1, "Strong trend supports composite signal")
		}
		switch vol.Level {
		case market.VolatilityNormal:
			sc.add(0.05, "Normal volatility conditions")
		case market.VolatilityHigh:
			sc.add(-0.05, "High volatility reduces reliability")
		}
	}

	slPct, tpMult := 0.025, 1.5
	if vol.Factor > 1.2 {
		slPct = clamp(slPct*vol.Factor, 0, 0.04)
		sc.note(fmt.Sprintf("Stop loss adjusted for high volatility: %.3f", slPct))
	}

	conf := signal.Confidence(sc.strength, trend.Strength, vol.Factor)
	return signal.New(dir, conf, slPct, tpMult, sc.rationale), nil
}
