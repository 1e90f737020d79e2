package engine

import (
	"fmt"
	"math"

	"github.com/luxapientia/TradingSuite/internal/indicator"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// Crossover follows the dual-EMA trend confirmed by MACD: both must point the
// same way before it commits, and a disagreement forces FLAT. Fresh crossings
// score higher than sustained alignment.
type Crossover struct {
	emaFast    int
	emaSlow    int
	macdFast   int
	macdSlow   int
	macdSignal int
}

// NewCrossover builds the crossover engine; non-positive parameters fall back
// to EMAs 50/200 and MACD 12/26/9.
func NewCrossover(emaFast, emaSlow, macdFast, macdSlow, macdSignal int) Crossover {
	if emaFast <= 0 {
		emaFast = 50
	}
	if emaSlow <= 0 {
		emaSlow = 200
	}
	if macdFast <= 0 {
		macdFast = 12
	}
	if macdSlow <= 0 {
		macdSlow = 26
	}
	if macdSignal <= 0 {
		macdSignal = 9
	}
	return Crossover{emaFast: emaFast, emaSlow: emaSlow, macdFast: macdFast, macdSlow: macdSlow, macdSignal: macdSignal}
}

func (c Crossover) Name() string { return "crossover" }

func (c Crossover) Evaluate(bars []market.Bar) (signal.Decision, error) {
	minBars := c.emaSlow
	if alt := c.macdSlow + c.macdSignal; alt > minBars {
		minBars = alt
	}
	minBars += 10
	if len(bars) < minBars {
		return signal.Decision{}, insufficient(c.Name(), len(bars), minBars)
	}

	closes := market.Closes(bars)
	last := len(bars) - 1
	price := closes[last]

	emaFast := indicator.EMA(closes, c.emaFast)
	emaSlow := indicator.EMA(closes, c.emaSlow)
	macdLine, macdSig, macdHist := indicator.MACD(closes, c.macdFast, c.macdSlow, c.macdSignal)
	atr := indicator.ATR(market.Highs(bars), market.Lows(bars), closes, 14)

	emaBullish := emaFast[last] > emaSlow[last]
	emaBearish := emaFast[last] < emaSlow[last]
	emaCrossUp := emaFast[last-1] <= emaSlow[last-1] && emaBullish
	emaCrossDown := emaFast[last-1] >= emaSlow[last-1] && emaBearish

	macdBullish := macdLine[last] > macdSig[last]
	macdBearish := macdLine[last] < macdSig[last]
	macdCrossUp := macdLine[last-1] <= macdSig[last-1] && macdBullish
	macdCrossDown := macdLine[last-1] >= macdSig[last-1] && macdBearish

	sc := &score{strength: 0.5}
	dir := signal.Flat

	switch {
	case emaBullish && macdBullish:
		dir = signal.Long
		if emaCrossUp {
			sc.add(0.25, fmt.Sprintf("EMA golden cross: %d/%d", c.emaFast, c.emaSlow))
		} else {
			sc.add(0.15, fmt.Sprintf("EMA%d above EMA%d (uptrend)", c.emaFast, c.emaSlow))
		}
		if macdCrossUp {
			sc.add(0.2, "MACD bullish crossover")
		} else {
			sc.add(0.1, "MACD above signal line")
		}
		if macdHist[last] > 0 {
			sc.add(math.Min(math.Abs(macdHist[last])/math.Abs(price)*1000, 0.15), "MACD momentum positive")
		}

	case emaBearish && macdBearish:
		dir = signal.Short
		if emaCrossDown {
			sc.add(0.25, fmt.Sprintf("EMA death cross: %d/%d", c.emaFast, c.emaSlow))
		} else {
			sc.add(0.15, fmt.Sprintf("EMA%d below EMA%d (downtrend)", c.emaFast, c.emaSlow))
		}
		if macdCrossDown {
			sc.add(0.2, "MACD bearish crossover")
		} else {
			sc.add(0.1, "MACD below signal line")
		}
		if macdHist[last] < 0 {
			sc.add(math.Min(math.Abs(macdHist[last])/math.Abs(price)*1000, 0.15), "MACD momentum negative")
		}

	case (emaBullish && macdBearish) || (emaBearish && macdBullish):
		sc.note("Mixed signals between EMA and MACD")
		sc.note("Waiting for alignment")
	}

	trend := market.AnalyzeTrend(bars, conditionPeriod)
	vol := market.AnalyzeVolatility(bars, conditionPeriod)

	if dir != signal.Flat {
		switch {
		case dir == signal.Long && trend.Direction == market.TrendUp:
			sc.add(0.15, "Overall trend confirms bullish direction")
		case dir == signal.Short && trend.Direction == market.TrendDown:
			sc.add(0.15, "Overall trend confirms bearish direction")
		default:
			sc.add(-0.1, "Trend analysis shows mixed signals")
		}

		if dir == signal.Long {
			if price > emaFast[last] && emaBullish {
				sc.add(0.1, "Price above both EMAs (strong uptrend)")
			} else if price < emaFast[last] {
				sc.add(-0.1, "Price below fast EMA (potential weakness)")
			}
		} else {
			if price < emaFast[last] && emaBearish {
				sc.add(0.1, "Price below both EMAs (strong downtrend)")
			} else if price > emaFast[last] {
				sc.add(-0.1, "Price above fast EMA (potential weakness)")
			}
		}

		switch vol.Level {
		case market.VolatilityNormal:
			sc.add(0.1, "Normal volatility conditions")
		case market.VolatilityHigh:
			sc.add(-0.05, "Elevated volatility")
		}
	}

	slPct, tpMult := 0.025, 1.5
	if a := atr[last]; indicator.Valid(a) && a > 0 && price > 0 {
		slPct = clamp(a*2.5/price, 0.02, 0.05)
		sc.note(fmt.Sprintf("Stop loss set at 2.5*ATR: %.3f", slPct))
	}

	conf := signal.Confidence(sc.strength, trend.Strength, vol.Factor)
	return signal.New(dir, conf, slPct, tpMult, sc.rationale), nil
}
