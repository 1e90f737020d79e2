package engine

import (
	"fmt"

	"github.com/luxapientia/TradingSuite/internal/indicator"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// Cloud scores price against the Ichimoku lines: position relative to the
// cloud, the fast/slow midpoint ordering, price versus both midpoints, and
// the lagging-close confirmation. It only commits to a direction when the
// accumulated strength clears 0.6 AND the directional rules agree.
type Cloud struct {
	tenkanPeriod  int
	kijunPeriod   int
	senkouBPeriod int
}

// NewCloud builds the Ichimoku engine; non-positive windows fall back to the
// conventional 9/26/52.
func NewCloud(tenkanPeriod, kijunPeriod, senkouBPeriod int) Cloud {
	if tenkanPeriod <= 0 {
		tenkanPeriod = 9
	}
	if kijunPeriod <= 0 {
		kijunPeriod = 26
	}
	if senkouBPeriod <= 0 {
		senkouBPeriod = 52
	}
	return Cloud{tenkanPeriod: tenkanPeriod, kijunPeriod: kijunPeriod, senkouBPeriod: senkouBPeriod}
}

func (c Cloud) Name() string { return "cloud" }

func (c Cloud) Evaluate(bars []market.Bar) (signal.Decision, error) {
	minBars := c.senkouBPeriod + c.kijunPeriod
	if len(bars) < minBars {
		return signal.Decision{}, insufficient(c.Name(), len(bars), minBars)
	}

	highs, lows, closes := market.Highs(bars), market.Lows(bars), market.Closes(bars)
	ich := indicator.ComputeIchimoku(highs, lows, closes, c.tenkanPeriod, c.kijunPeriod, c.senkouBPeriod)

	last := len(bars) - 1
	price := closes[last]
	tenkan, kijun := ich.Tenkan[last], ich.Kijun[last]
	cloudTop, cloudBottom := ich.CloudTop[last], ich.CloudBottom[last]
	green := ich.CloudGreen(last)

	aboveCloud := indicator.Valid(cloudTop) && price > cloudTop
	belowCloud := indicator.Valid(cloudBottom) && price < cloudBottom
	tenkanAbove := indicator.Valid(tenkan) && indicator.Valid(kijun) && tenkan > kijun

	sc := &score{}

	// Rule 1: price versus cloud, weighted by cloud color agreement.
	switch {
	case aboveCloud && green:
		sc.add(0.3, "Price above green cloud - bullish")
	case aboveCloud:
		sc.add(0.1, "Price above red cloud - weak bullish")
	case belowCloud && !green:
		sc.add(0.3, "Price below red cloud - bearish")
	case belowCloud:
		sc.add(0.1, "Price below green cloud - weak bearish")
	default:
		sc.note("Price inside cloud - neutral")
	}

	// Rule 2: fast/slow midpoint ordering.
	if tenkanAbove {
		sc.add(0.2, "Tenkan above Kijun - bullish momentum")
	} else {
		sc.add(0.2, "Tenkan below Kijun - bearish momentum")
	}

	// Rule 3: price versus both midpoints at once.
	if indicator.Valid(tenkan) && indicator.Valid(kijun) {
		if price > tenkan && price > kijun {
			sc.add(0.2, "Price above both Tenkan and Kijun - strong bullish")
		} else if price < tenkan && price < kijun {
			sc.add(0.2, "Price below both Tenkan and Kijun - strong bearish")
		}
	}

	// Rule 4: lagging-close confirmation, current close versus the close one
	// base period back.
	if ref := last - c.kijunPeriod; ref >= 0 {
		if price > closes[ref] {
			sc.add(0.1, "Lagging span confirms bullish trend")
		} else if price < closes[ref] {
			sc.add(0.1, "Lagging span confirms bearish trend")
		}
	}

	dir := signal.Flat
	if sc.strength >= 0.6 {
		switch {
		case aboveCloud && tenkanAbove:
			dir = signal.Long
		case belowCloud && !tenkanAbove:
			dir = signal.Short
		default:
			sc.note("Mixed signals - no clear direction")
		}
	} else {
		sc.note("Insufficient signal strength")
	}

	trend := market.AnalyzeTrend(bars, conditionPeriod)
	vol := market.AnalyzeVolatility(bars, conditionPeriod)

	if dir != signal.Flat {
		if trend.Strength > 0.6 {
			sc.add(0.1, "Strong trend supports cloud signal")
		}
		switch vol.Level {
		case market.VolatilityNormal:
			sc.add(0.05, "Normal volatility conditions")
		case market.VolatilityHigh:
			sc.add(-0.05, "High volatility reduces reliability")
		}
	}

	slPct, tpMult := 0.03, 2.0
	if thickness := ich.CloudThickness(last, price); thickness > 0.05 {
		slPct = clamp(thickness, 0.025, 0.05)
		sc.note(fmt.Sprintf("Stop loss adjusted for thick cloud: %.3f", slPct))
	}

	conf := signal.Confidence(sc.strength, trend.Strength, vol.Factor)
	return signal.New(dir, conf, slPct, tpMult, sc.rationale), nil
}
