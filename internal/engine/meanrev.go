package engine

import (
	"fmt"
	"math"

	"github.com/luxapientia/TradingSuite/internal/indicator"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// MeanRev fades extremes: oversold RSI combined with a deep negative z-score
// buys, the mirror sells. An ADX gate forces FLAT whenever the trend is too
// strong for reversion to be worth fighting.
type MeanRev struct {
	rsiPeriod     int
	rsiOversold   float64
	rsiOverbought float64
	bandPeriod    int
	bandStdDev    float64
	adxPeriod     int
	adxThreshold  float64
}

// NewMeanRev builds the mean-reversion engine; zero-valued parameters fall
// back to RSI 14 (30/70), bands 20/2.0, ADX 14 gated at 25.
func NewMeanRev(rsiPeriod int, rsiOversold, rsiOverbought float64, bandPeriod int, bandStdDev float64, adxPeriod int, adxThreshold float64) MeanRev {
	if rsiPeriod <= 0 {
		rsiPeriod = 14
	}
	if rsiOversold <= 0 {
		rsiOversold = 30
	}
	if rsiOverbought <= 0 {
		rsiOverbought = 70
	}
	if bandPeriod <= 0 {
		bandPeriod = 20
	}
	if bandStdDev <= 0 {
		bandStdDev = 2.0
	}
	if adxPeriod <= 0 {
		adxPeriod = 14
	}
	if adxThreshold <= 0 {
		adxThreshold = 25
	}
	return MeanRev{
		rsiPeriod:     rsiPeriod,
		rsiOversold:   rsiOversold,
		rsiOverbought: rsiOverbought,
		bandPeriod:    bandPeriod,
		bandStdDev:    bandStdDev,
		adxPeriod:     adxPeriod,
		adxThreshold:  adxThreshold,
	}
}

func (m MeanRev) Name() string { return "mean_rev" }

func (m MeanRev) Evaluate(bars []market.Bar) (signal.Decision, error) {
	const minBars = 50
	if len(bars) < minBars {
		return signal.Decision{}, insufficient(m.Name(), len(bars), minBars)
	}

	highs, lows, closes := market.Highs(bars), market.Lows(bars), market.Closes(bars)
	last := len(bars) - 1
	price := closes[last]

	rsi := indicator.RSI(closes, m.rsiPeriod)
	_, middle, _ := indicator.Bollinger(closes, m.bandPeriod, m.bandStdDev)
	z := indicator.ZScore(closes, m.bandPeriod)
	adx := indicator.ADX(highs, lows, closes, m.adxPeriod)
	atr := indicator.ATR(highs, lows, closes, 14)

	curRSI, curZ, curADX := rsi[last], z[last], adx[last]

	// Gate: reversion only trades against weak trends.
	if indicator.Valid(curADX) && curADX > m.adxThreshold {
		return signal.New(signal.Flat, 0, 0, 0, []string{
			fmt.Sprintf("ADX too high (%.1f > %.1f)", curADX, m.adxThreshold),
			"Trend too strong for mean reversion",
		}), nil
	}

	vol := market.AnalyzeVolatility(bars, conditionPeriod)

	sc := &score{strength: 0.5}
	dir := signal.Flat
	if indicator.Valid(curRSI) && indicator.Valid(curZ) {
		switch {
		case curRSI < m.rsiOversold && curZ < -1.0:
			dir = signal.Long
			sc.note(fmt.Sprintf("RSI oversold: %.1f < %.0f", curRSI, m.rsiOversold))
			sc.note(fmt.Sprintf("Price below lower band (z=%.2f)", curZ))
			sc.note("Mean reversion setup detected")
			if curRSI < 25 || curZ < -2.0 {
				sc.add(0.25, "Extremely oversold conditions")
			} else {
				sc.strength += 0.15
			}
		case curRSI > m.rsiOverbought && curZ > 1.0:
			dir = signal.Short
			sc.note(fmt.Sprintf("RSI overbought: %.1f > %.0f", curRSI, m.rsiOverbought))
			sc.note(fmt.Sprintf("Price above upper band (z=%.2f)", curZ))
			sc.note("Mean reversion setup detected")
			if curRSI > 75 || curZ > 2.0 {
				sc.add(0.25, "Extremely overbought conditions")
			} else {
				sc.strength += 0.15
			}
		}
	}

	if dir != signal.Flat {
		if indicator.Valid(curADX) {
			if curADX < 20 {
				sc.add(0.15, fmt.Sprintf("ADX confirms weak trend: %.1f", curADX))
			} else {
				sc.add(0.05, fmt.Sprintf("ADX acceptable: %.1f", curADX))
			}
		}

		switch vol.Level {
		case market.VolatilityNormal:
			sc.add(0.1, "Normal volatility favors mean reversion")
		case market.VolatilityLow:
			sc.add(0.05, "Low volatility conditions")
		default:
			sc.add(-0.1, "High volatility reduces reliability")
		}

		if indicator.Valid(middle[last]) && middle[last] != 0 {
			distance := math.Abs((price - middle[last]) / middle[last])
			if distance > 0.02 {
				sc.add(0.1, fmt.Sprintf("Good distance from mean: %.1f%%", distance*100))
			}
		}
	}

	// For reversion a weak trend is the favorable condition, so the strength
	// fed to the scorer inverts the ADX reading.
	trendStrength := 0.5
	if indicator.Valid(curADX) {
		trendStrength = math.Max(0, 1-curADX/50)
	}

	slPct, tpMult := 0.018, 1.2
	if a := atr[last]; indicator.Valid(a) && a > 0 && price > 0 {
		slPct = clamp(a*1.8/price, 0.015, 0.04)
		sc.note(fmt.Sprintf("Stop loss set at 1.8*ATR: %.3f", slPct))
	}

	conf := signal.Confidence(sc.strength, trendStrength, vol.Factor)
	return signal.New(dir, conf, slPct, tpMult, sc.rationale), nil
}
