package market

import (
	"math"

	"github.com/luxapientia/TradingSuite/internal/indicator"
)

// TrendDirection classifies the broad price direction.
type TrendDirection string

const (
	TrendUp       TrendDirection = "UP"
	TrendDown     TrendDirection = "DOWN"
	TrendSideways TrendDirection = "SIDEWAYS"
)

// VolatilityLevel buckets the current ATR against its own average.
type VolatilityLevel string

const (
	VolatilityLow     VolatilityLevel = "LOW"
	VolatilityNormal  VolatilityLevel = "NORMAL"
	VolatilityHigh    VolatilityLevel = "HIGH"
	VolatilityUnknown VolatilityLevel = "UNKNOWN"
)

// Trend is the output of AnalyzeTrend.
type Trend struct {
	Direction TrendDirection
	Strength  float64 // 0..1
	SMAShort  float64
	SMALong   float64
}

// Volatility is the output of AnalyzeVolatility.
type Volatility struct {
	Level  VolatilityLevel
	Factor float64 // latest ATR / mean ATR
}

// AnalyzeTrend compares the latest close against a short (period/2) and long
// (period) SMA. Direction requires a strict ordering of price vs both
// averages; anything else is SIDEWAYS. Strength scales the relative distance
// from the long SMA into [0,1]. With fewer than period bars it returns a
// neutral default instead of failing.
func AnalyzeTrend(bars []Bar, period int) Trend {
	if period <= 0 || len(bars) < period {
		return Trend{Direction: TrendSideways, Strength: 0}
	}
	closes := Closes(bars)
	smaShort := indicator.SMA(closes, period/2)
	smaLong := indicator.SMA(closes, period)

	last := len(bars) - 1
	price := closes[last]
	short, long := smaShort[last], smaLong[last]
	if !indicator.Valid(short) || !indicator.Valid(long) || long == 0 {
		return Trend{Direction: TrendSideways, Strength: 0}
	}

	direction := TrendSideways
	switch {
	case price > short && short > long:
		direction = TrendUp
	case price < short && short < long:
		direction = TrendDown
	}
	strength := math.Min(1, math.Abs(price-long)/long*10)
	return Trend{Direction: direction, Strength: strength, SMAShort: short, SMALong: long}
}

// AnalyzeVolatility compares the latest ATR against the mean of the ATR
// series. With fewer than period bars the level is UNKNOWN with factor 1.
func AnalyzeVolatility(bars []Bar, period int) Volatility {
	if period <= 0 || len(bars) < period {
		return Volatility{Level: VolatilityUnknown, Factor: 1}
	}
	atr := indicator.ATR(Highs(bars), Lows(bars), Closes(bars), period)

	var sum float64
	var count int
	for _, v := range atr {
		if indicator.Valid(v) {
			sum += v
			count++
		}
	}
	latest := atr[len(atr)-1]
	if count == 0 || !indicator.Valid(latest) || sum == 0 {
		return Volatility{Level: VolatilityUnknown, Factor: 1}
	}

	factor := latest / (sum / float64(count))
	level := VolatilityNormal
	switch {
	case factor > 1.5:
		level = VolatilityHigh
	case factor < 0.7:
		level = VolatilityLow
	}
	return Volatility{Level: level, Factor: factor}
}
