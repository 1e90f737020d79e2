// Package indicator implements the numeric transforms the engines are built
// from. Every function is deterministic and side-effect free: input slices are
// never mutated and the returned series is aligned 1:1 with the input, with
// NaN over the warm-up prefix where not enough history exists yet.
package indicator

import "math"

var nan = math.NaN()

// Valid reports whether a series value is past its warm-up prefix.
func Valid(v float64) bool { return !math.IsNaN(v) }

// SMA returns the simple moving average over period values.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA returns the exponential moving average with alpha = 2/(period+1),
// seeded at the first valid value so NaN warm-up prefixes of derived series
// do not poison the recursion.
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}
	start := 0
	for start < len(values) && !Valid(values[start]) {
		start++
	}
	if start == len(values) {
		return out
	}
	alpha := 2.0 / float64(period+1)
	prev := values[start]
	out[start] = prev
	for i := start + 1; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// TrueRange returns max(high-low, |high-prevClose|, |low-prevClose|) per bar.
// The first bar falls back to high-low.
func TrueRange(highs, lows, closes []float64) []float64 {
	out := nanSlice(len(closes))
	for i := range closes {
		tr := highs[i] - lows[i]
		if i > 0 {
			tr = math.Max(tr, math.Abs(highs[i]-closes[i-1]))
			tr = math.Max(tr, math.Abs(lows[i]-closes[i-1]))
		}
		out[i] = tr
	}
	return out
}

// ATR is the rolling mean of the true range over period bars.
func ATR(highs, lows, closes []float64, period int) []float64 {
	return SMA(TrueRange(highs, lows, closes), period)
}

// RSI scales the ratio of rolling average gains to average losses to 0-100.
// When the average loss is zero it reports 100 if gains exist and 50 for a
// window that went nowhere.
func RSI(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) <= period {
		return out
	}
	gains := make([]float64, len(values))
	losses := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}
	avgGain := SMA(gains[1:], period)
	avgLoss := SMA(losses[1:], period)
	for i := period; i < len(values); i++ {
		g, l := avgGain[i-1], avgLoss[i-1]
		switch {
		case l > 0:
			rs := g / l
			out[i] = 100 - 100/(1+rs)
		case g > 0:
			out[i] = 100
		default:
			out[i] = 50
		}
	}
	return out
}

// Bollinger returns upper, middle, lower bands: SMA(period) +/- k standard
// deviations (sample std over the same window).
func Bollinger(values []float64, period int, k float64) (upper, middle, lower []float64) {
	middle = SMA(values, period)
	std := RollingStd(values, period)
	upper = nanSlice(len(values))
	lower = nanSlice(len(values))
	for i := range values {
		if Valid(middle[i]) && Valid(std[i]) {
			upper[i] = middle[i] + k*std[i]
			lower[i] = middle[i] - k*std[i]
		}
	}
	return upper, middle, lower
}

// RollingStd returns the rolling sample standard deviation over period values.
func RollingStd(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period < 2 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		var sum float64
		for _, v := range window {
			sum += v
		}
		mean := sum / float64(period)
		var sq float64
		for _, v := range window {
			sq += (v - mean) * (v - mean)
		}
		out[i] = math.Sqrt(sq / float64(period-1))
	}
	return out
}

// ZScore returns (value - rolling mean) / rolling std over period values.
func ZScore(values []float64, period int) []float64 {
	mean := SMA(values, period)
	std := RollingStd(values, period)
	out := nanSlice(len(values))
	for i := range values {
		if Valid(mean[i]) && Valid(std[i]) && std[i] > 0 {
			out[i] = (values[i] - mean[i]) / std[i]
		}
	}
	return out
}

// MACD returns the MACD line (EMA fast - EMA slow), its EMA signal line, and
// the histogram (line - signal).
func MACD(values []float64, fast, slow, signalPeriod int) (line, signal, histogram []float64) {
	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)
	line = nanSlice(len(values))
	for i := range values {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signal = EMA(line, signalPeriod)
	histogram = nanSlice(len(values))
	for i := range values {
		histogram[i] = line[i] - signal[i]
	}
	return line, signal, histogram
}

// DonchianHigh returns the rolling max of highs over period bars.
func DonchianHigh(highs []float64, period int) []float64 {
	out := nanSlice(len(highs))
	for i := period - 1; i < len(highs); i++ {
		max := highs[i-period+1]
		for _, v := range highs[i-period+2 : i+1] {
			if v > max {
				max = v
			}
		}
		out[i] = max
	}
	return out
}

// DonchianLow returns the rolling min of lows over period bars.
func DonchianLow(lows []float64, period int) []float64 {
	out := nanSlice(len(lows))
	for i := period - 1; i < len(lows); i++ {
		min := lows[i-period+1]
		for _, v := range lows[i-period+2 : i+1] {
			if v < min {
				min = v
			}
		}
		out[i] = min
	}
	return out
}

// ADX computes the average directional index from rolling-smoothed directional
// movement. Needs roughly period*2 bars before values stabilize; the warm-up
// prefix stays NaN.
func ADX(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if period <= 0 || n <= period*2 {
		return out
	}

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	atr := ATR(highs, lows, closes, period)
	plusSmoothed := SMA(plusDM, period)
	minusSmoothed := SMA(minusDM, period)

	dx := nanSlice(n)
	for i := range closes {
		if !Valid(atr[i]) || atr[i] == 0 {
			continue
		}
		plusDI := 100 * plusSmoothed[i] / atr[i]
		minusDI := 100 * minusSmoothed[i] / atr[i]
		if sum := plusDI + minusDI; sum > 0 {
			dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
		}
	}

	// SMA over the valid suffix of dx.
	first := period
	for first < n && !Valid(dx[first]) {
		first++
	}
	if n-first < period {
		return out
	}
	smoothed := SMA(dx[first:], period)
	for i, v := range smoothed {
		out[first+i] = v
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = nan
	}
	return out
}
