package indicator

import "math"

// BandState is the single (value, direction) pair a directional band
// recurrence carries between steps. Direction is +1 (up) or -1 (down).
type BandState struct {
	Value     float64
	Direction int
}

// BandSeries folds over the bars in strict time order producing the band
// value and direction per step. At each step the band either flips to the
// opposite envelope bound when the close crosses it, or ratchets toward the
// tighter of (current bound, previous value). atrValues must already be
// aligned to the bars.
func BandSeries(highs, lows, closes, atrValues []float64, multiplier float64) []BandState {
	return bandFold(highs, lows, closes, atrValues, multiplier, 0)
}

// SmoothedBandSeries computes the recurrence with an exponential pull toward
// the tighter bound, alpha = 2/(alphaPeriod+1).
func SmoothedBandSeries(highs, lows, closes, atrValues []float64, multiplier float64, alphaPeriod int) []BandState {
	alpha := 2.0 / float64(alphaPeriod+1)
	return bandFold(highs, lows, closes, atrValues, multiplier, alpha)
}

func bandFold(highs, lows, closes, atrValues []float64, multiplier, alpha float64) []BandState {
	n := len(closes)
	out := make([]BandState, n)
	if n == 0 {
		return out
	}

	upper := func(i int) float64 {
		hl2 := (highs[i] + lows[i]) / 2
		a := atrValues[i]
		if !Valid(a) {
			a = 0
		}
		return hl2 + multiplier*a
	}
	lower := func(i int) float64 {
		hl2 := (highs[i] + lows[i]) / 2
		a := atrValues[i]
		if !Valid(a) {
			a = 0
		}
		return hl2 - multiplier*a
	}

	out[0] = BandState{Value: lower(0), Direction: 1}
	for i := 1; i < n; i++ {
		prev := out[i-1]
		up, lo := upper(i), lower(i)
		if prev.Direction == 1 {
			if closes[i] <= lo {
				out[i] = BandState{Value: lo, Direction: -1}
				continue
			}
			tight := math.Min(up, prev.Value)
			out[i] = BandState{Value: smooth(tight, prev.Value, alpha), Direction: 1}
		} else {
			if closes[i] >= up {
				out[i] = BandState{Value: up, Direction: 1}
				continue
			}
			tight := math.Max(lo, prev.Value)
			out[i] = BandState{Value: smooth(tight, prev.Value, alpha), Direction: -1}
		}
	}
	return out
}

func smooth(tight, prev, alpha float64) float64 {
	if alpha == 0 {
		return tight
	}
	return alpha*tight + (1-alpha)*prev
}

// SSLDirection folds the SSL channel direction: +1 once the close rises above
// the prior channel midline, -1 once it falls below, holding otherwise.
func SSLDirection(highs, lows, closes []float64, period int) ([]float64, []int) {
	n := len(closes)
	mid := nanSlice(n)
	hi := DonchianHigh(highs, period)
	lo := DonchianLow(lows, period)
	for i := range closes {
		if Valid(hi[i]) && Valid(lo[i]) {
			mid[i] = (hi[i] + lo[i]) / 2
		}
	}
	dir := make([]int, n)
	if n == 0 {
		return mid, dir
	}
	dir[0] = 1
	for i := 1; i < n; i++ {
		switch {
		case Valid(mid[i-1]) && closes[i] > mid[i-1]:
			dir[i] = 1
		case Valid(mid[i-1]) && closes[i] < mid[i-1]:
			dir[i] = -1
		default:
			dir[i] = dir[i-1]
		}
	}
	return mid, dir
}

// AccumulationOscillator accumulates ((close-low)-(high-close))/trueRange per
// bar and smooths the running sum with an EMA over smoothPeriod.
func AccumulationOscillator(highs, lows, closes []float64, smoothPeriod int) []float64 {
	n := len(closes)
	raw := make([]float64, n)
	var acc float64
	for i := 0; i < n; i++ {
		if i > 0 {
			tr := math.Max(highs[i]-lows[i], math.Max(
				math.Abs(highs[i]-closes[i-1]),
				math.Abs(lows[i]-closes[i-1])))
			if tr > 0 {
				acc += ((closes[i] - lows[i]) - (highs[i] - closes[i])) / tr
			}
		}
		raw[i] = acc
	}
	return EMA(raw, smoothPeriod)
}

// SmoothedRSIPair returns a double-smoothed RSI line and its own EMA signal
// line, the momentum pair used by the composite engine.
func SmoothedRSIPair(values []float64, rsiPeriod, smoothPeriod int) (line, signal, smoothedRSI []float64) {
	smoothedRSI = EMA(RSI(values, rsiPeriod), smoothPeriod)
	line = EMA(smoothedRSI, smoothPeriod)
	signal = EMA(line, smoothPeriod)
	return line, signal, smoothedRSI
}
