package indicator

import "math"

// Ichimoku holds the five lines plus the derived cloud geometry, each aligned
// 1:1 with the input bars.
type Ichimoku struct {
	Tenkan      []float64 // midpoint of the short window
	Kijun       []float64 // midpoint of the base window
	SenkouA     []float64 // (tenkan+kijun)/2 shifted forward by the base period
	SenkouB     []float64 // midpoint of the long window shifted forward by the base period
	Chikou      []float64 // close shifted backward by the base period
	CloudTop    []float64
	CloudBottom []float64
}

// ComputeIchimoku builds the full line set for the given window periods. The
// conventional parameterization is 9/26/52.
func ComputeIchimoku(highs, lows, closes []float64, tenkanPeriod, kijunPeriod, senkouBPeriod int) Ichimoku {
	n := len(closes)
	ich := Ichimoku{
		Tenkan:      midpoint(highs, lows, tenkanPeriod),
		Kijun:       midpoint(highs, lows, kijunPeriod),
		SenkouA:     nanSlice(n),
		SenkouB:     nanSlice(n),
		Chikou:      nanSlice(n),
		CloudTop:    nanSlice(n),
		CloudBottom: nanSlice(n),
	}

	senkouBRaw := midpoint(highs, lows, senkouBPeriod)
	for i := 0; i < n; i++ {
		if j := i - kijunPeriod; j >= 0 {
			if Valid(ich.Tenkan[j]) && Valid(ich.Kijun[j]) {
				ich.SenkouA[i] = (ich.Tenkan[j] + ich.Kijun[j]) / 2
			}
			ich.SenkouB[i] = senkouBRaw[j]
		}
		if j := i + kijunPeriod; j < n {
			ich.Chikou[i] = closes[j]
		}
		if Valid(ich.SenkouA[i]) && Valid(ich.SenkouB[i]) {
			ich.CloudTop[i] = math.Max(ich.SenkouA[i], ich.SenkouB[i])
			ich.CloudBottom[i] = math.Min(ich.SenkouA[i], ich.SenkouB[i])
		}
	}
	return ich
}

// CloudGreen reports whether the leading span A sits above span B at index i.
func (ich Ichimoku) CloudGreen(i int) bool {
	return Valid(ich.SenkouA[i]) && Valid(ich.SenkouB[i]) && ich.SenkouA[i] > ich.SenkouB[i]
}

// CloudThickness returns |senkouA - senkouB| relative to the close at index i.
func (ich Ichimoku) CloudThickness(i int, close float64) float64 {
	if !Valid(ich.SenkouA[i]) || !Valid(ich.SenkouB[i]) || close == 0 {
		return 0
	}
	return math.Abs(ich.SenkouA[i]-ich.SenkouB[i]) / close
}

func midpoint(highs, lows []float64, period int) []float64 {
	hi := DonchianHigh(highs, period)
	lo := DonchianLow(lows, period)
	out := nanSlice(len(highs))
	for i := range out {
		if Valid(hi[i]) && Valid(lo[i]) {
			out[i] = (hi[i] + lo[i]) / 2
		}
	}
	return out
}
