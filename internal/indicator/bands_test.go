package indicator

import (
	"math"
	"testing"
)

func trendingSeries(n int, drift float64) (highs, lows, closes []float64) {
	highs = make([]float64, n)
	lows = make([]float64, n)
	closes = make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		price *= 1 + drift
		closes[i] = price
		highs[i] = price * 1.01
		lows[i] = price * 0.99
	}
	return highs, lows, closes
}

func TestBandSeriesDeterministic(t *testing.T) {
	highs, lows, closes := trendingSeries(200, 0.004)
	atr := ATR(highs, lows, closes, 10)

	a := BandSeries(highs, lows, closes, atr, 3.0)
	b := BandSeries(highs, lows, closes, atr, 3.0)
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if math.Float64bits(a[i].Value) != math.Float64bits(b[i].Value) || a[i].Direction != b[i].Direction {
			t.Fatalf("recomputation diverged at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBandSeriesFlipsOnCross(t *testing.T) {
	// Calm bars keep ATR near zero, so a single wide-range bar closing at its
	// extreme crosses the envelope and flips the direction.
	n := 31
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i], lows[i], closes[i] = 100.4, 99.6, 100.2
	}
	// Crash bar closing on its low, well past the envelope.
	highs[20], lows[20], closes[20] = 100.4, 85, 85
	for i := 21; i < 30; i++ {
		highs[i], lows[i], closes[i] = 85.4, 84.6, 85
	}
	// Recovery bar closing on its high.
	highs[30], lows[30], closes[30] = 100, 85, 100

	atr := ATR(highs, lows, closes, 10)
	states := BandSeries(highs, lows, closes, atr, 3.0)

	if states[19].Direction != 1 {
		t.Fatalf("expected up direction before the crash, got %d", states[19].Direction)
	}
	if states[20].Direction != -1 {
		t.Fatalf("crash bar should flip the band down, got %d", states[20].Direction)
	}
	if states[29].Direction != -1 {
		t.Fatalf("expected down direction to hold, got %d", states[29].Direction)
	}
	if states[30].Direction != 1 {
		t.Fatalf("recovery bar should flip the band up, got %d", states[30].Direction)
	}
}

func TestBandSeriesHoldsThroughSteadyClimb(t *testing.T) {
	highs, lows, closes := trendingSeries(80, 0.004)
	atr := ATR(highs, lows, closes, 10)
	states := BandSeries(highs, lows, closes, atr, 3.0)

	for i := 20; i < len(states); i++ {
		if states[i].Direction != 1 {
			t.Fatalf("steady climb should never flip down, index %d", i)
		}
		// Holding up, the value ratchets toward the tighter bound.
		if states[i].Value > states[i-1].Value+1e-9 {
			t.Fatalf("band loosened while holding up at index %d: %v > %v",
				i, states[i].Value, states[i-1].Value)
		}
	}
}

func TestSmoothedBandSeriesStaysBetweenBoundAndPrev(t *testing.T) {
	highs, lows, closes := trendingSeries(100, 0.003)
	atr := ATR(highs, lows, closes, 14)
	plain := BandSeries(highs, lows, closes, atr, 2.0)
	smoothed := SmoothedBandSeries(highs, lows, closes, atr, 2.0, 21)

	for i := 1; i < len(plain); i++ {
		if smoothed[i].Direction != plain[i].Direction {
			t.Fatalf("smoothing must not change direction, index %d", i)
		}
	}
}

func TestSSLDirectionFollowsRegime(t *testing.T) {
	n := 80
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		if i < 40 {
			price *= 1.005
		} else {
			price *= 0.99
		}
		closes[i] = price
		highs[i] = price * 1.004
		lows[i] = price * 0.996
	}
	_, dir := SSLDirection(highs, lows, closes, 10)
	if dir[39] != 1 {
		t.Fatalf("expected channel up during the climb, got %d", dir[39])
	}
	if dir[n-1] != -1 {
		t.Fatalf("expected channel down after the slide, got %d", dir[n-1])
	}
}

func TestAccumulationOscillatorAlignment(t *testing.T) {
	highs, lows, closes := trendingSeries(60, 0.002)
	out := AccumulationOscillator(highs, lows, closes, 20)
	if len(out) != len(closes) {
		t.Fatalf("oscillator must align 1:1 with input")
	}
	if !Valid(out[len(out)-1]) {
		t.Fatalf("expected a valid oscillator value")
	}
}
