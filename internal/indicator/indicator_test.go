package indicator

import (
	"math"
	"testing"
)

func TestSMAWarmupAndValues(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if Valid(out[0]) || Valid(out[1]) {
		t.Fatalf("expected NaN warm-up prefix, got %v %v", out[0], out[1])
	}
	if out[2] != 2 || out[3] != 3 || out[4] != 4 {
		t.Fatalf("unexpected SMA values: %v", out[2:])
	}
}

func TestSMAShortInput(t *testing.T) {
	out := SMA([]float64{1, 2}, 3)
	for i, v := range out {
		if Valid(v) {
			t.Fatalf("expected all NaN for short input, index %d = %v", i, v)
		}
	}
}

func TestEMASeedsAtFirstValidValue(t *testing.T) {
	values := []float64{math.NaN(), math.NaN(), 4, 5}
	out := EMA(values, 3)
	if Valid(out[0]) || Valid(out[1]) {
		t.Fatalf("expected NaN prefix preserved")
	}
	if out[2] != 4 {
		t.Fatalf("expected seed at first valid value, got %v", out[2])
	}
	// alpha = 2/(3+1) = 0.5
	if math.Abs(out[3]-4.5) > 1e-12 {
		t.Fatalf("expected 4.5, got %v", out[3])
	}
}

func TestRSIExtremes(t *testing.T) {
	rising := make([]float64, 30)
	flat := make([]float64, 30)
	for i := range rising {
		rising[i] = float64(i + 1)
		flat[i] = 100
	}

	up := RSI(rising, 14)
	if got := up[len(up)-1]; got != 100 {
		t.Fatalf("all-gain series should report RSI 100, got %v", got)
	}
	still := RSI(flat, 14)
	if got := still[len(still)-1]; got != 50 {
		t.Fatalf("flat series should report RSI 50, got %v", got)
	}
}

func TestRSIWarmup(t *testing.T) {
	out := RSI([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 5)
	for i := 0; i < 5; i++ {
		if Valid(out[i]) {
			t.Fatalf("expected NaN at index %d", i)
		}
	}
	if !Valid(out[5]) {
		t.Fatalf("expected value after warm-up")
	}
}

func TestDonchianChannels(t *testing.T) {
	highs := []float64{1, 3, 2, 5, 4}
	hi := DonchianHigh(highs, 3)
	if Valid(hi[1]) {
		t.Fatalf("expected NaN before period bars")
	}
	if hi[2] != 3 || hi[3] != 5 || hi[4] != 5 {
		t.Fatalf("unexpected rolling highs: %v", hi[2:])
	}

	lows := []float64{4, 2, 3, 1, 5}
	lo := DonchianLow(lows, 3)
	if lo[2] != 2 || lo[3] != 1 || lo[4] != 1 {
		t.Fatalf("unexpected rolling lows: %v", lo[2:])
	}
}

func TestZScoreFlatSeriesStaysNaN(t *testing.T) {
	flat := []float64{5, 5, 5, 5, 5, 5}
	out := ZScore(flat, 4)
	for i, v := range out {
		if Valid(v) {
			t.Fatalf("zero-variance window must not emit a z-score, index %d = %v", i, v)
		}
	}
}

func TestZScoreSign(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 20}
	out := ZScore(values, 5)
	if !Valid(out[9]) || out[9] <= 0 {
		t.Fatalf("spike above the window mean must score positive, got %v", out[9])
	}
}

func TestMACDAlignment(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	line, sig, hist := MACD(values, 12, 26, 9)
	if len(line) != len(values) || len(sig) != len(values) || len(hist) != len(values) {
		t.Fatalf("MACD series must align 1:1 with input")
	}
	last := len(values) - 1
	if !Valid(line[last]) || !Valid(sig[last]) {
		t.Fatalf("expected valid MACD values at the end")
	}
	if math.Abs(hist[last]-(line[last]-sig[last])) > 1e-12 {
		t.Fatalf("histogram must equal line minus signal")
	}
	// A steady climb keeps the fast EMA above the slow one.
	if line[last] <= 0 {
		t.Fatalf("rising series should have positive MACD line, got %v", line[last])
	}
}

func TestATRConstantRange(t *testing.T) {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := range highs {
		highs[i] = 102
		lows[i] = 98
		closes[i] = 100
	}
	out := ATR(highs, lows, closes, 5)
	if got := out[n-1]; math.Abs(got-4) > 1e-12 {
		t.Fatalf("constant 4-point range should give ATR 4, got %v", got)
	}
}

func TestADXStrongTrendReadsHigh(t *testing.T) {
	n := 120
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		price *= 1.006
		closes[i] = price
		highs[i] = price * 1.004
		lows[i] = price * 0.996
	}
	out := ADX(highs, lows, closes, 14)
	last := out[n-1]
	if !Valid(last) {
		t.Fatalf("expected ADX value after warm-up")
	}
	if last < 50 {
		t.Fatalf("one-way trend should read strongly directional, got %v", last)
	}
}
