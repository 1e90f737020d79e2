package market

import "testing"

func TestAnalyzeTrendDirections(t *testing.T) {
	up := Trending(60, 100, 0.006, 1)
	trend := AnalyzeTrend(up, 20)
	if trend.Direction != TrendUp {
		t.Fatalf("expected UP, got %s", trend.Direction)
	}
	if trend.Strength <= 0 || trend.Strength > 1 {
		t.Fatalf("strength out of range: %v", trend.Strength)
	}

	down := Trending(60, 100, -0.006, 1)
	trend = AnalyzeTrend(down, 20)
	if trend.Direction != TrendDown {
		t.Fatalf("expected DOWN, got %s", trend.Direction)
	}
}

func TestAnalyzeTrendNeutralDefaultUnderPeriod(t *testing.T) {
	bars := Trending(10, 100, 0.01, 1)
	trend := AnalyzeTrend(bars, 20)
	if trend.Direction != TrendSideways || trend.Strength != 0 {
		t.Fatalf("short history must return the neutral default, got %+v", trend)
	}
}

func TestAnalyzeVolatilityUnknownUnderPeriod(t *testing.T) {
	bars := Trending(5, 100, 0.001, 1)
	vol := AnalyzeVolatility(bars, 20)
	if vol.Level != VolatilityUnknown || vol.Factor != 1 {
		t.Fatalf("short history must return UNKNOWN/1, got %+v", vol)
	}
}

func TestAnalyzeVolatilityLevels(t *testing.T) {
	bars := Synthetic("TEST", 120, 7)
	vol := AnalyzeVolatility(bars, 20)
	if vol.Factor <= 0 {
		t.Fatalf("factor must be positive, got %v", vol.Factor)
	}
	switch vol.Level {
	case VolatilityLow, VolatilityNormal, VolatilityHigh:
	default:
		t.Fatalf("unexpected level %s with %d bars", vol.Level, len(bars))
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	a := Synthetic("TEST", 50, 42)
	b := Synthetic("TEST", 50, 42)
	if len(a) != 50 || len(b) != 50 {
		t.Fatalf("expected 50 bars")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed must reproduce the same history, bar %d differs", i)
		}
	}
	c := Synthetic("TEST", 50, 43)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds should diverge")
	}
}

func TestBarsOrderedAndSane(t *testing.T) {
	bars := Synthetic("TEST", 100, 3)
	for i, b := range bars {
		if b.High < b.Close || b.Low > b.Close {
			t.Fatalf("bar %d range does not contain its close: %+v", i, b)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			t.Fatalf("dates must strictly increase at %d", i)
		}
	}
}
