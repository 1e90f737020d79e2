package engine

import (
	"testing"
	"time"

	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// reversalBars builds 300 daily bars: a deterministic climb for the first
// half, then a symmetric decline.
func reversalBars(n int) []market.Bar {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, 0, n)
	price := 100.0
	for i := 0; i < n; i++ {
		if i < n/2 {
			price *= 1.006
		} else {
			price *= 0.994
		}
		bars = append(bars, market.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price * 0.999,
			High:   price * 1.004,
			Low:    price * 0.996,
			Close:  price,
			Volume: 1_000_000,
		})
	}
	return bars
}

func TestBreakoutRegimeTransitions(t *testing.T) {
	bars := reversalBars(300)
	eng := NewBreakout(20, 10)

	firstLong, firstShort := -1, -1
	for i := 21; i <= len(bars); i++ {
		d, err := eng.Evaluate(bars[:i])
		if err != nil {
			t.Fatalf("bar %d: %v", i-1, err)
		}
		switch d.Signal {
		case signal.Long:
			if firstLong == -1 {
				firstLong = i - 1
			}
		case signal.Short:
			if firstShort == -1 && i-1 > 150 {
				firstShort = i - 1
			}
		}
	}

	if firstLong == -1 || firstLong > 30 {
		t.Fatalf("expected a LONG once the climb dominates the channel, first at %d", firstLong)
	}
	if firstShort == -1 || firstShort > 200 {
		t.Fatalf("expected a SHORT shortly after the reversal, first at %d", firstShort)
	}
}

func TestBreakoutFlatInsideChannel(t *testing.T) {
	// A drifting range never crosses a 20-day extreme from below.
	bars := market.Trending(120, 100, 0.0001, 5)
	d, err := NewBreakout(20, 10).Evaluate(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Signal != signal.Flat {
		t.Fatalf("expected FLAT inside the channel, got %s", d.Signal)
	}
}

func TestBreakoutConfidenceThresholdOnCleanBreak(t *testing.T) {
	bars := reversalBars(300)
	d, err := NewBreakout(20, 10).Evaluate(bars[:21])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Signal != signal.Long {
		t.Fatalf("expected LONG on the first evaluable climb bar, got %s", d.Signal)
	}
	if d.Confidence < 0.7 {
		t.Fatalf("clean breakout should clear the consensus threshold, got %v", d.Confidence)
	}
	if d.StopLossPct <= 0 || d.TakeProfitMult != 2.0 {
		t.Fatalf("unexpected exit levels: sl=%v tp=%v", d.StopLossPct, d.TakeProfitMult)
	}
}
