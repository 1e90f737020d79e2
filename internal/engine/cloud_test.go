package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

func TestCloudFollowsSustainedTrend(t *testing.T) {
	eng := NewCloud(9, 26, 52)

	up := market.Trending(200, 100, 0.005, 7)
	dec, err := eng.Evaluate(up)
	if err != nil {
		t.Fatalf("evaluate up: %v", err)
	}
	if dec.Signal != signal.Long {
		t.Fatalf("sustained climb: got %s, want LONG (rationale %q)", dec.Signal, dec.Rationale)
	}
	if !strings.Contains(strings.Join(dec.Rationale, " "), "bullish") {
		t.Fatalf("rationale missing bullish note: %q", dec.Rationale)
	}

	down := market.Trending(200, 100, -0.005, 7)
	dec, err = eng.Evaluate(down)
	if err != nil {
		t.Fatalf("evaluate down: %v", err)
	}
	if dec.Signal != signal.Short {
		t.Fatalf("sustained decline: got %s, want SHORT (rationale %q)", dec.Signal, dec.Rationale)
	}
}

func TestCloudNeutralWithoutStrength(t *testing.T) {
	eng := NewCloud(9, 26, 52)

	// A strict two-bar zigzag collapses the cloud onto the range midpoint and
	// pins Tenkan equal to Kijun, so no directional rule set clears the 0.6
	// strength gate.
	bars := make([]market.Bar, 0, 101)
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 101; i++ {
		close := 100.2
		if i%2 == 1 {
			close = 99.8
		}
		bars = append(bars, market.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   close,
			High:   close * 1.004,
			Low:    close * 0.996,
			Close:  close,
			Volume: 1_000_000,
		})
	}

	dec, err := eng.Evaluate(bars)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if dec.Signal != signal.Flat {
		t.Fatalf("flat regime: got %s, want FLAT (rationale %q)", dec.Signal, dec.Rationale)
	}
	if !strings.Contains(strings.Join(dec.Rationale, " "), "Insufficient signal strength") {
		t.Fatalf("rationale missing strength note: %q", dec.Rationale)
	}
}
