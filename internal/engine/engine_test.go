package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/luxapientia/TradingSuite/internal/config"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

func TestBuildAllStableOrder(t *testing.T) {
	engines := BuildAll(config.Default().Engines)
	want := []string{"band_follow", "adaptive_band", "cloud", "breakout", "composite", "mean_rev", "crossover"}
	if len(engines) != len(want) {
		t.Fatalf("expected %d engines, got %d", len(want), len(engines))
	}
	for i, e := range engines {
		if e.Name() != want[i] {
			t.Fatalf("engine %d: got %s, want %s", i, e.Name(), want[i])
		}
	}
}

func TestAllEnginesConfidenceBounded(t *testing.T) {
	histories := map[string][]market.Bar{
		"random":   market.Synthetic("TEST", 400, 11),
		"up":       market.Trending(400, 100, 0.004, 11),
		"down":     market.Trending(400, 100, -0.004, 11),
		"drifting": market.Trending(400, 100, 0.0001, 11),
	}
	for name, bars := range histories {
		for _, e := range BuildAll(config.Default().Engines) {
			d, err := e.Evaluate(bars)
			if err != nil {
				t.Fatalf("%s on %s: unexpected error %v", e.Name(), name, err)
			}
			if d.Confidence < 0 || d.Confidence > 1 {
				t.Fatalf("%s on %s: confidence %v out of [0,1]", e.Name(), name, d.Confidence)
			}
			switch d.Signal {
			case signal.Long, signal.Short, signal.Flat:
			default:
				t.Fatalf("%s on %s: unexpected signal %q", e.Name(), name, d.Signal)
			}
		}
	}
}

func TestInsufficientDataIsTyped(t *testing.T) {
	short := market.Synthetic("TEST", 10, 1)
	for _, e := range BuildAll(config.Default().Engines) {
		_, err := e.Evaluate(short)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("%s: expected ErrInsufficientData, got %v", e.Name(), err)
		}
	}
}

type panicky struct{}

func (panicky) Name() string { return "panicky" }
func (panicky) Evaluate([]market.Bar) (signal.Decision, error) {
	panic("index out of range")
}

func TestEvaluateRecoversPanics(t *testing.T) {
	d, err := Evaluate(panicky{}, nil)
	if err == nil || !strings.Contains(err.Error(), "computation error") {
		t.Fatalf("expected computation error, got %v", err)
	}
	if d.Signal != signal.Flat || d.Confidence != 0 {
		t.Fatalf("panic must degrade to FLAT/0, got %+v", d)
	}
}

func TestEvaluateDegradesErrors(t *testing.T) {
	short := market.Synthetic("TEST", 5, 1)
	d, err := Evaluate(NewBreakout(20, 10), short)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if d.Signal != signal.Flat || d.Confidence != 0 || len(d.Rationale) == 0 {
		t.Fatalf("expected degraded FLAT decision, got %+v", d)
	}
}
