package signal

import (
	"strings"
	"testing"
)

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestConfidenceFormula(t *testing.T) {
	// strength + 0.2*trendStrength - 0.1*(volFactor-1)
	if got := Confidence(0.5, 0.5, 1.0); got != 0.6 {
		t.Fatalf("expected 0.6, got %v", got)
	}
	if got := Confidence(0.9, 1.0, 0.5); got != 1.0 {
		t.Fatalf("expected clamp at 1, got %v", got)
	}
	if got := Confidence(0, 0, 3.0); got != 0 {
		t.Fatalf("expected clamp at 0, got %v", got)
	}
}

func TestNewRoundsConfidence(t *testing.T) {
	d := New(Long, 0.123456, 0.025, 1.5, []string{"x"})
	if d.Confidence != 0.123 {
		t.Fatalf("expected 3-decimal rounding, got %v", d.Confidence)
	}
	if d.Timestamp.IsZero() {
		t.Fatalf("expected timestamp")
	}
}

func TestGate(t *testing.T) {
	d := New(Long, 0.6, 0.025, 1.5, []string{"setup"})
	gated := Gate(d, 0.7)
	if gated.Signal != Flat {
		t.Fatalf("expected FLAT below threshold, got %s", gated.Signal)
	}
	if gated.Confidence != 0.6 {
		t.Fatalf("gating must preserve confidence, got %v", gated.Confidence)
	}
	last := gated.Rationale[len(gated.Rationale)-1]
	if !strings.Contains(last, "below minimum") {
		t.Fatalf("expected gating rationale, got %q", last)
	}
	if d.Signal != Long || len(d.Rationale) != 1 {
		t.Fatalf("gating must not mutate the original decision")
	}

	kept := Gate(d, 0.5)
	if kept.Signal != Long || len(kept.Rationale) != 1 {
		t.Fatalf("decision at or above threshold must pass unchanged")
	}
}

func TestGateLeavesFlatAlone(t *testing.T) {
	d := New(Flat, 0.2, 0, 0, nil)
	if got := Gate(d, 0.9); len(got.Rationale) != 0 {
		t.Fatalf("FLAT decisions are not gated, got %v", got.Rationale)
	}
}

func TestOpposite(t *testing.T) {
	if Long.Opposite() != Short || Short.Opposite() != Long || Flat.Opposite() != Flat {
		t.Fatalf("unexpected opposite mapping")
	}
}

func TestDegraded(t *testing.T) {
	d := Degraded("engine unavailable")
	if d.Signal != Flat || d.Confidence != 0 {
		t.Fatalf("degraded decision must be FLAT/0, got %+v", d)
	}
	if len(d.Rationale) != 1 || d.Rationale[0] != "engine unavailable" {
		t.Fatalf("expected the reason carried in the rationale")
	}
}
