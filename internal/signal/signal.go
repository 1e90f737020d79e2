// Package signal standardizes the decision payload shared between the engines,
// the aggregator, and the backtester.
package signal

import (
	"fmt"
	"math"
	"time"
)

// Direction is the closed tri-state call an engine can make.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
	Flat  Direction = "FLAT"
)

// Opposite returns the mirrored direction; FLAT maps to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case Long:
		return Short
	case Short:
		return Long
	default:
		return Flat
	}
}

// Decision expresses a directional call with its confidence, exit levels, and
// the human-readable reasoning behind it. Built once per evaluation, never
// mutated afterwards.
type Decision struct {
	Signal         Direction `json:"signal"`
	Confidence     float64   `json:"confidence"`
	StopLossPct    float64   `json:"sl_pct"`
	TakeProfitMult float64   `json:"tp_multiple"`
	Rationale      []string  `json:"rationale"`
	Timestamp      time.Time `json:"timestamp"`
}

// New assembles a Decision, rounding confidence to three decimals.
func New(dir Direction, confidence, slPct, tpMult float64, rationale []string) Decision {
	return Decision{
		Signal:         dir,
		Confidence:     math.Round(confidence*1000) / 1000,
		StopLossPct:    slPct,
		TakeProfitMult: tpMult,
		Rationale:      rationale,
		Timestamp:      time.Now().UTC(),
	}
}

// Degraded returns the FLAT/zero-confidence decision used when an evaluation
// cannot produce a real call; reason explains why.
func Degraded(reason string) Decision {
	return New(Flat, 0, 0, 0, []string{reason})
}

// Gate forces a non-FLAT decision below minConfidence back to FLAT, keeping
// the confidence value so callers can tell "no signal" from "suppressed".
func Gate(d Decision, minConfidence float64) Decision {
	if d.Signal == Flat || d.Confidence >= minConfidence {
		return d
	}
	gated := d
	gated.Signal = Flat
	gated.Rationale = append(append([]string{}, d.Rationale...),
		fmt.Sprintf("Signal confidence %.3f below minimum %.2f", d.Confidence, minConfidence))
	return gated
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Confidence blends the raw rule strength with the market conditions through
// the single formula every engine shares, keeping scores comparable:
// clamp01(strength + 0.2*trendStrength - 0.1*(volatilityFactor-1)).
func Confidence(strength, trendStrength, volatilityFactor float64) float64 {
	return Clamp01(strength + 0.2*trendStrength - 0.1*(volatilityFactor-1))
}
