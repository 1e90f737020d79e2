package engine

import (
	"github.com/luxapientia/TradingSuite/internal/market"
)

// conditionPeriod is the window every engine hands to the market condition
// analyzer before blending confidence.
const conditionPeriod = 20

// score accumulates rule hits into a raw signal strength alongside the
// rationale line each hit contributes.
type score struct {
	strength  float64
	rationale []string
}

func (s *score) add(delta float64, reason string) {
	s.strength += delta
	s.rationale = append(s.rationale, reason)
}

func (s *score) note(reason string) {
	s.rationale = append(s.rationale, reason)
}

// adjustForVolatility applies the standard volatility bump most engines share:
// +0.1 in NORMAL conditions, -0.1 in HIGH.
func (s *score) adjustForVolatility(vol market.Volatility) {
	switch vol.Level {
	case market.VolatilityNormal:
		s.add(0.1, "Normal volatility conditions")
	case market.VolatilityHigh:
		s.add(-0.1, "High volatility reduces signal reliability")
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
