// Package engine implements the signal engines. Each engine is an immutable
// configuration struct evaluating a bar history into a Decision; evaluations
// share no state and are safe to run in parallel.
package engine

import (
	"errors"
	"fmt"

	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/metrics"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// ErrInsufficientData marks evaluations called with fewer bars than the
// engine's minimum lookback. Distinct from computation failures so callers
// can tell "not enough history" from "something broke".
var ErrInsufficientData = errors.New("insufficient bar history")

// Engine is the capability every signal engine implements.
type Engine interface {
	Name() string
	Evaluate(bars []market.Bar) (signal.Decision, error)
}

func insufficient(name string, have, need int) error {
	return fmt.Errorf("%s: %w: have %d bars, need %d", name, ErrInsufficientData, have, need)
}

// Evaluate runs an engine with the boundary guards every caller wants: panics
// become degraded FLAT decisions instead of propagating, and the emitted
// signal is counted.
func Evaluate(e Engine, bars []market.Bar) (decision signal.Decision, err error) {
	defer func() {
		if r := recover(); r != nil {
			decision = signal.Degraded(fmt.Sprintf("%s evaluation failed: %v", e.Name(), r))
			err = fmt.Errorf("%s: computation error: %v", e.Name(), r)
		}
		metrics.EngineSignalsTotal.WithLabelValues(e.Name(), string(decision.Signal)).Inc()
	}()

	decision, err = e.Evaluate(bars)
	if err != nil {
		decision = signal.Degraded(err.Error())
	}
	return decision, err
}
