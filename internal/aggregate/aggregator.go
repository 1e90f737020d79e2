// Package aggregate fans a bar history out to every engine concurrently and
// reduces the components into one decision by consensus.
package aggregate

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/luxapientia/TradingSuite/internal/engine"
	"github.com/luxapientia/TradingSuite/internal/market"
	"github.com/luxapientia/TradingSuite/internal/metrics"
	"github.com/luxapientia/TradingSuite/internal/signal"
)

// Component is one engine's contribution to an aggregated decision.
type Component struct {
	Engine     string           `json:"engine"`
	Signal     signal.Direction `json:"signal"`
	Confidence float64          `json:"confidence"`
	Rationale  []string         `json:"rationale"`
}

// Metadata describes how the reduction arrived at its decision.
type Metadata struct {
	TotalSignals  int       `json:"total_signals"`
	ValidSignals  int       `json:"valid_signals"`
	LongSignals   int       `json:"long_signals"`
	ShortSignals  int       `json:"short_signals"`
	MinConfidence float64   `json:"min_confidence_threshold"`
	Timestamp     time.Time `json:"timestamp"`
}

// Decision is the aggregated output handed to the backtester or a caller.
type Decision struct {
	Decision       signal.Direction `json:"decision"`
	Confidence     float64          `json:"confidence"`
	Components     []Component      `json:"components"`
	StopLossPct    float64          `json:"sl_pct"`
	TakeProfitMult float64          `json:"tp_multiple"`
	Metadata       Metadata         `json:"metadata"`
}

// Options tunes the fan-out and the fixed exit levels attached to every
// aggregated decision. Exits are fixed rather than derived from the winning
// components.
//
// ComponentMinConfidence gates each engine's decision before the reduction;
// zero disables it. This is distinct from the reduction threshold, which
// applies to the average confidence of the surviving components.
type Options struct {
	EngineTimeout          time.Duration
	ComponentMinConfidence float64
	StopLossPct            float64
	TakeProfitMult         float64
}

// Aggregator queries a fixed engine suite. Engines share no mutable state, so
// one Aggregator is safe for concurrent use across symbols.
type Aggregator struct {
	engines []engine.Engine
	opts    Options
	log     zerolog.Logger
}

// New builds an aggregator over the given engines.
func New(engines []engine.Engine, opts Options, log zerolog.Logger) *Aggregator {
	if opts.EngineTimeout <= 0 {
		opts.EngineTimeout = 30 * time.Second
	}
	if opts.StopLossPct <= 0 {
		opts.StopLossPct = 0.025
	}
	if opts.TakeProfitMult <= 0 {
		opts.TakeProfitMult = 1.5
	}
	return &Aggregator{engines: engines, opts: opts, log: log}
}

// Decide evaluates every engine concurrently, each under its own timeout, and
// reduces the results. A failed or timed-out engine degrades to a FLAT
// zero-confidence component; only ctx cancellation abandons pending calls,
// and components already finished keep their results.
func (a *Aggregator) Decide(ctx context.Context, symbol string, bars []market.Bar, minConfidence float64) Decision {
	components := make([]Component, len(a.engines))

	var wg sync.WaitGroup
	for i, eng := range a.engines {
		wg.Add(1)
		go func(i int, eng engine.Engine) {
			defer wg.Done()
			components[i] = a.evaluate(ctx, eng, bars)
		}(i, eng)
	}
	wg.Wait()

	decision := reduce(components, minConfidence)
	decision.StopLossPct = a.opts.StopLossPct
	decision.TakeProfitMult = a.opts.TakeProfitMult

	metrics.DecisionsTotal.WithLabelValues(symbol, string(decision.Decision)).Inc()
	a.log.Debug().
		Str("symbol", symbol).
		Str("decision", string(decision.Decision)).
		Float64("confidence", decision.Confidence).
		Int("valid", decision.Metadata.ValidSignals).
		Msg("aggregated decision")
	return decision
}

func (a *Aggregator) evaluate(ctx context.Context, eng engine.Engine, bars []market.Bar) Component {
	callCtx, cancel := context.WithTimeout(ctx, a.opts.EngineTimeout)
	defer cancel()

	type result struct {
		decision signal.Decision
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		d, err := engine.Evaluate(eng, bars)
		ch <- result{decision: d, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			a.log.Warn().Err(res.err).Str("engine", eng.Name()).Msg("engine degraded")
		}
		gated := signal.Gate(res.decision, a.opts.ComponentMinConfidence)
		return Component{
			Engine:     eng.Name(),
			Signal:     gated.Signal,
			Confidence: gated.Confidence,
			Rationale:  gated.Rationale,
		}
	case <-callCtx.Done():
		a.log.Warn().Str("engine", eng.Name()).Msg("engine call timed out")
		return Component{
			Engine:     eng.Name(),
			Signal:     signal.Flat,
			Confidence: 0,
			Rationale:  []string{"Engine unavailable: " + callCtx.Err().Error()},
		}
	}
}

// reduce applies the consensus rule: no valid (non-FLAT) components means
// FLAT; an average confidence under the threshold suppresses the decision but
// reports the average so callers can tell gating from silence; otherwise the
// strict vote majority wins and a tie stays FLAT.
func reduce(components []Component, minConfidence float64) Decision {
	var longVotes, shortVotes, valid int
	var totalConfidence float64
	for _, c := range components {
		if c.Signal == signal.Flat {
			continue
		}
		valid++
		totalConfidence += c.Confidence
		if c.Signal == signal.Long {
			longVotes++
		} else {
			shortVotes++
		}
	}

	dir := signal.Flat
	confidence := 0.0
	if valid > 0 {
		avg := totalConfidence / float64(valid)
		confidence = avg
		if avg >= minConfidence {
			switch {
			case longVotes > shortVotes:
				dir = signal.Long
			case shortVotes > longVotes:
				dir = signal.Short
			}
		}
	}

	return Decision{
		Decision:   dir,
		Confidence: round3(confidence),
		Components: components,
		Metadata: Metadata{
			TotalSignals:  len(components),
			ValidSignals:  valid,
			LongSignals:   longVotes,
			ShortSignals:  shortVotes,
			MinConfidence: minConfidence,
			Timestamp:     time.Now().UTC(),
		},
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
