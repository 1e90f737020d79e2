package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EngineSignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "engine_signals_total", Help: "Signals emitted per engine"},
		[]string{"engine", "signal"},
	)
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "aggregated_decisions_total", Help: "Aggregated decisions produced"},
		[]string{"symbol", "decision"},
	)
	TradesClosedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trades_closed_total", Help: "Backtest trades closed"},
		[]string{"symbol", "side"},
	)
)

func init() {
	prometheus.MustRegister(EngineSignalsTotal, DecisionsTotal, TradesClosedTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
