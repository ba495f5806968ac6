package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BarsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bars_total", Help: "Count of bars processed"},
		[]string{"timeframe"},
	)
	BarsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bars_rejected_total", Help: "Malformed bars dropped from the feed"},
	)
	ZonesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "zones_total", Help: "Fair value gap zones detected"},
		[]string{"direction"},
	)
	TouchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "touches_total", Help: "Zone touches recorded"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Confirmed signals emitted"},
		[]string{"direction"},
	)
	CandidatesExpired = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "candidates_expired_total", Help: "Candidates expired without confirmation"},
	)
)

func init() {
	prometheus.MustRegister(BarsTotal, BarsRejected, ZonesTotal, TouchesTotal, SignalsTotal, CandidatesExpired)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
