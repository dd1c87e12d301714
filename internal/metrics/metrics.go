// Package metrics holds Prometheus instruments that are used across the
// middleware.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RouteUnsetReadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "route_unset_reads_total",
			Help: "Reads of route data before page rendering populated it.",
		})

	LayersInjectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "layers_injected_total",
			Help: "HTML responses that received the cascade-layer style block.",
		})

	LayersHeadMissingTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "layers_head_missing_total",
			Help: "HTML responses without a <head> tag, left unmodified.",
		})

	LayersSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "layers_skipped_total",
			Help: "Non-HTML responses passed through untouched.",
		})

	PanicsRecoveredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_panics_recovered_total",
			Help: "Handler panics turned into 500 responses.",
		})
)

func init() {
	prometheus.MustRegister(
		RouteUnsetReadsTotal,
		LayersInjectedTotal,
		LayersHeadMissingTotal,
		LayersSkippedTotal,
		PanicsRecoveredTotal,
	)
}
