package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/KiaFarhang/atomiccounter/lib/load"
)

var (
	connectionsHandled  prometheus.Counter
	connectionsRejected prometheus.Counter
	connectionErrors    prometheus.Counter
)

func init() {
	connectionsHandled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "connections_handled",
			Help: "Number of client connections proxied to completion",
		},
	)

	connectionsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "connections_rejected",
			Help: "Number of client connections refused during shutdown",
		},
	)

	connectionErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "connection_errors",
			Help: "Number of client connections that ended with an error, including dial failures",
		},
	)

	prometheus.MustRegister(connectionsHandled, connectionsRejected, connectionErrors)
}

// registerMetrics exposes each upstream's active connection counter as a gauge.
func registerMetrics(lb *load.Balancer) {
	for i, s := range lb.Stats() {
		i := i
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        "upstream_active_connections",
				Help:        "Number of connections currently proxied to the upstream",
				ConstLabels: prometheus.Labels{"host": s.Address},
			},
			func() float64 {
				return float64(lb.Stats()[i].ActiveConnections)
			},
		))
	}
}
