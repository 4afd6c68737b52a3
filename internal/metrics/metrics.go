package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HeartbeatsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_heartbeats_total",
		Help: "Heartbeats received from the proxy process.",
	})

	StatusRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_pipeline_status_requests_total",
		Help: "Pipeline status requests by outcome.",
	}, []string{"outcome"})

	CaptureToggleTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_capture_toggles_total",
		Help: "Capture toggle writes.",
	})

	WSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridge_ws_clients",
		Help: "Connected dashboard websocket clients.",
	})
)

const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
)
