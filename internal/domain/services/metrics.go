package services

import "github.com/prometheus/client_golang/prometheus"

var (
	backendConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "qadmin_backend_connections",
			Help: "Number of cached backend connections",
		},
	)
	embeddingModels = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "qadmin_embedding_models",
			Help: "Number of loaded embedding models",
		},
	)
	guardedOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qadmin_guarded_operations_total",
			Help: "Destructive operations by action and outcome",
		},
		[]string{"action", "outcome"},
	)
	droppedPoints = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qadmin_upsert_dropped_points_total",
			Help: "Points excluded from upserts for lacking both vector and text",
		},
	)
)

func init() {
	prometheus.MustRegister(backendConnections, embeddingModels, guardedOperations, droppedPoints)
}
