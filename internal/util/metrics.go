package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PedidosCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pedidos_created_total",
		Help: "Total number of pedidos created",
	})

	PedidosFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pedidos_failed_total",
		Help: "Total number of failed pedido creations",
	}, []string{"reason"})

	ClientesRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clientes_registered_total",
		Help: "Total number of clientes registered",
	})

	ClientesDuplicateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clientes_duplicate_total",
		Help: "Total number of registrations rejected for a duplicate cedula",
	})

	ProductosSeededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "productos_seeded_total",
		Help: "Total number of catalog rows inserted by seeding",
	})

	QueryFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_query_failures_total",
		Help: "Total number of read queries that degraded to an empty result",
	}, []string{"operation"})

	StoreInitLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "store_init_latency_seconds",
		Help:    "Latency of store initialization (schema provisioning plus seeding)",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
