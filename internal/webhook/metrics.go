package webhook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "webhook",
		Name:      "deliveries_total",
		Help:      "Webhook deliveries by final outcome.",
	}, []string{"outcome"})

	deliveryAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "caliper",
		Subsystem: "webhook",
		Name:      "delivery_attempts",
		Help:      "HTTP attempts needed per delivery.",
		Buckets:   []float64{1, 2, 3, 4, 5},
	})

	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "caliper",
		Subsystem: "webhook",
		Name:      "deliveries_in_flight",
		Help:      "Deliveries started and not yet finished.",
	})
)

const (
	outcomeDelivered   = "delivered"
	outcomeClientError = "client_error"
	outcomeExhausted   = "exhausted"
	outcomeCanceled    = "canceled"
)
