package ingestion

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "ingestion",
		Name:      "validations_total",
		Help:      "Envelope validations by outcome.",
	}, []string{"outcome"})

	eventsStored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "ingestion",
		Name:      "events_stored_total",
		Help:      "Events written to the event store.",
	})

	archiveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "ingestion",
		Name:      "archive_failures_total",
		Help:      "Envelopes stored but not handed to the archive log.",
	})
)

const (
	outcomeValid   = "valid"
	outcomeInvalid = "invalid"
)
