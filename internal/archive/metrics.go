package archive

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	publishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "archive",
		Name:      "records_published_total",
		Help:      "Events handed to the archive log, by outcome.",
	}, []string{"outcome"})

	objectsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "archive",
		Name:      "objects_written_total",
		Help:      "NDJSON objects written to cold storage.",
	})

	flushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "archive",
		Name:      "flush_failures_total",
		Help:      "Cold storage flushes that left records for the next tick.",
	})
)
