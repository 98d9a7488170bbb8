package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery outcomes.
const (
	OutcomeStored           = "stored"
	OutcomeUnsupported      = "unsupported"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeMalformed        = "malformed"
	OutcomeExtractionFailed = "extraction_failed"
	OutcomeInvalid          = "invalid"
	OutcomeStoreFailed      = "store_failed"
)

// Event type labels. Client supplied event names are folded into these so
// the series count stays fixed.
const (
	EventMissing = "missing"
	EventOther   = "other"
)

// EventLabel maps an X-GitHub-Event value onto a bounded label value.
func EventLabel(event string) string {
	switch event {
	case "push", "pull_request":
		return event
	case "":
		return EventMissing
	default:
		return EventOther
	}
}

var (
	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_deliveries_total",
		Help: "Total number of webhook deliveries, labelled by event type and outcome.",
	}, []string{"event_type", "outcome"})

	WebhookProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "webhook_processing_seconds",
		Help:    "Time spent handling a webhook delivery.",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	RecordsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "records_stored_total",
		Help: "Total number of records written to the store.",
	})
)
