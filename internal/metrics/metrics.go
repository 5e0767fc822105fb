// Package metrics registers the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesTotal counts inbound webhook messages that reached the form
	// engine, deduplicated deliveries excluded.
	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitbot_messages_total",
		Help: "Inbound messages processed by the form engine.",
	})

	// RejectionsTotal counts answers bounced by a validator, per state.
	RejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visitbot_validation_rejections_total",
		Help: "Answers rejected by step validators.",
	}, []string{"state"})

	// VisitsSavedTotal counts completed visits persisted successfully.
	VisitsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitbot_visits_saved_total",
		Help: "Completed visit records written to the store.",
	})

	// SaveFailuresTotal counts persistence hand-offs that failed.
	SaveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitbot_save_failures_total",
		Help: "Failed attempts to persist a completed visit.",
	})

	// DuplicatesTotal counts webhook deliveries dropped by the deduper.
	DuplicatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitbot_duplicate_deliveries_total",
		Help: "Webhook deliveries skipped as duplicates.",
	})
)

// RegisterSessionGauge exposes the live session count from the store.
func RegisterSessionGauge(count func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "visitbot_active_sessions",
		Help: "Sessions currently held in memory.",
	}, func() float64 { return float64(count()) })
}
