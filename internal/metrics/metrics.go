// Package metrics exposes the engine's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DraftSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderdesk_draft_saves_total",
		Help: "Draft snapshot writes attempted.",
	})
	DraftSaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderdesk_draft_save_failures_total",
		Help: "Draft snapshot writes that failed (non-fatal).",
	})

	LookupQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdesk_lookup_queries_total",
		Help: "Remote lookup queries dispatched, per search domain.",
	}, []string{"domain"})
	LookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdesk_lookup_failures_total",
		Help: "Remote lookup queries that errored, per search domain.",
	}, []string{"domain"})
	LookupStaleDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdesk_lookup_stale_discarded_total",
		Help: "Lookup responses discarded because a newer query superseded them.",
	}, []string{"domain"})

	SubmissionsAttempted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderdesk_submissions_attempted_total",
		Help: "Order submissions that passed the entry point.",
	})
	SubmissionsSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderdesk_submissions_succeeded_total",
		Help: "Order submissions acknowledged by the sink.",
	})
	SubmissionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderdesk_submissions_failed_total",
		Help: "Order submissions rejected or failed at dispatch.",
	})
)
