// Package metrics exposes Prometheus counters for the ranking pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankingsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rankwatch_rankings_recorded_total",
		Help: "Total ranking rows inserted by the sync pipeline",
	})

	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rankwatch_fetch_failures_total",
		Help: "Total keyword chunks that failed to fetch from the provider",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rankwatch_notifications_sent_total",
		Help: "Total notifications dispatched by channel",
	}, []string{"channel"})

	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rankwatch_notification_failures_total",
		Help: "Total notification dispatch failures by channel",
	}, []string{"channel"})

	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rankwatch_sync_runs_total",
		Help: "Total project sync runs by outcome",
	}, []string{"outcome"})
)
