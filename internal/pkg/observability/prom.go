package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "activitybackend"
)

var (
	ActivityMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "activity", "mutations_total"),
		Help: "Number of committed activity mutations",
	}, []string{"operation"})
	ActivityListDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "activity", "list_duration_seconds"),
		Help:    "Duration of activity list queries in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"mode"})
	ActivityEventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "activity", "event_publish_failures_total"),
		Help: "Number of activity change events that could not be published",
	}, []string{"event"})
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "cache", "lookups_total"),
		Help: "Number of cache lookups by cache and result",
	}, []string{"cache", "result"})
)
