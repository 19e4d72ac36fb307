// Package metrics defines the Prometheus instrumentation for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	RoundsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsOpened,
			Help: HelpTextRoundsOpened,
		},
		[]string{LabelFamily},
	)

	RoundsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsResolved,
			Help: HelpTextRoundsResolved,
		},
		[]string{LabelFamily, LabelOutcome},
	)

	StakesPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStakesPlaced,
			Help: HelpTextStakesPlaced,
		},
		[]string{LabelFamily, LabelSide},
	)

	StakeVolume = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStakeVolume,
			Help: HelpTextStakeVolume,
		},
		[]string{LabelFamily},
	)

	SettlementsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementSkipped,
			Help: HelpTextSettlementSkipped,
		},
		[]string{LabelReason},
	)

	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOracleRequests,
			Help: HelpTextOracleRequests,
		},
		[]string{LabelFeed, LabelResult},
	)

	SettlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSettlementDuration,
			Help:    HelpTextSettlementDuration,
			Buckets: SettlementLatencyBuckets,
		},
		[]string{LabelFamily},
	)
)
