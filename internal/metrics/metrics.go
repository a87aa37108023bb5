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

// Business Metrics
var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecommendationsServed,
			Help: HelpTextRecommendationsServed,
		},
		[]string{LabelPath, LabelTier},
	)

	CropSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropSelections,
			Help: HelpTextCropSelections,
		},
		[]string{LabelCrop},
	)

	TasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksCompleted,
			Help: HelpTextTasksCompleted,
		},
		[]string{LabelType},
	)

	FieldsArchived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFieldsArchived,
			Help: HelpTextFieldsArchived,
		},
	)

	WeatherFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWeatherFallbacks,
			Help: HelpTextWeatherFallbacks,
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

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsSent,
			Help: HelpTextNotificationsSent,
		},
		[]string{LabelKind},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationFailures,
			Help: HelpTextNotificationFailures,
		},
		[]string{LabelKind},
	)
)
