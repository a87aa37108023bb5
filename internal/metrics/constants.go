package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "sakahan_http_requests_total"
	MetricNameHTTPRequestDuration  = "sakahan_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "sakahan_http_requests_in_flight"

	MetricNameRecommendationsServed = "sakahan_recommendations_served_total"
	MetricNameCropSelections        = "sakahan_crop_selections_total"
	MetricNameTasksCompleted        = "sakahan_tasks_completed_total"
	MetricNameFieldsArchived        = "sakahan_fields_archived_total"
	MetricNameWeatherFallbacks      = "sakahan_weather_fallbacks_total"
	MetricNameEventsPublished       = "sakahan_events_published_total"
	MetricNameEventHandlerErrors    = "sakahan_event_handler_errors_total"
	MetricNameNotificationsSent     = "sakahan_notifications_sent_total"
	MetricNameNotificationFailures  = "sakahan_notification_failures_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextRecommendationsServed = "Recommendation responses served, labeled by path (live/locked) and matcher tier"
	HelpTextCropSelections        = "Crop selections locked in, labeled by crop"
	HelpTextTasksCompleted        = "Tasks completed, labeled by task type"
	HelpTextFieldsArchived        = "Fields archived after harvest"
	HelpTextWeatherFallbacks      = "Times the fixed fallback weather snapshot was used"
	HelpTextEventsPublished       = "Events published to the in-process bus, labeled by type"
	HelpTextEventHandlerErrors    = "Event handler failures, labeled by type"
	HelpTextNotificationsSent     = "Notifications delivered, labeled by kind"
	HelpTextNotificationFailures  = "Notification delivery failures, labeled by kind"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelTier   = "tier"
	LabelCrop   = "crop"
	LabelType   = "type"
	LabelKind   = "kind"
)

// Recommendation path label values
const (
	PathLive   = "live"
	PathLocked = "locked"
)

// HTTPLatencyBuckets covers the expected request-response latencies; the
// service does no long-running work, so the tail is short.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5}
