package observability

const (
	MPurchaseRequests    MetricKey = "purchase_requests_total"
	MPurchaseDuration    MetricKey = "purchase_duration_seconds"
	MEventsPublished     MetricKey = "events_published_total"
	MHTTPRequests        MetricKey = "http_requests_total"
	MHTTPRequestDuration MetricKey = "http_request_duration_seconds"
)
