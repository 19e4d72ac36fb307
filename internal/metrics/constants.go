package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameRoundsOpened       = "rounds_opened_total"
	MetricNameRoundsResolved     = "rounds_resolved_total"
	MetricNameStakesPlaced       = "stakes_placed_total"
	MetricNameStakeVolume        = "stake_volume_total"
	MetricNameSettlementSkipped  = "settlements_skipped_total"
	MetricNameOracleRequests     = "oracle_requests_total"
	MetricNameSettlementDuration = "settlement_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextRoundsOpened       = "Total number of rounds opened"
	HelpTextRoundsResolved     = "Total number of rounds resolved, by outcome"
	HelpTextStakesPlaced       = "Total number of stakes placed"
	HelpTextStakeVolume        = "Total credits wagered"
	HelpTextSettlementSkipped  = "Total settlements skipped, by reason"
	HelpTextOracleRequests     = "Total oracle feed requests, by feed and result"
	HelpTextSettlementDuration = "Round settlement latency in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelFamily  = "family"
	LabelOutcome = "outcome"
	LabelSide    = "side"
	LabelReason  = "reason"
	LabelFeed    = "feed"
	LabelResult  = "result"
)

// Settlement skip reasons
const (
	SkipReasonAlreadyResolved = "already_resolved"
	SkipReasonOracle          = "oracle_unavailable"
	SkipReasonClaimLost       = "claim_lost"
)

// Oracle request results
const (
	OracleResultOK    = "ok"
	OracleResultError = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets covers the expected HTTP latency range
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// SettlementLatencyBuckets covers oracle call plus transaction time
var SettlementLatencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
