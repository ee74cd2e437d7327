package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncRecordFailures(reason string)
	ObserveRequestDuration(route string, seconds float64)
	IncNotifSent()
	IncNotifFailed()
	IncLeaderboardPosts()
	SetStartupTime(duration float64)
}
