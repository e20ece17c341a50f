package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSubmissions()
	IncSubmissionsRejected()
	IncScoresProcessed()
	ObserveProcessingDuration(duration float64)
	IncLeaderboardRequests()
	ObserveRankingDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
