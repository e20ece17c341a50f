package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	submissions         int
	submissionsRejected int
	scoresProcessed     int
	processingDurations []float64
	leaderboardRequests int
	rankingDurations    []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		processingDurations: make([]float64, 0),
		rankingDurations:    make([]float64, 0),
	}
}

func (m *Mock) IncSubmissions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions++
}

func (m *Mock) IncSubmissionsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissionsRejected++
}

func (m *Mock) IncScoresProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoresProcessed++
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncLeaderboardRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardRequests++
}

func (m *Mock) ObserveRankingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingDurations = append(m.rankingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Submissions returns the number of times IncSubmissions was called.
func (m *Mock) Submissions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissions
}

// SubmissionsRejected returns the number of times IncSubmissionsRejected was called.
func (m *Mock) SubmissionsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissionsRejected
}

// ScoresProcessed returns the number of times IncScoresProcessed was called.
func (m *Mock) ScoresProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoresProcessed
}

// LeaderboardRequests returns the number of times IncLeaderboardRequests was called.
func (m *Mock) LeaderboardRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardRequests
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
