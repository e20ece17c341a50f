package notifier

import (
	"sync"

	"github.com/tenring-club/steady-aim/internal/classify"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/leaderboard"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultNotificationCalls []struct {
		Record *scores.Record
		Meta   *competition.Meta
	}
	SendTierChangeCalls []struct {
		Name    string
		OldTier string
		NewTier string
	}
	SendLeaderboardCalls []struct {
		Scope string
		Rows  []leaderboard.Row
	}

	// Spies for format functions
	FormatLeaderboardResponseFunc        func(scope string, rows []leaderboard.Row) (any, error)
	FormatClassificationResponseFunc     func(name string, result classify.Result) (any, error)
	FormatCompetitorNotFoundResponseFunc func(query string) (any, error)

	// Last formatted responses
	LastLeaderboardResponse    any
	LastClassificationResponse any
	LastNotFoundResponse       any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendTierChangeCalls = nil
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastClassificationResponse = nil
	m.LastNotFoundResponse = nil
}

func (m *Mock) SendResultNotification(rec *scores.Record, meta *competition.Meta, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Record *scores.Record
		Meta   *competition.Meta
	}{rec, meta})
	return nil
}

func (m *Mock) SendTierChange(name, oldTier, newTier string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTierChangeCalls = append(m.SendTierChangeCalls, struct {
		Name    string
		OldTier string
		NewTier string
	}{name, oldTier, newTier})
	return nil
}

func (m *Mock) SendLeaderboard(scope string, rows []leaderboard.Row, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Scope string
		Rows  []leaderboard.Row
	}{scope, rows})
	return nil
}

func (m *Mock) FormatLeaderboardResponse(scope string, rows []leaderboard.Row) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(scope, rows)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	m.LastLeaderboardResponse = rows
	return rows, nil
}

func (m *Mock) FormatClassificationResponse(name string, result classify.Result) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatClassificationResponseFunc != nil {
		resp, err := m.FormatClassificationResponseFunc(name, result)
		m.LastClassificationResponse = resp
		return resp, err
	}
	m.LastClassificationResponse = result
	return result, nil
}

func (m *Mock) FormatCompetitorNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatCompetitorNotFoundResponseFunc != nil {
		resp, err := m.FormatCompetitorNotFoundResponseFunc(query)
		m.LastNotFoundResponse = resp
		return resp, err
	}
	m.LastNotFoundResponse = query
	return query, nil
}
