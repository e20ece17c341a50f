package scores

import (
	"sync"
)

// MockStore is a mock implementation of the ScoreStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	InsertFunc                   func(rec *Record) error
	GetFunc                      func(id string) (*Record, error)
	ByCompetitorFunc             func(competitorID string) ([]*Record, error)
	ByCompetitionFunc            func(competitionID string) ([]*Record, error)
	AllFunc                      func() ([]*Record, error)
	ForProcessingFunc            func() ([]*Record, error)
	UpdateVerificationStatusFunc func(id string, status VerificationStatus, verifiedBy string) error
	UpdateProcessingStatusFunc   func(id string, status ProcessingStatus) error

	// Call records
	InsertCalls                   []*Record
	ByCompetitorCalls             []string
	ByCompetitionCalls            []string
	AllCalls                      int
	UpdateVerificationStatusCalls []struct {
		ID         string
		Status     VerificationStatus
		VerifiedBy string
	}
	UpdateProcessingStatusCalls []struct {
		ID     string
		Status ProcessingStatus
	}
	ClearCalls            int
	ClearCompetitionCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls = nil
	m.ByCompetitorCalls = nil
	m.ByCompetitionCalls = nil
	m.AllCalls = 0
	m.UpdateVerificationStatusCalls = nil
	m.UpdateProcessingStatusCalls = nil
	m.ClearCalls = 0
	m.ClearCompetitionCalls = nil
}

func (m *MockStore) Insert(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls = append(m.InsertCalls, rec)
	if m.InsertFunc != nil {
		return m.InsertFunc(rec)
	}
	return nil
}

func (m *MockStore) Get(id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, nil
}

func (m *MockStore) ByCompetitor(competitorID string) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByCompetitorCalls = append(m.ByCompetitorCalls, competitorID)
	if m.ByCompetitorFunc != nil {
		return m.ByCompetitorFunc(competitorID)
	}
	return nil, nil
}

func (m *MockStore) ByCompetition(competitionID string) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByCompetitionCalls = append(m.ByCompetitionCalls, competitionID)
	if m.ByCompetitionFunc != nil {
		return m.ByCompetitionFunc(competitionID)
	}
	return nil, nil
}

func (m *MockStore) All() ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AllCalls++
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil, nil
}

func (m *MockStore) ForProcessing() ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForProcessingFunc != nil {
		return m.ForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateVerificationStatus(id string, status VerificationStatus, verifiedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateVerificationStatusCalls = append(m.UpdateVerificationStatusCalls, struct {
		ID         string
		Status     VerificationStatus
		VerifiedBy string
	}{id, status, verifiedBy})
	if m.UpdateVerificationStatusFunc != nil {
		return m.UpdateVerificationStatusFunc(id, status, verifiedBy)
	}
	return nil
}

func (m *MockStore) UpdateProcessingStatus(id string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		ID     string
		Status ProcessingStatus
	}{id, status})
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(id, status)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
}

func (m *MockStore) ClearCompetition(competitionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCompetitionCalls = append(m.ClearCompetitionCalls, competitionID)
}
