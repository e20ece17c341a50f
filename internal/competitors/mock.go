package competitors

import (
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertFunc         func(profiles []Profile) error
	GetFunc            func(id string) (*Profile, error)
	GetByNameFunc      func(name string) (*Profile, error)
	AllFunc            func() ([]Profile, error)
	IsKnownFunc        func(id string) bool
	SetManualClassFunc func(id, tier string) error
	SetLastTierFunc    func(id, tier string) error

	// Call records
	UpsertCalls         [][]Profile
	SetManualClassCalls []struct{ ID, Tier string }
	SetLastTierCalls    []struct{ ID, Tier string }
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Upsert(profiles []Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls = append(m.UpsertCalls, profiles)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(profiles)
	}
	return nil
}

func (m *MockStore) Get(id string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, nil
}

func (m *MockStore) GetByName(name string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(name)
	}
	return nil, nil
}

func (m *MockStore) All() ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnown(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownFunc != nil {
		return m.IsKnownFunc(id)
	}
	return false
}

func (m *MockStore) SetManualClass(id, tier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetManualClassCalls = append(m.SetManualClassCalls, struct{ ID, Tier string }{id, tier})
	if m.SetManualClassFunc != nil {
		return m.SetManualClassFunc(id, tier)
	}
	return nil
}

func (m *MockStore) SetLastTier(id, tier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetLastTierCalls = append(m.SetLastTierCalls, struct{ ID, Tier string }{id, tier})
	if m.SetLastTierFunc != nil {
		return m.SetLastTierFunc(id, tier)
	}
	return nil
}
