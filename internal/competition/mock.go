package competition

import (
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ByIDFunc   func(id string) (*Meta, error)
	AllFunc    func() ([]Meta, error)
	UpsertFunc func(meta Meta) error

	// Call records
	ByIDCalls   []string
	AllCalls    int
	UpsertCalls []Meta
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ByID(id string) (*Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByIDCalls = append(m.ByIDCalls, id)
	if m.ByIDFunc != nil {
		return m.ByIDFunc(id)
	}
	return nil, nil
}

func (m *MockStore) All() ([]Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AllCalls++
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil, nil
}

func (m *MockStore) Upsert(meta Meta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls = append(m.UpsertCalls, meta)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(meta)
	}
	return nil
}
