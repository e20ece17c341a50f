package competitors

import (
	"database/sql"
	"sync"
)

// store handles database operations for competitor profiles.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Profile is a competitor's identity and classification overrides.
// ManualClass, when set, takes precedence over the computed
// classification on every leaderboard. LastTier records the most recent
// computed tier so the processor can detect tier changes.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ManualClass string `json:"manual_class,omitempty"`
	LastTier    string `json:"last_tier,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}
