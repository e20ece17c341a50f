package competitors

import (
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new competitor Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Upsert inserts or updates competitor profiles. Classification fields
// are deliberately not overwritten; the profile name is refreshed only
// when the incoming name is non-empty.
func (s *store) Upsert(profiles []Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO competitors (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE competitors.name END;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	for _, p := range profiles {
		if _, err := stmt.Exec(p.ID, p.Name, now); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// Get retrieves one profile by id. Returns nil, nil when unknown.
func (s *store) Get(id string) (*Profile, error) {
	return s.get("SELECT id, name, manual_class, last_tier, created_at FROM competitors WHERE id = ?", id)
}

// GetByName retrieves one profile by display name. Returns nil, nil when unknown.
func (s *store) GetByName(name string) (*Profile, error) {
	return s.get("SELECT id, name, manual_class, last_tier, created_at FROM competitors WHERE name = ? COLLATE NOCASE", name)
}

func (s *store) get(query string, arg string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Profile
	var name, manualClass, lastTier sql.NullString
	err := s.db.QueryRow(query, arg).Scan(&p.ID, &name, &manualClass, &lastTier, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Name = name.String
	p.ManualClass = manualClass.String
	p.LastTier = lastTier.String
	return &p, nil
}

// All returns every competitor profile.
func (s *store) All() ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, manual_class, last_tier, created_at FROM competitors ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var name, manualClass, lastTier sql.NullString
		if err := rows.Scan(&p.ID, &name, &manualClass, &lastTier, &p.CreatedAt); err != nil {
			log.Error("Failed to scan competitor row", "error", err)
			continue
		}
		p.Name = name.String
		p.ManualClass = manualClass.String
		p.LastTier = lastTier.String
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// IsKnown reports whether a competitor profile exists.
func (s *store) IsKnown(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var one int
	err := s.db.QueryRow("SELECT 1 FROM competitors WHERE id = ?", id).Scan(&one)
	return err == nil
}

// SetManualClass assigns (or clears, with an empty tier) the manual
// classification override on a profile.
func (s *store) SetManualClass(id, tier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE competitors SET manual_class = ? WHERE id = ?", tier, id)
	return err
}

// SetLastTier records the most recently computed tier for change detection.
func (s *store) SetLastTier(id, tier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE competitors SET last_tier = ? WHERE id = ?", tier, id)
	return err
}
