package competition

import (
	"database/sql"

	"github.com/charmbracelet/log"
)

// New creates a new competition Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// ByID fetches one competition's metadata. Returns nil, nil when the
// competition is unknown; callers fall back to record-level defaults.
func (s *store) ByID(id string) (*Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var meta Meta
	err := s.db.QueryRow(
		"SELECT id, name, shots_per_card, format, competition_type FROM competitions WHERE id = ?", id,
	).Scan(&meta.ID, &meta.Name, &meta.ShotsPerCard, &meta.Format, &meta.Type)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// All returns every competition's metadata.
func (s *store) All() ([]Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, shots_per_card, format, competition_type FROM competitions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []Meta
	for rows.Next() {
		var meta Meta
		if err := rows.Scan(&meta.ID, &meta.Name, &meta.ShotsPerCard, &meta.Format, &meta.Type); err != nil {
			log.Error("Failed to scan competition row", "error", err)
			continue
		}
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// Upsert inserts or updates competition metadata.
func (s *store) Upsert(meta Meta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO competitions (id, name, shots_per_card, format, competition_type)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			shots_per_card = excluded.shots_per_card,
			format = excluded.format,
			competition_type = excluded.competition_type;
	`, meta.ID, meta.Name, meta.ShotsPerCard, string(meta.Format), string(meta.Type))
	return err
}
