package scores

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new ScoreStore.
func New(db *sql.DB) ScoreStore {
	return &store{
		db: db,
	}
}

// Insert writes a new score record. Records are immutable in their score
// and shot content, so this is a plain insert and a duplicate id is an error.
func (s *store) Insert(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shotsJSON, err := json.Marshal(rec.Shots)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO scores (id, competitor_id, competition_id, points, shots_json, x_count, perfect_shots, total_time, verification_status, submitted_at, processing_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID, rec.CompetitorID, rec.CompetitionID, rec.Points, string(shotsJSON),
		rec.Tiebreaker.XCount, rec.Tiebreaker.PerfectShots, rec.Tiebreaker.TotalTime,
		string(rec.Verification), rec.SubmittedAt, string(rec.ProcessingStatus),
	)
	return err
}

// Get retrieves a single record by id. Returns nil, nil when absent.
func (s *store) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectRecord+" WHERE id = ?", id)
	rec, err := s.scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// ByCompetitor retrieves all records for a competitor, most recent first.
func (s *store) ByCompetitor(competitorID string) ([]*Record, error) {
	return s.query(selectRecord+" WHERE competitor_id = ? ORDER BY submitted_at DESC", competitorID)
}

// ByCompetition retrieves all records for a competition.
func (s *store) ByCompetition(competitionID string) ([]*Record, error) {
	return s.query(selectRecord+" WHERE competition_id = ?", competitionID)
}

// All retrieves every record. Used for the cross-competition scopes;
// the ranking engine does its own filtering.
func (s *store) All() ([]*Record, error) {
	return s.query(selectRecord)
}

// ForProcessing retrieves records that have not completed the pipeline.
func (s *store) ForProcessing() ([]*Record, error) {
	return s.query(selectRecord+" WHERE processing_status != ?", string(ProcessingCompleted))
}

// UpdateVerificationStatus transitions a record's review state. This is the
// only legal mutation of a stored record.
func (s *store) UpdateVerificationStatus(id string, status VerificationStatus, verifiedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE scores SET verification_status = ?, verified_by = ?, verified_at = ? WHERE id = ?",
		string(status), verifiedBy, time.Now().UnixMilli(), id,
	)
	return err
}

// UpdateProcessingStatus advances a record through the submission pipeline.
func (s *store) UpdateProcessingStatus(id string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE scores SET processing_status = ? WHERE id = ?", string(status), id)
	return err
}

// Clear removes all score records. Administrative use only.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		log.Error("Failed to clear scores", "error", err)
	}
}

// ClearCompetition removes all records belonging to one competition.
func (s *store) ClearCompetition(competitionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM scores WHERE competition_id = ?", competitionID); err != nil {
		log.Error("Failed to clear competition scores", "error", err, "competitionID", competitionID)
	}
}

const selectRecord = `
	SELECT id, competitor_id, competition_id, points, shots_json, x_count, perfect_shots, total_time, verification_status, verified_by, verified_at, submitted_at, processing_status
	FROM scores`

func (s *store) query(q string, args ...any) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			log.Error("Failed to scan score row", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// scanRecord is a helper to scan a single score row.
func (s *store) scanRecord(scanner interface{ Scan(...any) error }) (*Record, error) {
	var rec Record
	var shotsJSON, verification, verifiedBy sql.NullString
	var verifiedAt sql.NullInt64
	var processing string

	err := scanner.Scan(
		&rec.ID, &rec.CompetitorID, &rec.CompetitionID, &rec.Points, &shotsJSON,
		&rec.Tiebreaker.XCount, &rec.Tiebreaker.PerfectShots, &rec.Tiebreaker.TotalTime,
		&verification, &verifiedBy, &verifiedAt, &rec.SubmittedAt, &processing,
	)
	if err != nil {
		return nil, err
	}

	// A NULL verification status stays empty; EffectiveStatus treats it as
	// approved for legacy data.
	rec.Verification = VerificationStatus(verification.String)
	rec.VerifiedBy = verifiedBy.String
	rec.VerifiedAt = verifiedAt.Int64
	rec.ProcessingStatus = ProcessingStatus(processing)

	if shotsJSON.Valid && shotsJSON.String != "" {
		if err := json.Unmarshal([]byte(shotsJSON.String), &rec.Shots); err != nil {
			log.Error("Failed to unmarshal shots_json", "error", err, "recordID", rec.ID)
		}
	} else {
		rec.Shots = []Shot{}
	}

	return &rec, nil
}
