package scores

import (
	"database/sql"
	"sync"
)

// store handles all database operations for score records.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// VerificationStatus is the review state of a submitted card.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusApproved VerificationStatus = "approved"
	StatusRejected VerificationStatus = "rejected"
	StatusFlagged  VerificationStatus = "flagged"
)

// ProcessingStatus defines the internal pipeline state of a score record.
type ProcessingStatus string

const (
	ProcessingNew        ProcessingStatus = "NEW"
	ProcessingNotified   ProcessingStatus = "NOTIFIED"
	ProcessingClassified ProcessingStatus = "CLASSIFIED"
	ProcessingCompleted  ProcessingStatus = "COMPLETED"
)

// Shot is a single scored shot on a card. An X is a hit in the innermost
// ring and always counts as a maximum-value hit regardless of Value.
type Shot struct {
	Value int     `json:"value"`
	IsX   bool    `json:"is_x"`
	Time  float64 `json:"time"`
}

// Tiebreaker holds the derived per-card metrics used to break point ties.
// It is computed from the shots at submission time and never set directly.
type Tiebreaker struct {
	XCount       int     `json:"x_count"`
	PerfectShots int     `json:"perfect_shots"`
	TotalTime    float64 `json:"total_time"`
}

// Record is one submitted card: a single attempt at a course of fire.
// Points is always recomputed server-side from Shots; the shots are the
// source of truth. Score and shot content are immutable after insert;
// only the verification fields may change.
type Record struct {
	ID               string             `json:"id"`
	CompetitorID     string             `json:"competitor_id"`
	CompetitionID    string             `json:"competition_id"`
	Points           int                `json:"points"`
	Shots            []Shot             `json:"shots"`
	Tiebreaker       Tiebreaker         `json:"tiebreaker"`
	Verification     VerificationStatus `json:"verification_status"`
	VerifiedBy       string             `json:"verified_by,omitempty"`
	VerifiedAt       int64              `json:"verified_at,omitempty"`
	SubmittedAt      int64              `json:"submitted_at"` // unix millis
	ProcessingStatus ProcessingStatus   `json:"-"`
}

// EffectiveStatus returns the verification status with the legacy default
// applied: records written before verification existed carry no status
// and count as approved.
func (r *Record) EffectiveStatus() VerificationStatus {
	if r.Verification == "" {
		return StatusApproved
	}
	return r.Verification
}

// IsEligible reports whether the record may appear on public leaderboards.
func (r *Record) IsEligible() bool {
	return r.EffectiveStatus() == StatusApproved
}
