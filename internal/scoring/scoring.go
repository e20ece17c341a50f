// Package scoring computes canonical card scores. It normalizes raw point
// totals onto the fixed 250-point reference scale and builds verified
// score records from raw shot entries, never trusting a client-supplied
// total.
package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// DefaultShotsPerCard is the card size assumed when neither the
// competition metadata nor the record itself establishes one.
const DefaultShotsPerCard = 10

const maxShotValue = 10

var (
	ErrNoShots              = errors.New("card has no shots")
	ErrShotValueOutOfRange  = errors.New("shot value out of range")
	ErrShotCountMismatch    = errors.New("shot count does not match competition card size")
	ErrMissingCompetitorID  = errors.New("competitor id is required")
	ErrMissingCompetitionID = errors.New("competition id is required")
)

// NormalizeTo250 converts a raw point total to the canonical 0-250 scale.
// The second return is false when no valid denominator exists; consumers
// must exclude such values from aggregates rather than treat them as zero.
func NormalizeTo250(points int, shotsPerCard int) (float64, bool) {
	if shotsPerCard <= 0 {
		return 0, false
	}
	result := float64(points) / float64(shotsPerCard*maxShotValue) * 250
	return clamp(result, 0, 250), true
}

// ToPercent converts a raw point total to the legacy 0-100 scale using the
// same denominator fallback chain as NormalizeTo250.
func ToPercent(points int, meta *competition.Meta, shotCount int) (float64, bool) {
	shotsPerCard := DenominatorShots(meta, shotCount)
	if shotsPerCard <= 0 {
		return 0, false
	}
	result := float64(points) / float64(shotsPerCard*maxShotValue) * 100
	return clamp(result, 0, 100), true
}

// DenominatorShots resolves the shots-per-card denominator: competition
// metadata first, then the record's own shot count, then the default.
func DenominatorShots(meta *competition.Meta, shotCount int) int {
	if meta != nil && meta.ShotsPerCard > 0 {
		return meta.ShotsPerCard
	}
	if shotCount > 0 {
		return shotCount
	}
	return DefaultShotsPerCard
}

// NormalizeRecord puts a record's points on the 250 scale, resolving the
// denominator from the competition metadata with the usual fallbacks.
func NormalizeRecord(rec *scores.Record, meta *competition.Meta) (float64, bool) {
	return NormalizeTo250(rec.Points, DenominatorShots(meta, len(rec.Shots)))
}

// BuildRecord validates raw shot entries against the competition metadata
// and produces a verified score record. The total is recomputed from the
// shots: an X ring hit contributes the maximum value regardless of its
// stated value. Tiebreaker fields are derived here and nowhere else.
// Nothing is persisted; storage is the caller's responsibility.
func BuildRecord(competitorID, competitionID string, shots []scores.Shot, meta *competition.Meta) (*scores.Record, error) {
	if competitorID == "" {
		return nil, ErrMissingCompetitorID
	}
	if competitionID == "" {
		return nil, ErrMissingCompetitionID
	}
	if len(shots) == 0 {
		return nil, ErrNoShots
	}
	if meta != nil && meta.ShotsPerCard > 0 && len(shots) != meta.ShotsPerCard {
		return nil, fmt.Errorf("%w: got %d, competition requires %d", ErrShotCountMismatch, len(shots), meta.ShotsPerCard)
	}

	var points int
	var tb scores.Tiebreaker
	for i, shot := range shots {
		if shot.Value < 0 || shot.Value > maxShotValue {
			return nil, fmt.Errorf("%w: shot %d has value %d", ErrShotValueOutOfRange, i+1, shot.Value)
		}
		if shot.IsX {
			points += maxShotValue
			tb.XCount++
		} else {
			points += shot.Value
		}
		if shot.IsX || shot.Value == maxShotValue {
			tb.PerfectShots++
		}
		if shot.Time > 0 {
			tb.TotalTime += shot.Time
		}
	}

	return &scores.Record{
		ID:               uuid.New().String(),
		CompetitorID:     competitorID,
		CompetitionID:    competitionID,
		Points:           points,
		Shots:            shots,
		Tiebreaker:       tb,
		Verification:     scores.StatusPending,
		SubmittedAt:      time.Now().UnixMilli(),
		ProcessingStatus: scores.ProcessingNew,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
