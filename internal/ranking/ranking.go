// Package ranking turns a set of score records into an ordered,
// one-entry-per-competitor leaderboard for a scope. It is a pure function
// over already-fetched records; how the records were retrieved (index,
// materialized view, full scan) is the store's concern.
package ranking

import (
	"sort"
	"strings"

	"github.com/tenring-club/steady-aim/internal/scores"
)

// Entry is one row of a ranked leaderboard. Ranks are 1-based and
// contiguous; exact ties still receive distinct ranks.
type Entry struct {
	Rank          int               `json:"rank"`
	CompetitorID  string            `json:"competitor_id"`
	CompetitionID string            `json:"competition_id"`
	Points        int               `json:"points"`
	Tiebreaker    scores.Tiebreaker `json:"tiebreaker"`
}

// Compare orders two records by the three-level comparator: higher points
// win, then higher X-count, then lower total time. A total time of zero
// means the card was untimed and is deliberately treated as fastest; see
// the note on Rank. Returns a negative value when a ranks ahead of b.
func Compare(a, b *scores.Record) int {
	if a.Points != b.Points {
		return b.Points - a.Points
	}
	if a.Tiebreaker.XCount != b.Tiebreaker.XCount {
		return b.Tiebreaker.XCount - a.Tiebreaker.XCount
	}
	switch {
	case a.Tiebreaker.TotalTime < b.Tiebreaker.TotalTime:
		return -1
	case a.Tiebreaker.TotalTime > b.Tiebreaker.TotalTime:
		return 1
	}
	return 0
}

// Better reports whether a beats b under the three-level comparator.
func Better(a, b *scores.Record) bool {
	return Compare(a, b) < 0
}

// Rank filters records to the scope's eligible set, deduplicates to each
// competitor's single best card and returns the total order.
//
// Untimed cards (TotalTime 0) win time-based ties over timed ones. The
// source data does not distinguish "instantaneous" from "not tracked",
// so this keeps compatibility with existing rankings.
func Rank(records []*scores.Record, scope Scope) []Entry {
	best := make(map[string]*scores.Record)
	for _, rec := range records {
		if rec == nil || !rec.IsEligible() || !scope.matches(rec) {
			continue
		}
		cur, ok := best[rec.CompetitorID]
		if !ok || Better(rec, cur) {
			best[rec.CompetitorID] = rec
		}
	}

	ranked := make([]*scores.Record, 0, len(best))
	for _, rec := range best {
		ranked = append(ranked, rec)
	}
	// Competitor id as the final key so fully tied cards order
	// deterministically across runs.
	sort.Slice(ranked, func(i, j int) bool {
		if c := Compare(ranked[i], ranked[j]); c != 0 {
			return c < 0
		}
		return strings.Compare(ranked[i].CompetitorID, ranked[j].CompetitorID) < 0
	})

	entries := make([]Entry, len(ranked))
	for i, rec := range ranked {
		entries[i] = Entry{
			Rank:          i + 1,
			CompetitorID:  rec.CompetitorID,
			CompetitionID: rec.CompetitionID,
			Points:        rec.Points,
			Tiebreaker:    rec.Tiebreaker,
		}
	}
	return entries
}
