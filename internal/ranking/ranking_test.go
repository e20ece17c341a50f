package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/scores"
)

func rec(id, competitorID, competitionID string, points, xCount int, totalTime float64) *scores.Record {
	return &scores.Record{
		ID:            id,
		CompetitorID:  competitorID,
		CompetitionID: competitionID,
		Points:        points,
		Verification:  scores.StatusApproved,
		Tiebreaker: scores.Tiebreaker{
			XCount:    xCount,
			TotalTime: totalTime,
		},
	}
}

func TestCompare(t *testing.T) {
	t.Run("higher points win", func(t *testing.T) {
		a := rec("a", "p1", "c1", 245, 0, 0)
		b := rec("b", "p2", "c1", 240, 10, 0)
		assert.True(t, Better(a, b))
		assert.False(t, Better(b, a))
	})

	t.Run("x count breaks point ties", func(t *testing.T) {
		a := rec("a", "p1", "c1", 245, 4, 0)
		b := rec("b", "p2", "c1", 245, 7, 0)
		assert.True(t, Better(b, a))
	})

	t.Run("lower total time breaks remaining ties", func(t *testing.T) {
		a := rec("a", "p1", "c1", 245, 4, 180.5)
		b := rec("b", "p2", "c1", 245, 4, 175.0)
		assert.True(t, Better(b, a))
	})

	t.Run("untimed cards win time ties", func(t *testing.T) {
		timed := rec("a", "p1", "c1", 245, 4, 120.0)
		untimed := rec("b", "p2", "c1", 245, 4, 0)
		assert.True(t, Better(untimed, timed))
	})

	t.Run("fully tied cards compare equal", func(t *testing.T) {
		a := rec("a", "p1", "c1", 245, 4, 120.0)
		b := rec("b", "p2", "c1", 245, 4, 120.0)
		assert.Equal(t, 0, Compare(a, b))
	})
}

func TestRank(t *testing.T) {
	t.Run("orders by the three level comparator", func(t *testing.T) {
		records := []*scores.Record{
			rec("a", "p1", "c1", 240, 10, 0),
			rec("b", "p2", "c1", 245, 2, 0),
			rec("c", "p3", "c1", 245, 6, 0),
		}

		entries := Rank(records, Global())
		require.Len(t, entries, 3)
		assert.Equal(t, "p3", entries[0].CompetitorID)
		assert.Equal(t, "p2", entries[1].CompetitorID)
		assert.Equal(t, "p1", entries[2].CompetitorID)
	})

	t.Run("ranks are one based and contiguous even on exact ties", func(t *testing.T) {
		records := []*scores.Record{
			rec("a", "p1", "c1", 245, 4, 120.0),
			rec("b", "p2", "c1", 245, 4, 120.0),
			rec("c", "p3", "c1", 245, 4, 120.0),
		}

		entries := Rank(records, Global())
		require.Len(t, entries, 3)
		for i, e := range entries {
			assert.Equal(t, i+1, e.Rank)
		}
		// Ties fall back to competitor id so the order is stable across runs.
		assert.Equal(t, "p1", entries[0].CompetitorID)
		assert.Equal(t, "p2", entries[1].CompetitorID)
		assert.Equal(t, "p3", entries[2].CompetitorID)
	})

	t.Run("keeps only each competitor's best card", func(t *testing.T) {
		records := []*scores.Record{
			rec("a", "p1", "c1", 230, 2, 0),
			rec("b", "p1", "c2", 245, 6, 0),
			rec("c", "p1", "c1", 240, 9, 0),
			rec("d", "p2", "c1", 235, 1, 0),
		}

		entries := Rank(records, Global())
		require.Len(t, entries, 2)
		assert.Equal(t, "p1", entries[0].CompetitorID)
		assert.Equal(t, 245, entries[0].Points)
		assert.Equal(t, "c2", entries[0].CompetitionID)
	})

	t.Run("excludes cards that are not approved", func(t *testing.T) {
		pending := rec("a", "p1", "c1", 250, 10, 0)
		pending.Verification = scores.StatusPending
		rejected := rec("b", "p2", "c1", 250, 10, 0)
		rejected.Verification = scores.StatusRejected
		flagged := rec("c", "p3", "c1", 250, 10, 0)
		flagged.Verification = scores.StatusFlagged
		approved := rec("d", "p4", "c1", 200, 0, 0)

		entries := Rank([]*scores.Record{pending, rejected, flagged, approved}, Global())
		require.Len(t, entries, 1)
		assert.Equal(t, "p4", entries[0].CompetitorID)
	})

	t.Run("records without a verification status count as approved", func(t *testing.T) {
		legacy := rec("a", "p1", "c1", 240, 3, 0)
		legacy.Verification = ""

		entries := Rank([]*scores.Record{legacy}, Global())
		require.Len(t, entries, 1)
	})

	t.Run("competition scope filters by competition id", func(t *testing.T) {
		records := []*scores.Record{
			rec("a", "p1", "c1", 240, 3, 0),
			rec("b", "p2", "c2", 250, 8, 0),
		}

		entries := Rank(records, ForCompetition("c1"))
		require.Len(t, entries, 1)
		assert.Equal(t, "p1", entries[0].CompetitorID)
	})

	t.Run("empty input yields an empty leaderboard", func(t *testing.T) {
		assert.Empty(t, Rank(nil, Global()))
	})
}

func TestParseScope(t *testing.T) {
	t.Run("parses the selector forms", func(t *testing.T) {
		cases := []struct {
			selector string
			kind     ScopeKind
			value    string
		}{
			{"global", KindGlobal, ""},
			{"", KindGlobal, ""},
			{"competition:c1", KindCompetition, "c1"},
			{"format:prone", KindFormat, "prone"},
			{"type:indoor", KindType, "indoor"},
		}
		for _, tc := range cases {
			scope, err := Parse(tc.selector)
			require.NoError(t, err, tc.selector)
			assert.Equal(t, tc.kind, scope.Kind)
			assert.Equal(t, tc.value, scope.Value)
		}
	})

	t.Run("rejects unknown selectors", func(t *testing.T) {
		for _, selector := range []string{"nope", "format:swimming", "type:underwater", "competition:"} {
			_, err := Parse(selector)
			assert.Error(t, err, selector)
		}
	})
}

func TestScopeMatchesWithMeta(t *testing.T) {
	metaByID := map[string]*competition.Meta{
		"c1": {ID: "c1", Format: competition.FormatProne, Type: competition.TypeOutdoor},
		"c2": {ID: "c2", Format: competition.FormatStanding, Type: competition.TypeIndoor},
	}

	records := []*scores.Record{
		rec("a", "p1", "c1", 240, 3, 0),
		rec("b", "p2", "c2", 250, 8, 0),
		rec("c", "p3", "c3", 255, 9, 0), // no metadata, excluded from format scopes
	}

	entries := Rank(records, ForFormat(competition.FormatProne).WithMeta(metaByID))
	require.Len(t, entries, 1)
	assert.Equal(t, "p1", entries[0].CompetitorID)

	entries = Rank(records, ForType(competition.TypeIndoor).WithMeta(metaByID))
	require.Len(t, entries, 1)
	assert.Equal(t, "p2", entries[0].CompetitorID)
}
