package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/competitors"
	"github.com/tenring-club/steady-aim/internal/metrics"
	"github.com/tenring-club/steady-aim/internal/scores"
)

func approvedCard(id, competitorID, competitionID string, points, xCount int) *scores.Record {
	return &scores.Record{
		ID:            id,
		CompetitorID:  competitorID,
		CompetitionID: competitionID,
		Points:        points,
		Shots:         make([]scores.Shot, 10),
		Verification:  scores.StatusApproved,
		Tiebreaker:    scores.Tiebreaker{XCount: xCount},
		SubmittedAt:   time.Now().UnixMilli(),
	}
}

func testAssembler(scoreStore *scores.MockStore, competitionStore *competition.MockStore, competitorStore *competitors.MockStore) *Assembler {
	return New(scoreStore, competitionStore, competitorStore, metrics.NewMock())
}

func TestAssembleGlobal(t *testing.T) {
	scoreStore := scores.NewMock()
	competitionStore := competition.NewMock()
	competitorStore := competitors.NewMock()

	byCompetitor := map[string][]*scores.Record{
		"p1": {approvedCard("a", "p1", "c1", 95, 4)},
		"p2": {approvedCard("b", "p2", "c1", 98, 6)},
	}
	scoreStore.AllFunc = func() ([]*scores.Record, error) {
		return append(byCompetitor["p1"], byCompetitor["p2"]...), nil
	}
	scoreStore.ByCompetitorFunc = func(id string) ([]*scores.Record, error) {
		return byCompetitor[id], nil
	}
	competitorStore.GetFunc = func(id string) (*competitors.Profile, error) {
		if id == "p1" {
			return &competitors.Profile{ID: "p1", Name: "Shooter One"}, nil
		}
		return nil, nil
	}

	metricsMock := metrics.NewMock()
	a := New(scoreStore, competitionStore, competitorStore, metricsMock)
	rows, err := a.Assemble("global")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The assembler is the single place the request counter increments.
	assert.Equal(t, 1, metricsMock.LeaderboardRequests())

	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "p2", rows[0].CompetitorID)
	assert.Equal(t, 98, rows[0].Points)
	// No profile for p2, the id stands in for the name.
	assert.Equal(t, "p2", rows[0].Name)

	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, "Shooter One", rows[1].Name)
	// Single ten shot card at 95 points: 237.5 of 250.
	assert.InDelta(t, 237.5, rows[1].AverageScore, 0.0001)
	assert.InDelta(t, 237.5, rows[1].BestScore, 0.0001)
	assert.Equal(t, 1, rows[1].CompetitionsCount)
	// One card only, classification is provisional.
	assert.True(t, rows[1].Classification.Provisional)
}

func TestAssembleAggregatesSpanHistoryNotScope(t *testing.T) {
	scoreStore := scores.NewMock()
	competitionStore := competition.NewMock()
	competitorStore := competitors.NewMock()

	history := []*scores.Record{
		approvedCard("a", "p1", "c1", 90, 2),
		approvedCard("b", "p1", "c2", 100, 8),
	}
	scoreStore.ByCompetitionFunc = func(id string) ([]*scores.Record, error) {
		return []*scores.Record{history[0]}, nil
	}
	scoreStore.ByCompetitorFunc = func(id string) ([]*scores.Record, error) {
		return history, nil
	}

	a := testAssembler(scoreStore, competitionStore, competitorStore)
	rows, err := a.Assemble("competition:c1")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Ranked on the c1 card, but the aggregates cover both competitions.
	assert.Equal(t, 90, rows[0].Points)
	assert.InDelta(t, 237.5, rows[0].AverageScore, 0.0001) // (225 + 250) / 2
	assert.InDelta(t, 250.0, rows[0].BestScore, 0.0001)
	assert.Equal(t, 2, rows[0].CompetitionsCount)
}

func TestAssembleFormatScopeUsesMetadata(t *testing.T) {
	scoreStore := scores.NewMock()
	competitionStore := competition.NewMock()
	competitorStore := competitors.NewMock()

	competitionStore.AllFunc = func() ([]competition.Meta, error) {
		return []competition.Meta{
			{ID: "c1", Format: competition.FormatProne, Type: competition.TypeOutdoor, ShotsPerCard: 10},
			{ID: "c2", Format: competition.FormatStanding, Type: competition.TypeIndoor, ShotsPerCard: 10},
		}, nil
	}
	records := []*scores.Record{
		approvedCard("a", "p1", "c1", 95, 4),
		approvedCard("b", "p2", "c2", 99, 9),
	}
	scoreStore.AllFunc = func() ([]*scores.Record, error) { return records, nil }
	scoreStore.ByCompetitorFunc = func(id string) ([]*scores.Record, error) {
		for _, rec := range records {
			if rec.CompetitorID == id {
				return []*scores.Record{rec}, nil
			}
		}
		return nil, nil
	}

	a := testAssembler(scoreStore, competitionStore, competitorStore)
	rows, err := a.Assemble("format:prone")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].CompetitorID)

	rows, err = a.Assemble("type:indoor")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0].CompetitorID)
}

func TestAssembleManualClassOverride(t *testing.T) {
	scoreStore := scores.NewMock()
	competitionStore := competition.NewMock()
	competitorStore := competitors.NewMock()

	rec := approvedCard("a", "p1", "c1", 95, 4)
	scoreStore.AllFunc = func() ([]*scores.Record, error) { return []*scores.Record{rec}, nil }
	scoreStore.ByCompetitorFunc = func(id string) ([]*scores.Record, error) { return []*scores.Record{rec}, nil }
	competitorStore.GetFunc = func(id string) (*competitors.Profile, error) {
		return &competitors.Profile{ID: "p1", Name: "Shooter One", ManualClass: "Master"}, nil
	}

	a := testAssembler(scoreStore, competitionStore, competitorStore)
	rows, err := a.Assemble("global")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// The override is used verbatim, never marked provisional.
	assert.Equal(t, "Master", rows[0].Classification.Tier)
	assert.Equal(t, "Master", rows[0].Classification.Label)
	assert.False(t, rows[0].Classification.Provisional)
}

func TestAssembleRejectsUnknownScope(t *testing.T) {
	a := testAssembler(scores.NewMock(), competition.NewMock(), competitors.NewMock())
	_, err := a.Assemble("format:swimming")
	assert.Error(t, err)
}

func TestClassifyCompetitor(t *testing.T) {
	scoreStore := scores.NewMock()
	competitionStore := competition.NewMock()
	competitorStore := competitors.NewMock()

	history := make([]*scores.Record, 0, 6)
	for i := 0; i < 6; i++ {
		history = append(history, approvedCard("r", "p1", "c1", 99, 11))
	}
	scoreStore.ByCompetitorFunc = func(id string) ([]*scores.Record, error) { return history, nil }

	a := testAssembler(scoreStore, competitionStore, competitorStore)

	result, err := a.ClassifyCompetitor("p1")
	require.NoError(t, err)
	assert.Equal(t, "Master", result.Tier)
	assert.False(t, result.Provisional)

	// A manual override on the profile wins.
	competitorStore.GetFunc = func(id string) (*competitors.Profile, error) {
		return &competitors.Profile{ID: "p1", ManualClass: "Bronze"}, nil
	}
	result, err = a.ClassifyCompetitor("p1")
	require.NoError(t, err)
	assert.Equal(t, "Bronze", result.Tier)
	assert.Equal(t, "Bronze", result.Label)
	assert.False(t, result.Provisional)
	// The computed aggregates are still reported alongside the override.
	assert.Equal(t, 6, result.SampleCount)
}
