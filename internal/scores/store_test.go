package scores_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenring-club/steady-aim/internal/database"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (scores.ScoreStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := scores.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

// seedRefs inserts the competitor and competition rows score records
// reference, satisfying the foreign keys.
func seedRefs(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO competitors (id, name) VALUES ('shooter-1', 'Shooter One'), ('shooter-2', 'Shooter Two')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO competitions (id, name, shots_per_card, format, competition_type) VALUES ('comp-1', 'Spring Open', 10, 'prone', 'outdoor'), ('comp-2', 'Winter Indoor', 10, 'standing', 'indoor')`)
	require.NoError(t, err)
}

func testRecord(id, competitorID, competitionID string) *scores.Record {
	return &scores.Record{
		ID:            id,
		CompetitorID:  competitorID,
		CompetitionID: competitionID,
		Points:        91,
		Shots: []scores.Shot{
			{Value: 9}, {Value: 10, IsX: true}, {Value: 8}, {Value: 10}, {Value: 9},
			{Value: 9}, {Value: 10, IsX: true}, {Value: 8}, {Value: 9}, {Value: 9},
		},
		Tiebreaker:       scores.Tiebreaker{XCount: 2, PerfectShots: 3, TotalTime: 145.5},
		Verification:     scores.StatusPending,
		SubmittedAt:      time.Now().UnixMilli(),
		ProcessingStatus: scores.ProcessingNew,
	}
}

func TestInsertAndGet(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	rec := testRecord("s1", "shooter-1", "comp-1")
	require.NoError(t, store.Insert(rec))

	got, err := store.Get("s1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Points, got.Points)
	assert.Equal(t, rec.Tiebreaker, got.Tiebreaker)
	assert.Equal(t, scores.StatusPending, got.Verification)
	assert.Equal(t, scores.ProcessingNew, got.ProcessingStatus)
	require.Len(t, got.Shots, 10)
	assert.True(t, got.Shots[1].IsX)
}

func TestGetMissingRecord(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	got, err := store.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInsertDuplicateFails(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	rec := testRecord("s1", "shooter-1", "comp-1")
	require.NoError(t, store.Insert(rec))
	assert.Error(t, store.Insert(rec), "records are immutable, duplicate ids must be rejected")
}

func TestByCompetitorOrdersMostRecentFirst(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	older := testRecord("s1", "shooter-1", "comp-1")
	older.SubmittedAt = time.Now().Add(-48 * time.Hour).UnixMilli()
	newer := testRecord("s2", "shooter-1", "comp-2")
	other := testRecord("s3", "shooter-2", "comp-1")

	require.NoError(t, store.Insert(older))
	require.NoError(t, store.Insert(newer))
	require.NoError(t, store.Insert(other))

	records, err := store.ByCompetitor("shooter-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "s2", records[0].ID)
	assert.Equal(t, "s1", records[1].ID)
}

func TestByCompetition(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	require.NoError(t, store.Insert(testRecord("s1", "shooter-1", "comp-1")))
	require.NoError(t, store.Insert(testRecord("s2", "shooter-2", "comp-1")))
	require.NoError(t, store.Insert(testRecord("s3", "shooter-1", "comp-2")))

	records, err := store.ByCompetition("comp-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestUpdateVerificationStatus(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	require.NoError(t, store.Insert(testRecord("s1", "shooter-1", "comp-1")))

	err := store.UpdateVerificationStatus("s1", scores.StatusApproved, "range-officer")
	require.NoError(t, err)

	got, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, scores.StatusApproved, got.Verification)
	assert.Equal(t, "range-officer", got.VerifiedBy)
	assert.NotZero(t, got.VerifiedAt)
}

func TestUpdateProcessingStatus(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	require.NoError(t, store.Insert(testRecord("s1", "shooter-1", "comp-1")))
	require.NoError(t, store.UpdateProcessingStatus("s1", scores.ProcessingNotified))

	got, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, scores.ProcessingNotified, got.ProcessingStatus)
}

func TestForProcessing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	pending := testRecord("s1", "shooter-1", "comp-1")
	done := testRecord("s2", "shooter-2", "comp-1")
	done.ProcessingStatus = scores.ProcessingCompleted

	require.NoError(t, store.Insert(pending))
	require.NoError(t, store.Insert(done))

	records, err := store.ForProcessing()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "s1", records[0].ID)
}

func TestNullVerificationStatusCountsAsApproved(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	// Legacy rows predate verification and carry a NULL status.
	_, err := db.Exec(
		`INSERT INTO scores (id, competitor_id, competition_id, points, submitted_at) VALUES ('legacy', 'shooter-1', 'comp-1', 88, ?)`,
		time.Now().UnixMilli(),
	)
	require.NoError(t, err)

	got, err := store.Get("legacy")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, scores.VerificationStatus(""), got.Verification)
	assert.Equal(t, scores.StatusApproved, got.EffectiveStatus())
	assert.True(t, got.IsEligible())
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedRefs(t, db)

	require.NoError(t, store.Insert(testRecord("s1", "shooter-1", "comp-1")))
	require.NoError(t, store.Insert(testRecord("s2", "shooter-2", "comp-2")))

	store.ClearCompetition("comp-1")
	records, err := store.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "s2", records[0].ID)

	store.Clear()
	records, err = store.All()
	require.NoError(t, err)
	assert.Empty(t, records)
}
