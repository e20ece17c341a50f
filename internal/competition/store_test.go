package competition_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/database"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (competition.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := competition.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func TestUpsertAndByID(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	meta := competition.Meta{
		ID:           "comp-1",
		Name:         "Spring Open",
		ShotsPerCard: 25,
		Format:       competition.FormatProne,
		Type:         competition.TypeOutdoor,
	}
	require.NoError(t, store.Upsert(meta))

	got, err := store.ByID("comp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, meta, *got)

	meta.Name = "Spring Open 2025"
	meta.ShotsPerCard = 10
	require.NoError(t, store.Upsert(meta))

	got, err = store.ByID("comp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Spring Open 2025", got.Name)
	assert.Equal(t, 10, got.ShotsPerCard)
}

func TestByIDUnknownCompetition(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	got, err := store.ByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAll(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.Upsert(competition.Meta{ID: "comp-1", Name: "A", Format: competition.FormatProne, Type: competition.TypeIndoor}))
	require.NoError(t, store.Upsert(competition.Meta{ID: "comp-2", Name: "B", Format: competition.FormatBenchrest, Type: competition.TypeOutdoor}))

	metas, err := store.All()
	require.NoError(t, err)
	assert.Len(t, metas, 2)
}

func TestValidFormatAndType(t *testing.T) {
	assert.True(t, competition.ValidFormat(competition.FormatProne))
	assert.True(t, competition.ValidFormat(competition.FormatStanding))
	assert.True(t, competition.ValidFormat(competition.FormatBenchrest))
	assert.False(t, competition.ValidFormat("swimming"))

	assert.True(t, competition.ValidType(competition.TypeIndoor))
	assert.True(t, competition.ValidType(competition.TypeOutdoor))
	assert.False(t, competition.ValidType("underwater"))
}
