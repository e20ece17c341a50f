package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenring-club/steady-aim/internal/database"
)

func TestInitDBLocal(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	// The migrations should have created all three tables.
	for _, table := range []string{"competitions", "competitors", "scores"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "expected table %s to exist", table)
		assert.Equal(t, table, name)
	}

	var fk int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

func TestInitDBBadMigrationsDir(t *testing.T) {
	_, _, err := database.InitDB(":memory:", "", "", "./does-not-exist")
	assert.Error(t, err)
}
