package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDriver(t *testing.T) {
	assert.Equal(t, DriverSQLite, NormalizeDriver(""))
	assert.Equal(t, DriverSQLite, NormalizeDriver("SQLite3"))
	assert.Equal(t, DriverPostgres, NormalizeDriver("postgres"))
	assert.Equal(t, "", NormalizeDriver("mysql"))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"?", "?", "?"}, Placeholders("sqlite", 3))
	assert.Equal(t, []string{"$1", "$2"}, Placeholders("pgx", 2))
	assert.Empty(t, Placeholders("pgx", 0))
}

func TestOpenSQLiteInMemory(t *testing.T) {
	conn, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	var one int
	require.NoError(t, conn.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)

	_, err = Open("sqlite", " ")
	assert.Error(t, err)
}
