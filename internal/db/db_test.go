package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// InitTest поднимает отдельную базу в памяти для каждого теста
func InitTest(t *testing.T) {
	require.NoError(t, InitMemoryDB(t.Name()), "Failed to init test database")
	t.Cleanup(func() {
		CloseDB()
	})
}

func TestApplySchemaIsIdempotent(t *testing.T) {
	InitTest(t)

	_, err := CreateUser("alice", "secret")
	require.NoError(t, err)

	// Повторное применение схемы не трогает существующие строки
	require.NoError(t, ApplySchema())
	_, err = GetUserByLogin("alice")
	assert.NoError(t, err)
}

func TestCleanupDB(t *testing.T) {
	InitTest(t)

	user, err := CreateUser("alice", "secret")
	require.NoError(t, err)
	_, err = CreateCalculation(user.ID, "1+1", "2")
	require.NoError(t, err)

	require.NoError(t, CleanupDB())

	_, err = GetUserByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	calculations, err := GetUserCalculations(user.ID)
	require.NoError(t, err)
	assert.Empty(t, calculations)
}

func TestParseTimestamp(t *testing.T) {
	expected := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	for _, value := range []string{
		"2025-03-14 15:09:26",
		"2025-03-14T15:09:26Z",
		"2025-03-14T15:09:26",
		"2025-03-14T15:09:26+00:00",
	} {
		t.Run(value, func(t *testing.T) {
			parsed, err := parseTimestamp(value)
			require.NoError(t, err)
			assert.True(t, expected.Equal(parsed), "got %v", parsed)
		})
	}

	_, err := parseTimestamp("yesterday")
	assert.Error(t, err)
}
