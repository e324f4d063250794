package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"school-hub-backend/config"
)

func withOpener(t *testing.T, fn func(cfg *config.DatabaseConfig) (*gorm.DB, error)) {
	t.Helper()
	orig := openDB
	openDB = fn
	t.Cleanup(func() { openDB = orig })
}

func sqliteOpener(calls *int) func(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	return func(cfg *config.DatabaseConfig) (*gorm.DB, error) {
		*calls++
		return gorm.Open(sqlite.Open(fmt.Sprintf("file:conn%d?mode=memory&cache=shared", *calls)), &gorm.Config{})
	}
}

func TestConnLazyEstablishAndReuse(t *testing.T) {
	var calls int
	withOpener(t, sqliteOpener(&calls))

	conn := New(&config.DatabaseConfig{})
	assert.Equal(t, 0, calls, "New must not connect")

	db1, err := conn.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Schema migration ran on first establish.
	assert.True(t, db1.Migrator().HasTable("schools"))

	db2, err := conn.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, db1, db2)
	assert.Equal(t, 1, calls, "second Get must reuse the handle")
}

func TestConnInvalidateForcesReconnect(t *testing.T) {
	var calls int
	withOpener(t, sqliteOpener(&calls))

	conn := New(&config.DatabaseConfig{})

	db1, err := conn.Get(context.Background())
	require.NoError(t, err)

	conn.Invalidate()

	db2, err := conn.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NotSame(t, db1, db2)
}

func TestConnGetFailureIsRetriable(t *testing.T) {
	var calls int
	failures := 1
	withOpener(t, func(cfg *config.DatabaseConfig) (*gorm.DB, error) {
		if calls < failures {
			calls++
			return nil, errors.New("dial tcp: connection refused")
		}
		return sqliteOpener(&calls)(cfg)
	})

	conn := New(&config.DatabaseConfig{})

	_, err := conn.Get(context.Background())
	require.Error(t, err)

	// A failed bootstrap leaves no cached handle; the next call retries.
	_, err = conn.Get(context.Background())
	require.NoError(t, err)
}
