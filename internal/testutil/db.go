// Package testutil provides a migrated in-memory database and a
// controllable clock for handler and store tests.
package testutil

import (
	"sync"
	"testing"
	"time"

	"unbelong-api/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated sqlite database that lives for the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite::memory:", nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection, otherwise each one sees its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Clock is a manual clock. Each call to Now returns the current time and
// then advances it by Step.
type Clock struct {
	mu   sync.Mutex
	t    time.Time
	Step time.Duration
}

func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{t: start, Step: step}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.Step)
	return now
}
