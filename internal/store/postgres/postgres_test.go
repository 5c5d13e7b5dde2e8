package postgres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moodtrack/moodtrack/internal/store"
	"github.com/moodtrack/moodtrack/internal/store/storetest"
)

// TestPostgresStoreCompliance needs a running database with schema.sql
// applied. Point MOOD_BACKEND_TEST_POSTGRES_DSN at it to enable.
func TestPostgresStoreCompliance(t *testing.T) {
	dsn := os.Getenv("MOOD_BACKEND_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MOOD_BACKEND_TEST_POSTGRES_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		db, err := Open(dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		for _, table := range []string{"onboarding_steps", "mood_entries", "users"} {
			_, err := db.Exec("DELETE FROM " + table)
			require.NoError(t, err)
		}
		return NewWithDB(db)
	})
}
