package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moodtrack/moodtrack/internal/store"
	"github.com/moodtrack/moodtrack/internal/store/storetest"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		db, err := Open(filepath.Join(t.TempDir(), "moodtrack.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return NewWithDB(db)
	})
}
