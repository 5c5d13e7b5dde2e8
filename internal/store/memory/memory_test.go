package memory

import (
	"testing"

	"github.com/moodtrack/moodtrack/internal/store"
	"github.com/moodtrack/moodtrack/internal/store/storetest"
)

func TestMemoryStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New()
	})
}
