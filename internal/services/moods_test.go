package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/store/memory"
)

func TestMoodServiceOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewMoodService(memory.New())

	note := "owned by alice"
	entry, err := svc.CreateMoodEntry(ctx, "alice", model.MoodHappy, &note)
	require.NoError(t, err)

	t.Run("OwnerReads", func(t *testing.T) {
		got, err := svc.GetMoodEntryById(ctx, entry.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		_, err := svc.GetMoodEntryById(ctx, entry.ID, "bob")
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("StrangerCannotUpdate", func(t *testing.T) {
		mood := model.MoodSad
		_, err := svc.UpdateMoodEntry(ctx, entry.ID, "bob", &mood, nil)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("StrangerCannotDelete", func(t *testing.T) {
		err := svc.DeleteMoodEntry(ctx, entry.ID, "bob")
		assert.ErrorIs(t, err, model.ErrForbidden)

		// entry survives the denied delete
		got, err := svc.GetMoodEntryById(ctx, entry.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
	})

	t.Run("MissingEntryIsNotFound", func(t *testing.T) {
		_, err := svc.GetMoodEntryById(ctx, "no-such-id", "alice")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestMoodServiceAnalyticsScopedToUser(t *testing.T) {
	ctx := context.Background()
	svc := NewMoodService(memory.New())

	_, err := svc.CreateMoodEntry(ctx, "alice", model.MoodHappy, nil)
	require.NoError(t, err)
	_, err = svc.CreateMoodEntry(ctx, "bob", model.MoodAngry, nil)
	require.NoError(t, err)

	a, err := svc.GetMoodAnalytics(ctx, "alice", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, a.TotalEntries)
	assert.Equal(t, 1, a.MoodDistribution[model.MoodHappy])
	assert.Equal(t, 0, a.MoodDistribution[model.MoodAngry])
	assert.Equal(t, 5.0, a.AverageMoodScore)
}
