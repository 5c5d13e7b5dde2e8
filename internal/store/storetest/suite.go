// Package storetest holds a compliance suite run against every store.Store
// implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store per invocation.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("moods", func(t *testing.T) { runMoods(t, makeStore(t)) })
	t.Run("users", func(t *testing.T) { runUsers(t, makeStore(t)) })
	t.Run("onboarding_steps", func(t *testing.T) { runSteps(t, makeStore(t)) })
}

func runMoods(t *testing.T, s store.Store) {
	ctx := context.Background()
	userID := "u-" + uuid.NewString()

	require.NoError(t, s.Ping(ctx))

	note := "first entry"
	created, err := s.Moods().Create(ctx, &model.MoodEntry{UserID: userID, Mood: model.MoodHappy, Note: &note})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, userID, created.UserID)
	require.False(t, created.CreatedAt.IsZero())
	require.False(t, created.UpdatedAt.Before(created.CreatedAt))

	got, err := s.Moods().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, model.MoodHappy, got.Mood)
	require.NotNil(t, got.Note)
	require.Equal(t, note, *got.Note)

	_, err = s.Moods().GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, model.ErrNotFound)

	// a second, later entry for list checks; spaced out so creation
	// timestamps order deterministically
	time.Sleep(5 * time.Millisecond)
	second, err := s.Moods().Create(ctx, &model.MoodEntry{UserID: userID, Mood: model.MoodSad})
	require.NoError(t, err)

	// other users' entries never leak into a list
	_, err = s.Moods().Create(ctx, &model.MoodEntry{UserID: "someone-else", Mood: model.MoodAngry})
	require.NoError(t, err)

	all, err := s.Moods().List(ctx, model.ListMoodEntriesRequest{UserID: userID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// newest first
	require.Equal(t, second.ID, all[0].ID)
	require.Equal(t, created.ID, all[1].ID)

	sad := model.MoodSad
	filtered, err := s.Moods().List(ctx, model.ListMoodEntriesRequest{UserID: userID, Mood: &sad})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, second.ID, filtered[0].ID)

	future := time.Now().UTC().Add(time.Hour)
	none, err := s.Moods().List(ctx, model.ListMoodEntriesRequest{UserID: userID, StartDate: &future})
	require.NoError(t, err)
	require.Empty(t, none)

	paged, err := s.Moods().List(ctx, model.ListMoodEntriesRequest{UserID: userID, Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	require.Equal(t, created.ID, paged[0].ID)

	// partial update: mood only, note untouched, updatedAt refreshed
	calm := model.MoodCalm
	updated, err := s.Moods().Update(ctx, created.ID, &calm, nil)
	require.NoError(t, err)
	require.Equal(t, model.MoodCalm, updated.Mood)
	require.NotNil(t, updated.Note)
	require.Equal(t, note, *updated.Note)
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	newNote := "rewritten"
	updated, err = s.Moods().Update(ctx, created.ID, nil, &newNote)
	require.NoError(t, err)
	require.Equal(t, model.MoodCalm, updated.Mood)
	require.Equal(t, newNote, *updated.Note)

	_, err = s.Moods().Update(ctx, uuid.NewString(), &calm, nil)
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Moods().Delete(ctx, created.ID))
	require.ErrorIs(t, s.Moods().Delete(ctx, created.ID), model.ErrNotFound)
	_, err = s.Moods().GetByID(ctx, created.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func runUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	email := "u-" + uuid.NewString() + "@example.test"

	u, err := s.Users().Create(ctx, &model.User{Email: email, FirstName: "Ada", LastName: "Lovelace", Company: "Analytical", Role: "Engineer"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.False(t, u.OnboardingCompleted)

	_, err = s.Users().Create(ctx, &model.User{Email: email, FirstName: "Dup", LastName: "User"})
	require.ErrorIs(t, err, model.ErrConflict)

	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, email, got.Email)

	done, err := s.Users().SetOnboardingCompleted(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, done.OnboardingCompleted)

	_, err = s.Users().SetOnboardingCompleted(ctx, uuid.NewString())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func runSteps(t *testing.T, s store.Store) {
	ctx := context.Background()

	u, err := s.Users().Create(ctx, &model.User{Email: "steps-" + uuid.NewString() + "@example.test", FirstName: "Step", LastName: "Owner"})
	require.NoError(t, err)

	in := make([]*model.OnboardingStep, 0, len(model.OnboardingStepNames))
	for _, name := range model.OnboardingStepNames {
		in = append(in, &model.OnboardingStep{UserID: u.ID, Step: name})
	}
	createdSteps, err := s.OnboardingSteps().CreateBatch(ctx, in)
	require.NoError(t, err)
	require.Len(t, createdSteps, len(model.OnboardingStepNames))

	listed, err := s.OnboardingSteps().ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, listed, len(model.OnboardingStepNames))
	for i, name := range model.OnboardingStepNames {
		require.Equal(t, name, listed[i].Step)
		require.False(t, listed[i].Completed)
	}

	empty, err := s.OnboardingSteps().ListByUser(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Empty(t, empty)

	completed := true
	data := map[string]interface{}{"preferences": []interface{}{"email", "push"}}
	updated, err := s.OnboardingSteps().Update(ctx, listed[1].ID, &completed, data)
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, data, updated.Data)

	_, err = s.OnboardingSteps().Update(ctx, uuid.NewString(), &completed, nil)
	require.ErrorIs(t, err, model.ErrNotFound)
}
