package services

import (
	"context"
	"fmt"
	"time"

	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/store"
)

// MoodService orchestrates mood-entry use cases: ownership checks on
// id-addressed operations, delegation to the store, analytics aggregation.
type MoodService struct {
	store store.Store
}

func NewMoodService(s store.Store) *MoodService {
	return &MoodService{store: s}
}

// GetMoodEntries lists the caller's entries, newest first. An empty result is
// a successful result.
func (s *MoodService) GetMoodEntries(ctx context.Context, userID string, start, end *time.Time, mood *model.MoodType, page, limit int) ([]*model.MoodEntry, error) {
	return s.store.Moods().List(ctx, model.ListMoodEntriesRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Mood:      mood,
		Page:      page,
		Limit:     limit,
	})
}

// GetMoodEntryById fetches one entry. A missing entry is ErrNotFound; an entry
// owned by someone else is ErrForbidden, reported without exposing content.
func (s *MoodService) GetMoodEntryById(ctx context.Context, entryID, userID string) (*model.MoodEntry, error) {
	e, err := s.store.Moods().GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, fmt.Errorf("mood entry %s: %w", entryID, model.ErrForbidden)
	}
	return e, nil
}

// CreateMoodEntry records a new entry for userID. The note must already be
// sanitized by the validation layer.
func (s *MoodService) CreateMoodEntry(ctx context.Context, userID string, mood model.MoodType, note *string) (*model.MoodEntry, error) {
	return s.store.Moods().Create(ctx, &model.MoodEntry{
		UserID: userID,
		Mood:   mood,
		Note:   note,
	})
}

// UpdateMoodEntry applies a partial update after an ownership check. Only
// non-nil fields are touched; UpdatedAt always refreshes.
func (s *MoodService) UpdateMoodEntry(ctx context.Context, entryID, userID string, mood *model.MoodType, note *string) (*model.MoodEntry, error) {
	if _, err := s.GetMoodEntryById(ctx, entryID, userID); err != nil {
		return nil, err
	}
	return s.store.Moods().Update(ctx, entryID, mood, note)
}

// DeleteMoodEntry removes an entry after an ownership check. Deleting an
// already-deleted id reports ErrNotFound.
func (s *MoodService) DeleteMoodEntry(ctx context.Context, entryID, userID string) error {
	if _, err := s.GetMoodEntryById(ctx, entryID, userID); err != nil {
		return err
	}
	return s.store.Moods().Delete(ctx, entryID)
}

// GetMoodAnalytics aggregates the caller's entries in the optional window.
func (s *MoodService) GetMoodAnalytics(ctx context.Context, userID string, start, end *time.Time) (*model.MoodAnalytics, error) {
	entries, err := s.store.Moods().List(ctx, model.ListMoodEntriesRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, err
	}
	return computeAnalytics(entries, time.Now().UTC()), nil
}
