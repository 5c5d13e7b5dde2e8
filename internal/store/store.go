package store

import (
	"context"

	"github.com/moodtrack/moodtrack/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite,
// memory) and report absent rows with model.ErrNotFound and duplicate keys
// with model.ErrConflict.
type Store interface {
	Moods() Moods
	Users() Users
	OnboardingSteps() OnboardingSteps

	// Ping verifies connectivity for health checks.
	Ping(ctx context.Context) error
}

// Moods persists mood entries. List returns entries ordered by creation time
// descending; that ordering is part of the contract.
type Moods interface {
	Create(ctx context.Context, e *model.MoodEntry) (*model.MoodEntry, error)
	GetByID(ctx context.Context, entryID string) (*model.MoodEntry, error)
	List(ctx context.Context, req model.ListMoodEntriesRequest) ([]*model.MoodEntry, error)
	// Update touches only non-nil fields and refreshes UpdatedAt.
	Update(ctx context.Context, entryID string, mood *model.MoodType, note *string) (*model.MoodEntry, error)
	Delete(ctx context.Context, entryID string) error
}

// Users persists onboarding accounts.
type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	SetOnboardingCompleted(ctx context.Context, userID string) (*model.User, error)
}

// OnboardingSteps persists wizard steps.
type OnboardingSteps interface {
	CreateBatch(ctx context.Context, steps []*model.OnboardingStep) ([]*model.OnboardingStep, error)
	ListByUser(ctx context.Context, userID string) ([]*model.OnboardingStep, error)
	// Update touches only non-nil fields and refreshes UpdatedAt.
	Update(ctx context.Context, stepID string, completed *bool, data map[string]interface{}) (*model.OnboardingStep, error)
}
