package services

import (
	"context"

	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/store"
)

// StartOnboardingRequest carries the already-trimmed, validated signup fields.
type StartOnboardingRequest struct {
	Email     string
	FirstName string
	LastName  string
	Company   string
	Role      string
}

// OnboardingService orchestrates the signup wizard: account creation, step
// tracking and completion.
type OnboardingService struct {
	store store.Store
}

func NewOnboardingService(s store.Store) *OnboardingService {
	return &OnboardingService{store: s}
}

// Start creates the account and its wizard steps. A duplicate email surfaces
// as model.ErrConflict.
func (s *OnboardingService) Start(ctx context.Context, req StartOnboardingRequest) (*model.User, error) {
	u, err := s.store.Users().Create(ctx, &model.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Role:      req.Role,
	})
	if err != nil {
		return nil, err
	}

	stepRows := make([]*model.OnboardingStep, 0, len(model.OnboardingStepNames))
	for _, name := range model.OnboardingStepNames {
		stepRows = append(stepRows, &model.OnboardingStep{UserID: u.ID, Step: name})
	}
	if _, err := s.store.OnboardingSteps().CreateBatch(ctx, stepRows); err != nil {
		return nil, err
	}
	return u, nil
}

// Steps lists a user's wizard steps in wizard order. A user with no steps is
// reported as model.ErrNotFound.
func (s *OnboardingService) Steps(ctx context.Context, userID string) ([]*model.OnboardingStep, error) {
	steps, err := s.store.OnboardingSteps().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, model.ErrNotFound
	}
	return steps, nil
}

// UpdateStep applies a partial update to one wizard step.
func (s *OnboardingService) UpdateStep(ctx context.Context, stepID string, completed *bool, data map[string]interface{}) (*model.OnboardingStep, error) {
	return s.store.OnboardingSteps().Update(ctx, stepID, completed, data)
}

// Complete marks the user's onboarding as finished.
func (s *OnboardingService) Complete(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().SetOnboardingCompleted(ctx, userID)
}
