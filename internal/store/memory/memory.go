// Package memory provides a mutex-guarded in-memory store. It backs local
// development without a database and the HTTP handler tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/store"
)

// Store holds all state behind a single lock; good enough for the workloads
// it serves (dev and tests).
type Store struct {
	mu    sync.RWMutex
	moods map[string]model.MoodEntry
	users map[string]model.User
	steps map[string]model.OnboardingStep
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		moods: make(map[string]model.MoodEntry),
		users: make(map[string]model.User),
		steps: make(map[string]model.OnboardingStep),
	}
}

func (s *Store) Moods() store.Moods                     { return (*moods)(s) }
func (s *Store) Users() store.Users                     { return (*users)(s) }
func (s *Store) OnboardingSteps() store.OnboardingSteps { return (*steps)(s) }

func (s *Store) Ping(ctx context.Context) error { return nil }

// --- Moods ---

type moods Store

func (m *moods) Create(ctx context.Context, e *model.MoodEntry) (*model.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	out := *e
	out.ID = uuid.NewString()
	out.CreatedAt = now
	out.UpdatedAt = now
	m.moods[out.ID] = out
	return &out, nil
}

func (m *moods) GetByID(ctx context.Context, entryID string) (*model.MoodEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.moods[entryID]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := e
	return &out, nil
}

func (m *moods) List(ctx context.Context, req model.ListMoodEntriesRequest) ([]*model.MoodEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]model.MoodEntry, 0)
	for _, e := range m.moods {
		if e.UserID != req.UserID {
			continue
		}
		if req.StartDate != nil && e.CreatedAt.Before(*req.StartDate) {
			continue
		}
		if req.EndDate != nil && e.CreatedAt.After(*req.EndDate) {
			continue
		}
		if req.Mood != nil && e.Mood != *req.Mood {
			continue
		}
		matched = append(matched, e)
	}

	// newest first; id as tie-break to keep paging stable
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if req.Limit > 0 {
		page := req.Page
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * req.Limit
		if offset >= len(matched) {
			matched = nil
		} else {
			end := offset + req.Limit
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[offset:end]
		}
	}

	out := make([]*model.MoodEntry, len(matched))
	for i := range matched {
		e := matched[i]
		out[i] = &e
	}
	return out, nil
}

func (m *moods) Update(ctx context.Context, entryID string, mood *model.MoodType, note *string) (*model.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.moods[entryID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if mood != nil {
		e.Mood = *mood
	}
	if note != nil {
		n := *note
		e.Note = &n
	}
	e.UpdatedAt = time.Now().UTC()
	m.moods[entryID] = e
	out := e
	return &out, nil
}

func (m *moods) Delete(ctx context.Context, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.moods[entryID]; !ok {
		return model.ErrNotFound
	}
	delete(m.moods, entryID)
	return nil
}

// --- Users ---

type users Store

func (u *users) Create(ctx context.Context, in *model.User) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, existing := range u.users {
		if strings.EqualFold(existing.Email, in.Email) {
			return nil, model.ErrConflict
		}
	}
	out := *in
	out.ID = uuid.NewString()
	out.CreatedAt = time.Now().UTC()
	u.users[out.ID] = out
	res := out
	return &res, nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	usr, ok := u.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := usr
	return &out, nil
}

func (u *users) SetOnboardingCompleted(ctx context.Context, userID string) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	usr, ok := u.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	usr.OnboardingCompleted = true
	u.users[userID] = usr
	out := usr
	return &out, nil
}

// --- Onboarding steps ---

type steps Store

func (s *steps) CreateBatch(ctx context.Context, in []*model.OnboardingStep) ([]*model.OnboardingStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	out := make([]*model.OnboardingStep, 0, len(in))
	for _, st := range in {
		cp := *st
		cp.ID = uuid.NewString()
		cp.UpdatedAt = now
		s.steps[cp.ID] = cp
		res := cp
		out = append(out, &res)
	}
	return out, nil
}

func (s *steps) ListByUser(ctx context.Context, userID string) ([]*model.OnboardingStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.OnboardingStep, 0)
	for _, st := range s.steps {
		if st.UserID == userID {
			cp := st
			out = append(out, &cp)
		}
	}
	// stable wizard order
	order := make(map[string]int, len(model.OnboardingStepNames))
	for i, name := range model.OnboardingStepNames {
		order[name] = i
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i].Step] < order[out[j].Step] })
	return out, nil
}

func (s *steps) Update(ctx context.Context, stepID string, completed *bool, data map[string]interface{}) (*model.OnboardingStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.steps[stepID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if completed != nil {
		st.Completed = *completed
	}
	if data != nil {
		st.Data = data
	}
	st.UpdatedAt = time.Now().UTC()
	s.steps[stepID] = st
	out := st
	return &out, nil
}
