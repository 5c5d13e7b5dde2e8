package model

import "time"

// MoodType is the closed set of moods a user can record.
type MoodType string

const (
	MoodHappy   MoodType = "HAPPY"
	MoodExcited MoodType = "EXCITED"
	MoodCalm    MoodType = "CALM"
	MoodNeutral MoodType = "NEUTRAL"
	MoodAnxious MoodType = "ANXIOUS"
	MoodSad     MoodType = "SAD"
	MoodAngry   MoodType = "ANGRY"
)

// moodScores maps each mood to the fixed numeric scale used by analytics.
var moodScores = map[MoodType]int{
	MoodHappy:   5,
	MoodExcited: 5,
	MoodCalm:    4,
	MoodNeutral: 3,
	MoodAnxious: 2,
	MoodSad:     2,
	MoodAngry:   1,
}

// Valid reports whether m is a member of the mood enumeration.
func (m MoodType) Valid() bool {
	_, ok := moodScores[m]
	return ok
}

// Score returns the numeric value of m on the analytics scale. Unknown moods
// score zero; callers are expected to validate first.
func (m MoodType) Score() int { return moodScores[m] }

// MoodTypes returns all enumeration members in descending score order.
func MoodTypes() []MoodType {
	return []MoodType{MoodHappy, MoodExcited, MoodCalm, MoodNeutral, MoodAnxious, MoodSad, MoodAngry}
}

// MoodEntry is a single user-recorded emotional-state record.
// ID, UserID and CreatedAt are immutable after creation.
type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      MoodType  `json:"mood"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MoodStreaks reports consecutive-day recording runs.
type MoodStreaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// MoodAnalytics is derived on demand from a user's entries; it is never stored.
type MoodAnalytics struct {
	TotalEntries     int              `json:"totalEntries"`
	MoodDistribution map[MoodType]int `json:"moodDistribution"`
	AverageMoodScore float64          `json:"averageMoodScore"`
	Streaks          MoodStreaks      `json:"streaks"`
}

// ListMoodEntriesRequest captures the fixed positional contract for listing
// entries: every field is always present in the call shape, nil/zero meaning
// "no bound". Limit <= 0 means unbounded.
type ListMoodEntriesRequest struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Mood      *MoodType
	Page      int
	Limit     int
}

// User is an onboarding account. Mood entries reference users only by ID;
// tokens are minted against the same identifier space.
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Company             string    `json:"company,omitempty"`
	Role                string    `json:"role,omitempty"`
	OnboardingCompleted bool      `json:"onboardingCompleted"`
	CreatedAt           time.Time `json:"createdAt"`
}

// OnboardingStep is one stage of the onboarding wizard.
type OnboardingStep struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	Step      string                 `json:"step"`
	Completed bool                   `json:"completed"`
	Data      map[string]interface{} `json:"data,omitempty"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// OnboardingStepNames are created, in order, when onboarding starts.
var OnboardingStepNames = []string{"profile", "preferences", "verification"}
