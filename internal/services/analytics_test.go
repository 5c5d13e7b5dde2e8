package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moodtrack/moodtrack/internal/model"
)

func entryOn(day string, mood model.MoodType) *model.MoodEntry {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return &model.MoodEntry{Mood: mood, CreatedAt: t.Add(10 * time.Hour)}
}

func TestComputeAnalyticsEmpty(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	a := computeAnalytics(nil, now)

	assert.Equal(t, 0, a.TotalEntries)
	assert.Equal(t, 0.0, a.AverageMoodScore)
	assert.Equal(t, 0, a.Streaks.Current)
	assert.Equal(t, 0, a.Streaks.Longest)

	// distribution still carries every enumeration member
	assert.Len(t, a.MoodDistribution, len(model.MoodTypes()))
	for _, m := range model.MoodTypes() {
		assert.Equal(t, 0, a.MoodDistribution[m])
	}
}

func TestComputeAnalyticsDistributionAndAverage(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	entries := []*model.MoodEntry{
		entryOn("2025-06-15", model.MoodHappy),   // 5
		entryOn("2025-06-15", model.MoodSad),     // 2
		entryOn("2025-06-14", model.MoodNeutral), // 3
	}

	a := computeAnalytics(entries, now)
	assert.Equal(t, 3, a.TotalEntries)
	assert.Equal(t, 2, a.MoodDistribution[model.MoodHappy]+a.MoodDistribution[model.MoodSad])
	assert.Equal(t, 1, a.MoodDistribution[model.MoodNeutral])
	assert.Equal(t, 0, a.MoodDistribution[model.MoodAngry])
	// (5+2+3)/3 = 3.333... rounds to 3.3
	assert.Equal(t, 3.3, a.AverageMoodScore)
}

func TestComputeStreaks(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("CurrentRunsBackFromToday", func(t *testing.T) {
		entries := []*model.MoodEntry{
			entryOn("2025-06-13", model.MoodCalm),
			entryOn("2025-06-14", model.MoodCalm),
			entryOn("2025-06-15", model.MoodCalm),
		}
		current, longest := computeStreaks(entries, now)
		assert.Equal(t, 3, current)
		assert.Equal(t, 3, longest)
	})

	t.Run("TodayMissingAnchorsYesterday", func(t *testing.T) {
		entries := []*model.MoodEntry{
			entryOn("2025-06-13", model.MoodCalm),
			entryOn("2025-06-14", model.MoodCalm),
		}
		current, longest := computeStreaks(entries, now)
		assert.Equal(t, 2, current)
		assert.Equal(t, 2, longest)
	})

	t.Run("GapBreaksCurrent", func(t *testing.T) {
		entries := []*model.MoodEntry{
			entryOn("2025-06-10", model.MoodCalm),
			entryOn("2025-06-11", model.MoodCalm),
			entryOn("2025-06-12", model.MoodCalm),
			entryOn("2025-06-15", model.MoodCalm),
		}
		current, longest := computeStreaks(entries, now)
		assert.Equal(t, 1, current)
		assert.Equal(t, 3, longest)
	})

	t.Run("StaleEntriesOnly", func(t *testing.T) {
		entries := []*model.MoodEntry{
			entryOn("2025-05-01", model.MoodCalm),
			entryOn("2025-05-02", model.MoodCalm),
		}
		current, longest := computeStreaks(entries, now)
		assert.Equal(t, 0, current)
		assert.Equal(t, 2, longest)
	})

	t.Run("MultipleEntriesSameDayCountOnce", func(t *testing.T) {
		entries := []*model.MoodEntry{
			entryOn("2025-06-15", model.MoodCalm),
			entryOn("2025-06-15", model.MoodSad),
			entryOn("2025-06-15", model.MoodHappy),
		}
		current, longest := computeStreaks(entries, now)
		assert.Equal(t, 1, current)
		assert.Equal(t, 1, longest)
	})
}
