package services

import (
	"math"
	"sort"
	"time"

	"github.com/moodtrack/moodtrack/internal/model"
)

// computeAnalytics derives aggregate statistics from a user's entries. The
// distribution always carries every enumeration member so clients can render
// a complete chart. Scores are rounded to one decimal place.
func computeAnalytics(entries []*model.MoodEntry, now time.Time) *model.MoodAnalytics {
	dist := make(map[model.MoodType]int, len(model.MoodTypes()))
	for _, m := range model.MoodTypes() {
		dist[m] = 0
	}

	var scoreSum int
	for _, e := range entries {
		dist[e.Mood]++
		scoreSum += e.Mood.Score()
	}

	var avg float64
	if len(entries) > 0 {
		avg = math.Round(float64(scoreSum)/float64(len(entries))*10) / 10
	}

	current, longest := computeStreaks(entries, now)

	return &model.MoodAnalytics{
		TotalEntries:     len(entries),
		MoodDistribution: dist,
		AverageMoodScore: avg,
		Streaks:          model.MoodStreaks{Current: current, Longest: longest},
	}
}

// computeStreaks counts consecutive UTC days with at least one entry. The
// current streak runs back from today, or from yesterday when today has no
// entry yet.
func computeStreaks(entries []*model.MoodEntry, now time.Time) (current, longest int) {
	if len(entries) == 0 {
		return 0, 0
	}

	daySet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		daySet[dayKey(e.CreatedAt)] = struct{}{}
	}

	days := make([]time.Time, 0, len(daySet))
	for k := range daySet {
		d, _ := time.Parse("2006-01-02", k)
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	anchor := startOfDay(now)
	if _, ok := daySet[dayKey(anchor)]; !ok {
		anchor = anchor.Add(-24 * time.Hour)
	}
	for {
		if _, ok := daySet[dayKey(anchor)]; !ok {
			break
		}
		current++
		anchor = anchor.Add(-24 * time.Hour)
	}
	return current, longest
}

func dayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
