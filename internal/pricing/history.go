package pricing

import (
	"sort"
	"time"

	"github.com/auto72auto/wisebricks/internal/models"
)

// WeekStart truncates a timestamp to the start of its ISO calendar week:
// Monday 00:00 UTC. All weekly bucketing goes through this so week
// boundaries agree everywhere.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	back := (int(day.Weekday()) + 6) % 7 // Monday == 0
	return day.AddDate(0, 0, -back)
}

// WeeklyHistory buckets priced observations into per-week aggregates. Only
// the most recent weeksBack weeks that actually carry observations are kept,
// and the result is ordered by ascending week start. Unpriced observations
// are ignored.
func WeeklyHistory(observations []models.PriceObservation, weeksBack int) []models.WeeklyPricePoint {
	type bucket struct {
		sum   float64
		min   float64
		max   float64
		count int
	}

	buckets := make(map[time.Time]*bucket)
	for _, obs := range observations {
		if obs.PriceGBP == nil {
			continue
		}
		p := *obs.PriceGBP
		week := WeekStart(obs.ObservedAt)
		b, ok := buckets[week]
		if !ok {
			buckets[week] = &bucket{sum: p, min: p, max: p, count: 1}
			continue
		}
		b.sum += p
		b.count++
		if p < b.min {
			b.min = p
		}
		if p > b.max {
			b.max = p
		}
	}

	weeks := make([]time.Time, 0, len(buckets))
	for week := range buckets {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].After(weeks[j]) })
	if weeksBack > 0 && len(weeks) > weeksBack {
		weeks = weeks[:weeksBack]
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	points := make([]models.WeeklyPricePoint, 0, len(weeks))
	for _, week := range weeks {
		b := buckets[week]
		points = append(points, models.WeeklyPricePoint{
			WeekStart:        week,
			AvgPriceGBP:      Round2(b.sum / float64(b.count)),
			MinPriceGBP:      Round2(b.min),
			MaxPriceGBP:      Round2(b.max),
			ObservationCount: b.count,
		})
	}
	return points
}
