package services

import (
	"math"
	"time"

	"wellsync/backend/models"
)

// AggregateWeek computes the dashboard statistics over a user's most recent
// check-ins (the store query bounds the window to the last 7 days, newest
// first). A check-in without a score still counts as a zero-risk sample: it
// is included in the denominator, pulling the average down. That skew is the
// documented product behavior, not an accident.
func AggregateWeek(checkIns []models.CheckIn, now time.Time) models.WeekStats {
	stats := models.WeekStats{TotalCheckIns: len(checkIns)}
	if len(checkIns) == 0 {
		stats.Trend = []models.TrendPoint{}
		return stats
	}

	var riskSum, sleepSum float64
	for i := range checkIns {
		riskSum += checkIns[i].RiskValue()
		sleepSum += checkIns[i].SleepHours
	}
	stats.AvgRisk = riskSum / float64(len(checkIns))
	stats.AvgSleep = sleepSum / float64(len(checkIns))

	dayStart := startOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)
	for i := range checkIns {
		created := checkIns[i].CreatedAt
		if !created.Before(dayStart) && created.Before(dayEnd) {
			stats.TodayCheckIn = &checkIns[i]
			break
		}
	}

	// The store returns newest first; the chart wants oldest first.
	stats.Trend = make([]models.TrendPoint, 0, len(checkIns))
	for i := len(checkIns) - 1; i >= 0; i-- {
		stats.Trend = append(stats.Trend, models.TrendPoint{
			Date:      checkIns[i].CreatedAt,
			RiskScore: checkIns[i].RiskValue(),
		})
	}

	stats.StreakDays = CheckinStreak(checkIns, now)
	return stats
}

// CheckinStreak counts consecutive calendar days with a check-in, walking
// backwards from today. A streak survives if the newest check-in is from
// today or yesterday.
func CheckinStreak(checkIns []models.CheckIn, now time.Time) int {
	if len(checkIns) == 0 {
		return 0
	}

	day := startOfDay(now)
	streak := 0
	i := 0
	// Skip today only if there is no check-in for it yet.
	if startOfDay(checkIns[0].CreatedAt).Before(day) {
		day = day.Add(-24 * time.Hour)
	}
	for i < len(checkIns) {
		checkDay := startOfDay(checkIns[i].CreatedAt)
		if checkDay.Equal(day) {
			streak++
			day = day.Add(-24 * time.Hour)
			i++
			continue
		}
		if checkDay.Before(day) {
			break
		}
		// Duplicate entry inside one day, move on.
		i++
	}
	return streak
}

// ComparePeers builds the peer-relative deltas against a persona benchmark.
// The user-side productivity and mental-wellness values are heuristic proxies
// derived from the 7-day risk average; stressLevel is compared only when the
// caller has a submitted value in hand (nil otherwise, since stress is not
// persisted on check-ins).
func ComparePeers(stats models.WeekStats, bench models.PersonaBenchmark, stressLevel *int) models.PeerComparison {
	userProductivity := clamp(100-stats.AvgRisk, 0, 100)
	sleepBonus := 0.0
	if stats.AvgSleep >= 7 {
		sleepBonus = 10
	}
	userMentalWellness := clamp(100-stats.AvgRisk+sleepBonus, 0, 100)

	deltas := []models.PeerMetricDelta{
		peerDelta("productivity", userProductivity, bench.AvgProductivity, true),
		peerDelta("mental_wellness", userMentalWellness, bench.AvgMentalWellness, true),
	}
	if stressLevel != nil {
		deltas = append(deltas, peerDelta("stress", float64(*stressLevel), bench.AvgStress, false))
	}

	return models.PeerComparison{Benchmark: bench, Deltas: deltas}
}

// peerDelta labels the direction by simple comparison: for metrics where
// higher is better, being above the peer average is "better"; for stress it
// is the other way around.
func peerDelta(metric string, mine, peerAvg float64, higherIsBetter bool) models.PeerMetricDelta {
	direction := "better"
	if (higherIsBetter && mine < peerAvg) || (!higherIsBetter && mine > peerAvg) {
		direction = "worse"
	}
	return models.PeerMetricDelta{
		Metric:    metric,
		Mine:      mine,
		PeerAvg:   peerAvg,
		Delta:     math.Abs(mine - peerAvg),
		Direction: direction,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
