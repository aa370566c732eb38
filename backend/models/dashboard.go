package models

import "time"

// WeekStats is the derived 7-day dashboard view over a user's check-ins.
type WeekStats struct {
	AvgRisk       float64      `json:"avg_risk"`
	AvgSleep      float64      `json:"avg_sleep"`
	TotalCheckIns int          `json:"total_check_ins"`
	StreakDays    int          `json:"streak_days"`
	TodayCheckIn  *CheckIn     `json:"today_check_in"`
	Trend         []TrendPoint `json:"trend"` // oldest first, chart-ready
}

type TrendPoint struct {
	Date      time.Time `json:"date"`
	RiskScore float64   `json:"risk_score"`
}

// PeerMetricDelta compares one of the user's metrics against the persona
// average. Direction is "better" or "worse".
type PeerMetricDelta struct {
	Metric    string  `json:"metric"`
	Mine      float64 `json:"mine"`
	PeerAvg   float64 `json:"peer_avg"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"`
}

// PeerComparison pairs the benchmark with the per-metric deltas. The user-side
// productivity and mental-wellness values are heuristic proxies derived from
// the risk average, not independently collected data.
type PeerComparison struct {
	Benchmark PersonaBenchmark  `json:"benchmark"`
	Deltas    []PeerMetricDelta `json:"deltas"`
}

// RiskResult is what a submission displays: score plus optional insight text.
// It is never persisted as its own record.
type RiskResult struct {
	RiskScore         *float64 `json:"risk_score"`
	ActionableInsight string   `json:"actionable_insight,omitempty"`
}
