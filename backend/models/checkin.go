package models

import "gorm.io/gorm"

// CheckIn is one wellness record per user per calendar day. Work screen hours
// are not stored: they only feed the derived screen-time total sent to the
// scoring service. CalculatedRiskScore stays nil when the scoring response
// carried no recognizable score field.
type CheckIn struct {
	gorm.Model
	UserID              uint     `gorm:"index;not null" json:"user_id"`
	SleepHours          float64  `json:"sleep_hours"`
	SleepQuality        int      `json:"sleep_quality_1_5"` // 1-5
	ExerciseMinutes     int      `json:"exercise_minutes_per_week"`
	SocialHours         float64  `json:"social_hours_per_week"`
	LeisureScreenHours  float64  `json:"leisure_screen_hours"`
	CalculatedRiskScore *float64 `json:"calculated_risk_score"`
}

// RiskValue returns the stored score with the missing-as-zero policy used
// everywhere a score is averaged or charted.
func (c *CheckIn) RiskValue() float64 {
	if c.CalculatedRiskScore == nil {
		return 0
	}
	return *c.CalculatedRiskScore
}
