package models

import "gorm.io/gorm"

// PersonaBenchmark holds externally maintained aggregate statistics for users
// sharing an (occupation, work mode) pair. The application only reads them.
type PersonaBenchmark struct {
	gorm.Model
	Occupation        string  `gorm:"index:idx_persona,priority:1" json:"occupation"`
	WorkMode          string  `gorm:"index:idx_persona,priority:2" json:"work_mode"`
	Count             int64   `json:"count"`
	AvgStress         float64 `json:"avg_stress"`
	AvgProductivity   float64 `json:"avg_productivity"`
	AvgMentalWellness float64 `json:"avg_mental_wellness"`
}
