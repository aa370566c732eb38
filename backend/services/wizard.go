package services

import "strconv"

// TotalSteps is the number of check-in form steps:
// Sleep, Activity, Screen Time, Wellness Indicators.
const TotalSteps = 4

// CheckinForm carries the eight wellness metrics in the wire format the
// check-in UI sends them in: raw strings. Parsing never fails; a malformed
// value falls back to the field's default.
type CheckinForm struct {
	SleepHours         string `json:"sleep_hours"`
	SleepQuality       string `json:"sleep_quality"`
	ExerciseMinutes    string `json:"exercise_minutes"`
	SocialHours        string `json:"social_hours"`
	LeisureScreenHours string `json:"leisure_screen_hours"`
	WorkScreenHours    string `json:"work_screen_hours"`
	StressLevel        string `json:"stress_level"`
	MentalWellness     string `json:"mental_wellness"`
}

// CheckinMetrics is the parsed form. ScreenTimeHours is derived, not entered.
type CheckinMetrics struct {
	SleepHours         float64
	SleepQuality       int
	ExerciseMinutes    int
	SocialHours        float64
	LeisureScreenHours float64
	WorkScreenHours    float64
	StressLevel        int
	MentalWellness     int
}

// Metrics parses the form with the documented defaults.
func (f CheckinForm) Metrics() CheckinMetrics {
	return CheckinMetrics{
		SleepHours:         parseFloat(f.SleepHours, 7),
		SleepQuality:       parseInt(f.SleepQuality, 3),
		ExerciseMinutes:    parseInt(f.ExerciseMinutes, 0),
		SocialHours:        parseFloat(f.SocialHours, 0),
		LeisureScreenHours: parseFloat(f.LeisureScreenHours, 0),
		WorkScreenHours:    parseFloat(f.WorkScreenHours, 8),
		StressLevel:        parseInt(f.StressLevel, 5),
		MentalWellness:     parseInt(f.MentalWellness, 50),
	}
}

// ScreenTimeHours is the derived daily screen total sent to the scoring
// service (work + leisure).
func (m CheckinMetrics) ScreenTimeHours() float64 {
	return m.WorkScreenHours + m.LeisureScreenHours
}

// Wizard models the four-step check-in flow. A submit attempt before the
// last step is not a validation error: it advances the step instead. This
// guards against accidental early submission (Enter key, double click).
type Wizard struct {
	Step int
}

func NewWizard() *Wizard {
	return &Wizard{Step: 1}
}

func (w *Wizard) Next() {
	if w.Step < TotalSteps {
		w.Step++
	}
}

func (w *Wizard) Previous() {
	if w.Step > 1 {
		w.Step--
	}
}

// Submittable reports whether a submit on the current step should reach the
// workflow. When false the caller must advance instead of submitting.
func (w *Wizard) Submittable() bool {
	return w.Step >= TotalSteps
}

func parseFloat(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func parseInt(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}
