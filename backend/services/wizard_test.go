package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWizardNavigation(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, 1, w.Step)

	w.Previous()
	assert.Equal(t, 1, w.Step, "previous on first step stays put")

	w.Next()
	w.Next()
	w.Next()
	assert.Equal(t, 4, w.Step)

	w.Next()
	assert.Equal(t, 4, w.Step, "next on last step stays put")
}

func TestWizardEarlySubmitAdvances(t *testing.T) {
	w := &Wizard{Step: 2}

	assert.False(t, w.Submittable())
	w.Next()
	assert.Equal(t, 3, w.Step)
	assert.False(t, w.Submittable())

	w.Next()
	assert.True(t, w.Submittable())
}

func TestFormParsingDefaults(t *testing.T) {
	// Malformed values fall back to the documented defaults, never an error.
	m := CheckinForm{
		SleepHours:      "not-a-number",
		SleepQuality:    "",
		StressLevel:     "high",
		WorkScreenHours: "???",
	}.Metrics()

	assert.Equal(t, 7.0, m.SleepHours)
	assert.Equal(t, 3, m.SleepQuality)
	assert.Equal(t, 0, m.ExerciseMinutes)
	assert.Equal(t, 0.0, m.SocialHours)
	assert.Equal(t, 0.0, m.LeisureScreenHours)
	assert.Equal(t, 8.0, m.WorkScreenHours)
	assert.Equal(t, 5, m.StressLevel)
	assert.Equal(t, 50, m.MentalWellness)
}

func TestFormParsingValues(t *testing.T) {
	m := CheckinForm{
		SleepHours:         "6",
		SleepQuality:       "2",
		ExerciseMinutes:    "90",
		SocialHours:        "3.5",
		LeisureScreenHours: "2",
		WorkScreenHours:    "10",
		StressLevel:        "8",
		MentalWellness:     "30",
	}.Metrics()

	assert.Equal(t, 6.0, m.SleepHours)
	assert.Equal(t, 8, m.StressLevel)
	assert.Equal(t, 0.0, 12.0-m.ScreenTimeHours(), "derived total is work + leisure")
}

func TestFormParsingZeroIsNotMissing(t *testing.T) {
	m := CheckinForm{StressLevel: "0", MentalWellness: "0"}.Metrics()

	assert.Equal(t, 0, m.StressLevel)
	assert.Equal(t, 0, m.MentalWellness)
}
