package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"wellsync/backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.CheckIn{}, &models.PersonaBenchmark{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testUser(db *gorm.DB, t *testing.T) models.User {
	t.Helper()
	age := 30
	user := models.User{
		Email:        "test@example.com",
		PasswordHash: "irrelevant",
		Age:          &age,
		Gender:       "Female",
		Occupation:   "Employed",
		WorkMode:     "Remote",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func fullForm() CheckinForm {
	return CheckinForm{
		SleepHours:         "6",
		SleepQuality:       "2",
		ExerciseMinutes:    "90",
		SocialHours:        "3",
		LeisureScreenHours: "2",
		WorkScreenHours:    "10",
		StressLevel:        "8",
		MentalWellness:     "30",
	}
}

func TestSubmitScenario(t *testing.T) {
	db := newTestDB(t)
	user := testUser(db, t)

	var received RiskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		fmt.Fprint(w, `{"risk_score": 72, "insight": "Reduce hours"}`)
	}))
	defer srv.Close()

	svc := NewCheckinService(db, newTestRiskClient(srv.URL))
	result, err := svc.Submit(context.Background(), user, fullForm())
	assert.NoError(t, err)

	// Payload carries profile fields plus the derived screen total.
	assert.Equal(t, 30, received.Age)
	assert.Equal(t, "Female", received.Gender)
	assert.Equal(t, "Employed", received.Occupation)
	assert.Equal(t, "Remote", received.WorkMode)
	assert.Equal(t, 12.0, received.ScreenTimeHours)
	assert.Equal(t, 6.0, received.SleepHours)
	assert.Equal(t, 8, received.StressLevel)
	assert.Equal(t, 30, received.MentalWellness)

	assert.NotNil(t, result.Risk.RiskScore)
	assert.Equal(t, 72.0, *result.Risk.RiskScore)
	assert.Equal(t, "Reduce hours", result.Risk.ActionableInsight)
	assert.False(t, result.Updated)
	assert.Equal(t, 1, result.StreakDays)

	var saved models.CheckIn
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&saved).Error)
	assert.NotNil(t, saved.CalculatedRiskScore)
	assert.Equal(t, 72.0, *saved.CalculatedRiskScore)
}

func TestSubmitSameDayOverwrites(t *testing.T) {
	db := newTestDB(t)
	user := testUser(db, t)

	score := 40
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"risk_score": %d}`, score)
	}))
	defer srv.Close()

	svc := NewCheckinService(db, newTestRiskClient(srv.URL))

	first, err := svc.Submit(context.Background(), user, fullForm())
	assert.NoError(t, err)
	assert.False(t, first.Updated)

	score = 70
	form := fullForm()
	form.SleepHours = "9"
	second, err := svc.Submit(context.Background(), user, form)
	assert.NoError(t, err)
	assert.True(t, second.Updated, "same-day resubmission updates in place")

	var count int64
	db.Model(&models.CheckIn{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count, "one row per user per day")

	var saved models.CheckIn
	db.Where("user_id = ?", user.ID).First(&saved)
	assert.Equal(t, 9.0, saved.SleepHours, "second submission's values win")
	assert.Equal(t, 70.0, *saved.CalculatedRiskScore)
}

func TestSubmitScoringFailureWritesNothing(t *testing.T) {
	db := newTestDB(t)
	user := testUser(db, t)

	srv := riskServer(t, 500, `{"error":"model unavailable"}`)

	svc := NewCheckinService(db, newTestRiskClient(srv.URL))
	_, err := svc.Submit(context.Background(), user, fullForm())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")

	var count int64
	db.Model(&models.CheckIn{}).Count(&count)
	assert.Equal(t, int64(0), count, "no check-in row on scoring failure")
}

func TestSubmitIncompleteProfileRejected(t *testing.T) {
	db := newTestDB(t)
	user := models.User{Email: "new@example.com", PasswordHash: "irrelevant"}
	assert.NoError(t, db.Create(&user).Error)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"risk_score": 1}`)
	}))
	defer srv.Close()

	svc := NewCheckinService(db, newTestRiskClient(srv.URL))
	_, err := svc.Submit(context.Background(), user, fullForm())

	assert.ErrorIs(t, err, ErrProfileIncomplete)
	assert.Equal(t, 0, calls, "scoring service is never reached")
}

func TestSubmitPartialProfileDefaults(t *testing.T) {
	db := newTestDB(t)
	// Occupation set, everything else defaulted by the leniency policy.
	user := models.User{Email: "partial@example.com", PasswordHash: "irrelevant", Occupation: "Student"}
	assert.NoError(t, db.Create(&user).Error)

	var received RiskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		fmt.Fprint(w, `{"risk_score": 20}`)
	}))
	defer srv.Close()

	svc := NewCheckinService(db, newTestRiskClient(srv.URL))
	_, err := svc.Submit(context.Background(), user, fullForm())
	assert.NoError(t, err)

	assert.Equal(t, 25, received.Age)
	assert.Equal(t, "Other", received.Gender)
	assert.Equal(t, "Student", received.Occupation)
	assert.Equal(t, "Remote", received.WorkMode)
}

func TestSubmitPeerComparison(t *testing.T) {
	db := newTestDB(t)
	user := testUser(db, t)

	bench := models.PersonaBenchmark{
		Occupation:        "Employed",
		WorkMode:          "Remote",
		Count:             120,
		AvgStress:         5,
		AvgProductivity:   60,
		AvgMentalWellness: 55,
	}
	assert.NoError(t, db.Create(&bench).Error)

	srv := riskServer(t, 200, `{"risk_score": 50}`)
	svc := NewCheckinService(db, newTestRiskClient(srv.URL))

	result, err := svc.Submit(context.Background(), user, fullForm())
	assert.NoError(t, err)
	assert.NotNil(t, result.Peers)
	assert.Equal(t, int64(120), result.Peers.Benchmark.Count)

	// Submitted stress (8) is compared against the peer average.
	stress := result.Peers.Deltas[len(result.Peers.Deltas)-1]
	assert.Equal(t, "stress", stress.Metric)
	assert.Equal(t, 8.0, stress.Mine)
	assert.Equal(t, "worse", stress.Direction)
}

func TestSubmitMissingBenchmarkIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	user := testUser(db, t)

	srv := riskServer(t, 200, `{"risk_score": 50}`)
	svc := NewCheckinService(db, newTestRiskClient(srv.URL))

	result, err := svc.Submit(context.Background(), user, fullForm())
	assert.NoError(t, err)
	assert.Nil(t, result.Peers, "peer comparison is simply omitted")
}

func TestTodayCheckIn(t *testing.T) {
	db := newTestDB(t)
	user := testUser(db, t)

	srv := riskServer(t, 200, `{"risk_score": 50}`)
	svc := NewCheckinService(db, newTestRiskClient(srv.URL))

	none, err := svc.TodayCheckIn(user.ID)
	assert.NoError(t, err)
	assert.Nil(t, none)

	_, err = svc.Submit(context.Background(), user, fullForm())
	assert.NoError(t, err)

	today, err := svc.TodayCheckIn(user.ID)
	assert.NoError(t, err)
	assert.NotNil(t, today)
}
