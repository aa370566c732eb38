package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"wellsync/backend/models"
)

// Profile leniency defaults: scoring proceeds with a partial profile instead
// of rejecting it.
const (
	defaultAge        = 25
	defaultGender     = "Other"
	defaultOccupation = "Employed"
	defaultWorkMode   = "Remote"
)

// ErrProfileIncomplete is returned when the user never completed the profile
// step at all, so there is nothing to default from.
var ErrProfileIncomplete = errors.New("please complete your profile first")

// SubmitResult is everything a successful submission hands back for display.
type SubmitResult struct {
	Risk       models.RiskResult      `json:"risk"`
	CheckIn    models.CheckIn         `json:"check_in"`
	Updated    bool                   `json:"updated"` // true when today's record was overwritten
	Peers      *models.PeerComparison `json:"peers,omitempty"`
	StreakDays int                    `json:"streak_days"`
}

// CheckinService orchestrates the daily check-in submission:
// profile defaults -> scoring call -> same-day upsert -> peer benchmark.
type CheckinService struct {
	DB   *gorm.DB
	Risk *RiskClient

	// Now is the clock used for the calendar-day window; overridable in tests.
	Now func() time.Time
}

func NewCheckinService(db *gorm.DB, risk *RiskClient) *CheckinService {
	return &CheckinService{DB: db, Risk: risk, Now: time.Now}
}

// Submit runs the whole workflow for an already-authenticated user whose form
// reached the last wizard step. Scoring and persistence failures abort the
// operation; there is no rollback of the scoring call (at-most-once
// persistence, never a duplicate row for the day).
func (s *CheckinService) Submit(ctx context.Context, user models.User, form CheckinForm) (*SubmitResult, error) {
	if !user.HasPersona() {
		return nil, ErrProfileIncomplete
	}

	metrics := form.Metrics()
	payload := s.buildPayload(user, metrics)

	risk, err := s.Risk.Predict(ctx, payload)
	if err != nil {
		return nil, err
	}

	checkIn, updated, err := s.upsertToday(user.ID, metrics, risk.RiskScore)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		Risk:    *risk,
		CheckIn: *checkIn,
		Updated: updated,
	}

	week, err := s.WeekStats(user.ID)
	if err != nil {
		return nil, err
	}
	result.StreakDays = week.StreakDays

	// Peer benchmark is optional: a missing persona aggregate just omits the
	// comparison.
	bench, err := s.findBenchmark(payload.Occupation, payload.WorkMode)
	if err != nil {
		return nil, err
	}
	if bench != nil {
		peers := ComparePeers(week, *bench, &metrics.StressLevel)
		result.Peers = &peers
	}

	return result, nil
}

func (s *CheckinService) buildPayload(user models.User, m CheckinMetrics) RiskRequest {
	age := defaultAge
	if user.Age != nil {
		age = *user.Age
	}
	gender := user.Gender
	if gender == "" {
		gender = defaultGender
	}
	occupation := user.Occupation
	if occupation == "" {
		occupation = defaultOccupation
	}
	workMode := user.WorkMode
	if workMode == "" {
		workMode = defaultWorkMode
	}

	return RiskRequest{
		Age:                age,
		Gender:             gender,
		Occupation:         occupation,
		WorkMode:           workMode,
		ScreenTimeHours:    m.ScreenTimeHours(),
		WorkScreenHours:    m.WorkScreenHours,
		LeisureScreenHours: m.LeisureScreenHours,
		SleepHours:         m.SleepHours,
		SleepQuality:       m.SleepQuality,
		StressLevel:        m.StressLevel,
		ExerciseMinutes:    m.ExerciseMinutes,
		SocialHours:        m.SocialHours,
		MentalWellness:     m.MentalWellness,
	}
}

// upsertToday keeps the one-check-in-per-day invariant with a read-then-write
// sequence. There is no transactional guarantee: two concurrent submissions
// can race between the lookup and the insert (known gap, accepted).
func (s *CheckinService) upsertToday(userID uint, m CheckinMetrics, score *float64) (*models.CheckIn, bool, error) {
	now := s.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var existing models.CheckIn
	err := s.DB.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, dayStart, dayEnd).
		First(&existing).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err == nil {
		// Repeated same-day submission overwrites, never duplicates.
		existing.SleepHours = m.SleepHours
		existing.SleepQuality = m.SleepQuality
		existing.ExerciseMinutes = m.ExerciseMinutes
		existing.SocialHours = m.SocialHours
		existing.LeisureScreenHours = m.LeisureScreenHours
		existing.CalculatedRiskScore = score
		if err := s.DB.Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, true, nil
	}

	checkIn := models.CheckIn{
		UserID:              userID,
		SleepHours:          m.SleepHours,
		SleepQuality:        m.SleepQuality,
		ExerciseMinutes:     m.ExerciseMinutes,
		SocialHours:         m.SocialHours,
		LeisureScreenHours:  m.LeisureScreenHours,
		CalculatedRiskScore: score,
	}
	if err := s.DB.Create(&checkIn).Error; err != nil {
		return nil, false, err
	}
	return &checkIn, false, nil
}

func (s *CheckinService) findBenchmark(occupation, workMode string) (*models.PersonaBenchmark, error) {
	var bench models.PersonaBenchmark
	err := s.DB.Where("occupation = ? AND work_mode = ?", occupation, workMode).First(&bench).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bench, nil
}

// WeekStats loads the last 7 days of check-ins (newest first) and aggregates
// them.
func (s *CheckinService) WeekStats(userID uint) (models.WeekStats, error) {
	now := s.Now()
	since := now.AddDate(0, 0, -7)

	var checkIns []models.CheckIn
	err := s.DB.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Limit(7).
		Find(&checkIns).Error
	if err != nil {
		return models.WeekStats{}, err
	}

	return AggregateWeek(checkIns, now), nil
}

// TodayCheckIn returns today's record, if any. Used by the dashboard to
// decide whether to auto-open the check-in form.
func (s *CheckinService) TodayCheckIn(userID uint) (*models.CheckIn, error) {
	now := s.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var checkIn models.CheckIn
	err := s.DB.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, dayStart, dayStart.Add(24*time.Hour)).
		First(&checkIn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}
