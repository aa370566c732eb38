package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wellsync/backend/config"
	"wellsync/backend/models"
	"wellsync/backend/utils"
)

type HistoryController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewHistoryController(db *gorm.DB, cfg *config.Config) *HistoryController {
	return &HistoryController{DB: db, Cfg: cfg}
}

// GetHistory returns the user's check-ins for the requested window (default
// 30 days, newest first) plus the summary stats shown above the table.
func (hc *HistoryController) GetHistory(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	// Параметры периода
	days, _ := strconv.Atoi(c.Query("days", "30"))
	if days < 1 {
		days = 30
	}

	var checkIns []models.CheckIn
	if err := hc.DB.Where("user_id = ? AND created_at >= ?",
		userID, time.Now().AddDate(0, 0, -days)).
		Order("created_at DESC").
		Find(&checkIns).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch check-ins")
	}

	// Средние значения с политикой missing-as-zero
	var avgRisk, avgSleep float64
	if len(checkIns) > 0 {
		var riskSum, sleepSum float64
		for i := range checkIns {
			riskSum += checkIns[i].RiskValue()
			sleepSum += checkIns[i].SleepHours
		}
		avgRisk = riskSum / float64(len(checkIns))
		avgSleep = sleepSum / float64(len(checkIns))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"check_ins":       checkIns,
		"total_check_ins": len(checkIns),
		"avg_risk":        avgRisk,
		"avg_sleep":       avgSleep,
		"period_days":     days,
	})
}
