package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wellsync/backend/config"
	"wellsync/backend/models"
	"wellsync/backend/services"
	"wellsync/backend/utils"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Svc *services.CheckinService
}

func NewDashboardController(db *gorm.DB, cfg *config.Config, svc *services.CheckinService) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg, Svc: svc}
}

// GetDashboard godoc
// @Summary Get dashboard statistics
// @Description Returns 7-day aggregates, the risk trend and the peer
// @Description comparison for the authenticated user
// @Tags dashboard
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := dc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	week, err := dc.Svc.WeekStats(userID)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch check-ins")
	}

	response := fiber.Map{
		"week":  week,
		"peers": nil,
	}

	// Peer comparison only when a benchmark exists for the persona; stress is
	// not persisted on check-ins, so the dashboard side has no stress delta.
	if user.Occupation != "" && user.WorkMode != "" {
		var bench models.PersonaBenchmark
		err := dc.DB.Where("occupation = ? AND work_mode = ?", user.Occupation, user.WorkMode).
			First(&bench).Error
		if err == nil {
			response["peers"] = services.ComparePeers(week, bench, nil)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Failed to fetch peer benchmark")
		}
	}

	return utils.Success(c, fiber.StatusOK, response)
}
