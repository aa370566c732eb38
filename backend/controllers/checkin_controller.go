package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wellsync/backend/config"
	"wellsync/backend/middleware"
	"wellsync/backend/models"
	"wellsync/backend/services"
	"wellsync/backend/utils"
)

type CheckinController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Svc *services.CheckinService
}

func NewCheckinController(db *gorm.DB, cfg *config.Config, svc *services.CheckinService) *CheckinController {
	return &CheckinController{DB: db, Cfg: cfg, Svc: svc}
}

// Submit godoc
// @Summary Submit a daily check-in
// @Description Runs the check-in workflow: scoring call, same-day upsert,
// @Description peer benchmark. A submit before the last wizard step only
// @Description advances the step and never reaches the scoring service.
// @Tags checkins
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkins [post]
func (cc *CheckinController) Submit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Step int                  `json:"step"`
		Form services.CheckinForm `json:"form"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Step < 1 {
		input.Step = 1
	}

	// Early submits advance the wizard instead of submitting.
	wizard := services.Wizard{Step: input.Step}
	if !wizard.Submittable() {
		wizard.Next()
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"submitted":   false,
			"step":        wizard.Step,
			"total_steps": services.TotalSteps,
		})
	}

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	result, err := cc.Svc.Submit(c.Context(), user, input.Form)
	if err != nil {
		return cc.submitError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"submitted": true,
		"result":    result,
	})
}

// submitError maps workflow failures onto the user-facing taxonomy: profile
// precondition, unreachable scoring service, upstream scoring error, store
// error. Every branch leaves the client able to resubmit.
func (cc *CheckinController) submitError(c *fiber.Ctx, err error) error {
	var apiErr *services.RiskAPIError
	var unreachable *services.ErrRiskAPIUnreachable

	switch {
	case errors.Is(err, services.ErrProfileIncomplete):
		return utils.BadRequest(c, "Please complete your profile first.")
	case errors.As(err, &unreachable):
		middleware.CountRiskAPIFailure("transport")
		return utils.BadGateway(c, "Unable to connect to the risk scoring service. Please try again later.")
	case errors.As(err, &apiErr):
		middleware.CountRiskAPIFailure(fmt.Sprintf("upstream_%d", apiErr.StatusCode))
		return utils.BadGateway(c, fmt.Sprintf("Risk analysis failed (%d): %s", apiErr.StatusCode, apiErr.Message))
	default:
		return utils.InternalServerError(c, "Failed to save check-in: "+err.Error())
	}
}

// Today reports whether the user already has a check-in for the current
// calendar day. The client uses this to auto-open the check-in form.
func (cc *CheckinController) Today(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	checkIn, err := cc.Svc.TodayCheckIn(userID)
	if err != nil {
		return utils.InternalServerError(c, "Failed to check today's check-in")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"checked_in_today": checkIn != nil,
		"check_in":         checkIn,
	})
}
