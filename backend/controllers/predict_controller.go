package controllers

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"wellsync/backend/config"
)

// PredictController is the thin proxy in front of the external risk model,
// kept so browser clients never talk to the model host directly (CORS, URL
// hiding). It forwards the body untouched and relays the upstream answer.
type PredictController struct {
	Cfg    *config.Config
	Client *http.Client
}

func NewPredictController(cfg *config.Config) *PredictController {
	return &PredictController{
		Cfg: cfg,
		Client: &http.Client{
			Timeout: time.Duration(cfg.RiskAPITimeout) * time.Second,
		},
	}
}

func (pc *PredictController) Predict(c *fiber.Ctx) error {
	req, err := http.NewRequestWithContext(c.Context(), http.MethodPost,
		pc.Cfg.RiskAPIURL, bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build upstream request",
		})
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := pc.Client.Do(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to connect to risk API",
			"details": err.Error(),
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to read risk API response",
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.Status(resp.StatusCode).JSON(fiber.Map{
			"error":   "API error: " + resp.Status,
			"details": string(body),
		})
	}

	c.Set("Content-Type", "application/json")
	return c.Status(resp.StatusCode).Send(body)
}
