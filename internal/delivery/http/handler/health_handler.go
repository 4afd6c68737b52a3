package handler

import (
	"context"
	"time"

	"scrapegoat-bridge/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type healthPinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	redis healthPinger
}

func NewHealthHandler(redis healthPinger) *HealthHandler {
	return &HealthHandler{redis: redis}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.GetHealth)
}

// GetHealth is the bridge's own health, not the pipeline's.
func (h *HealthHandler) GetHealth(c fiber.Ctx) error {
	redisState := "connected"
	if h == nil || h.redis == nil {
		redisState = "not_configured"
	} else {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx); err != nil {
			redisState = "disconnected"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"redis": redisState,
	})
}
