package handler

import (
	"log"

	"scrapegoat-bridge/internal/delivery/http/middleware"
	"scrapegoat-bridge/internal/liveness"
	"scrapegoat-bridge/internal/metrics"
	"scrapegoat-bridge/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type CaptureRequest struct {
	Enabled *bool `json:"enabled"`
}

type CaptureHandler struct {
	tracker *liveness.Tracker
	logger  *log.Logger
}

func NewCaptureHandler(tracker *liveness.Tracker, logger *log.Logger) *CaptureHandler {
	return &CaptureHandler{tracker: tracker, logger: logger}
}

func (h *CaptureHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/settings/capture", h.GetCapture)
	r.Put("/settings/capture", h.SetCapture)
}

func (h *CaptureHandler) GetCapture(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"enabled": h.tracker.CaptureEnabled()})
}

func (h *CaptureHandler) SetCapture(c fiber.Ctx) error {
	var req CaptureRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Enabled == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	h.tracker.SetCaptureEnabled(*req.Enabled)
	metrics.CaptureToggleTotal.Inc()
	ws.NotifyCaptureToggled(*req.Enabled)

	if h.logger != nil {
		h.logger.Printf("Capture toggled | enabled=%t", *req.Enabled)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"enabled": *req.Enabled})
}
