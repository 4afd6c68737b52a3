package handler

import (
	"log"

	"scrapegoat-bridge/internal/delivery/http/dto"
	"scrapegoat-bridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UsageHandler struct {
	uc  usecase.UsageUsecase
	log *log.Logger
}

func NewUsageHandler(uc usecase.UsageUsecase, logger *log.Logger) *UsageHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &UsageHandler{uc: uc, log: logger}
}

func (h *UsageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/usage", h.GetUsage)
}

// GetUsage relays the collaborator's result. This surface, unlike pipeline
// status, reports collaborator failure as a real HTTP error.
func (h *UsageHandler) GetUsage(c fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		if h != nil && h.log != nil {
			h.log.Printf("usage_stats status=error err=%v", err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.UsageResponse{
			Success: false,
			Error:   "usage stats unavailable",
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.UsageResponse{Success: true, Stats: stats})
}
