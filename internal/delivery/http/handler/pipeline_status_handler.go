package handler

import (
	"log"
	"time"

	"scrapegoat-bridge/internal/delivery/http/dto"
	"scrapegoat-bridge/internal/metrics"
	"scrapegoat-bridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PipelineStatusHandler struct {
	uc  usecase.PipelineStatusUsecase
	log *log.Logger
}

func NewPipelineStatusHandler(uc usecase.PipelineStatusUsecase, logger *log.Logger) *PipelineStatusHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &PipelineStatusHandler{uc: uc, log: logger}
}

func (h *PipelineStatusHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/pipeline/status", h.GetStatus)
}

// GetStatus always answers 200. A degraded payload carries success=false;
// the transport never turns an upstream failure into a failed request, so
// dashboards keep rendering during an incident.
func (h *PipelineStatusHandler) GetStatus(c fiber.Ctx) error {
	start := time.Now()

	out := h.uc.GetStatus(c.Context())

	outcome := metrics.OutcomeOK
	if out.Degraded {
		outcome = metrics.OutcomeDegraded
	}
	metrics.StatusRequestsTotal.WithLabelValues(outcome).Inc()

	if h != nil && h.log != nil {
		h.log.Printf("pipeline_status outcome=%s duration=%s", outcome, time.Since(start))
	}

	return c.Status(fiber.StatusOK).JSON(dto.PipelineStatusResponse{
		Success:   !out.Degraded,
		Health:    out.Data.Health,
		Queue:     out.Data.Queue,
		Timestamp: out.Data.Timestamp,
	})
}
