package handler

import (
	"log"
	"strings"

	"scrapegoat-bridge/internal/config"
	"scrapegoat-bridge/internal/delivery/http/dto"
	"scrapegoat-bridge/internal/delivery/http/middleware"
	"scrapegoat-bridge/internal/liveness"
	"scrapegoat-bridge/internal/metrics"
	"scrapegoat-bridge/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type HeartbeatRequest struct {
	Clients int `json:"clients"`
}

type HeartbeatHandler struct {
	cfg     config.Config
	tracker *liveness.Tracker
	logger  *log.Logger
}

func NewHeartbeatHandler(cfg config.Config, tracker *liveness.Tracker, logger *log.Logger) *HeartbeatHandler {
	return &HeartbeatHandler{cfg: cfg, tracker: tracker, logger: logger}
}

func (h *HeartbeatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/proxy/heartbeat", h.HandleHeartbeat)
	r.Get("/proxy/status", h.GetProxyStatus)
}

// HandleHeartbeat ingests one liveness signal from the proxy process. An
// absent or unparseable body counts as a heartbeat with zero clients.
func (h *HeartbeatHandler) HandleHeartbeat(c fiber.Ctx) error {
	if h.cfg.InternalToken != "" {
		tok := strings.TrimSpace(c.Get("X-Internal-Token"))
		if tok != h.cfg.InternalToken {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
	}

	var req HeartbeatRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			if h.logger != nil {
				h.logger.Printf("Heartbeat bind error | error=%v", err)
			}
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	h.tracker.RecordHeartbeat(req.Clients)
	metrics.HeartbeatsTotal.Inc()

	st := h.tracker.Snapshot()
	ws.NotifyProxyStatus(st.Online, st.ClientCount, st.CaptureEnabled)

	if h.logger != nil {
		h.logger.Printf("Heartbeat | clients=%d", req.Clients)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func (h *HeartbeatHandler) GetProxyStatus(c fiber.Ctx) error {
	st := h.tracker.Snapshot()
	return c.Status(fiber.StatusOK).JSON(dto.ProxyStatusResponse{
		Online:         st.Online,
		Clients:        st.ClientCount,
		CaptureEnabled: st.CaptureEnabled,
		LastHeartbeat:  st.LastHeartbeatMillis,
	})
}
