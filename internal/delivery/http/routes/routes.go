package routes

import (
	"scrapegoat-bridge/internal/delivery/http/handler"
	"scrapegoat-bridge/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Health    *handler.HealthHandler
	Heartbeat *handler.HeartbeatHandler
	Pipeline  *handler.PipelineStatusHandler
	Capture   *handler.CaptureHandler
	Usage     *handler.UsageHandler
	WS        *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	app.Get("/metrics", metricsHandler())
	if r.WS != nil {
		app.Get("/ws", r.WS.HandleDashboardWS)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	if r.Heartbeat != nil {
		r.Heartbeat.RegisterRoutes(v1)
	}
	if r.Pipeline != nil {
		r.Pipeline.RegisterRoutes(v1)
	}
	if r.Capture != nil {
		r.Capture.RegisterRoutes(v1)
	}
	if r.Usage != nil {
		r.Usage.RegisterRoutes(v1)
	}
}

func metricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
