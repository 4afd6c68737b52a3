package app

import (
	"fmt"
	"strings"

	"scrapegoat-bridge/internal/config"
	"scrapegoat-bridge/internal/delivery/http/handler"
	"scrapegoat-bridge/internal/delivery/http/middleware"
	"scrapegoat-bridge/internal/delivery/http/routes"
	"scrapegoat-bridge/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	go c.Hub.Run()
	ws.SetDefaultHub(c.Hub)

	app := &App{Fiber: f, container: c}
	return app, c.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	if f == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware()
	f.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(accessMw.Middleware())
}

func registerRoutes(f *fiber.App, c *Container) {
	if f == nil || c == nil {
		return
	}

	reg := &routes.Registry{
		Health:    handler.NewHealthHandler(c.Redis),
		Heartbeat: handler.NewHeartbeatHandler(c.Config, c.Tracker, c.Logger),
		Pipeline:  handler.NewPipelineStatusHandler(c.StatusUC, c.Logger),
		Capture:   handler.NewCaptureHandler(c.Tracker, c.Logger),
		Usage:     handler.NewUsageHandler(c.UsageUC, c.Logger),
		WS:        ws.NewHandler(c.Hub, c.Logger),
	}
	reg.Register(f)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
