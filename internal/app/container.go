package app

import (
	"log"
	"os"
	"time"

	"scrapegoat-bridge/internal/config"
	"scrapegoat-bridge/internal/infrastructure/cache"
	"scrapegoat-bridge/internal/infrastructure/scrapegoat"
	"scrapegoat-bridge/internal/liveness"
	"scrapegoat-bridge/internal/usecase"
	"scrapegoat-bridge/internal/ws"
)

type Container struct {
	Config  config.Config
	Logger  *log.Logger
	Redis   *cache.Redis
	Tracker *liveness.Tracker
	Hub     *ws.Hub

	StatusUC usecase.PipelineStatusUsecase
	UsageUC  usecase.UsageUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	rdb := cache.NewRedis(logger)
	tracker := liveness.NewTracker(time.Now)
	hub := ws.NewHub(logger)

	sg := scrapegoat.NewClient(cfg.Scrapegoat.BaseURL, cfg.Scrapegoat.Timeout, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Redis:    rdb,
		Tracker:  tracker,
		Hub:      hub,
		StatusUC: usecase.NewPipelineStatusUsecase(sg, logger, time.Now),
		UsageUC:  usecase.NewUsageUsecase(rdb, cfg.Usage.Limits, logger, time.Now),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis == nil {
		return nil
	}
	return c.Redis.Close()
}
