package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"scrapegoat-bridge/internal/delivery/http/dto"
	"scrapegoat-bridge/internal/infrastructure/scrapegoat"
)

var errNoUpstream = errors.New("no upstream client configured")

type PipelineStatusUsecase interface {
	GetStatus(ctx context.Context) StatusOutcome
}

// StatusOutcome is the tagged result of one aggregation pass. Degraded marks
// the fallback arm; Cause carries the upstream failure that triggered it.
// Either way Data is fully populated, so the transport can flatten both arms
// into the same wire shape and never fail the caller.
type StatusOutcome struct {
	Data     dto.PipelineStatusData
	Degraded bool
	Cause    error
}

type PipelineStatus struct {
	client scrapegoat.Client
	log    *log.Logger
	now    func() time.Time
}

func NewPipelineStatusUsecase(client scrapegoat.Client, logger *log.Logger, now func() time.Time) *PipelineStatus {
	if logger == nil {
		logger = log.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &PipelineStatus{client: client, log: logger, now: now}
}

// GetStatus queries the pipeline's health and queue endpoints and merges the
// results. Any failure of either call, including timeout or a malformed
// payload, produces the degraded fallback instead of an error. Each request
// is evaluated fresh; nothing is cached and there is no hysteresis between
// healthy and degraded.
func (u *PipelineStatus) GetStatus(ctx context.Context) StatusOutcome {
	if u == nil || u.client == nil {
		return u.degraded(errNoUpstream)
	}

	var (
		health    scrapegoat.HealthReport
		queue     scrapegoat.QueueReport
		errHealth error
		errQueue  error
	)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		health, errHealth = u.client.Health(ctx)
		if errHealth != nil {
			u.log.Printf("pipeline_status step=health status=error err=%v", errHealth)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		queue, errQueue = u.client.QueueStatus(ctx)
		if errQueue != nil {
			u.log.Printf("pipeline_status step=queue status=error err=%v", errQueue)
		}
	}()

	wg.Wait()

	if errHealth != nil {
		return u.degraded(errHealth)
	}
	if errQueue != nil {
		return u.degraded(errQueue)
	}

	return StatusOutcome{
		Data: dto.PipelineStatusData{
			Health: dto.HealthStatus{
				Status:             health.Status,
				Redis:              health.Redis,
				RedisURLConfigured: health.RedisURLConfigured,
				Error:              health.Error,
			},
			Queue: dto.QueueStatus{
				LeadsToEnrich: queue.LeadsToEnrich,
				FailedLeads:   queue.FailedLeads,
				Status:        queue.Status,
			},
			Timestamp: u.now().UTC().Format(time.RFC3339),
		},
	}
}

func (u *PipelineStatus) degraded(cause error) StatusOutcome {
	now := time.Now
	if u != nil && u.now != nil {
		now = u.now
	}
	msg := "upstream unavailable"
	if cause != nil {
		msg = shorten(cause.Error(), 200)
	}
	return StatusOutcome{
		Data: dto.PipelineStatusData{
			Health: dto.HealthStatus{
				Status:             "degraded",
				Redis:              "disconnected",
				RedisURLConfigured: false,
				Error:              msg,
			},
			Queue: dto.QueueStatus{
				LeadsToEnrich: 0,
				FailedLeads:   0,
				Status:        "inactive",
			},
			Timestamp: now().UTC().Format(time.RFC3339),
		},
		Degraded: true,
		Cause:    cause,
	}
}

func shorten(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
