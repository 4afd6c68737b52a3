package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"scrapegoat-bridge/internal/config"
	"scrapegoat-bridge/internal/delivery/http/dto"
)

// CounterReader reads the integer counters the pipeline workers maintain.
type CounterReader interface {
	GetCounter(ctx context.Context, key string) (int, error)
}

type UsageUsecase interface {
	GetStats(ctx context.Context) (dto.UsageStatsData, error)
}

type Usage struct {
	counters CounterReader
	limits   map[string]config.ChannelLimits
	log      *log.Logger
	now      func() time.Time
}

func NewUsageUsecase(counters CounterReader, limits map[string]config.ChannelLimits, logger *log.Logger, now func() time.Time) *Usage {
	if logger == nil {
		logger = log.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Usage{counters: counters, limits: limits, log: logger, now: now}
}

// GetStats pairs the consumed counters from Redis with the configured limits.
// Unlike the status aggregator, a collaborator failure here is surfaced to
// the caller.
func (u *Usage) GetStats(ctx context.Context) (dto.UsageStatsData, error) {
	if u == nil || u.counters == nil {
		return nil, fmt.Errorf("usage counters not configured")
	}

	day := u.now().UTC().Format("2006-01-02")
	month := u.now().UTC().Format("2006-01")

	stats := make(dto.UsageStatsData, len(u.limits))
	for _, ch := range sortedChannels(u.limits) {
		limits := u.limits[ch]

		daily, err := u.counters.GetCounter(ctx, usageKey(ch, "daily", day))
		if err != nil {
			u.log.Printf("usage_stats channel=%s window=daily status=error err=%v", ch, err)
			return nil, err
		}
		monthly, err := u.counters.GetCounter(ctx, usageKey(ch, "monthly", month))
		if err != nil {
			u.log.Printf("usage_stats channel=%s window=monthly status=error err=%v", ch, err)
			return nil, err
		}

		stats[ch] = dto.ChannelUsage{
			Daily:   dto.UsageWindow{Used: daily, Limit: limits.Daily},
			Monthly: dto.UsageWindow{Used: monthly, Limit: limits.Monthly},
		}
	}
	return stats, nil
}

func usageKey(channel, window, period string) string {
	return "usage:" + channel + ":" + window + ":" + period
}

func sortedChannels(limits map[string]config.ChannelLimits) []string {
	out := make([]string, 0, len(limits))
	for ch := range limits {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}
