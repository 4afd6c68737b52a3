package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"scrapegoat-bridge/internal/config"
)

type mockCounters struct {
	values map[string]int
	err    error
}

func (m mockCounters) GetCounter(_ context.Context, key string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.values[key], nil
}

func TestUsage_GetStats_Success(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC) }
	limits := map[string]config.ChannelLimits{
		"linkedin": {Daily: 100, Monthly: 3000},
		"facebook": {Daily: 50, Monthly: 1500},
	}
	uc := NewUsageUsecase(mockCounters{values: map[string]int{
		"usage:linkedin:daily:2025-06-15":  12,
		"usage:linkedin:monthly:2025-06":   340,
		"usage:facebook:daily:2025-06-15":  3,
		"usage:facebook:monthly:2025-06":   77,
	}}, limits, nil, now)

	stats, err := uc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	li := stats["linkedin"]
	if li.Daily.Used != 12 || li.Daily.Limit != 100 || li.Monthly.Used != 340 || li.Monthly.Limit != 3000 {
		t.Fatalf("unexpected linkedin stats: %+v", li)
	}
	fb := stats["facebook"]
	if fb.Daily.Used != 3 || fb.Daily.Limit != 50 || fb.Monthly.Used != 77 || fb.Monthly.Limit != 1500 {
		t.Fatalf("unexpected facebook stats: %+v", fb)
	}
}

func TestUsage_GetStats_MissingCountersReadAsZero(t *testing.T) {
	limits := map[string]config.ChannelLimits{"linkedin": {Daily: 100, Monthly: 3000}}
	uc := NewUsageUsecase(mockCounters{values: map[string]int{}}, limits, nil, nil)

	stats, err := uc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := stats["linkedin"].Daily.Used; got != 0 {
		t.Fatalf("expected 0 used, got %d", got)
	}
}

func TestUsage_GetStats_CollaboratorFailureSurfaces(t *testing.T) {
	sentinel := errors.New("redis unavailable")
	limits := map[string]config.ChannelLimits{"linkedin": {Daily: 100, Monthly: 3000}}
	uc := NewUsageUsecase(mockCounters{err: sentinel}, limits, nil, nil)

	if _, err := uc.GetStats(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}
