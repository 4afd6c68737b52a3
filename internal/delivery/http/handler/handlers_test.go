package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"scrapegoat-bridge/internal/config"
	"scrapegoat-bridge/internal/delivery/http/dto"
	"scrapegoat-bridge/internal/delivery/http/middleware"
	"scrapegoat-bridge/internal/liveness"
	"scrapegoat-bridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestApp() *fiber.App {
	f := fiber.New(fiber.Config{})
	f.Use(middleware.NewErrorMiddleware().Middleware())
	return f
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()
	return resp, b
}

func TestHeartbeatAndProxyStatusFlow(t *testing.T) {
	clock := newFakeClock()
	tracker := liveness.NewTracker(clock.Now)
	app := newTestApp()
	NewHeartbeatHandler(config.Config{}, tracker, nil).RegisterRoutes(app.Group("/api/v1"))

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/proxy/heartbeat", `{"clients":3}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/proxy/status", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var st dto.ProxyStatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !st.Online || st.Clients != 3 || !st.CaptureEnabled {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.LastHeartbeat != clock.Now().UnixMilli() {
		t.Fatalf("unexpected lastHeartbeat: %d", st.LastHeartbeat)
	}

	clock.Advance(liveness.OnlineWindow)
	_, body = doJSON(t, app, http.MethodGet, "/api/v1/proxy/status", "")
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if st.Online {
		t.Fatalf("expected offline after freshness window")
	}
	if st.Clients != 3 {
		t.Fatalf("client count should not reset when offline, got %d", st.Clients)
	}
}

func TestHeartbeat_TokenRequiredWhenConfigured(t *testing.T) {
	tracker := liveness.NewTracker(nil)
	app := newTestApp()
	cfg := config.Config{InternalToken: "sekrit"}
	NewHeartbeatHandler(cfg, tracker, nil).RegisterRoutes(app.Group("/api/v1"))

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/proxy/heartbeat", `{"clients":1}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
	if tracker.Online() {
		t.Fatalf("rejected heartbeat must not mutate tracker")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/proxy/heartbeat", bytes.NewReader([]byte(`{"clients":1}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Token", "sekrit")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", resp.StatusCode)
	}
}

func TestCaptureToggleRoundTrip(t *testing.T) {
	tracker := liveness.NewTracker(nil)
	app := newTestApp()
	NewCaptureHandler(tracker, nil).RegisterRoutes(app.Group("/api/v1"))

	resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/settings/capture", `{"enabled":false}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if tracker.CaptureEnabled() {
		t.Fatalf("expected capture disabled")
	}

	_, body := doJSON(t, app, http.MethodGet, "/api/v1/settings/capture", "")
	var got struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Enabled {
		t.Fatalf("expected enabled=false")
	}

	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/settings/capture", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing enabled field, got %d", resp.StatusCode)
	}
}

type stubStatusUC struct {
	out usecase.StatusOutcome
}

func (s stubStatusUC) GetStatus(context.Context) usecase.StatusOutcome { return s.out }

func TestPipelineStatusHandler_AlwaysAnswers200(t *testing.T) {
	degraded := usecase.StatusOutcome{
		Data: dto.PipelineStatusData{
			Health:    dto.HealthStatus{Status: "degraded", Redis: "disconnected", Error: "connect: refused"},
			Queue:     dto.QueueStatus{Status: "inactive"},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Degraded: true,
		Cause:    errors.New("connect: refused"),
	}
	app := newTestApp()
	NewPipelineStatusHandler(stubStatusUC{out: degraded}, nil).RegisterRoutes(app.Group("/api/v1"))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/pipeline/status", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("degraded status must still answer 200, got %d", resp.StatusCode)
	}

	var out dto.PipelineStatusResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Success {
		t.Fatalf("expected success=false on degraded payload")
	}
	if out.Health.Status != "degraded" || out.Queue.Status != "inactive" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

type stubUsageUC struct {
	stats dto.UsageStatsData
	err   error
}

func (s stubUsageUC) GetStats(context.Context) (dto.UsageStatsData, error) { return s.stats, s.err }

func TestUsageHandler_FailureSurfacesAs500(t *testing.T) {
	app := newTestApp()
	NewUsageHandler(stubUsageUC{err: errors.New("redis unavailable")}, nil).RegisterRoutes(app.Group("/api/v1"))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/usage", "")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	var out dto.UsageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Success || out.Error == "" {
		t.Fatalf("expected success=false with error, got %+v", out)
	}
}

func TestUsageHandler_Success(t *testing.T) {
	stats := dto.UsageStatsData{
		"linkedin": {Daily: dto.UsageWindow{Used: 2, Limit: 100}, Monthly: dto.UsageWindow{Used: 40, Limit: 3000}},
	}
	app := newTestApp()
	NewUsageHandler(stubUsageUC{stats: stats}, nil).RegisterRoutes(app.Group("/api/v1"))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/usage", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out dto.UsageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Success || out.Stats["linkedin"].Daily.Used != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
}
