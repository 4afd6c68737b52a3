package liveness

import (
	"sync"
	"time"
)

// OnlineWindow is how long a heartbeat keeps the proxy counted as online.
const OnlineWindow = 10 * time.Second

// State is a point-in-time snapshot of the tracker.
type State struct {
	LastHeartbeatMillis int64
	ClientCount         int
	CaptureEnabled      bool
	Online              bool
}

// Tracker is the single source of truth for proxy liveness and the capture
// toggle. One instance per process, shared by every handler; all access goes
// through the mutex. Nothing here is persisted.
type Tracker struct {
	mu  sync.Mutex
	now func() time.Time

	lastHeartbeat  int64 // epoch millis, 0 = never seen
	clientCount    int
	captureEnabled bool
}

func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now, captureEnabled: true}
}

// RecordHeartbeat marks the proxy as seen now and overwrites the reported
// client count. Negative counts are clamped to 0. lastHeartbeat never moves
// backwards even if the wall clock does.
func (t *Tracker) RecordHeartbeat(clientCount int) {
	if t == nil {
		return
	}
	if clientCount < 0 {
		clientCount = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ms := t.now().UnixMilli()
	if ms < t.lastHeartbeat {
		ms = t.lastHeartbeat
	}
	t.lastHeartbeat = ms
	t.clientCount = clientCount
}

// Online reports whether the last heartbeat is inside the freshness window.
// Evaluated against the clock on every call; a heartbeat exactly OnlineWindow
// old already counts as offline.
func (t *Tracker) Online() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.onlineLocked()
}

func (t *Tracker) onlineLocked() bool {
	if t.lastHeartbeat == 0 {
		return false
	}
	return t.now().UnixMilli()-t.lastHeartbeat < OnlineWindow.Milliseconds()
}

func (t *Tracker) SetCaptureEnabled(enabled bool) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.captureEnabled = enabled
}

func (t *Tracker) CaptureEnabled() bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.captureEnabled
}

// Snapshot returns a consistent read of all fields, including the derived
// online predicate. The client count is reported as last sent by the proxy;
// it is not reset when the proxy goes offline.
func (t *Tracker) Snapshot() State {
	if t == nil {
		return State{CaptureEnabled: true}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{
		LastHeartbeatMillis: t.lastHeartbeat,
		ClientCount:         t.clientCount,
		CaptureEnabled:      t.captureEnabled,
		Online:              t.onlineLocked(),
	}
}
