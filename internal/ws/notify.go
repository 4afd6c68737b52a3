package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type ProxyStatusEvent struct {
	Type           string `json:"type"`
	Online         bool   `json:"online"`
	Clients        int    `json:"clients"`
	CaptureEnabled bool   `json:"captureEnabled"`
	Timestamp      string `json:"timestamp"`
}

type CaptureToggledEvent struct {
	Type      string `json:"type"`
	Enabled   bool   `json:"enabled"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyProxyStatus pushes the current liveness view to every dashboard.
func NotifyProxyStatus(online bool, clients int, captureEnabled bool) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ProxyStatusEvent{
		Type:           "proxy_status",
		Online:         online,
		Clients:        clients,
		CaptureEnabled: captureEnabled,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

// NotifyCaptureToggled tells dashboards (and the proxy, which also
// subscribes) that the capture flag changed.
func NotifyCaptureToggled(enabled bool) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := CaptureToggledEvent{
		Type:      "capture_toggled",
		Enabled:   enabled,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
