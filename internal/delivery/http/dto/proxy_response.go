package dto

// ProxyStatusResponse is the wire shape of GET /api/v1/proxy/status.
type ProxyStatusResponse struct {
	Online         bool  `json:"online"`
	Clients        int   `json:"clients"`
	CaptureEnabled bool  `json:"captureEnabled"`
	LastHeartbeat  int64 `json:"lastHeartbeat"`
}
