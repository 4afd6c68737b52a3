package dto

// PipelineStatusData is the aggregated view of the Scrapegoat pipeline. It is
// always fully populated: on upstream failure the degraded defaults are
// substituted rather than returning a partial result.
type PipelineStatusData struct {
	Health    HealthStatus `json:"health"`
	Queue     QueueStatus  `json:"queue"`
	Timestamp string       `json:"timestamp"`
}

type HealthStatus struct {
	Status             string `json:"status"`
	Redis              string `json:"redis"`
	RedisURLConfigured bool   `json:"redisUrlConfigured"`
	Error              string `json:"error,omitempty"`
}

type QueueStatus struct {
	LeadsToEnrich int    `json:"leadsToEnrich"`
	FailedLeads   int    `json:"failedLeads"`
	Status        string `json:"status"`
}

// PipelineStatusResponse is the wire shape of GET /api/v1/pipeline/status.
// Success distinguishes real upstream data from the degraded fallback; the
// HTTP status is 200 either way.
type PipelineStatusResponse struct {
	Success   bool         `json:"success"`
	Health    HealthStatus `json:"health"`
	Queue     QueueStatus  `json:"queue"`
	Timestamp string       `json:"timestamp"`
}
