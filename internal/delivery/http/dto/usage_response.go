package dto

type UsageWindow struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

type ChannelUsage struct {
	Daily   UsageWindow `json:"daily"`
	Monthly UsageWindow `json:"monthly"`
}

// UsageStatsData maps channel name ("linkedin", "facebook") to its counters.
type UsageStatsData map[string]ChannelUsage

type UsageResponse struct {
	Success bool           `json:"success"`
	Stats   UsageStatsData `json:"stats,omitempty"`
	Error   string         `json:"error,omitempty"`
}
