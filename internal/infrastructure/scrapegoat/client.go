package scrapegoat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// HealthReport is the pipeline's own health endpoint payload.
type HealthReport struct {
	Status             string `json:"status"`
	Redis              string `json:"redis"`
	RedisURLConfigured bool   `json:"redisUrlConfigured"`
	Error              string `json:"error,omitempty"`
}

// QueueReport is the enrichment queue status payload.
type QueueReport struct {
	LeadsToEnrich int    `json:"leadsToEnrich"`
	FailedLeads   int    `json:"failedLeads"`
	Status        string `json:"status"`
}

type Client interface {
	Health(ctx context.Context) (HealthReport, error)
	QueueStatus(ctx context.Context) (QueueReport, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewClient builds a Scrapegoat client against baseURL. The client timeout
// must stay shorter than any caller-side timeout so the degraded fallback
// fires before the caller gives up.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) Health(ctx context.Context) (HealthReport, error) {
	var out HealthReport
	err := c.getJSON(ctx, "/health", &out)
	return out, err
}

func (c *httpClient) QueueStatus(ctx context.Context) (QueueReport, error) {
	var out QueueReport
	err := c.getJSON(ctx, "/queue/status", &out)
	return out, err
}

func (c *httpClient) getJSON(ctx context.Context, path string, out any) error {
	if c == nil {
		return errors.New("nil scrapegoat client")
	}
	if c.client == nil {
		return errors.New("nil http client")
	}
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[Scrapegoat] request error endpoint=%s err=%v", endpoint, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("scrapegoat request failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if c.logger != nil {
			c.logger.Printf("[Scrapegoat] bad status endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return err
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		if c.logger != nil {
			c.logger.Printf("[Scrapegoat] decode error endpoint=%s err=%v", endpoint, err)
		}
		return fmt.Errorf("scrapegoat response malformed: %w", err)
	}
	return nil
}

var _ Client = (*httpClient)(nil)
