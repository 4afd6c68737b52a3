package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App           AppConfig
	Scrapegoat    ScrapegoatConfig
	Usage         UsageConfig
	InternalToken string
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type ScrapegoatConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ChannelLimits struct {
	Daily   int
	Monthly int
}

type UsageConfig struct {
	// Limits keyed by channel name ("linkedin", "facebook").
	Limits map[string]ChannelLimits
}

const defaultScrapegoatTimeout = 5 * time.Second

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// Best effort; real env vars win over .env entries.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Scrapegoat = ScrapegoatConfig{
		BaseURL: strings.TrimRight(req("SCRAPEGOAT_URL"), "/"),
		Timeout: durationSeconds(opt("SCRAPEGOAT_TIMEOUT_SECONDS"), defaultScrapegoatTimeout),
	}

	cfg.Usage = UsageConfig{
		Limits: map[string]ChannelLimits{
			"linkedin": {
				Daily:   intOrDefault(opt("LINKEDIN_DAILY_LIMIT"), 100),
				Monthly: intOrDefault(opt("LINKEDIN_MONTHLY_LIMIT"), 3000),
			},
			"facebook": {
				Daily:   intOrDefault(opt("FACEBOOK_DAILY_LIMIT"), 100),
				Monthly: intOrDefault(opt("FACEBOOK_MONTHLY_LIMIT"), 3000),
			},
		},
	}

	cfg.InternalToken = opt("INTERNAL_TOKEN")

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func durationSeconds(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
