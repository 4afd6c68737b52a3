package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps the connection the pipeline workers write their counters to.
// The bridge only reads. Unlike a cache, an unavailable Redis here is a real
// error for the usage surface, so reads do not silently bypass.
type Redis struct {
	client *redis.Client
	logger *log.Logger
}

var ErrUnavailable = errors.New("redis unavailable")

func NewRedis(logger *log.Logger) *Redis {
	host := strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("REDIS_PORT"))
	if port == "" {
		port = "6379"
	}
	pass := strings.TrimSpace(os.Getenv("REDIS_PASSWORD"))

	addr := fmt.Sprintf("%s:%s", host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Redis] unavailable at startup addr=%s err=%v", addr, err)
		}
		// Keep the client; the instance may come up later.
	}

	return &Redis{client: client, logger: logger}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

// GetCounter reads an integer counter. A missing key counts as 0.
func (r *Redis) GetCounter(ctx context.Context, key string) (int, error) {
	if r == nil || r.client == nil {
		return 0, ErrUnavailable
	}
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		if r.logger != nil {
			r.logger.Printf("[Redis] get error key=%s err=%v", key, err)
		}
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("counter %s is not an integer: %w", key, err)
	}
	return v, nil
}

func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
