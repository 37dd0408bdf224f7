package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"VolSentinel/internal/logger"
	"VolSentinel/internal/model"
)

const latestKeyPrefix = "dvol:latest:"

// RedisRecorder publishes reports to a Redis stream and caches the latest one per symbol.
type RedisRecorder struct {
	client *redis.Client
	stream string
}

// NewRedisRecorder connects to Redis. addr is a host:port or a redis:// URL.
func NewRedisRecorder(addr, stream string) (*RedisRecorder, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("redis recorder connected: %s stream=%s", opts.Addr, stream)
	return &RedisRecorder{client: client, stream: stream}, nil
}

// LatestKey is the cache key holding a symbol's most recent report.
func LatestKey(symbol string) string { return latestKeyPrefix + symbol }

func (r *RedisRecorder) RecordReport(ctx context.Context, rep *model.VolatilityReport) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	values := map[string]interface{}{
		"type":    "volatility_report",
		"ts":      rep.GeneratedAt.UTC().Format(time.RFC3339Nano),
		"symbol":  rep.Symbol,
		"regime":  rep.Regime.Label,
		"payload": string(payload),
	}
	if primary, ok := rep.Primary(); ok {
		values["dvol"] = primary.DVOL
		values["dvol_index"] = primary.DVOLIndex
	}

	pipe := r.client.TxPipeline()
	pipe.XAdd(ctx, &redis.XAddArgs{Stream: r.stream, Values: values})
	pipe.Set(ctx, LatestKey(rep.Symbol), payload, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish report %s: %w", rep.ID, err)
	}
	return nil
}

// Latest returns the cached report for a symbol, or nil if none was published.
func (r *RedisRecorder) Latest(ctx context.Context, symbol string) (*model.VolatilityReport, error) {
	data, err := r.client.Get(ctx, LatestKey(symbol)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rep model.VolatilityReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &rep, nil
}

func (r *RedisRecorder) Close() error {
	return r.client.Close()
}
