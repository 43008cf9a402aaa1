// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"tender/platform/shared/logger"
)

// RateLimiter throttles intake submissions per caller using a Redis
// sliding window. Redis being down never blocks intake: every Redis error
// fails open and the request proceeds.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    *logger.Logger
}

// NewRateLimiter connects to Redis at redisURL. An empty URL disables
// limiting entirely, which keeps single-node deployments dependency-free.
func NewRateLimiter(redisURL string, limit int, window time.Duration) (*RateLimiter, error) {
	rl := &RateLimiter{
		limit:  limit,
		window: window,
		log:    logger.New("rate-limiter"),
	}
	if redisURL == "" {
		return rl, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rl.client = redis.NewClient(opts)
	return rl, nil
}

// Allow reports whether the caller identified by key may submit another
// input inside the current window.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	if rl.client == nil {
		return true
	}

	now := time.Now()
	windowStart := now.Add(-rl.window)
	redisKey := "tender:ratelimit:" + key

	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.log.Warn("", "", "rate limit check failed, allowing request", map[string]interface{}{
			"error": err.Error(),
		})
		return true
	}

	if countCmd.Val() >= int64(rl.limit) {
		return false
	}

	pipe = rl.client.Pipeline()
	pipe.ZAdd(ctx, redisKey, &redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.log.Warn("", "", "rate limit record failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return true
}

// Close releases the Redis connection.
func (rl *RateLimiter) Close() error {
	if rl.client == nil {
		return nil
	}
	return rl.client.Close()
}
