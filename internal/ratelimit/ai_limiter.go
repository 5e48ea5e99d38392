package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/lancerkit/lancer/internal/config"
)

const keyAIRequestUser = "ai:request:user:%s"

const (
	defaultAIUserRate  = 0.5
	defaultAIUserBurst = 10
)

// AIRequestLimiter throttles outbound AI generation requests per user.
// A nil limiter allows everything, which is how deployments without
// redis run.
type AIRequestLimiter struct {
	bucket *TokenBucket

	userRate  float64
	userBurst int
}

func NewAIRequestLimiter(cfg config.Config) *AIRequestLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})

	return &AIRequestLimiter{
		bucket:    NewTokenBucket(client),
		userRate:  defaultAIUserRate,
		userBurst: defaultAIUserBurst,
	}
}

// Allow reports whether the given user may issue another AI request now.
func (l *AIRequestLimiter) Allow(ctx context.Context, userID string) (*RateLimitResult, error) {
	if l == nil || l.bucket == nil {
		return &RateLimitResult{Allowed: true}, nil
	}
	if strings.TrimSpace(userID) == "" {
		userID = "anonymous"
	}

	key := fmt.Sprintf(keyAIRequestUser, userID)
	res, err := l.bucket.Allow(ctx, key, l.userRate, l.userBurst)
	if err != nil {
		// Redis being down should not block content generation.
		return &RateLimitResult{Allowed: true}, nil
	}
	if res.RetryAfter < 0 {
		res.RetryAfter = time.Second
	}
	return res, nil
}
