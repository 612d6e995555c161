// Package ratelimiter throttles user-triggered API calls, using redis so that the limits hold across processes.
package ratelimiter

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

// limits
var (
	limitInquiry    = redis_rate.PerMinute(3)
	limitAlertCheck = redis_rate.PerMinute(1)
)

// limit key prefixes
const (
	keyPrefixInquiry    = "r:inquiry"
	keyPrefixAlertCheck = "r:alert-check"
)

// Limiter checks the limits, a nil Limiter allows everything
type Limiter struct {
	limiter *redis_rate.Limiter
	prefix  string
}

// New creates a Limiter using the given redis client, with optional key prefix
func New(rdb *redis.Client, keyPrefix string) *Limiter {
	return &Limiter{
		limiter: redis_rate.NewLimiter(rdb),
		prefix:  keyPrefix,
	}
}

// InquiryAllowed checks if an inquiry for the offer with the given ID is allowed to be sent
func (l *Limiter) InquiryAllowed(ctx context.Context, offerID int64) bool {
	return l.allow(ctx, fmt.Sprintf("%s:%d", keyPrefixInquiry, offerID), limitInquiry)
}

// AlertCheckAllowed checks if the offers of the search alert with the given ID are allowed to be fetched
func (l *Limiter) AlertCheckAllowed(ctx context.Context, alertID int64) bool {
	return l.allow(ctx, fmt.Sprintf("%s:%d", keyPrefixAlertCheck, alertID), limitAlertCheck)
}

func (l *Limiter) allow(ctx context.Context, key string, limit redis_rate.Limit) bool {
	if l == nil {
		return true
	}
	if l.prefix != "" {
		key = l.prefix + ":" + key
	}
	res, err := l.limiter.Allow(ctx, key, limit)
	if err != nil {
		// redis being unavailable must not block the user
		log.WithField("key", key).Errorf("failed to check rate limit: %v", err)
		return true
	}
	return res.Allowed != 0
}
