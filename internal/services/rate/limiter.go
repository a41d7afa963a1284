package rate

import (
	"context"
	"fmt"
	"time"
)

const (
	messageMinuteWindow = time.Minute
	messageHourWindow   = time.Hour
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

// Limiter caps how many moderation messages one user may post per
// minute and per hour, using fixed redis windows.
type Limiter struct {
	store     WindowStore
	perMinute int
	perHour   int
}

func NewLimiter(store WindowStore, perMinute, perHour int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	if perHour < 0 {
		perHour = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
		perHour:   perHour,
	}
}

// AllowMessage counts one message attempt against both windows. A zero
// limit disables that window.
func (l *Limiter) AllowMessage(ctx context.Context, userID string) (int64, bool, error) {
	if userID == "" {
		return 0, false, fmt.Errorf("user id is required")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perMinute > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, minuteKey(userID), messageMinuteWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perMinute) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.perHour > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, hourKey(userID), messageHourWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perHour) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}

	return 0, true, nil
}

// RetryAfterMessage peeks both windows without consuming an attempt.
// It returns the seconds until the tightest exhausted window resets, or
// zero when the user may post now.
func (l *Limiter) RetryAfterMessage(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("user id is required")
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perMinute > 0 {
		count, ttl, err := l.store.WindowState(ctx, minuteKey(userID))
		if err != nil {
			return 0, err
		}
		if count >= int64(l.perMinute) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.perHour > 0 {
		count, ttl, err := l.store.WindowState(ctx, hourKey(userID))
		if err != nil {
			return 0, err
		}
		if count >= int64(l.perHour) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	return retryAfterSec, nil
}

func minuteKey(userID string) string {
	return "rate:messages:min:" + userID
}

func hourKey(userID string) string {
	return "rate:messages:hour:" + userID
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
