// Package ratelimiter provides a fixed-window limiter for outbound API calls.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiterは、API呼び出しなどの操作の頻度を制限します。
// 複数のgoroutineから同時に使用できます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // ウィンドウの長さ
	count     int
	lastReset time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limitが0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// Waitは現在のウィンドウに空きができるまで待機します。
// ctxがキャンセルされた場合はctx.Err()を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}
	for {
		wait := rl.reserve()
		if wait <= 0 {
			return nil
		}
		slog.Debug("rate limit reached, waiting", "limit", rl.limit, "wait", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve takes a slot and returns 0, or returns how long until the window resets.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count < rl.limit {
		rl.count++
		return 0
	}
	return rl.lastReset.Add(rl.interval).Sub(now)
}
