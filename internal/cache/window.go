// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// windowKeyPrefix is the Valkey key prefix for rate-limit windows.
const windowKeyPrefix = "ratelimit:"

// WindowCounter counts hits per key in fixed time windows. Every API
// instance sharing the Valkey server sees the same counts.
type WindowCounter struct {
	client *redis.Client
	now    func() time.Time
}

// NewWindowCounter creates a counter backed by the given Valkey client.
func NewWindowCounter(client *redis.Client) *WindowCounter {
	return &WindowCounter{client: client, now: time.Now}
}

// Hit records one hit for key in the current window and returns the count
// so far, including this one. Window keys expire on their own once the
// window has passed.
func (c *WindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	start := c.now().Truncate(window).Unix()
	k := fmt.Sprintf("%s%s:%d", windowKeyPrefix, key, start)

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("valkey window hit %s: %w", k, err)
	}
	return incr.Val(), nil
}
