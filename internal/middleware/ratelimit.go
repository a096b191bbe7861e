// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Counter counts hits per key in fixed windows. cache.WindowCounter keeps
// the counts in Valkey so every API instance shares them.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter provides per-IP rate limiting using fixed windows.
type RateLimiter struct {
	counter Counter
	limit   int           // max requests per window
	window  time.Duration // window length
}

// NewRateLimiter creates a rate limiter that allows limit requests per window.
func NewRateLimiter(counter Counter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, limit: limit, window: window}
}

// allow checks whether the given key is within the rate limit. If the
// counter store is unavailable the request is let through.
func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	n, err := rl.counter.Hit(ctx, key, rl.window)
	if err != nil {
		slog.Warn("rate limit counter unavailable", "error", err, "key", key)
		return true
	}
	return n <= int64(rl.limit)
}

// Middleware returns an HTTP middleware that rate-limits by client IP.
// Only write methods are counted; reads pass straight through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		if !rl.allow(r.Context(), clientIP(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	// Take the first (leftmost) IP, the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
