// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// window is one client's counter for the current fixed window.
type window struct {
	start time.Time
	count int
}

// RateLimiter caps requests per client IP over a fixed window. Pipeline
// routes hold a connection for the length of several model calls, so the
// cap is about protecting the AI quota, not raw throughput.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	stop    chan struct{}
}

// NewRateLimiter creates a limiter allowing limit requests per period for
// each client IP. A background sweep drops idle clients.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		stop:    make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweep()
			case <-rl.stop:
				return
			}
		}
	}()

	return rl
}

// Stop ends the background sweep.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// allow counts one request against the client's current window. The window
// resets when its period has fully elapsed.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.period {
		rl.windows[key] = &window{start: now, count: 1}
		return true
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// retryAfter reports how long the client must wait for a fresh window.
func (rl *RateLimiter) retryAfter(key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok {
		return 0
	}
	remaining := rl.period - time.Since(w.start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// sweep drops windows whose period has elapsed.
func (rl *RateLimiter) sweep() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.period {
			delete(rl.windows, key)
		}
	}
}

// Middleware rejects over-limit clients with the API's uniform JSON error
// body and a Retry-After hint.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			secs := int(rl.retryAfter(ip).Seconds()) + 1
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the originating address, trusting proxy headers when
// present. The deployment sits behind a reverse proxy that sets them.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
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
