// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package middleware provides the HTTP middleware chain for the PostForge
// API: request logging, panic recovery, security headers, and per-IP rate
// limiting.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// slowRequestThreshold separates ordinary CRUD latency from pipeline runs
// that wait on the AI model. Requests over it are logged at warn level so
// stuck vendor calls stand out.
const slowRequestThreshold = 30 * time.Second

// statusWriter captures the status code and response size for the log line.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

// Logger records one structured line per request: method, path, status,
// response size, and duration in milliseconds.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		elapsed := time.Since(start)
		level := slog.LevelInfo
		if elapsed > slowRequestThreshold {
			level = slog.LevelWarn
		}

		slog.Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"duration_ms", elapsed.Milliseconds(),
			"remote", r.RemoteAddr,
		)
	})
}
