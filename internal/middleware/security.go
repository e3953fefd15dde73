// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders sets the response headers appropriate for a JSON API that
// is never rendered as a page. Responses carry generated article HTML and
// vendor credentials pass through request bodies, so nothing here may be
// sniffed, framed, or cached by intermediaries.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// API responses are JSON; never let a browser second-guess that.
		h.Set("X-Content-Type-Options", "nosniff")

		// There is no page to embed. Deny framing outright.
		h.Set("X-Frame-Options", "DENY")

		// Request URLs carry client UUIDs; keep them out of Referer.
		h.Set("Referrer-Policy", "no-referrer")

		// Generated content and connection-test results are per-request;
		// shared caches must not hold them.
		h.Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
