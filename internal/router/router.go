// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// PostForge API. One route per pipeline stage plus the composites,
// integrations, and diagnostics.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"postforge/internal/handlers"
	"postforge/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	rateLimiter := middleware.NewRateLimiter(120, time.Minute)
	r.Use(rateLimiter.Middleware)

	// Liveness — fixed 200.
	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		// Client profiles.
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", api.ClientsList)
			r.Post("/", api.ClientCreate)
			r.Get("/{clientID}", api.ClientGet)
			r.Put("/{clientID}", api.ClientUpdate)
			r.Delete("/{clientID}", api.ClientDelete)
		})

		// Blog pipeline stages and composites.
		r.Route("/generate", func(r chi.Router) {
			r.Post("/topic", api.GenerateTopic)
			r.Post("/plan", api.GeneratePlan)
			r.Post("/outline", api.GenerateOutline)
			r.Post("/content", api.GenerateContent)
			r.Post("/images", api.GenerateImages)
			r.Post("/complete-blog", api.GenerateCompleteBlog)
			r.Post("/lucky-blog", api.GenerateLuckyBlog)
		})

		// Publishing.
		r.Post("/publish/wordpress", api.PublishWordPress)

		// Social posts.
		r.Route("/gbp", func(r chi.Router) {
			r.Post("/create-post", api.SocialCreatePost)
			r.Get("/posts/{clientID}", api.SocialPostsList)
			r.Put("/posts/{clientID}/{postID}", api.SocialPostUpdateStatus)
		})

		// Scheduling integration.
		r.Route("/ghl", func(r chi.Router) {
			r.Post("/sub-accounts", api.SubAccountCreate)
			r.Get("/sub-accounts/{clientID}", api.SubAccountsList)
			r.Delete("/sub-accounts/{clientID}/{accountID}", api.SubAccountDeactivate)
			r.Post("/test-connection", api.TestGHLConnection)
		})

		// Connection tests and diagnostics.
		r.Route("/test", func(r chi.Router) {
			r.Post("/wordpress", api.TestWordPress)
			r.Post("/sitemap", api.TestSitemap)
			r.Post("/crawl", api.TestCrawl)
		})
	})

	return r
}
