// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestHasPublishingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   bool
	}{
		{"complete", Client{WPSiteURL: "https://a.com", WPUsername: "u", WPAppPassword: "p"}, true},
		{"missing site", Client{WPUsername: "u", WPAppPassword: "p"}, false},
		{"missing user", Client{WPSiteURL: "https://a.com", WPAppPassword: "p"}, false},
		{"missing password", Client{WPSiteURL: "https://a.com", WPUsername: "u"}, false},
		{"empty", Client{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.HasPublishingCredentials(); got != tt.want {
				t.Errorf("HasPublishingCredentials() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme-Roof.com", "acme-roof.com"},
		{"www.acme-roof.com", "acme-roof.com"},
		{"acme-roof.com:8080", "acme-roof.com"},
		{"WWW.Acme-Roof.COM:443", "acme-roof.com"},
		{"blog.acme-roof.com", "blog.acme-roof.com"},
	}

	for _, tt := range tests {
		if got := NormalizeHost(tt.in); got != tt.want {
			t.Errorf("NormalizeHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRegisteredHost(t *testing.T) {
	c := Client{WebsiteURL: "https://www.Acme-Roof.com/about"}
	host, err := c.RegisteredHost()
	if err != nil {
		t.Fatalf("RegisteredHost: unexpected error: %v", err)
	}
	if host != "acme-roof.com" {
		t.Errorf("RegisteredHost() = %q, want %q", host, "acme-roof.com")
	}
}
