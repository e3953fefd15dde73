// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

// Gemini response schemas, one per schema-constrained stage. The vendor
// enforces the shape server-side; the decoded result is still validated
// locally before being returned.

var planSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"title":    map[string]any{"type": "STRING"},
		"angle":    map[string]any{"type": "STRING"},
		"keywords": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
	},
	"required": []string{"title", "angle", "keywords"},
}

var outlineSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"outline":              map[string]any{"type": "STRING"},
		"estimated_word_count": map[string]any{"type": "INTEGER"},
		"seo_score":            map[string]any{"type": "INTEGER"},
	},
	"required": []string{"outline", "estimated_word_count", "seo_score"},
}

var contentSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"html":             map[string]any{"type": "STRING"},
		"word_count":       map[string]any{"type": "INTEGER"},
		"meta_description": map[string]any{"type": "STRING"},
		"faqs": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"question": map[string]any{"type": "STRING"},
					"answer":   map[string]any{"type": "STRING"},
				},
				"required": []string{"question", "answer"},
			},
		},
	},
	"required": []string{"html", "word_count", "meta_description", "faqs"},
}

var imageSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"featured_description": map[string]any{"type": "STRING"},
		"section_descriptions": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
	},
	"required": []string{"featured_description", "section_descriptions"},
}
