// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// contentPolicy sanitizes AI-generated article HTML before it is accepted.
// The model output is untrusted vendor data; scripts, inline handlers, and
// unexpected elements are stripped. target="_blank" anchors survive because
// external references depend on them.
var contentPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").OnElements("a")
	return p
}()

// sanitizeHTML strips unsafe markup from a generated article body.
func sanitizeHTML(html string) string {
	return contentPolicy.Sanitize(html)
}
