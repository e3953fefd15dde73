// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package linkcheck validates the external reference links embedded in
// generated content: links must come from a curated per-industry allow-list
// and respond successfully to a liveness probe before the content is accepted.
package linkcheck

import "strings"

// industryAllowlist maps an industry key to the external reference URLs
// generated content may cite. Authoritative trade, government, and consumer
// resources only.
var industryAllowlist = map[string][]string{
	"roofing": {
		"https://www.nrca.net",
		"https://www.energystar.gov/products/building_products/roof_products",
		"https://www.gaf.com",
		"https://www.owenscorning.com/en-us/roofing",
		"https://www.certainteed.com",
		"https://www.osha.gov/roofing",
	},
	"hvac": {
		"https://www.energystar.gov/products/heating_cooling",
		"https://www.ashrae.org",
		"https://www.acca.org",
		"https://www.energy.gov/energysaver/heating-and-cooling",
		"https://www.epa.gov/indoor-air-quality-iaq",
	},
	"plumbing": {
		"https://www.epa.gov/watersense",
		"https://www.phccweb.org",
		"https://www.iapmo.org",
		"https://www.energy.gov/energysaver/water-heating",
	},
	"electrical": {
		"https://www.nfpa.org",
		"https://www.esfi.org",
		"https://www.neca-neis.org",
		"https://www.energy.gov/energysaver/electricity-use-homes",
	},
	"landscaping": {
		"https://www.epa.gov/watersense/landscaping-tips",
		"https://www.nalp.org",
		"https://www.arborday.org",
		"https://plants.usda.gov",
	},
	"general": {
		"https://www.bbb.org",
		"https://www.consumer.ftc.gov",
		"https://www.sba.gov",
		"https://www.energystar.gov",
	},
}

// AllowedLinks returns the curated external URLs for an industry. Unknown
// industries fall back to the general consumer-resource list.
func AllowedLinks(industry string) []string {
	key := strings.ToLower(strings.TrimSpace(industry))
	if urls, ok := industryAllowlist[key]; ok {
		return urls
	}
	return industryAllowlist["general"]
}

// IsAllowed reports whether url is on the industry's allow-list.
func IsAllowed(industry, url string) bool {
	for _, allowed := range AllowedLinks(industry) {
		if url == allowed {
			return true
		}
	}
	return false
}
