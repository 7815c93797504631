// Package device turns a User-Agent header into a short label shown in
// session listings.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknown = "Unknown Device"

// ParseUserAgent returns "<browser> on <platform>", or "Unknown Device" for an
// empty header.
func ParseUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return unknown
	}
	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	platform := parsed.Platform()
	if os := parsed.OS(); os != "" && !strings.Contains(os, platform) {
		platform = os
	}
	if strings.Contains(ua, "iPhone") {
		platform = "iPhone"
	}
	if platform == "" {
		platform = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + platform)
}
