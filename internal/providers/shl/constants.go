package shl

import "time"

const (
	providerName = "shl"

	defaultBaseURL     = "https://openapi.shl.se"
	defaultHTTPTimeout = 10 * time.Second
	defaultTimezone    = "Europe/Stockholm"

	tokenPath = "/oauth2/token"
	// Tokens are refreshed this long before the upstream expiry.
	tokenEarlyExpiry = 5 * time.Minute

	maxErrorBody = 512
)
