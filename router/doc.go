// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the scanmail API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

NewRouterWithTransport does the same with a caller-supplied mail transport,
which tests use to avoid real network calls.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Payloads:

	POST /payloads        - Generate a payload for a scannable code
	POST /payloads/decode - Show what a payload will send

Scans:

	POST /scans - Handle one scanned payload
	GET  /scans - Recent scan history (?limit=, default 50, max 500)

Settings:

	GET  /settings        - Current settings, credentials redacted
	PUT  /settings        - Edit, verify, and store settings
	POST /settings/verify - Re-verify the stored settings

# Shared State

One dedup window, verifier, and dispatcher are created per router and
shared by the scan and settings handlers, so a settings edit changes the
window used by the next scan.
*/
package router
