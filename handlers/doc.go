// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the scanmail API.

# Handler Types

  - PayloadHandler: Generate and inspect QR payloads
  - ScanHandler: Scan submission and scan history
  - SettingsHandler: Account settings and verification

Handlers are created via constructor functions that take their collaborators:

	scanHandler := handlers.NewScanHandler(db, store, verifier, dispatcher)

# Payloads

	POST /payloads        → CreatePayload (returns id, payload, summary)
	POST /payloads/decode → DecodePayload

Payload endpoints are stateless.

# Scans

	POST /scans → SubmitScan
	GET /scans  → ListScans (?limit=N, newest first)

A scan with unverified settings runs the verification probe first. If the
probe fails the scan is rejected with 412 and nothing is sent. Every
dispatched scan is recorded in scan_event with its outcome.

# Settings

	GET /settings         → GetSettings (credentials redacted)
	PUT /settings         → UpdateSettings
	POST /settings/verify → VerifySettings

UpdateSettings verifies the new account before saving it. An account that
fails verification is not stored and the response carries the alert text
shown to the operator.
*/
package handlers
