// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePayloadRequest: recipients, subject, message
  - DecodePayloadRequest: payload
  - ScanRequest: text
  - UpdateSettingsRequest: credentials, domain, source_email, reset_scanning_hours

# Response Types

Types for JSON responses:

  - CreatePayloadResponse: id, payload, summary
  - DecodePayloadResponse: id, recipients, subject, message, body
  - ScanResponse: event_id, outcome, message_id, successes, failures, results
  - ScanListResponse: events
  - SettingsResponse: redacted credentials, domain, source_email, window, state
  - VerifyResponse: verified, state
  - ErrorResponse: error, message

# Domain Types

  - ScanEvent: a persisted scan outcome
  - RecipientResult: per-recipient send result within a scan
*/
package models
