// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the scanmail API server.

scanmail turns scanned QR codes into e-mail. A code carries a recipient
list, a subject, a message, and an id. When a code is scanned the server
decodes it, drops repeats of the same id inside the reset window, and sends
one message per recipient through the configured mail provider.

# Starting the Server

With no configuration the server listens on port 3318 and keeps its state
in a local SQLite file:

	go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

A .env file in the working directory is loaded before anything else.

# Configuration

Each value comes from the first source that sets it: CLI flag, environment
variable, YAML config file (-c), built-in default.

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - LOG_LEVEL (--log-level): debug, info, warn, error
  - LOG_FORMAT (--log-format): auto, text, json
  - MAIL_TIMEOUT, MAIL_RPS, MAIL_BURST: outbound mail request limits

Mail account settings (credentials, domain, source e-mail, reset window)
are not startup configuration. They live in the database and are edited
through PUT /settings, which verifies them before saving.

# Architecture

  - payload: QR payload encoding and decoding
  - auth: Credential authorization and ids
  - dedup: Time-windowed duplicate suppression
  - mail: Mail provider client and HTTP transport
  - verify: Settings verification probe
  - dispatch: Scan handling (decode, dedup, send)
  - settings: Persisted account settings
  - handlers, router, middleware, models: HTTP API
  - scanner: Line-oriented scan source used by scanctl
  - db, cliparse, logging, metrics: Ambient infrastructure

The cmd/scanctl command exposes the same operations from a terminal.

See package documentation for each component.
*/
package main
