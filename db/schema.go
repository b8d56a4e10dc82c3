// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are Unix milliseconds so sqlite and postgres scan them the same way.
const schema = `
-- Settings
CREATE TABLE IF NOT EXISTS setting (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at BIGINT NOT NULL
);

-- Scan history
CREATE TABLE IF NOT EXISTS scan_event (
    id TEXT PRIMARY KEY,
    message_id TEXT NOT NULL,
    outcome TEXT NOT NULL CHECK (outcome IN ('ignored', 'duplicate', 'no_recipients', 'sent')),
    successes INTEGER NOT NULL DEFAULT 0,
    failures INTEGER NOT NULL DEFAULT 0,
    observed_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scan_event_observed_at ON scan_event(observed_at);
CREATE INDEX IF NOT EXISTS idx_scan_event_message_id ON scan_event(message_id);
`
