// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on sqlite (default) and postgres.

# Tables

  - setting: Named configuration values (see package settings)
  - scan_event: One row per handled scan with its outcome and send counts

# Timestamps

updated_at and observed_at are BIGINT Unix milliseconds rather than
TIMESTAMP columns, which the two drivers scan into different Go types.

# Indexes

  - scan_event.observed_at (history listing)
  - scan_event.message_id
*/
package db
