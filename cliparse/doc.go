// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Each field takes the first value found in:

 1. CLI flag
 2. Environment variable
 3. YAML config file (-c or CONFIG_FILE)
 4. Built-in default

# CLI Flags

	-p              Server port (default 3318)
	-d              Database URL; a file path for sqlite
	-t              Database type: sqlite (default) or postgres
	-c              YAML config file
	-log-level      debug, info, warn, error
	-log-format     auto, text, json
	-mail-timeout   Per-request mail API timeout (default 10s)
	-mail-rps       Mail API requests per second (default 5)
	-mail-burst     Mail API burst (default 1)

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, CONFIG_FILE,
	LOG_LEVEL, LOG_FORMAT, MAIL_TIMEOUT, MAIL_RPS, MAIL_BURST

# Config File

	port: 3318
	database_type: postgres
	database_url: postgres://scanmail@localhost/scanmail?sslmode=disable
	log_level: info
	log_format: json
	mail_timeout: 10s
	mail_rps: 5
	mail_burst: 1

# Validation

ParseFlags returns an error for an unknown database type, a postgres
configuration without a URL, or malformed numeric environment values.
*/
package cliparse
