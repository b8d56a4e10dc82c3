// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package dedup suppresses repeat scans of the same code within a time window.
package dedup
