// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package settings stores the mail account and scan window configuration.

Each value is a row in the setting table keyed by name:

	credentials        raw API key or encoded token
	domain             mail API base URL
	sourceEmail        From address, also the verification target
	resetScanningTime  dedup window in milliseconds
	settingsVerified   "true" or "false"

Load fills in defaults for any missing row, so a fresh database yields empty
account fields, a one minute window, and Verified false.
*/
package settings
