// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics defines the Prometheus collectors for scan handling.

Collectors are registered with the default registry at init and exposed by
Handler, which the router mounts at /metrics:

	scanmail_scans_total{outcome="sent|duplicate|ignored|no_recipients"}
	scanmail_emails_total{result="success|failure"}
	scanmail_verifications_total{result="success|failure"}
*/
package metrics
