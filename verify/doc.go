// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package verify gates the use of mail settings behind a live probe.

	v := verify.New(mailClient)
	ok, err := v.Verify(ctx, acct)

Verify moves Unverified → Verifying → Verified on success, or back to
Unverified on any failure. The probe is one e-mail from the source address to
itself with subject "verification" and text "verified". Invalidate returns the
state to Unverified and should be called whenever any setting changes.

Concurrent Verify calls run one at a time; State may be read at any point.
*/
package verify
