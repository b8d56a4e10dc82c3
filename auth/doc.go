// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives mail API credentials and generates random identifiers.

# Credentials

Operators may store either the raw API key or the already encoded token.
Authorize normalizes both to the same Basic auth token:

	token := auth.Authorize("key-123")   // base64("api:key-123")
	same := auth.Authorize(token)        // token, unchanged

The check is a base64 decode followed by a prefix test for "api:". A value that
fails to decode, or decodes to something else, is encoded. Invalid UTF-8 in a
raw key is replaced with U+FFFD before encoding so the result always passes the
check on the next call.

BasicHeader wraps the token for an Authorization header:

	req.Header.Set("Authorization", auth.BasicHeader(creds))

Redact masks a credential for API responses and logs.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
