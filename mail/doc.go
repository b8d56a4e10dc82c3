// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mail sends plain-text e-mails through an HTTP mail API.

# Requests

Every e-mail is a single form-encoded POST to <domain>/messages:

	POST https://api.example.net/v3/mg.example.net/messages
	Authorization: Basic <base64("api:"+key)>
	Content-Type: application/x-www-form-urlencoded

	from=...&to=...&subject=...&text=...

The Authorization token is derived with auth.Authorize, so stored credentials
may be either the raw key or the encoded token.

# Success

A send succeeds only when the API answers 2xx with a non-empty body that is
not the JSON literal null. Everything else is a *TransportError:

	err := client.Send(ctx, acct, mail.Email{From: acct.SourceEmail, To: "a@x.com", ...})
	var te *mail.TransportError
	if errors.As(err, &te) && te.StatusCode == http.StatusUnauthorized {
		// bad credentials
	}

# Transports

HTTPTransport is the production Transport. It applies a client timeout and
waits on a rate.Limiter before each request so fan-out to many recipients
does not trip provider limits. Tests substitute testutil.FakeTransport.
*/
package mail
