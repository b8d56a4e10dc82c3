// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/scanmail/auth"
)

// ErrEmptyResponse is returned when the provider answers 2xx with no usable body.
var ErrEmptyResponse = errors.New("empty response from mail API")

// TransportError wraps a failed send. StatusCode is zero when no response
// was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("mail transport: %v", e.Err)
	}
	return fmt.Sprintf("mail transport: status %d: %v", e.StatusCode, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Account holds what is needed to reach the mail API.
type Account struct {
	Credentials string
	Domain      string
	SourceEmail string
}

// Email is a single outbound message to one recipient.
type Email struct {
	From    string
	To      string
	Subject string
	Text    string
}

// Form encodes e as an application/x-www-form-urlencoded body with the
// fields in from, to, subject, text order.
func (e Email) Form() string {
	var b strings.Builder
	b.WriteString("from=")
	b.WriteString(url.QueryEscape(e.From))
	b.WriteString("&to=")
	b.WriteString(url.QueryEscape(e.To))
	b.WriteString("&subject=")
	b.WriteString(url.QueryEscape(e.Subject))
	b.WriteString("&text=")
	b.WriteString(url.QueryEscape(e.Text))
	return b.String()
}

// Endpoint returns the messages endpoint for an API domain.
func Endpoint(domain string) string {
	return strings.TrimRight(domain, "/") + "/messages"
}

// Client sends e-mails through a Transport.
type Client struct {
	transport Transport
}

func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

// Send posts one e-mail. Any transport error, non-2xx status, or empty
// body is reported as a *TransportError.
func (c *Client) Send(ctx context.Context, acct Account, e Email) error {
	req := Request{
		Endpoint: Endpoint(acct.Domain),
		Body:     e.Form(),
		Header:   http.Header{},
	}
	req.Header.Set("Authorization", auth.BasicHeader(acct.Credentials))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", bodySnippet(resp.Body)),
		}
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || string(body) == "null" {
		return &TransportError{StatusCode: resp.StatusCode, Err: ErrEmptyResponse}
	}

	return nil
}

func bodySnippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		return "no body"
	}
	return s
}
