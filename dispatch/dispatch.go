// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/scanmail/dedup"
	"github.com/danielhkuo/scanmail/mail"
	"github.com/danielhkuo/scanmail/metrics"
	"github.com/danielhkuo/scanmail/payload"
)

// Kind classifies what happened to a scan.
type Kind string

const (
	Ignored      Kind = "ignored"
	Duplicate    Kind = "duplicate"
	NoRecipients Kind = "no_recipients"
	Sent         Kind = "sent"
)

// RecipientResult is the send result for one recipient. Err is nil on success.
type RecipientResult struct {
	Recipient string
	Err       error
}

// Outcome reports the handling of one scan.
type Outcome struct {
	Kind      Kind
	MessageID string
	Successes int
	Failures  int
	Results   []RecipientResult
}

// Sender is satisfied by *mail.Client.
type Sender interface {
	Send(ctx context.Context, acct mail.Account, e mail.Email) error
}

// Dispatcher turns scanned text into e-mails.
type Dispatcher struct {
	mu     sync.Mutex
	window *dedup.Window
	sender Sender
}

func New(window *dedup.Window, sender Sender) *Dispatcher {
	return &Dispatcher{window: window, sender: sender}
}

// Window returns the dedup window the dispatcher observes scans through.
func (d *Dispatcher) Window() *dedup.Window {
	return d.window
}

// HandleScan decodes raw, suppresses it if its id was seen within the
// window, and otherwise sends one e-mail per recipient in order.
// Scans are handled one at a time.
func (d *Dispatcher) HandleScan(ctx context.Context, raw string, now time.Time, acct mail.Account) Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := d.handle(ctx, raw, now, acct)
	metrics.ScansTotal.WithLabelValues(string(out.Kind)).Inc()
	return out
}

func (d *Dispatcher) handle(ctx context.Context, raw string, now time.Time, acct mail.Account) Outcome {
	msg, err := payload.Decode(raw)
	if err != nil {
		slog.Warn("ignoring undecodable scan", "error", err)
		return Outcome{Kind: Ignored}
	}

	if d.window.Observe(msg.ID, now) {
		slog.Debug("duplicate scan suppressed", "message_id", msg.ID)
		return Outcome{Kind: Duplicate, MessageID: msg.ID}
	}

	recipients := cleanRecipients(msg.Recipients)
	if len(recipients) == 0 {
		slog.Warn("scan has no recipients", "message_id", msg.ID)
		return Outcome{Kind: NoRecipients, MessageID: msg.ID}
	}

	out := Outcome{
		Kind:      Sent,
		MessageID: msg.ID,
		Results:   make([]RecipientResult, 0, len(recipients)),
	}

	for _, to := range recipients {
		err := d.sender.Send(ctx, acct, mail.Email{
			From:    acct.SourceEmail,
			To:      to,
			Subject: msg.Subject,
			Text:    msg.Body,
		})
		metrics.EmailsTotal.WithLabelValues(metrics.Result(err == nil)).Inc()

		if err != nil {
			slog.Error("failed to send email", "message_id", msg.ID, "to", to, "error", err)
			out.Failures++
		} else {
			out.Successes++
		}
		out.Results = append(out.Results, RecipientResult{Recipient: to, Err: err})
	}

	slog.Info("scan dispatched", "message_id", msg.ID, "successes", out.Successes, "failures", out.Failures)
	return out
}

func cleanRecipients(list []string) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
