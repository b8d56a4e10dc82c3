// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package verify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/danielhkuo/scanmail/mail"
	"github.com/danielhkuo/scanmail/metrics"
)

// Probe message contents.
const (
	ProbeSubject = "verification"
	ProbeText    = "verified"
)

// State is the verification status of the current settings.
type State int

const (
	Unverified State = iota
	Verifying
	Verified
)

func (s State) String() string {
	switch s {
	case Verifying:
		return "verifying"
	case Verified:
		return "verified"
	default:
		return "unverified"
	}
}

// Sender is satisfied by *mail.Client.
type Sender interface {
	Send(ctx context.Context, acct mail.Account, e mail.Email) error
}

// Verifier checks that settings can actually send mail by mailing the
// source address to itself.
type Verifier struct {
	sender Sender

	// run serializes Verify calls; mu guards state.
	run   sync.Mutex
	mu    sync.RWMutex
	state State
}

func New(sender Sender) *Verifier {
	return &Verifier{sender: sender}
}

// NewWithState returns a Verifier starting in the given state, for
// settings already verified in a previous run.
func NewWithState(sender Sender, s State) *Verifier {
	return &Verifier{sender: sender, state: s}
}

func (v *Verifier) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *Verifier) setState(s State) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
}

// Invalidate marks the settings unverified. Call it on every settings edit.
func (v *Verifier) Invalidate() {
	v.setState(Unverified)
}

// Verify sends the probe and settles in Verified or Unverified.
// The error, if any, is the probe's send failure.
func (v *Verifier) Verify(ctx context.Context, acct mail.Account) (bool, error) {
	v.run.Lock()
	defer v.run.Unlock()

	v.setState(Verifying)

	err := v.sender.Send(ctx, acct, mail.Email{
		From:    acct.SourceEmail,
		To:      acct.SourceEmail,
		Subject: ProbeSubject,
		Text:    ProbeText,
	})

	ok := err == nil
	metrics.VerificationsTotal.WithLabelValues(metrics.Result(ok)).Inc()

	if !ok {
		slog.Warn("settings verification failed", "domain", acct.Domain, "source", acct.SourceEmail, "error", err)
		v.setState(Unverified)
		return false, err
	}

	slog.Info("settings verified", "domain", acct.Domain, "source", acct.SourceEmail)
	v.setState(Verified)
	return true, nil
}

// FailureAlert is the operator-facing explanation of a failed verification.
func FailureAlert(sourceEmail string) string {
	return "Could not verify settings. Please make sure that introduced settings are correct " +
		"and that there is internet connection. If you are using sandbox please make sure " +
		"that the e-mail " + sourceEmail + " is in the list of emails to which you have " +
		"permission to send e-mails."
}
