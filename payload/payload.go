// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package payload

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Wire literals. These must match byte for byte between Encode and Decode.
const (
	EmailHeader     = "mList: "
	HeaderSeparator = " --- "
	MessageHeader   = "msg: "
	EmailSeparator  = "; "
	SubjectHeader   = "subj: "
	IDHeader        = "uuid: "
)

const (
	// DefaultSubject replaces an empty subject on decode.
	DefaultSubject = "QR code scanned."

	// MessageSuffix is appended to every decoded body.
	MessageSuffix = "\n\n\nDO NOT ANSWER THIS MESSAGE."
)

var ErrNoRecipients = errors.New("at least one target e-mail is required")

// Message is the unit carried inside a scannable code.
type Message struct {
	Recipients []string
	Subject    string
	Body       string
	ID         string
}

// DecodeError reports scanned text that cannot be treated as a payload at all.
type DecodeError struct {
	Input  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode payload: %s", e.Reason)
}

// New builds a message with a fresh random id.
func New(recipients []string, subject, body string) (Message, error) {
	if len(recipients) == 0 {
		return Message{}, ErrNoRecipients
	}
	list := make([]string, len(recipients))
	copy(list, recipients)
	return Message{
		Recipients: list,
		Subject:    subject,
		Body:       body,
		ID:         uuid.NewString(),
	}, nil
}

// Encode renders m in wire format.
func Encode(m Message) string {
	var b strings.Builder
	b.WriteString(EmailHeader)
	b.WriteString(strings.Join(m.Recipients, EmailSeparator))
	b.WriteString(HeaderSeparator)
	b.WriteString(SubjectHeader)
	b.WriteString(m.Subject)
	b.WriteString(HeaderSeparator)
	b.WriteString(MessageHeader)
	b.WriteString(m.Body)
	b.WriteString(HeaderSeparator)
	b.WriteString(IDHeader)
	b.WriteString(m.ID)
	return b.String()
}

// Decode parses scanned text. Missing segments decode as empty strings, so
// almost any text yields a Message; only invalid UTF-8 is rejected.
func Decode(raw string) (Message, error) {
	if !utf8.ValidString(raw) {
		return Message{}, &DecodeError{Input: raw, Reason: "scanned text is not valid UTF-8"}
	}

	segments := strings.Split(raw, HeaderSeparator)
	segment := func(i int) string {
		if i < len(segments) {
			return segments[i]
		}
		return ""
	}

	emails := strings.Replace(segment(0), EmailHeader, "", 1)

	subject := strings.Replace(segment(1), SubjectHeader, "", 1)
	if subject == "" {
		subject = DefaultSubject
	}

	body := strings.Replace(segment(2), MessageHeader, "", 1) + MessageSuffix

	return Message{
		Recipients: strings.Split(emails, EmailSeparator),
		Subject:    subject,
		Body:       body,
		ID:         extractID(raw, segments),
	}, nil
}

// extractID falls back to the whole scanned text when the id segment is
// absent or empty, so codes from older generators still deduplicate.
func extractID(raw string, segments []string) string {
	if !strings.Contains(raw, IDHeader) || len(segments) < 4 {
		return raw
	}
	id := strings.Replace(segments[3], IDHeader, "", 1)
	if id == "" {
		return raw
	}
	return id
}

// StripSuffix removes the suffix Decode appends.
func StripSuffix(body string) string {
	return strings.TrimSuffix(body, MessageSuffix)
}

// Summary describes what a generated code carries, for display to its author.
func (m Message) Summary() string {
	var b strings.Builder
	b.WriteString("Generated qr contains the following information:")
	b.WriteString("\ne-mails: ")
	b.WriteString(strings.Join(m.Recipients, ", "))
	b.WriteString("\nsubject: ")
	b.WriteString(m.Subject)
	b.WriteString("\nmessage: ")
	b.WriteString(m.Body)
	return b.String()
}
