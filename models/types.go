// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreatePayloadRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
}

type DecodePayloadRequest struct {
	Payload string `json:"payload"`
}

type ScanRequest struct {
	Text string `json:"text"`
}

// Empty Credentials keeps the stored value; a nil ResetScanningHours keeps
// the stored window.
type UpdateSettingsRequest struct {
	Credentials        string `json:"credentials"`
	Domain             string `json:"domain"`
	SourceEmail        string `json:"source_email"`
	ResetScanningHours *int   `json:"reset_scanning_hours,omitempty"`
}

// Response types

type CreatePayloadResponse struct {
	ID      string `json:"id"`
	Payload string `json:"payload"`
	Summary string `json:"summary"`
}

type DecodePayloadResponse struct {
	ID         string   `json:"id"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"` // as authored
	Body       string   `json:"body"`    // as it will be sent
}

type RecipientResult struct {
	Recipient string `json:"recipient"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

type ScanResponse struct {
	EventID   string            `json:"event_id,omitempty"`
	Outcome   string            `json:"outcome"`
	MessageID string            `json:"message_id,omitempty"`
	Successes int               `json:"successes"`
	Failures  int               `json:"failures"`
	Results   []RecipientResult `json:"results,omitempty"`
}

type ScanListResponse struct {
	Events []ScanEvent `json:"events"`
}

type SettingsResponse struct {
	Credentials         string `json:"credentials"` // redacted
	Domain              string `json:"domain"`
	SourceEmail         string `json:"source_email"`
	ResetScanningTimeMs int64  `json:"reset_scanning_time_ms"`
	ResetScanningTime   string `json:"reset_scanning_time"`
	Verified            bool   `json:"verified"`
	State               string `json:"state"`
}

type VerifyResponse struct {
	Verified bool   `json:"verified"`
	State    string `json:"state"`
}

// Domain types

type ScanEvent struct {
	ID          string    `json:"id"`
	MessageID   string    `json:"message_id"`
	Outcome     string    `json:"outcome"`
	Successes   int       `json:"successes"`
	Failures    int       `json:"failures"`
	ObservedAt  time.Time `json:"observed_at"`
	ObservedAgo string    `json:"observed_ago"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
