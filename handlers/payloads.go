// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/scanmail/middleware"
	"github.com/danielhkuo/scanmail/models"
	"github.com/danielhkuo/scanmail/payload"
)

type PayloadHandler struct{}

func NewPayloadHandler() *PayloadHandler {
	return &PayloadHandler{}
}

// CreatePayload handles POST /payloads
func (h *PayloadHandler) CreatePayload(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePayloadRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	recipients := make([]string, 0, len(req.Recipients))
	for _, rcpt := range req.Recipients {
		if rcpt = strings.TrimSpace(rcpt); rcpt != "" {
			recipients = append(recipients, rcpt)
		}
	}

	msg, err := payload.New(recipients, req.Subject, req.Message)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "you must specify at least one target e-mail")
		return
	}

	slog.Info("payload generated", "message_id", msg.ID, "recipients", len(msg.Recipients))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePayloadResponse{
		ID:      msg.ID,
		Payload: payload.Encode(msg),
		Summary: msg.Summary(),
	})
}

// DecodePayload handles POST /payloads/decode
func (h *PayloadHandler) DecodePayload(w http.ResponseWriter, r *http.Request) {
	var req models.DecodePayloadRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	msg, err := payload.Decode(req.Payload)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DecodePayloadResponse{
		ID:         msg.ID,
		Recipients: msg.Recipients,
		Subject:    msg.Subject,
		Message:    payload.StripSuffix(msg.Body),
		Body:       msg.Body,
	})
}
