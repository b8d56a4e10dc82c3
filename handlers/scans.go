// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/scanmail/auth"
	"github.com/danielhkuo/scanmail/dispatch"
	"github.com/danielhkuo/scanmail/middleware"
	"github.com/danielhkuo/scanmail/models"
	"github.com/danielhkuo/scanmail/settings"
	"github.com/danielhkuo/scanmail/verify"
	"github.com/dustin/go-humanize"
)

const (
	defaultScanLimit = 50
	maxScanLimit     = 500
)

type ScanHandler struct {
	db         *sql.DB
	store      *settings.Store
	verifier   *verify.Verifier
	dispatcher *dispatch.Dispatcher
	now        func() time.Time
}

func NewScanHandler(db *sql.DB, store *settings.Store, verifier *verify.Verifier, dispatcher *dispatch.Dispatcher) *ScanHandler {
	return &ScanHandler{
		db:         db,
		store:      store,
		verifier:   verifier,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// SetClock replaces the handler's time source. Tests use it to step
// through the dedup window.
func (h *ScanHandler) SetClock(now func() time.Time) {
	h.now = now
}

// SubmitScan handles POST /scans
func (h *ScanHandler) SubmitScan(w http.ResponseWriter, r *http.Request) {
	var req models.ScanRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	st, err := h.store.Load(r.Context())
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	// No scan is dispatched with unverified settings.
	if h.verifier.State() != verify.Verified {
		ok, _ := h.verifier.Verify(r.Context(), st.Account())
		if err := h.store.SetVerified(r.Context(), ok); err != nil {
			slog.Error("failed to persist verification", "error", err)
		}
		if !ok {
			middleware.ErrorResponse(w, http.StatusPreconditionFailed, verify.FailureAlert(st.SourceEmail))
			return
		}
	}

	observedAt := h.now()
	out := h.dispatcher.HandleScan(r.Context(), req.Text, observedAt, st.Account())

	eventID, err := h.recordEvent(r, out, observedAt)
	if err != nil {
		// The e-mails are already out; report the outcome anyway.
		slog.Error("failed to record scan event", "message_id", out.MessageID, "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, scanResponse(eventID, out))
}

func (h *ScanHandler) recordEvent(r *http.Request, out dispatch.Outcome, observedAt time.Time) (string, error) {
	eventID, err := auth.GenerateID(16)
	if err != nil {
		return "", err
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO scan_event (id, message_id, outcome, successes, failures, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, eventID, out.MessageID, string(out.Kind), out.Successes, out.Failures, observedAt.UnixMilli())
	if err != nil {
		return "", err
	}

	return eventID, nil
}

// ListScans handles GET /scans
func (h *ScanHandler) ListScans(w http.ResponseWriter, r *http.Request) {
	limit := defaultScanLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxScanLimit)
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, message_id, outcome, successes, failures, observed_at
		FROM scan_event
		ORDER BY observed_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		slog.Error("failed to query scan events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list scans")
		return
	}
	defer rows.Close()

	now := h.now()
	events := []models.ScanEvent{}
	for rows.Next() {
		var ev models.ScanEvent
		var observedMs int64
		if err := rows.Scan(&ev.ID, &ev.MessageID, &ev.Outcome, &ev.Successes, &ev.Failures, &observedMs); err != nil {
			slog.Error("failed to scan event row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list scans")
			return
		}
		ev.ObservedAt = time.UnixMilli(observedMs).UTC()
		ev.ObservedAgo = humanize.RelTime(ev.ObservedAt, now, "ago", "from now")
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate scan events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list scans")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ScanListResponse{Events: events})
}

func scanResponse(eventID string, out dispatch.Outcome) models.ScanResponse {
	resp := models.ScanResponse{
		EventID:   eventID,
		Outcome:   string(out.Kind),
		MessageID: out.MessageID,
		Successes: out.Successes,
		Failures:  out.Failures,
	}
	for _, res := range out.Results {
		rr := models.RecipientResult{Recipient: res.Recipient, OK: res.Err == nil}
		if res.Err != nil {
			rr.Error = res.Err.Error()
		}
		resp.Results = append(resp.Results, rr)
	}
	return resp
}
