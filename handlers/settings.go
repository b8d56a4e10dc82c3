// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/scanmail/auth"
	"github.com/danielhkuo/scanmail/dedup"
	"github.com/danielhkuo/scanmail/middleware"
	"github.com/danielhkuo/scanmail/models"
	"github.com/danielhkuo/scanmail/settings"
	"github.com/danielhkuo/scanmail/verify"
)

type SettingsHandler struct {
	store    *settings.Store
	verifier *verify.Verifier
	window   *dedup.Window
}

func NewSettingsHandler(store *settings.Store, verifier *verify.Verifier, window *dedup.Window) *SettingsHandler {
	return &SettingsHandler{store: store, verifier: verifier, window: window}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Load(r.Context())
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.settingsResponse(st))
}

// UpdateSettings handles PUT /settings
// Any edit invalidates the current verification. The new values are only
// stored once they pass verification.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	st, err := h.store.Load(r.Context())
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if creds := strings.TrimSpace(req.Credentials); creds != "" {
		st.Credentials = creds
	}
	st.Domain = strings.TrimSpace(req.Domain)
	st.SourceEmail = strings.TrimSpace(req.SourceEmail)
	if req.ResetScanningHours != nil {
		st = st.WithResetHours(*req.ResetScanningHours)
	}

	if st.Credentials == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "credentials is required")
		return
	}
	if st.Domain == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "domain is required")
		return
	}
	if st.SourceEmail == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "source_email is required")
		return
	}

	h.verifier.Invalidate()
	if err := h.store.SetVerified(r.Context(), false); err != nil {
		slog.Error("failed to clear verified flag", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	if ok, _ := h.verifier.Verify(r.Context(), st.Account()); !ok {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, verify.FailureAlert(st.SourceEmail))
		return
	}

	if err := h.store.Save(r.Context(), st); err != nil {
		slog.Error("failed to save settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	if err := h.store.SetVerified(r.Context(), true); err != nil {
		slog.Error("failed to set verified flag", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	st.Verified = true

	h.window.SetWindow(st.Window())

	slog.Info("settings updated", "domain", st.Domain, "source", st.SourceEmail, "window", st.Window())

	middleware.JSONResponse(w, http.StatusOK, h.settingsResponse(st))
}

// VerifySettings handles POST /settings/verify
func (h *SettingsHandler) VerifySettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Load(r.Context())
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	ok, _ := h.verifier.Verify(r.Context(), st.Account())
	if err := h.store.SetVerified(r.Context(), ok); err != nil {
		slog.Error("failed to persist verification", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save verification")
		return
	}

	if !ok {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, verify.FailureAlert(st.SourceEmail))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VerifyResponse{
		Verified: true,
		State:    h.verifier.State().String(),
	})
}

func (h *SettingsHandler) settingsResponse(st settings.Settings) models.SettingsResponse {
	return models.SettingsResponse{
		Credentials:         auth.Redact(st.Credentials),
		Domain:              st.Domain,
		SourceEmail:         st.SourceEmail,
		ResetScanningTimeMs: st.Window().Milliseconds(),
		ResetScanningTime:   st.WindowDescription(),
		Verified:            st.Verified,
		State:               h.verifier.State().String(),
	}
}
