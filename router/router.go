// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/scanmail/cliparse"
	"github.com/danielhkuo/scanmail/dedup"
	"github.com/danielhkuo/scanmail/dispatch"
	"github.com/danielhkuo/scanmail/handlers"
	"github.com/danielhkuo/scanmail/mail"
	"github.com/danielhkuo/scanmail/metrics"
	"github.com/danielhkuo/scanmail/middleware"
	"github.com/danielhkuo/scanmail/settings"
	"github.com/danielhkuo/scanmail/verify"
)

// NewRouter builds the API on an HTTP mail transport configured from cfg.
func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	transport := mail.NewHTTPTransport(cfg.MailTimeout, cfg.MailRPS, cfg.MailBurst)
	return NewRouterWithTransport(db, transport)
}

// NewRouterWithTransport builds the API on the given mail transport.
// The dedup window and verification state start from the stored settings.
func NewRouterWithTransport(db *sql.DB, transport mail.Transport) *http.ServeMux {
	mux := http.NewServeMux()

	store := settings.NewStore(db)
	st, err := store.Load(context.Background())
	if err != nil {
		slog.Warn("failed to load settings, starting from defaults", "error", err)
		st = settings.Defaults()
	}

	initial := verify.Unverified
	if st.Verified {
		initial = verify.Verified
	}

	client := mail.NewClient(transport)
	verifier := verify.NewWithState(client, initial)
	window := dedup.New(st.Window(), dedup.MinWindow)
	dispatcher := dispatch.New(window, client)

	// Initialize handlers
	payloadHandler := handlers.NewPayloadHandler()
	scanHandler := handlers.NewScanHandler(db, store, verifier, dispatcher)
	settingsHandler := handlers.NewSettingsHandler(store, verifier, window)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", metrics.Handler())

	// Payload generation
	mux.HandleFunc("POST /payloads", middleware.WithLogging(payloadHandler.CreatePayload))
	mux.HandleFunc("POST /payloads/decode", middleware.WithLogging(payloadHandler.DecodePayload))

	// Scans
	mux.HandleFunc("POST /scans", middleware.WithLogging(scanHandler.SubmitScan))
	mux.HandleFunc("GET /scans", middleware.WithLogging(scanHandler.ListScans))

	// Settings
	mux.HandleFunc("GET /settings", middleware.WithLogging(settingsHandler.GetSettings))
	mux.HandleFunc("PUT /settings", middleware.WithLogging(settingsHandler.UpdateSettings))
	mux.HandleFunc("POST /settings/verify", middleware.WithLogging(settingsHandler.VerifySettings))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("scanmail API v1"))
	})

	return mux
}
