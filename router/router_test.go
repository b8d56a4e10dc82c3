// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/scanmail/models"
	"github.com/danielhkuo/scanmail/settings"
	"github.com/danielhkuo/scanmail/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouterWithTransport(db, testutil.NewFakeTransport())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "scanmail API v1" {
		t.Errorf("Expected body 'scanmail API v1', got '%s'", w.Body.String())
	}

	// Unknown paths are not swallowed by the root handler.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown path, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouterWithTransport(db, testutil.NewFakeTransport())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	for _, name := range []string{
		"scanmail_scans_total",
		"scanmail_emails_total",
		"scanmail_verifications_total",
	} {
		if !strings.Contains(w.Body.String(), name) {
			t.Errorf("Expected %s in /metrics output", name)
		}
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouterWithTransport(db, testutil.NewFakeTransport())

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/metrics"},
		{"POST", "/payloads"},
		{"POST", "/payloads/decode"},
		{"POST", "/scans"},
		{"GET", "/scans"},
		{"GET", "/settings"},
		{"PUT", "/settings"},
		{"POST", "/settings/verify"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code == http.StatusNotFound || w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered (status %d)", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouterWithTransport(db, testutil.NewFakeTransport())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("DELETE", "/settings", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestRouter_StartsFromStoredSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedSettings(t, db, map[string]string{
		settings.KeyCredentials:       "key-123",
		settings.KeyDomain:            "https://api.example.net/v3/d",
		settings.KeySourceEmail:       "scanner@example.net",
		settings.KeyResetScanningTime: "7200000",
		settings.KeySettingsVerified:  "true",
	})

	transport := testutil.NewFakeTransport()
	mux := NewRouterWithTransport(db, transport)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/settings", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SettingsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.State != "verified" {
		t.Errorf("Expected state verified, got %q", resp.State)
	}
	if resp.ResetScanningTime != "2 hours" {
		t.Errorf("Expected window '2 hours', got %q", resp.ResetScanningTime)
	}

	// Already verified: a scan goes straight to dispatch without a probe.
	req := testutil.MakeRequest("POST", "/scans", models.ScanRequest{
		Text: "mList: a@x.com --- subj: S --- msg: M --- uuid: r1",
	}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if n := len(transport.Requests()); n != 1 {
		t.Errorf("Expected 1 mail request, got %d", n)
	}
}
