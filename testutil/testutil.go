// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielhkuo/scanmail/cliparse"
	"github.com/danielhkuo/scanmail/db"
	"github.com/danielhkuo/scanmail/mail"
	_ "modernc.org/sqlite"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		LogLevel:     "debug",
		LogFormat:    "text",
	}
}

// SeedSettings writes raw setting rows.
func SeedSettings(t *testing.T, conn *sql.DB, values map[string]string) {
	t.Helper()

	for name, value := range values {
		_, err := conn.Exec(`
			INSERT INTO setting (name, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value
		`, name, value, 0)
		if err != nil {
			t.Fatalf("Failed to seed setting %s: %v", name, err)
		}
	}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// FakeTransport is a mail.Transport that records requests and answers
// from a function. The default answers every request 200 with a JSON body.
type FakeTransport struct {
	mu       sync.Mutex
	requests []mail.Request

	// Respond, when set, decides the answer for each request.
	Respond func(req mail.Request) (*mail.Response, error)
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

func (f *FakeTransport) Do(ctx context.Context, req mail.Request) (*mail.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.Respond
	f.mu.Unlock()

	if respond != nil {
		return respond(req)
	}
	return &mail.Response{StatusCode: http.StatusOK, Body: []byte(`{"id":"<test@mail>","message":"Queued. Thank you."}`)}, nil
}

// Requests returns a copy of every request seen so far.
func (f *FakeTransport) Requests() []mail.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mail.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// FailAll makes every subsequent request answer with status.
func (f *FakeTransport) FailAll(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Respond = func(mail.Request) (*mail.Response, error) {
		return &mail.Response{StatusCode: status, Body: []byte(http.StatusText(status))}, nil
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
