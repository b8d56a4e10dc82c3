// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/danielhkuo/scanmail/mail"
	"github.com/danielhkuo/scanmail/models"
	"github.com/danielhkuo/scanmail/settings"
	"github.com/danielhkuo/scanmail/testutil"
	"github.com/danielhkuo/scanmail/verify"
)

const scanText = "mList: a@x.com; b@x.com --- subj: Hi --- msg: Hello --- uuid: u1"

func (env *testEnv) submit(t *testing.T, text string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	env.scans.SubmitScan(w, testutil.MakeRequest("POST", "/scans", models.ScanRequest{Text: text}, nil))
	return w
}

func TestSubmitScan_VerifiesThenSends(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t)

	w := env.submit(t, scanText)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ScanResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Outcome != "sent" || resp.Successes != 2 || resp.Failures != 0 {
		t.Errorf("Unexpected outcome %+v", resp)
	}
	if resp.MessageID != "u1" {
		t.Errorf("Expected message_id u1, got %q", resp.MessageID)
	}
	if resp.EventID == "" {
		t.Error("Expected an event_id")
	}

	// One probe, then one request per recipient.
	reqs := env.transport.Requests()
	if len(reqs) != 3 {
		t.Fatalf("Expected 3 mail requests, got %d", len(reqs))
	}

	probe, _ := url.ParseQuery(reqs[0].Body)
	if probe.Get("subject") != verify.ProbeSubject || probe.Get("to") != "scanner@example.net" {
		t.Errorf("First request is not the verification probe: %q", reqs[0].Body)
	}

	for i, want := range []string{"a@x.com", "b@x.com"} {
		form, _ := url.ParseQuery(reqs[i+1].Body)
		if form.Get("to") != want {
			t.Errorf("request %d to = %q, want %q", i+1, form.Get("to"), want)
		}
		if reqs[i+1].Endpoint != "https://api.example.net/v3/mg.example.net/messages" {
			t.Errorf("request %d endpoint = %q", i+1, reqs[i+1].Endpoint)
		}
	}

	if env.verifier.State() != verify.Verified {
		t.Errorf("Expected verifier state verified, got %v", env.verifier.State())
	}
	st, _ := env.store.Load(t.Context())
	if !st.Verified {
		t.Error("Expected settingsVerified to be persisted")
	}
	if n := testutil.CountRows(t, env.db, "scan_event"); n != 1 {
		t.Errorf("Expected 1 scan_event row, got %d", n)
	}
}

func TestSubmitScan_VerificationFails(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t)
	env.transport.FailAll(http.StatusUnauthorized)

	w := env.submit(t, scanText)
	testutil.AssertStatus(t, w, http.StatusPreconditionFailed)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != verify.FailureAlert("scanner@example.net") {
		t.Errorf("Unexpected message %q", resp.Message)
	}

	if n := len(env.transport.Requests()); n != 1 {
		t.Errorf("Expected only the probe request, got %d", n)
	}
	if n := testutil.CountRows(t, env.db, "scan_event"); n != 0 {
		t.Errorf("Expected no scan_event rows, got %d", n)
	}
	// The code was never observed, so a later scan is not a duplicate.
	if env.window.Len() != 0 {
		t.Errorf("Expected empty dedup window, got %d records", env.window.Len())
	}
}

func TestSubmitScan_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t)

	testutil.AssertStatus(t, env.submit(t, scanText), http.StatusOK)

	env.advance(30 * time.Second)
	w := env.submit(t, scanText)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ScanResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Outcome != "duplicate" {
		t.Errorf("Expected duplicate, got %q", resp.Outcome)
	}

	env.advance(31 * time.Second)
	w = env.submit(t, scanText)
	resp = models.ScanResponse{}
	testutil.AssertJSON(t, w, &resp)
	if resp.Outcome != "sent" {
		t.Errorf("Expected sent after the window, got %q", resp.Outcome)
	}

	if n := testutil.CountRows(t, env.db, "scan_event"); n != 3 {
		t.Errorf("Expected 3 scan_event rows, got %d", n)
	}
}

func TestSubmitScan_PartialFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t)
	env.transport.Respond = func(req mail.Request) (*mail.Response, error) {
		form, _ := url.ParseQuery(req.Body)
		if form.Get("to") == "a@x.com" {
			return &mail.Response{StatusCode: http.StatusBadRequest, Body: []byte("bad recipient")}, nil
		}
		return &mail.Response{StatusCode: http.StatusOK, Body: []byte(`{"message":"Queued"}`)}, nil
	}

	w := env.submit(t, scanText)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ScanResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Successes != 1 || resp.Failures != 1 {
		t.Errorf("Expected 1/1, got %d/%d", resp.Successes, resp.Failures)
	}
	if len(resp.Results) != 2 || resp.Results[0].OK || !resp.Results[1].OK {
		t.Errorf("Unexpected results %+v", resp.Results)
	}
	if resp.Results[0].Error == "" {
		t.Error("Expected an error message for the failed recipient")
	}
}

func TestSubmitScan_NoRecipients(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t)

	w := env.submit(t, "mList:  --- subj: S --- msg: M --- uuid: empty")
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ScanResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Outcome != "no_recipients" {
		t.Errorf("Expected no_recipients, got %q", resp.Outcome)
	}
}

func TestSubmitScan_Validation(t *testing.T) {
	env := newTestEnv(t)

	testutil.AssertStatus(t, env.submit(t, ""), http.StatusBadRequest)

	w := httptest.NewRecorder()
	env.scans.SubmitScan(w, testutil.MakeRequest("POST", "/scans", []int{1}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitScan_UsesStoredWindowAfterEdit(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t)
	testutil.AssertStatus(t, env.submit(t, scanText), http.StatusOK)

	env.window.SetWindow(2 * time.Hour)
	env.advance(time.Hour)

	var resp models.ScanResponse
	testutil.AssertJSON(t, env.submit(t, scanText), &resp)
	if resp.Outcome != "duplicate" {
		t.Errorf("Expected duplicate inside a 2h window, got %q", resp.Outcome)
	}
}

func TestListScans(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t)

	for i, text := range []string{
		"mList: a@x.com --- subj: S --- msg: M --- uuid: first",
		"mList: a@x.com --- subj: S --- msg: M --- uuid: second",
		"mList: a@x.com --- subj: S --- msg: M --- uuid: third",
	} {
		if i > 0 {
			env.advance(time.Minute)
		}
		testutil.AssertStatus(t, env.submit(t, text), http.StatusOK)
	}
	env.advance(2 * time.Minute)

	w := httptest.NewRecorder()
	env.scans.ListScans(w, testutil.MakeRequest("GET", "/scans?limit=2", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ScanListResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(resp.Events))
	}
	if resp.Events[0].MessageID != "third" || resp.Events[1].MessageID != "second" {
		t.Errorf("Expected newest first, got %q, %q", resp.Events[0].MessageID, resp.Events[1].MessageID)
	}
	if resp.Events[0].ObservedAgo != "2 minutes ago" {
		t.Errorf("Expected '2 minutes ago', got %q", resp.Events[0].ObservedAgo)
	}
	if !resp.Events[0].ObservedAt.Equal(testStart.Add(2 * time.Minute)) {
		t.Errorf("Unexpected observed_at %v", resp.Events[0].ObservedAt)
	}
}

func TestListScans_Empty(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.scans.ListScans(w, testutil.MakeRequest("GET", "/scans", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ScanListResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Events == nil || len(resp.Events) != 0 {
		t.Errorf("Expected an empty events list, got %v", resp.Events)
	}
}

func TestListScans_BadLimit(t *testing.T) {
	env := newTestEnv(t)

	for _, limit := range []string{"0", "-1", "many"} {
		w := httptest.NewRecorder()
		env.scans.ListScans(w, testutil.MakeRequest("GET", "/scans?limit="+limit, nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

func TestSubmitScan_AlreadyVerifiedSkipsProbe(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t)
	testutil.SeedSettings(t, env.db, map[string]string{settings.KeySettingsVerified: "true"})
	env.verifier = verify.NewWithState(mail.NewClient(env.transport), verify.Verified)
	env.scans.verifier = env.verifier

	testutil.AssertStatus(t, env.submit(t, scanText), http.StatusOK)

	if n := len(env.transport.Requests()); n != 2 {
		t.Errorf("Expected 2 mail requests without a probe, got %d", n)
	}
}
