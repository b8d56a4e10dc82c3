// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"testing"
	"time"

	"github.com/danielhkuo/scanmail/dedup"
	"github.com/danielhkuo/scanmail/dispatch"
	"github.com/danielhkuo/scanmail/mail"
	"github.com/danielhkuo/scanmail/settings"
	"github.com/danielhkuo/scanmail/testutil"
	"github.com/danielhkuo/scanmail/verify"
)

var testStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db        *sql.DB
	transport *testutil.FakeTransport
	store     *settings.Store
	verifier  *verify.Verifier
	window    *dedup.Window
	scans     *ScanHandler
	settings  *SettingsHandler
	clock     time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		db:        testutil.SetupTestDB(t),
		transport: testutil.NewFakeTransport(),
		clock:     testStart,
	}

	client := mail.NewClient(env.transport)
	env.store = settings.NewStore(env.db)
	env.verifier = verify.New(client)
	env.window = dedup.New(dedup.MinWindow, dedup.MinWindow)

	env.scans = NewScanHandler(env.db, env.store, env.verifier, dispatch.New(env.window, client))
	env.scans.SetClock(func() time.Time { return env.clock })
	env.settings = NewSettingsHandler(env.store, env.verifier, env.window)

	return env
}

// seedAccount stores a complete, unverified account.
func (env *testEnv) seedAccount(t *testing.T) {
	t.Helper()
	testutil.SeedSettings(t, env.db, map[string]string{
		settings.KeyCredentials: "key-123",
		settings.KeyDomain:      "https://api.example.net/v3/mg.example.net",
		settings.KeySourceEmail: "scanner@example.net",
	})
}

func (env *testEnv) advance(d time.Duration) {
	env.clock = env.clock.Add(d)
}
