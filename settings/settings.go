// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package settings

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/scanmail/dedup"
	"github.com/danielhkuo/scanmail/mail"
	"github.com/dustin/go-humanize"
)

// Stored setting names.
const (
	KeyCredentials       = "credentials"
	KeyDomain            = "domain"
	KeySourceEmail       = "sourceEmail"
	KeyResetScanningTime = "resetScanningTime"
	KeySettingsVerified  = "settingsVerified"
)

// Settings is the operator-editable configuration for sending mail.
type Settings struct {
	Credentials       string
	Domain            string
	SourceEmail       string
	ResetScanningTime time.Duration
	Verified          bool
}

// Defaults is what Load returns for an empty store.
func Defaults() Settings {
	return Settings{ResetScanningTime: dedup.MinWindow}
}

// Account returns the mail account these settings describe.
func (s Settings) Account() mail.Account {
	return mail.Account{
		Credentials: s.Credentials,
		Domain:      s.Domain,
		SourceEmail: s.SourceEmail,
	}
}

// Window is the dedup window, never shorter than dedup.MinWindow.
func (s Settings) Window() time.Duration {
	if s.ResetScanningTime < dedup.MinWindow {
		return dedup.MinWindow
	}
	return s.ResetScanningTime
}

// WithResetHours sets the window from a whole number of hours. Zero hours
// selects the minimum window.
func (s Settings) WithResetHours(hours int) Settings {
	d := time.Duration(hours) * time.Hour
	if d < dedup.MinWindow {
		d = dedup.MinWindow
	}
	s.ResetScanningTime = d
	return s
}

// WindowDescription renders the window for people, e.g. "1 minute" or "3 hours".
// Whole-hour windows are always counted in hours.
func (s Settings) WindowDescription() string {
	w := s.Window()
	if w < time.Hour || w%time.Hour != 0 {
		now := time.Now()
		return strings.TrimSpace(humanize.RelTime(now.Add(-w), now, "", ""))
	}
	hours := int64(w / time.Hour)
	if hours == 1 {
		return "1 hour"
	}
	return humanize.Comma(hours) + " hours"
}

// Store persists Settings as named rows in the setting table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads all settings, filling in defaults for missing names.
func (s *Store) Load(ctx context.Context) (Settings, error) {
	out := Defaults()

	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM setting`)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Settings{}, fmt.Errorf("failed to scan setting: %w", err)
		}

		switch name {
		case KeyCredentials:
			out.Credentials = value
		case KeyDomain:
			out.Domain = value
		case KeySourceEmail:
			out.SourceEmail = value
		case KeyResetScanningTime:
			ms, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				slog.Warn("ignoring malformed setting", "name", name, "value", value)
				continue
			}
			out.ResetScanningTime = time.Duration(ms) * time.Millisecond
		case KeySettingsVerified:
			out.Verified = value == "true"
		}
	}
	if err := rows.Err(); err != nil {
		return Settings{}, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return out, nil
}

// Save writes the editable settings. The verified flag is written separately
// with SetVerified.
func (s *Store) Save(ctx context.Context, st Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	values := []struct{ name, value string }{
		{KeyCredentials, st.Credentials},
		{KeyDomain, st.Domain},
		{KeySourceEmail, st.SourceEmail},
		{KeyResetScanningTime, strconv.FormatInt(st.Window().Milliseconds(), 10)},
	}
	for _, v := range values {
		if err := upsert(ctx, tx, v.name, v.value, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}

// SetVerified persists the verified flag.
func (s *Store) SetVerified(ctx context.Context, verified bool) error {
	return upsert(ctx, s.db, KeySettingsVerified, strconv.FormatBool(verified), time.Now().UnixMilli())
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, name, value string, updatedAt int64) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO setting (name, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, name, value, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", name, err)
	}
	return nil
}
