// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scanner

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRun_LinesInOrder(t *testing.T) {
	input := "first\n\n  \nsecond\r\nthird"
	var got []string

	stats, err := Run(context.Background(), strings.NewReader(input), func(ctx context.Context, raw string, now time.Time) error {
		got = append(got, raw)
		return nil
	}, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("handled %q, want %q", got, want)
	}
	if stats.Lines != 5 || stats.Skipped != 2 {
		t.Errorf("stats = %+v, want 5 lines 2 skipped", stats)
	}
}

func TestRun_UsesClock(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var seen time.Time

	Run(context.Background(), strings.NewReader("x\n"), func(ctx context.Context, raw string, now time.Time) error {
		seen = now
		return nil
	}, Options{Now: func() time.Time { return fixed }})

	if !seen.Equal(fixed) {
		t.Errorf("handler saw %v, want %v", seen, fixed)
	}
}

func TestRun_HandlerErrors(t *testing.T) {
	boom := errors.New("boom")
	h := func(ctx context.Context, raw string, now time.Time) error {
		if raw == "bad" {
			return boom
		}
		return nil
	}

	stats, err := Run(context.Background(), strings.NewReader("ok\nbad\nok\n"), h, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Errors != 1 || stats.Lines != 3 {
		t.Errorf("stats = %+v", stats)
	}

	stats, err = Run(context.Background(), strings.NewReader("ok\nbad\nok\n"), h, Options{StopOnError: true})
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
	if stats.Lines != 2 {
		t.Errorf("Lines = %d, want 2", stats.Lines)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := Run(ctx, strings.NewReader("a\nb\nc\n"), func(ctx context.Context, raw string, now time.Time) error {
		calls++
		cancel()
		return nil
	}, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("handler called %d times after cancel, want 1", calls)
	}
}
