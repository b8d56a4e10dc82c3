// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scanner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// maxLineBytes bounds a single scanned payload.
const maxLineBytes = 64 * 1024

// Handler receives each scanned line.
type Handler func(ctx context.Context, raw string, now time.Time) error

// Options tunes Run.
type Options struct {
	// Now supplies scan timestamps. Defaults to time.Now.
	Now func() time.Time
	// StopOnError ends Run at the first handler error instead of logging it.
	StopOnError bool
}

// Stats summarizes a Run.
type Stats struct {
	Lines   int
	Skipped int
	Errors  int
}

// Run reads one scan per line from r and passes each non-blank line to h
// in order. It returns when r is exhausted or ctx is done; neither is an error.
func Run(ctx context.Context, r io.Reader, h Handler, opts Options) (Stats, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var stats Stats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}

		stats.Lines++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			stats.Skipped++
			continue
		}

		if err := h(ctx, line, now()); err != nil {
			stats.Errors++
			if opts.StopOnError {
				return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
			}
			slog.Error("failed to handle scan", "line", stats.Lines, "error", err)
		}
	}

	if err := sc.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return stats, fmt.Errorf("failed to read scans: %w", err)
	}

	slog.Info("scan source closed", "lines", stats.Lines, "skipped", stats.Skipped, "errors", stats.Errors)
	return stats, nil
}
