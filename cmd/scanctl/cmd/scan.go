// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/scanmail/dedup"
	"github.com/danielhkuo/scanmail/dispatch"
	"github.com/danielhkuo/scanmail/scanner"
	"github.com/danielhkuo/scanmail/verify"
)

func newScanCmd() *cobra.Command {
	var (
		window     time.Duration
		file       string
		skipVerify  bool
		stopOnError bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Dispatch scans read one per line",
		Long: `Read scanned payloads one per line from stdin (or --file) and send
each through the mail account. Repeats of the same code inside --window
are dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := accountFromFlags(cmd)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			ctx := cmd.Context()

			client := mailClient(cmd)
			if !skipVerify {
				if ok, _ := verify.New(client).Verify(ctx, acct); !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), verify.FailureAlert(acct.SourceEmail))
					return errors.New("verification failed")
				}
			}

			w := dedup.New(window, dedup.MinWindow)
			d := dispatch.New(w, client)
			out := cmd.OutOrStdout()

			start := time.Now()
			fmt.Fprintf(cmd.ErrOrStderr(), "repeats ignored for %s\n", strings.TrimSpace(humanize.RelTime(start, start.Add(w.Window()), "", "")))

			stats, err := scanner.Run(ctx, in, func(ctx context.Context, raw string, now time.Time) error {
				o := d.HandleScan(ctx, raw, now, acct)
				fmt.Fprintf(out, "%s\t%s\t%d sent\t%d failed\n", o.Kind, o.MessageID, o.Successes, o.Failures)
				for _, r := range o.Results {
					if r.Err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", r.Recipient, r.Err)
					}
				}
				if o.Failures > 0 {
					return fmt.Errorf("%s: %d of %d sends failed", o.MessageID, o.Failures, o.Successes+o.Failures)
				}
				return nil
			}, scanner.Options{StopOnError: stopOnError})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%d lines, %d blank, %d with failed sends\n", stats.Lines, stats.Skipped, stats.Errors)
			return nil
		},
	}

	addAccountFlags(cmd)
	cmd.Flags().DurationVar(&window, "window", dedup.MinWindow, "ignore repeats of a code for this long (minimum 1m)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read scans from a file instead of stdin")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "dispatch without sending the verification probe")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "stop at the first scan with a failed send")
	return cmd
}
