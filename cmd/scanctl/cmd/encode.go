// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/scanmail/payload"
)

func newEncodeCmd() *cobra.Command {
	var (
		to      []string
		subject string
		message string
		id      string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Generate a QR payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var recipients []string
			for _, r := range to {
				if r = strings.TrimSpace(r); r != "" {
					recipients = append(recipients, r)
				}
			}

			m, err := payload.New(recipients, subject, message)
			if err != nil {
				return err
			}
			if id != "" {
				m.ID = id
			}

			fmt.Fprintln(cmd.OutOrStdout(), payload.Encode(m))
			if summary {
				fmt.Fprintln(cmd.ErrOrStderr(), m.Summary())
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&to, "to", nil, "recipient e-mail (repeatable or comma separated)")
	cmd.Flags().StringVar(&subject, "subject", "", "message subject")
	cmd.Flags().StringVar(&message, "message", "", "message body")
	cmd.Flags().StringVar(&id, "id", "", "fixed message id (default: random)")
	cmd.Flags().BoolVar(&summary, "summary", true, "print a summary to stderr")
	return cmd
}
