// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/scanmail/payload"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [payload]",
		Short: "Show what a scanned payload would send",
		Long:  "Decode a payload given as an argument, or read from stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				raw = strings.TrimRight(string(b), "\r\n")
			}

			m, err := payload.Decode(raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:         %s\n", m.ID)
			fmt.Fprintf(out, "recipients: %s\n", strings.Join(m.Recipients, ", "))
			fmt.Fprintf(out, "subject:    %s\n", m.Subject)
			fmt.Fprintf(out, "message:    %s\n", payload.StripSuffix(m.Body))
			return nil
		},
	}
}
