// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/scanmail/verify"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Send the verification probe for a mail account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := accountFromFlags(cmd)
			if err != nil {
				return err
			}

			v := verify.New(mailClient(cmd))
			if ok, _ := v.Verify(cmd.Context(), acct); !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), verify.FailureAlert(acct.SourceEmail))
				return errors.New("verification failed")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "verified: probe sent to %s\n", acct.SourceEmail)
			return nil
		},
	}
	addAccountFlags(cmd)
	return cmd
}
