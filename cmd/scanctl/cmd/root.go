// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/scanmail/cliparse"
	"github.com/danielhkuo/scanmail/logging"
	"github.com/danielhkuo/scanmail/mail"
)

var (
	version = "dev"
	commit  = "unknown"
)

// newTransport builds the mail transport for verify and scan.
var newTransport = func(timeout time.Duration) mail.Transport {
	return mail.NewHTTPTransport(timeout, cliparse.DefaultMailRPS, cliparse.DefaultMailBurst)
}

// NewRootCmd builds the scanctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scanctl",
		Short: "scanmail payload and dispatch tool",
		Long: `scanctl generates and inspects scanmail QR payloads, verifies mail
account settings, and dispatches scans read line by line from stdin.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load(".env")
			level, _ := cmd.Flags().GetString("log-level")
			return logging.Setup(level, "auto", cmd.ErrOrStderr())
		},
	}

	// Disable completion command
	root.CompletionOptions.DisableDefaultCmd = true

	// Global flags
	root.PersistentFlags().String("log-level", cliparse.DefaultLogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newAuthorizeCmd(),
		newVerifyCmd(),
		newScanCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// addAccountFlags registers the mail account flags shared by verify and scan.
func addAccountFlags(cmd *cobra.Command) {
	cmd.Flags().String("credentials", "", "mail API key or encoded token (env MAIL_CREDENTIALS)")
	cmd.Flags().String("domain", "", "mail API base URL (env MAIL_DOMAIN)")
	cmd.Flags().String("from", "", "source e-mail address (env MAIL_SOURCE_EMAIL)")
	cmd.Flags().Duration("timeout", cliparse.DefaultMailTimeout, "timeout for each mail API request")
}

// accountFromFlags resolves the account from flags, falling back to env.
func accountFromFlags(cmd *cobra.Command) (mail.Account, error) {
	lookup := func(flag, env string) string {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			return v
		}
		return os.Getenv(env)
	}

	acct := mail.Account{
		Credentials: lookup("credentials", "MAIL_CREDENTIALS"),
		Domain:      lookup("domain", "MAIL_DOMAIN"),
		SourceEmail: lookup("from", "MAIL_SOURCE_EMAIL"),
	}
	switch {
	case acct.Credentials == "":
		return mail.Account{}, fmt.Errorf("credentials required (use --credentials or MAIL_CREDENTIALS env)")
	case acct.Domain == "":
		return mail.Account{}, fmt.Errorf("domain required (use --domain or MAIL_DOMAIN env)")
	case acct.SourceEmail == "":
		return mail.Account{}, fmt.Errorf("source e-mail required (use --from or MAIL_SOURCE_EMAIL env)")
	}
	return acct, nil
}

func mailClient(cmd *cobra.Command) *mail.Client {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return mail.NewClient(newTransport(timeout))
}
