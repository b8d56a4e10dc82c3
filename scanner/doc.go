// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scanner feeds scanned payloads from a line-oriented source.

A code reader that types into stdin, a named pipe, or a log tail all look the
same to Run: one payload per line, blank lines ignored.

	stats, err := scanner.Run(ctx, os.Stdin, func(ctx context.Context, raw string, now time.Time) error {
		out := dispatcher.HandleScan(ctx, raw, now, acct)
		fmt.Println(out.Kind)
		return nil
	}, scanner.Options{})

End of input and context cancellation both close the source normally and are
only logged.
*/
package scanner
