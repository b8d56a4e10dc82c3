// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dispatch handles a scanned payload from raw text to sent e-mails.

# Pipeline

HandleScan runs these steps under a single lock:

 1. payload.Decode; undecodable text is Ignored.
 2. dedup.Window.Observe on the message id; a live repeat is a Duplicate.
 3. Recipients are trimmed and empty entries dropped; none left is NoRecipients.
 4. One e-mail per recipient, in order, from the account's source address.

A failed send is recorded in the Outcome and does not stop the remaining
recipients. The dedup record is kept even when every send fails, so a
failing code is not retried until the window passes.
*/
package dispatch
