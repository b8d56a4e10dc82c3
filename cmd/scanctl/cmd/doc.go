// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cmd implements the scanctl command tree.

	scanctl encode --to a@x.com --subject Hi --message Hello
	scanctl decode "mList: a@x.com --- subj: Hi --- msg: Hello --- uuid: ..."
	scanctl authorize key-123
	scanctl verify --domain https://api.mailgun.net/v3/mg.example.com ...
	scanctl scan --window 2h < scans.txt

Account flags fall back to MAIL_CREDENTIALS, MAIL_DOMAIN and
MAIL_SOURCE_EMAIL, which may come from a .env file.
*/
package cmd
