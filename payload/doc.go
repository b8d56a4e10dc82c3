// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package payload encodes and decodes the text carried inside a scannable code.

# Wire Format

A payload is a single line made of four header-prefixed segments:

	mList: a@x.com; b@x.com --- subj: Hi --- msg: Hello --- uuid: 3f1c...

The literals are fixed and shared with every generator in the field:

	EmailHeader     = "mList: "
	HeaderSeparator = " --- "
	SubjectHeader   = "subj: "
	MessageHeader   = "msg: "
	IDHeader        = "uuid: "
	EmailSeparator  = "; "

# Generating

	m, err := payload.New([]string{"a@x.com"}, "Hi", "Hello")
	text := payload.Encode(m)

New assigns a random UUID as the message id and rejects an empty recipient list.

# Decoding

Decode is permissive. Missing segments decode as empty strings, an empty
subject becomes DefaultSubject, and MessageSuffix is always appended to the
body. When the id segment is missing or empty the whole scanned text is used
as the id. Only text that is not valid UTF-8 returns a *DecodeError.
*/
package payload
