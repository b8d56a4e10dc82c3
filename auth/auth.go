// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// APIUser is the fixed user half of every mail API credential pair.
const APIUser = "api"

const tokenPrefix = APIUser + ":"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Authorize turns stored credentials into a Basic auth token.
// Credentials that already decode to "api:..." are returned with whitespace
// removed, anything else is treated as a raw key and encoded as "api:<raw>".
// Authorize(Authorize(x)) == Authorize(x) for every x.
func Authorize(raw string) string {
	if IsEncoded(raw) {
		return stripSpace(raw)
	}
	key := strings.ToValidUTF8(raw, "\uFFFD")
	return base64.StdEncoding.EncodeToString([]byte(tokenPrefix + key))
}

// IsEncoded reports whether raw is already a base64 "api:..." token.
// Whitespace and missing padding are tolerated.
func IsEncoded(raw string) bool {
	compact := strings.TrimRight(stripSpace(raw), "=")
	decoded, err := base64.RawStdEncoding.DecodeString(compact)
	if err != nil {
		return false
	}
	return utf8.Valid(decoded) && strings.HasPrefix(string(decoded), tokenPrefix)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// BasicHeader returns the Authorization header value for raw credentials.
func BasicHeader(raw string) string {
	return "Basic " + Authorize(raw)
}

// Redact hides all but the last four characters of a credential for display.
func Redact(raw string) string {
	if raw == "" {
		return ""
	}
	runes := []rune(raw)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
