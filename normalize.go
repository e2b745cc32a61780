package main

import (
	"strings"

	"golang.org/x/net/html"
)

// normalizeBody reduces a raw Intercom message body to plain text: markup
// stripped, HTML entities decoded, surrounding whitespace trimmed. Malformed
// markup degrades to whatever text the tokenizer recovers; it never fails.
func normalizeBody(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<&") {
		return strings.TrimSpace(raw)
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or an unterminated tag at end of input.
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			// Text() returns the token with entities already decoded.
			sb.Write(z.Text())
		}
	}
}
