// Package handlers contains the HTTP endpoint implementations.
package handlers

import (
	"context"
	"unicode/utf8"
)

// Generator produces text for a prompt. nil means generation is not
// configured and callers take the fallback path.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// truncate shortens user text for diagnostic logs so full messages are
// never written to log output. Cuts on a rune boundary so Devanagari and
// other multi-byte input never leaves invalid UTF-8 in the logs.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
