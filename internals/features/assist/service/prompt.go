package service

import "unicode/utf8"

// TrimToRuneBoundary caps s at max bytes without splitting a UTF-8
// sequence; the cut backs up to the start of the rune that straddles
// the limit.
func TrimToRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
