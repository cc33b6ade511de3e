package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTrimToRuneBoundary(t *testing.T) {
	short := "hello"
	if got := TrimToRuneBoundary(short, 10); got != short {
		t.Errorf("short input modified: %q", got)
	}

	ascii := strings.Repeat("a", 20)
	if got := TrimToRuneBoundary(ascii, 10); len(got) != 10 {
		t.Errorf("ascii cut length = %d, want 10", len(got))
	}

	// é is 2 bytes; an 11-byte cap lands mid-rune and must back up
	multi := strings.Repeat("é", 10)
	got := TrimToRuneBoundary(multi, 11)
	if len(got) != 10 {
		t.Errorf("cut length = %d, want 10 (rune boundary before the cap)", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("cut produced invalid UTF-8: %q", got)
	}

	// 4-byte runes
	emoji := strings.Repeat("\U0001F600", 5)
	for max := 0; max <= len(emoji); max++ {
		if got := TrimToRuneBoundary(emoji, max); !utf8.ValidString(got) {
			t.Fatalf("max=%d produced invalid UTF-8: %q", max, got)
		}
	}
}
