// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// STRING HELPERS
// =============================================================================

// TruncateRunes shortens s to at most max runes, appending "..." when
// anything was cut. The ellipsis counts toward the limit.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// TruncateWidth shortens s to at most max terminal cells, appending an
// ellipsis when anything was cut. Wide (CJK) runes count as two cells.
func TruncateWidth(s string, max int) string {
	if max <= 0 {
		return ""
	}
	return runewidth.Truncate(s, max, "…")
}

// PadWidth pads s with spaces on the right to exactly max terminal cells,
// truncating first if it is too long.
func PadWidth(s string, max int) string {
	s = TruncateWidth(s, max)
	return s + strings.Repeat(" ", max-runewidth.StringWidth(s))
}

// StringWidth reports the display width of s in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// FirstLine returns the first line of s with surrounding whitespace trimmed.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
