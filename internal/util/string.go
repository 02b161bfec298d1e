// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "strings"

// Rune-aware helpers. Counting runes instead of bytes prevents mid-character
// truncation that would corrupt UTF-8 strings.

// MaxTitleRunes is the maximum length of an auto-derived conversation title.
const MaxTitleRunes = 50

// TruncateRunes truncates a string to a maximum number of runes.
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateRunesNoEllipsis truncates a string to a maximum number of runes
// without appending an ellipsis.
func TruncateRunesNoEllipsis(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}

// DeriveTitle derives a conversation title from the first message content.
// Content at or under MaxTitleRunes is returned trimmed and verbatim. Longer
// content is cut at the last word boundary before the limit and suffixed
// with "...". When the first MaxTitleRunes runes contain no space, the cut
// is a hard one.
func DeriveTitle(content string) string {
	cleaned := strings.TrimSpace(content)
	runes := []rune(cleaned)
	if len(runes) <= MaxTitleRunes {
		return cleaned
	}

	truncated := string(runes[:MaxTitleRunes])
	if i := strings.LastIndex(truncated, " "); i > 0 {
		return truncated[:i] + "..."
	}
	return truncated + "..."
}

// CollapseNewlines replaces line breaks with single spaces so multi-line
// content can be shown on one list row.
func CollapseNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}

// RuneLen returns the number of runes in a string.
func RuneLen(s string) int {
	return len([]rune(s))
}
