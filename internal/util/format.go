// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strconv"
	"time"
)

// FormatTokenCount formats a token count compactly: 950, 1.2K, 3.4M.
func FormatTokenCount(count int) string {
	switch {
	case count >= 1000000:
		return strconv.FormatFloat(float64(count)/1000000, 'f', 1, 64) + "M"
	case count >= 1000:
		return strconv.FormatFloat(float64(count)/1000, 'f', 1, 64) + "K"
	default:
		return strconv.Itoa(count)
	}
}

// FormatFileSize formats a byte count as a human-readable size.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	s := strconv.FormatFloat(size, 'f', 2, 64)
	// Drop trailing zeros: "10.00" -> "10", "1.50" -> "1.5"
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s + " " + units[unit]
}

// FormatConversationDate buckets a timestamp for the sidebar: today and
// yesterday get labels, dates within the last week show the weekday, older
// dates show a short or full date depending on the year.
func FormatConversationDate(t time.Time, now time.Time) string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case day.After(today.AddDate(0, 0, -7)):
		return t.Format("Monday")
	case t.Year() == now.Year():
		return t.Format("2 January")
	default:
		return t.Format("2 January 2006")
	}
}

// Pluralize renders a count with a naively pluralized noun: "1 image",
// "3 images".
func Pluralize(count int, noun string) string {
	s := strconv.Itoa(count) + " " + noun
	if count != 1 {
		s += "s"
	}
	return s
}

// FormatTime formats a message timestamp for display.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}
