// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate holds pure validation predicates for user input.
//
// Nothing here returns an error: each check yields a boolean (or a
// Result carrying a reason) and the caller decides how to surface it.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

// Attachment limits.
const (
	// MaxFileSize is the largest accepted file attachment.
	MaxFileSize = 10 * 1024 * 1024 // 10MB

	// MaxImageSize is the largest accepted inline image.
	MaxImageSize = 4 * 1024 * 1024 // 4MB
)

// allowedFileTypes are the MIME types accepted as file attachments.
var allowedFileTypes = map[string]bool{
	"text/plain":         true,
	"text/markdown":      true,
	"text/csv":           true,
	"application/pdf":    true,
	"application/json":   true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// allowedImageTypes are the MIME types accepted as inline images.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is a validation outcome with an optional human-readable reason.
type Result struct {
	OK     bool
	Reason string
}

func ok() Result           { return Result{OK: true} }
func fail(r string) Result { return Result{Reason: r} }

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Password checks password strength: at least 8 characters with an
// upper-case letter, a lower-case letter, and a digit.
func Password(s string) Result {
	if len(s) < 8 {
		return fail("password must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return fail("password needs an upper-case letter")
	}
	if !lower {
		return fail("password needs a lower-case letter")
	}
	if !digit {
		return fail("password needs a digit")
	}
	return ok()
}

// File checks a file attachment's MIME type and size.
func File(mimeType string, size int64) Result {
	if !allowedFileTypes[mimeType] {
		return fail("unsupported file type: " + mimeType)
	}
	if size > MaxFileSize {
		return fail("file exceeds the 10MB limit")
	}
	return ok()
}

// Image checks an inline image's MIME type and size.
func Image(mimeType string, size int64) Result {
	if !allowedImageTypes[mimeType] {
		return fail("unsupported image type: " + mimeType)
	}
	if size > MaxImageSize {
		return fail("image exceeds the 4MB limit")
	}
	return ok()
}

// APIKey reports whether s plausibly is a Gemini API key: non-empty,
// reasonably long, no whitespace.
func APIKey(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 20 {
		return false
	}
	return !strings.ContainsAny(s, " \t\n")
}

// Temperature reports whether v is a valid sampling temperature.
func Temperature(v float64) bool {
	return v >= 0 && v <= 2
}

// TopP reports whether v is a valid nucleus sampling threshold.
func TopP(v float64) bool {
	return v >= 0 && v <= 1
}

// TopK reports whether v is a valid top-k value.
func TopK(v int) bool {
	return v >= 1 && v <= 100
}

// MaxTokens reports whether v is a valid output token limit.
func MaxTokens(v int) bool {
	return v >= 1 && v <= 65536
}

// Sanitize strips control characters from user text, keeping newlines
// and tabs.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
