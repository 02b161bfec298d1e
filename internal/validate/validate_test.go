// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"user@example.com", true},
		{"  padded@example.com  ", true},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"user@nodot", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Email(tt.input); got != tt.want {
			t.Errorf("Email(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "Secret99", true},
		{"too short", "Ab1", false},
		{"no upper", "secret99", false},
		{"no lower", "SECRET99", false},
		{"no digit", "SecretWord", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Password(tt.input)
			if got.OK != tt.want {
				t.Errorf("Password(%q) = %+v, want OK=%v", tt.input, got, tt.want)
			}
			if !got.OK && got.Reason == "" {
				t.Error("failed validation should carry a reason")
			}
		})
	}
}

func TestFile(t *testing.T) {
	if got := File("application/pdf", 1024); !got.OK {
		t.Errorf("pdf rejected: %s", got.Reason)
	}
	if got := File("application/x-executable", 10); got.OK {
		t.Error("executable accepted")
	}
	if got := File("text/plain", MaxFileSize+1); got.OK {
		t.Error("oversized file accepted")
	}
}

func TestImage(t *testing.T) {
	if got := Image("image/png", 1024); !got.OK {
		t.Errorf("png rejected: %s", got.Reason)
	}
	if got := Image("image/tiff", 10); got.OK {
		t.Error("tiff accepted")
	}
	if got := Image("image/png", MaxImageSize+1); got.OK {
		t.Error("oversized image accepted")
	}
}

func TestAPIKey(t *testing.T) {
	if !APIKey("AIzaSyA-very-plausible-key-value") {
		t.Error("plausible key rejected")
	}
	if APIKey("short") {
		t.Error("short key accepted")
	}
	if APIKey("has a space in the middle of it") {
		t.Error("key with whitespace accepted")
	}
}

func TestNumericRanges(t *testing.T) {
	if !Temperature(0) || !Temperature(2) || Temperature(-0.1) || Temperature(2.1) {
		t.Error("Temperature bounds wrong")
	}
	if !TopP(0) || !TopP(1) || TopP(1.01) {
		t.Error("TopP bounds wrong")
	}
	if !TopK(1) || !TopK(100) || TopK(0) || TopK(101) {
		t.Error("TopK bounds wrong")
	}
	if !MaxTokens(8192) || MaxTokens(0) {
		t.Error("MaxTokens bounds wrong")
	}
}

func TestSanitize(t *testing.T) {
	in := "line\x00 one\nline\ttwo\x1b[0m"
	got := Sanitize(in)
	want := "line one\nline\ttwo[0m"
	if got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}
