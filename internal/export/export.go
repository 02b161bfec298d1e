// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export converts conversations into downloadable files.
//
// Three formats are supported: a structured JSON dump, a human-readable
// plain-text transcript, and a Markdown transcript.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/util"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format identifies an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

// ErrUnknownFormat is returned for a format with no registered exporter.
var ErrUnknownFormat = fmt.Errorf("unknown export format")

// Valid reports whether the format has a registered exporter.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatText, FormatMarkdown:
		return true
	}
	return false
}

// =============================================================================
// EXPORTER INTERFACE
// =============================================================================

// Exporter converts a conversation to one target format.
type Exporter interface {
	// Export renders the conversation and returns the file content.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the extension including the dot (e.g. ".txt").
	FileExtension() string
}

// ForFormat returns the exporter for a format.
func ForFormat(f Format) (Exporter, error) {
	switch f {
	case FormatJSON:
		return &JSONExporter{}, nil
	case FormatText:
		return &TextExporter{}, nil
	case FormatMarkdown:
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// ToFile renders a conversation and writes it into dir. Returns the path
// of the written file.
func ToFile(dir string, conv *model.Conversation, format Format) (string, error) {
	exporter, err := ForFormat(format)
	if err != nil {
		return "", err
	}

	data, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("failed to render conversation: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(conv, exporter.FileExtension()))
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// FileName builds a timestamped export file name from the conversation
// title.
func FileName(conv *model.Conversation, ext string) string {
	return fmt.Sprintf("%s-%s%s",
		slugify(conv.Title), time.Now().Format("20060102-150405"), ext)
}

// slugify reduces a title to a safe file-name fragment.
func slugify(title string) string {
	const maxSlug = 40

	out := make([]rune, 0, maxSlug)
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ', r == '-', r == '_':
			if len(out) > 0 && out[len(out)-1] != '-' {
				out = append(out, '-')
			}
		}
		if len(out) >= maxSlug {
			break
		}
	}

	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "conversation"
	}
	return string(out)
}

// header returns the title/date header shared by the text formats.
func header(conv *model.Conversation) (title, created string) {
	title = conv.Title
	if title == "" {
		title = model.DefaultTitle
	}
	return title, conv.CreatedAt.Format("2 January 2006 15:04")
}
