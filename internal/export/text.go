// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/util"
)

// TextExporter renders a conversation as a plain-text transcript: a
// title/date header followed by one role-prefixed line per message.
type TextExporter struct{}

// Export implements Exporter.
func (e *TextExporter) Export(conv *model.Conversation) ([]byte, error) {
	title, created := header(conv)

	var sb strings.Builder
	sb.WriteString(title + "\n")
	sb.WriteString(created + "\n")
	sb.WriteString(strings.Repeat("=", util.RuneLen(title)) + "\n\n")

	for _, msg := range conv.Messages {
		sb.WriteString(msg.Role.DisplayName() + ": " + msg.Content + "\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension implements Exporter.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}
