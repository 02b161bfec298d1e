// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/0leksiimarich/aifriend/internal/model"
)

// MarkdownExporter renders a conversation as a Markdown transcript with
// per-message timestamps.
type MarkdownExporter struct{}

// Export implements Exporter.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	title, created := header(conv)

	var sb strings.Builder
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString("Created: " + created + "\n\n")
	sb.WriteString("---\n\n")

	for _, msg := range conv.Messages {
		sb.WriteString("**" + msg.Role.DisplayName() + "** (" + msg.Timestamp.Format("15:04") + "):\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n---\n\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension implements Exporter.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}
