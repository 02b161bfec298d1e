// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"

	"github.com/0leksiimarich/aifriend/internal/model"
)

// JSONExporter renders a conversation as a pretty-printed JSON dump,
// including nested messages and metadata.
type JSONExporter struct{}

// Export implements Exporter.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	return json.MarshalIndent(conv, "", "  ")
}

// FileExtension implements Exporter.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
