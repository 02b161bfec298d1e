// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions shared across the application.
//
// This package contains helpers for string truncation, display formatting,
// and crash-safe file writing.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - DeriveTitle: conversation title derivation from message content
//
// Formatting:
//   - FormatTokenCount: compact token counts (1.2K, 3.4M)
//   - FormatFileSize: human-readable byte sizes
//   - FormatConversationDate: relative date bucketing for the sidebar
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
