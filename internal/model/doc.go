// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is a titled, ordered thread of Messages with metadata
// (tags, pin/archive flags, optional model identifier and token usage).
// A Message is one turn authored by the user or the assistant; an assistant
// message may carry a streaming flag while its content is being filled in.
//
// Invariants maintained by this package:
//   - UpdatedAt >= CreatedAt after any mutation
//   - the title is never empty once a conversation has at least one message
//   - only assistant messages may have the streaming flag set
package model
