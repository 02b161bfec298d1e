// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Valid reports whether the role is one of the two known variants.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// FILE ATTACHMENT TYPE
// =============================================================================

// FileAttachment describes a file attached to a message.
type FileAttachment struct {
	Name string `json:"name"`
	Type string `json:"type"` // MIME type
	Size int64  `json:"size"`
	URL  string `json:"url,omitempty"`
	Data string `json:"data,omitempty"` // inline base64 payload
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Optional attachments
	Images []string         `json:"images,omitempty"` // inline-encoded image payloads
	Files  []FileAttachment `json:"files,omitempty"`

	// Set on an assistant message while its content is still being filled
	// in by the streaming orchestrator. Content is mutable only while this
	// flag is set.
	IsStreaming bool `json:"is_streaming,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message with optional images.
func NewUserMessage(content string, images []string) *Message {
	msg := NewMessage(RoleUser, content)
	msg.Images = images
	return msg
}

// NewAssistantPlaceholder creates an empty assistant message with the
// streaming flag set. The orchestrator fills its content incrementally.
func NewAssistantPlaceholder() *Message {
	msg := NewMessage(RoleAssistant, "")
	msg.IsStreaming = true
	return msg
}

// FinishStreaming clears the streaming flag.
func (m *Message) FinishStreaming() {
	m.IsStreaming = false
}

// IsEmpty returns true if the message has no content and no attachments.
func (m *Message) IsEmpty() bool {
	return m.Content == "" && len(m.Images) == 0 && len(m.Files) == 0
}
