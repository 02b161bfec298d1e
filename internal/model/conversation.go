// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/0leksiimarich/aifriend/internal/util"
)

// DefaultTitle is the title of a conversation before any message arrives.
const DefaultTitle = "New conversation"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// TokenUsage summarizes token consumption for a conversation.
type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

// Conversation holds a complete chat conversation with history and metadata.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages
	Messages []*Message `json:"messages"`

	// Metadata
	Tags     []string `json:"tags,omitempty"`
	Pinned   bool     `json:"is_pinned,omitempty"`
	Archived bool     `json:"is_archived,omitempty"`

	// Optional model information
	Model      string      `json:"model,omitempty"`
	TokenUsage *TokenUsage `json:"token_usage,omitempty"`
}

// New creates a new empty conversation with a generated ID and the
// default title.
func New() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
		Tags:      make([]string, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message. The first message also derives the title
// when the conversation is still untitled.
func (c *Conversation) AddMessage(msg *Message) {
	first := len(c.Messages) == 0
	c.Messages = append(c.Messages, msg)
	c.touch()

	if first && (c.Title == "" || c.Title == DefaultTitle) {
		if title := util.DeriveTitle(msg.Content); title != "" {
			c.Title = title
		}
	}
}

// UpdateMessageContent replaces the content of the message with the given
// ID in place. Returns false (no-op) if the ID is not found.
func (c *Conversation) UpdateMessageContent(messageID, content string) bool {
	for _, msg := range c.Messages {
		if msg.ID == messageID {
			msg.Content = content
			c.touch()
			return true
		}
	}
	return false
}

// RemoveMessage removes a message by ID. Returns false if not found.
func (c *Conversation) RemoveMessage(messageID string) bool {
	for i, msg := range c.Messages {
		if msg.ID == messageID {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

// MessageByID returns a message by its ID, or nil.
func (c *Conversation) MessageByID(messageID string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == messageID {
			return msg
		}
	}
	return nil
}

// MessageIndex returns the position of a message by ID, or -1.
func (c *Conversation) MessageIndex(messageID string) int {
	for i, msg := range c.Messages {
		if msg.ID == messageID {
			return i
		}
	}
	return -1
}

// TruncateMessages drops every message at index n and beyond.
func (c *Conversation) TruncateMessages(n int) {
	if n < 0 || n >= len(c.Messages) {
		return
	}
	c.Messages = c.Messages[:n]
	c.touch()
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// METADATA
// =============================================================================

// SetTitle replaces the conversation title.
func (c *Conversation) SetTitle(title string) {
	c.Title = title
	c.touch()
}

// TogglePin flips the pinned flag.
func (c *Conversation) TogglePin() {
	c.Pinned = !c.Pinned
}

// ToggleArchive flips the archived flag.
func (c *Conversation) ToggleArchive() {
	c.Archived = !c.Archived
}

// AddTag adds a tag with set semantics: adding an existing tag is a no-op.
// The tags list is created lazily. Returns true if the tag was added.
func (c *Conversation) AddTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return false
		}
	}
	c.Tags = append(c.Tags, tag)
	return true
}

// RemoveTag removes a tag if present. Returns true if it was removed.
func (c *Conversation) RemoveTag(tag string) bool {
	for i, t := range c.Tags {
		if t == tag {
			c.Tags = append(c.Tags[:i], c.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// HasTag reports whether the conversation carries the given tag.
func (c *Conversation) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// =============================================================================
// SEARCH
// =============================================================================

// Matches reports whether the conversation matches a search query by
// case-insensitive substring against the title, any message content, or
// any tag. An empty query matches everything.
func (c *Conversation) Matches(query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)

	if strings.Contains(strings.ToLower(c.Title), query) {
		return true
	}
	for _, msg := range c.Messages {
		if strings.Contains(strings.ToLower(msg.Content), query) {
			return true
		}
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Preview returns a short preview line from the first user message.
func (c *Conversation) Preview() string {
	for _, msg := range c.Messages {
		if msg.Role == RoleUser && msg.Content != "" {
			return util.TruncateRunes(util.CollapseNewlines(msg.Content), 80)
		}
	}
	return ""
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := *c
	clone.Messages = make([]*Message, len(c.Messages))
	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	clone.Tags = append([]string(nil), c.Tags...)
	if c.TokenUsage != nil {
		usage := *c.TokenUsage
		clone.TokenUsage = &usage
	}
	return &clone
}

// touch bumps UpdatedAt, keeping the UpdatedAt >= CreatedAt invariant.
func (c *Conversation) touch() {
	c.UpdatedAt = time.Now()
	if c.UpdatedAt.Before(c.CreatedAt) {
		c.UpdatedAt = c.CreatedAt
	}
}
