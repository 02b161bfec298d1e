// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewMessage(RoleUser, "hello")

	if msg.ID == "" {
		t.Error("ID should be generated")
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want user", msg.Role)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q", msg.Content)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if msg.IsStreaming {
		t.Error("a plain message must not be streaming")
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	a := NewMessage(RoleUser, "a")
	b := NewMessage(RoleUser, "b")
	if a.ID == b.ID {
		t.Error("message IDs should be unique")
	}
}

func TestNewAssistantPlaceholder(t *testing.T) {
	msg := NewAssistantPlaceholder()

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want assistant", msg.Role)
	}
	if msg.Content != "" {
		t.Error("placeholder content should be empty")
	}
	if !msg.IsStreaming {
		t.Error("placeholder should be streaming")
	}

	msg.FinishStreaming()
	if msg.IsStreaming {
		t.Error("FinishStreaming should clear the flag")
	}
}

func TestRole(t *testing.T) {
	if !RoleUser.Valid() || !RoleAssistant.Valid() {
		t.Error("user and assistant roles should be valid")
	}
	if Role("system").Valid() {
		t.Error("only two role variants exist")
	}
	if RoleUser.DisplayName() != "You" {
		t.Errorf("DisplayName = %q", RoleUser.DisplayName())
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNew(t *testing.T) {
	conv := New()

	if conv.ID == "" {
		t.Error("ID should be generated")
	}
	if conv.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", conv.Title, DefaultTitle)
	}
	if !conv.IsEmpty() {
		t.Error("new conversation should be empty")
	}
	if conv.UpdatedAt.Before(conv.CreatedAt) {
		t.Error("UpdatedAt must not precede CreatedAt")
	}
}

func TestConversation_AddMessage_DerivesTitle(t *testing.T) {
	conv := New()
	conv.AddMessage(NewUserMessage("Explain goroutines to me", nil))

	if conv.Title != "Explain goroutines to me" {
		t.Errorf("Title = %q, want first message content", conv.Title)
	}

	// A second message must not change the title.
	conv.AddMessage(NewUserMessage("Another question entirely", nil))
	if conv.Title != "Explain goroutines to me" {
		t.Errorf("Title changed on second message: %q", conv.Title)
	}
}

func TestConversation_AddMessage_LongTitleTruncated(t *testing.T) {
	conv := New()
	content := strings.Repeat("word ", 20) // 100 chars
	conv.AddMessage(NewUserMessage(content, nil))

	if !strings.HasSuffix(conv.Title, "...") {
		t.Errorf("long title should end with ellipsis, got %q", conv.Title)
	}
	if n := len([]rune(conv.Title)); n > 53 {
		t.Errorf("title too long: %d runes", n)
	}
}

func TestConversation_AddMessage_KeepsManualTitle(t *testing.T) {
	conv := New()
	conv.SetTitle("My topic")
	conv.AddMessage(NewUserMessage("first message", nil))

	if conv.Title != "My topic" {
		t.Errorf("manual title should survive first message, got %q", conv.Title)
	}
}

func TestConversation_UpdatedAtInvariant(t *testing.T) {
	conv := New()
	mutations := []func(){
		func() { conv.AddMessage(NewUserMessage("hi", nil)) },
		func() { conv.SetTitle("t") },
		func() { conv.UpdateMessageContent(conv.Messages[0].ID, "edited") },
		func() { conv.RemoveMessage(conv.Messages[0].ID) },
	}

	for i, mutate := range mutations {
		mutate()
		if conv.UpdatedAt.Before(conv.CreatedAt) {
			t.Errorf("mutation %d violated UpdatedAt >= CreatedAt", i)
		}
	}
}

func TestConversation_UpdateMessageContent(t *testing.T) {
	conv := New()
	msg := NewAssistantPlaceholder()
	conv.AddMessage(NewUserMessage("q", nil))
	conv.AddMessage(msg)

	before := conv.UpdatedAt
	time.Sleep(time.Millisecond)

	if !conv.UpdateMessageContent(msg.ID, "partial answer") {
		t.Fatal("UpdateMessageContent should find the message")
	}
	if msg.Content != "partial answer" {
		t.Errorf("Content = %q", msg.Content)
	}
	if !conv.UpdatedAt.After(before) {
		t.Error("UpdatedAt should be bumped")
	}

	if conv.UpdateMessageContent("missing-id", "x") {
		t.Error("unknown message ID must be a no-op")
	}
}

func TestConversation_RemoveMessage(t *testing.T) {
	conv := New()
	user := NewUserMessage("q", nil)
	placeholder := NewAssistantPlaceholder()
	conv.AddMessage(user)
	conv.AddMessage(placeholder)

	if !conv.RemoveMessage(placeholder.ID) {
		t.Fatal("RemoveMessage should succeed")
	}
	if conv.MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", conv.MessageCount())
	}
	if conv.Messages[0].ID != user.ID {
		t.Error("user message must be retained")
	}
	if conv.RemoveMessage(placeholder.ID) {
		t.Error("removing twice should fail")
	}
}

func TestConversation_TruncateMessages(t *testing.T) {
	conv := New()
	for i := 0; i < 4; i++ {
		conv.AddMessage(NewUserMessage("m", nil))
	}

	conv.TruncateMessages(3)
	if conv.MessageCount() != 3 {
		t.Errorf("MessageCount = %d, want 3", conv.MessageCount())
	}

	// Out-of-range indices are no-ops.
	conv.TruncateMessages(10)
	conv.TruncateMessages(-1)
	if conv.MessageCount() != 3 {
		t.Errorf("MessageCount = %d after no-op truncates, want 3", conv.MessageCount())
	}
}

// =============================================================================
// TAG TESTS
// =============================================================================

func TestConversation_TagSetSemantics(t *testing.T) {
	conv := New()

	if !conv.AddTag("x") {
		t.Error("first add should succeed")
	}
	if conv.AddTag("x") {
		t.Error("duplicate add must be a no-op")
	}

	count := 0
	for _, tag := range conv.Tags {
		if tag == "x" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("tag %q occurs %d times, want exactly 1", "x", count)
	}

	if !conv.RemoveTag("x") {
		t.Error("RemoveTag should succeed")
	}
	if conv.HasTag("x") {
		t.Error("tag should be gone")
	}
	if conv.RemoveTag("x") {
		t.Error("removing a missing tag should report false")
	}
}

func TestConversation_TagsLazyInit(t *testing.T) {
	conv := &Conversation{ID: "c1", Title: "t"} // deserialized without tags
	if !conv.AddTag("go") {
		t.Error("AddTag should work on a nil tag list")
	}
	if !conv.HasTag("go") {
		t.Error("tag should be present")
	}
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestConversation_Matches(t *testing.T) {
	conv := New()
	conv.SetTitle("Hello")

	if !conv.Matches("hel") {
		t.Error("case-insensitive title substring should match")
	}
	if conv.Matches("zzz") {
		t.Error("non-matching query should not match")
	}
	if !conv.Matches("") {
		t.Error("empty query matches everything")
	}

	conv.AddMessage(NewUserMessage("the quick brown fox", nil))
	if !conv.Matches("BROWN") {
		t.Error("message content should match case-insensitively")
	}

	conv.AddTag("golang")
	if !conv.Matches("lang") {
		t.Error("tag substring should match")
	}
}

// =============================================================================
// CLONE TESTS
// =============================================================================

func TestConversation_Clone(t *testing.T) {
	conv := New()
	conv.AddMessage(NewUserMessage("original", nil))
	conv.AddTag("a")
	conv.TokenUsage = &TokenUsage{Input: 1, Output: 2, Total: 3}

	clone := conv.Clone()
	clone.Messages[0].Content = "mutated"
	clone.AddTag("b")
	clone.TokenUsage.Total = 99

	if conv.Messages[0].Content != "original" {
		t.Error("clone must not share message backing")
	}
	if conv.HasTag("b") {
		t.Error("clone must not share the tag slice")
	}
	if conv.TokenUsage.Total != 3 {
		t.Error("clone must not share token usage")
	}
}
