// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/settings"
	"github.com/0leksiimarich/aifriend/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(settings.Presentation{Dark: true, Accent: "#0ea5e9"}, settings.Default().Visual)
}

// =============================================================================
// MESSAGE RENDERER TESTS
// =============================================================================

func TestMessageRenderer_UserMessage(t *testing.T) {
	r := NewMessageRenderer(testTheme(), 80, true)
	msg := model.NewUserMessage("hello there", nil)

	out := r.Render(msg)
	if !strings.Contains(out, "hello there") {
		t.Error("rendered output should contain the message content")
	}
	if !strings.Contains(out, "You") {
		t.Error("rendered output should contain the role label")
	}
}

func TestMessageRenderer_StreamingCursor(t *testing.T) {
	r := NewMessageRenderer(testTheme(), 80, false)
	msg := model.NewAssistantPlaceholder()
	msg.Content = "partial resp"

	out := r.Render(msg)
	if !strings.Contains(out, streamingCursor) {
		t.Error("streaming message should show the cursor")
	}

	msg.FinishStreaming()
	out = r.Render(msg)
	if strings.Contains(out, streamingCursor) {
		t.Error("finished message should not show the cursor")
	}
}

func TestMessageRenderer_EmptyStreamingShowsThinking(t *testing.T) {
	r := NewMessageRenderer(testTheme(), 80, false)
	out := r.Render(model.NewAssistantPlaceholder())
	if !strings.Contains(out, "thinking") {
		t.Error("empty placeholder should render a thinking indicator")
	}
}

func TestMessageRenderer_AttachmentMarkers(t *testing.T) {
	r := NewMessageRenderer(testTheme(), 80, false)
	msg := model.NewUserMessage("see attached", []string{"data1", "data2"})
	msg.Files = []model.FileAttachment{{Name: "notes.pdf", Size: 2048}}

	out := r.Render(msg)
	if !strings.Contains(out, "2 images attached") {
		t.Error("image attachments should be summarized")
	}
	if !strings.Contains(out, "notes.pdf") {
		t.Error("file attachments should be listed by name")
	}
}

func TestMessageRenderer_EmptyConversation(t *testing.T) {
	r := NewMessageRenderer(testTheme(), 80, false)
	conv := model.New()

	out := r.RenderConversation(conv)
	if out == "" {
		t.Error("empty conversation should render a hint, not nothing")
	}
}

// =============================================================================
// SIDEBAR TESTS
// =============================================================================

func TestSidebar_PinnedMarker(t *testing.T) {
	s := NewSidebar(testTheme(), 30, 24)

	pinned := model.New()
	pinned.Title = "important"
	pinned.TogglePin()
	plain := model.New()
	plain.Title = "casual"

	out := s.Render([]*model.Conversation{pinned, plain}, 0, "", "")
	if !strings.Contains(out, strings.TrimSpace(pinMarker)) {
		t.Error("pinned conversation should carry the pin marker")
	}
	if !strings.Contains(out, "casual") {
		t.Error("all conversations should be listed")
	}
}

func TestSidebar_EmptyList(t *testing.T) {
	s := NewSidebar(testTheme(), 30, 24)
	out := s.Render(nil, 0, "", "")
	if !strings.Contains(out, "No conversations") {
		t.Error("empty list should render a placeholder")
	}
}

func TestSidebar_ShowsSearchFilter(t *testing.T) {
	s := NewSidebar(testTheme(), 30, 24)
	out := s.Render(nil, 0, "", "golang")
	if !strings.Contains(out, "golang") {
		t.Error("active search filter should be visible")
	}
}

func TestTruncateToCells(t *testing.T) {
	tests := []struct {
		in    string
		cells int
		want  string
	}{
		{"short", 10, "short"},
		{"a long conversation title", 10, "a long co…"},
		{"anything", 0, ""},
	}
	for _, tc := range tests {
		if got := truncateToCells(tc.in, tc.cells); got != tc.want {
			t.Errorf("truncateToCells(%q, %d) = %q, want %q", tc.in, tc.cells, got, tc.want)
		}
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestRenderStatusBar_TokenUsage(t *testing.T) {
	out := RenderStatusBar(testTheme(), 80, StatusInfo{
		ModelName:  "gemini-2.0-flash-exp",
		TokenUsage: &model.TokenUsage{Total: 1500},
	})
	if !strings.Contains(out, "1.5K tokens") {
		t.Error("status bar should show formatted token usage")
	}
	if !strings.Contains(out, "gemini-2.0-flash-exp") {
		t.Error("status bar should show the model name")
	}
}

func TestRenderStatusBar_TransientMessageWins(t *testing.T) {
	out := RenderStatusBar(testTheme(), 80, StatusInfo{
		ModelName:  "gemini-2.0-flash-exp",
		TokenUsage: &model.TokenUsage{Total: 99},
		Message:    "Exported to chat.md",
	})
	if !strings.Contains(out, "Exported to chat.md") {
		t.Error("transient message should be shown")
	}
	if strings.Contains(out, "tokens") {
		t.Error("transient message should replace token usage")
	}
}

// =============================================================================
// NOTICE TESTS
// =============================================================================

func TestNotice_Lifecycle(t *testing.T) {
	var n Notice
	if n.Active() {
		t.Error("zero notice should be inactive")
	}

	n.Show("AI response unavailable. Please try again.")
	if !n.Active() {
		t.Error("notice should be active after Show")
	}
	if out := n.Render(testTheme()); !strings.Contains(out, "unavailable") {
		t.Error("active notice should render its text")
	}

	n.Dismiss()
	if n.Active() {
		t.Error("notice should be inactive after Dismiss")
	}
	if n.Render(testTheme()) != "" {
		t.Error("dismissed notice should render nothing")
	}
}

func TestNotice_Expires(t *testing.T) {
	n := Notice{text: "old news", expires: time.Now().Add(-time.Second)}
	if n.Active() {
		t.Error("expired notice should be inactive")
	}
}
