// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/ui/styles"
	"github.com/0leksiimarich/aifriend/internal/util"
)

// streamingCursor marks the live tail of a streaming message.
const streamingCursor = "▌"

// avatars for the two roles, shown when the visual settings ask for them.
const (
	userAvatar      = "●"
	assistantAvatar = "◆"
)

// =============================================================================
// MESSAGE RENDERER
// =============================================================================

// MessageRenderer renders conversation messages into styled terminal
// text. Assistant messages go through glamour for markdown; user
// messages render verbatim and right-aligned.
type MessageRenderer struct {
	theme          *styles.Theme
	markdown       *glamour.TermRenderer
	width          int
	showTimestamps bool
}

// NewMessageRenderer creates a renderer for the given theme and width.
func NewMessageRenderer(theme *styles.Theme, width int, showTimestamps bool) *MessageRenderer {
	r := &MessageRenderer{
		theme:          theme,
		width:          width,
		showTimestamps: showTimestamps,
	}
	r.rebuildMarkdown()
	return r
}

// SetWidth updates the render width and rebuilds the markdown renderer.
func (r *MessageRenderer) SetWidth(width int) {
	if width == r.width {
		return
	}
	r.width = width
	r.rebuildMarkdown()
}

// SetTheme swaps the theme, following a visual settings change.
func (r *MessageRenderer) SetTheme(theme *styles.Theme, showTimestamps bool) {
	r.theme = theme
	r.showTimestamps = showTimestamps
	r.rebuildMarkdown()
}

// rebuildMarkdown recreates the glamour renderer for the current theme
// and width. A construction failure leaves markdown nil; content then
// renders as plain text.
func (r *MessageRenderer) rebuildMarkdown() {
	style := "light"
	if r.theme.Dark {
		style = "dark"
	}
	wrap := r.bubbleWidth() - 2
	if wrap < 20 {
		wrap = 20
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		r.markdown = nil
		return
	}
	r.markdown = md
}

// bubbleWidth is the maximum width of a message bubble.
func (r *MessageRenderer) bubbleWidth() int {
	w := r.width * 3 / 4
	if w < 24 {
		w = 24
	}
	return w
}

// RenderConversation renders the full message list.
func (r *MessageRenderer) RenderConversation(conv *model.Conversation) string {
	if conv == nil || len(conv.Messages) == 0 {
		return r.theme.MutedText.Render("No messages yet. Say hello!")
	}

	gap := strings.Repeat("\n", r.theme.BubbleGap()+1)
	parts := make([]string, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		parts = append(parts, r.Render(msg))
	}
	return strings.Join(parts, gap)
}

// Render renders a single message bubble with its role line.
func (r *MessageRenderer) Render(msg *model.Message) string {
	var b strings.Builder
	b.WriteString(r.roleLine(msg))
	b.WriteString("\n")

	content := r.body(msg)
	bubble := r.bubbleStyle(msg.Role).MaxWidth(r.bubbleWidth()).Render(content)
	if msg.Role == model.RoleUser {
		bubble = r.alignRight(bubble)
	}
	b.WriteString(bubble)
	return b.String()
}

// roleLine builds the "You · 15:04" header above a bubble.
func (r *MessageRenderer) roleLine(msg *model.Message) string {
	var parts []string
	if r.theme.ShowAvatars {
		avatar := assistantAvatar
		if msg.Role == model.RoleUser {
			avatar = userAvatar
		}
		parts = append(parts, r.theme.AccentText.Render(avatar))
	}
	parts = append(parts, r.theme.RoleLabel.Render(msg.Role.DisplayName()))
	if r.showTimestamps {
		parts = append(parts, r.theme.Timestamp.Render(util.FormatTime(msg.Timestamp)))
	}

	line := strings.Join(parts, " ")
	if msg.Role == model.RoleUser {
		line = r.alignRight(line)
	}
	return line
}

// body renders the message content plus attachment markers.
func (r *MessageRenderer) body(msg *model.Message) string {
	content := msg.Content

	if msg.Role == model.RoleAssistant && !msg.IsStreaming && r.markdown != nil && content != "" {
		if rendered, err := r.markdown.Render(content); err == nil {
			content = strings.Trim(rendered, "\n")
		}
	}

	if msg.IsStreaming {
		if content == "" {
			content = r.theme.Thinking.Render("thinking")
		}
		content += r.theme.StreamingCursor.Render(streamingCursor)
	}

	if n := len(msg.Images); n > 0 {
		label := "1 image attached"
		if n > 1 {
			label = util.Pluralize(n, "image") + " attached"
		}
		content += "\n" + r.theme.Attachment.Render("🖼 "+label)
	}
	for _, f := range msg.Files {
		content += "\n" + r.theme.Attachment.Render("📎 "+f.Name+" ("+util.FormatFileSize(f.Size)+")")
	}

	return content
}

// bubbleStyle picks the bubble style for a role.
func (r *MessageRenderer) bubbleStyle(role model.Role) lipgloss.Style {
	if role == model.RoleUser {
		return r.theme.UserBubble
	}
	return r.theme.AssistantBubble
}

// alignRight pads a block so its widest line touches the right edge.
func (r *MessageRenderer) alignRight(block string) string {
	lines := strings.Split(block, "\n")
	widest := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(stripANSI(line)); w > widest {
			widest = w
		}
	}
	pad := r.width - widest
	if pad <= 0 {
		return block
	}
	indent := strings.Repeat(" ", pad)
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// stripANSI removes SGR escape sequences for width measurement.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
