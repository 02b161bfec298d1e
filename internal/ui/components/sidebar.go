// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/ui/styles"
	"github.com/0leksiimarich/aifriend/internal/util"
)

// pinMarker flags pinned conversations in the list.
const pinMarker = "★ "

// =============================================================================
// CONVERSATION SIDEBAR
// =============================================================================

// Sidebar renders the conversation list. The list passed in is already
// filtered and ordered by the conversation store (pinned first, archived
// excluded, search applied).
type Sidebar struct {
	theme  *styles.Theme
	width  int
	height int
}

// NewSidebar creates a sidebar renderer.
func NewSidebar(theme *styles.Theme, width, height int) *Sidebar {
	return &Sidebar{theme: theme, width: width, height: height}
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetTheme swaps the theme.
func (s *Sidebar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// Render draws the list. selected is the index of the highlighted row;
// activeID marks the open conversation with a leading dot.
func (s *Sidebar) Render(conversations []*model.Conversation, selected int, activeID, searchQuery string) string {
	var b strings.Builder
	b.WriteString(s.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n")

	if searchQuery != "" {
		b.WriteString(s.theme.MutedText.Render("filter: " + searchQuery))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(conversations) == 0 {
		b.WriteString(s.theme.MutedText.Render("No conversations"))
		return s.theme.Sidebar.Height(s.height).Render(b.String())
	}

	// Each entry takes three rows: title, preview, date.
	visible := s.height / 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := start + visible
	if end > len(conversations) {
		end = len(conversations)
	}

	now := time.Now()
	for i := start; i < end; i++ {
		conv := conversations[i]
		b.WriteString(s.renderEntry(conv, i == selected, conv.ID == activeID, now))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return s.theme.Sidebar.Height(s.height).Render(b.String())
}

// renderEntry draws one conversation row group.
func (s *Sidebar) renderEntry(conv *model.Conversation, selected, active bool, now time.Time) string {
	title := conv.Title
	if title == "" {
		title = "New conversation"
	}
	if conv.Pinned {
		title = pinMarker + title
	}
	if active {
		title = "· " + title
	}
	title = truncateToCells(title, s.width-4)

	itemStyle := s.theme.SidebarItem
	if selected {
		itemStyle = s.theme.SidebarItemSelected
	}

	var b strings.Builder
	b.WriteString(itemStyle.Width(s.width - 2).Render(title))
	b.WriteString("\n")

	if preview := conv.Preview(); preview != "" {
		b.WriteString(s.theme.SidebarPreview.Render(truncateToCells(preview, s.width-4)))
	}
	b.WriteString("\n")
	b.WriteString(s.theme.SidebarDate.Render(" " + util.FormatConversationDate(conv.UpdatedAt, now)))
	b.WriteString("\n")
	return b.String()
}

// truncateToCells cuts a string to a terminal cell budget, wide-character
// aware.
func truncateToCells(s string, cells int) string {
	if cells <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= cells {
		return s
	}
	return runewidth.Truncate(s, cells, "…")
}
