// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/0leksiimarich/aifriend/internal/ui/components"
)

// View renders the application screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	content := m.viewport.View()
	if m.sidebarVisible {
		list := m.store.Filtered()
		side := m.sidebar.Render(list, m.sidebarIndex, m.store.ActiveID(), m.store.SearchQuery())
		content = lipgloss.JoinHorizontal(lipgloss.Top, side, content)
	}
	b.WriteString(content)
	b.WriteString("\n")

	if m.searchMode {
		b.WriteString(m.theme.SearchBar.Width(m.width).Render(m.searchInput.View()))
		b.WriteString("\n")
	}

	if notice := m.notice.Render(m.theme); notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, notice))
		b.WriteString("\n")
	}

	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderHeader draws the top line: app name, conversation title, tags.
func (m Model) renderHeader() string {
	title := "AI Friend"
	meta := ""
	if conv := m.store.Active(); conv != nil {
		if conv.Title != "" {
			meta = conv.Title
		}
		if len(conv.Tags) > 0 {
			meta += "  [" + strings.Join(conv.Tags, ", ") + "]"
		}
	}

	line := m.theme.HeaderTitle.Render(title)
	if meta != "" {
		line += "  " + m.theme.HeaderMeta.Render(meta)
	}
	return m.theme.Header.Width(m.width).Render(line)
}

// renderInput draws the input area with the prompt and char count.
func (m Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("❯ ")
	if m.streaming {
		prompt = m.spinner.View() + " "
	}

	count := ""
	if n := len(m.input.Value()); n > 0 {
		count = m.theme.CharCount.Render(" " + strconv.Itoa(n))
	}
	return m.theme.InputContainer.Width(m.width).Render(prompt + m.input.View() + count)
}

// renderStatusBar draws the bottom line.
func (m Model) renderStatusBar() string {
	snap := m.settings.Current()
	info := components.StatusInfo{
		ModelName: snap.Model.Model,
		Persona:   snap.Persona.Name,
		Streaming: m.streaming,
		Message:   m.statusMsg,
	}
	if conv := m.store.Active(); conv != nil {
		info.TokenUsage = conv.TokenUsage
	}
	return components.RenderStatusBar(m.theme, m.width, info)
}

// renderHelp draws the full-screen help overlay.
func (m Model) renderHelp() string {
	rows := []struct{ keys, desc string }{
		{m.keys.NewChat.Help().Key, "new conversation"},
		{m.keys.Search.Help().Key, "search conversations"},
		{m.keys.ToggleSidebar.Help().Key, "toggle sidebar"},
		{m.keys.FocusInput.Help().Key, "focus input"},
		{"tab", "switch input / sidebar"},
		{"enter", "send (alt+enter for newline)"},
		{"esc", "stop streaming / leave input"},
		{"ctrl+r", "regenerate last response"},
		{"ctrl+q", "quit"},
		{"", ""},
		{"/model <id>", "switch Gemini model"},
		{"/model temp|topp|topk|maxtokens <v>", "tune generation parameters"},
		{"/login <email>", "sign in to an account"},
		{"/persona [id]", "switch persona preset"},
		{"/theme dark|light|auto", "switch theme"},
		{"/density, /layout", "visual settings"},
		{"/title, /pin, /archive, /tag", "manage conversation"},
		{"/export md|json|txt", "export conversation"},
		{"/regen", "regenerate last response"},
		{"/clear", "delete all conversations"},
	}

	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("Keyboard & Commands"))
	b.WriteString("\n\n")
	for _, row := range rows {
		if row.keys == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.theme.ShortcutKey.Render(padRight(row.keys, 24)))
		b.WriteString(m.theme.ShortcutDesc.Render(row.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MutedText.Render("Press any key to close"))

	box := m.theme.HelpBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// padRight pads a string with spaces to a fixed width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
