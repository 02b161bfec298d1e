// Copyright (c) 2025 Oleksii Marich
/// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	convo "github.com/0leksiimarich/aifriend/internal/chat"
	"github.com/0leksiimarich/aifriend/internal/session"
	"github.com/0leksiimarich/aifriend/internal/settings"
	"github.com/0leksiimarich/aifriend/internal/validate"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FragmentMsg:
		if msg.ConversationID == m.store.ActiveID() {
			m.refreshViewport()
			if m.settings.Current().Functional.AutoScroll {
				m.viewport.GotoBottom()
			}
		}
		return m, nil

	case SendFinishedMsg:
		return m.handleSendFinished(msg)

	case NoticeMsg:
		m.notice.Show(msg.Text)
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Text
		return m, nil

	case PresentationMsg:
		m.retheme(msg.Presentation)
		return m, nil

	case spinner.TickMsg:
		if m.streaming {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case session.TickMsg:
		return m, m.session.HandleTick()

	case session.AutoSaveMsg:
		m.statusMsg = "Autosaved"
		return m, nil
	}

	// Everything else goes to the focused component and the viewport.
	var cmds []tea.Cmd
	if m.focus == focusInput && !m.searchMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.theme.SetSize(msg.Width, msg.Height)
	m.applyLayout()
	return m, nil
}

// applyLayout recomputes component dimensions from the terminal size.
func (m *Model) applyLayout() {
	const (
		headerHeight    = 1
		statusBarHeight = 1
		inputAreaHeight = 5
	)

	contentWidth := m.width
	if m.sidebarVisible {
		contentWidth -= sidebarWidth
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	contentHeight := m.height - headerHeight - statusBarHeight - inputAreaHeight
	if m.searchMode {
		contentHeight--
	}
	if contentHeight < 3 {
		contentHeight = 3
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight
	m.input.SetWidth(m.width - 4)
	m.renderer.SetWidth(contentWidth - 2)
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.refreshViewport()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key press clears transient surfaces.
	m.statusMsg = ""
	if m.notice.Active() {
		m.notice.Dismiss()
	}
	m.session.RecordActivity()

	if msg.String() == "ctrl+q" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		// ctrl+c stops an active stream first, quits otherwise.
		if m.activeStreaming() {
			m.orchestrator.Stop(m.store.ActiveID())
			m.streaming = false
			m.refreshViewport()
			return m, statusCmd("Stopped")
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.store.Create()
		m.sidebarIndex = 0
		m.refreshViewport()
		m.input.Reset()
		return m, statusCmd("New conversation")

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		m.searchInput.Focus()
		m.applyLayout()
		return m, textarea.Blink

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebarVisible = !m.sidebarVisible
		if !m.sidebarVisible && m.focus == focusSidebar {
			m.focus = focusInput
			m.input.Focus()
		}
		m.applyLayout()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		return m, statusCmd("Settings: /model /persona /theme /density /layout — see ctrl+h")

	case key.Matches(msg, m.keys.FocusInput):
		m.focus = focusInput
		m.input.Focus()
		return m, textarea.Blink

	case key.Matches(msg, m.keys.Regenerate):
		if m.activeStreaming() {
			return m, nil
		}
		cmd := m.regenerateCmd()
		if cmd == nil {
			return m, nil
		}
		m.streaming = true
		return m, tea.Batch(cmd, m.spinner.Tick)
	}

	if msg.String() == "tab" && m.sidebarVisible {
		if m.focus == focusInput {
			m.focus = focusSidebar
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, textarea.Blink
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

// handleSidebarKey navigates and manages the conversation list.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.store.Filtered()

	switch msg.String() {
	case "up", "k":
		m.sidebarIndex--
		m.clampSidebarIndex()
		return m, nil

	case "down", "j":
		m.sidebarIndex++
		m.clampSidebarIndex()
		return m, nil

	case "enter":
		if m.sidebarIndex < len(list) {
			m.store.Select(list[m.sidebarIndex].ID)
			m.refreshViewport()
			m.viewport.GotoBottom()
			m.focus = focusInput
			m.input.Focus()
		}
		return m, textarea.Blink

	case "d", "x":
		if m.sidebarIndex < len(list) {
			m.store.Delete(list[m.sidebarIndex].ID)
			m.clampSidebarIndex()
			m.refreshViewport()
			return m, statusCmd("Conversation deleted")
		}
		return m, nil

	case "p":
		if m.sidebarIndex < len(list) {
			m.store.TogglePin(list[m.sidebarIndex].ID)
		}
		return m, nil

	case "a":
		if m.sidebarIndex < len(list) {
			m.store.ToggleArchive(list[m.sidebarIndex].ID)
			m.clampSidebarIndex()
			return m, statusCmd("Conversation archived")
		}
		return m, nil

	case "esc":
		m.focus = focusInput
		m.input.Focus()
		return m, textarea.Blink
	}
	return m, nil
}

// handleSearchKey drives live filtering of the sidebar.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.store.SetSearchQuery("")
		m.sidebarIndex = 0
		m.applyLayout()
		m.input.Focus()
		return m, textarea.Blink

	case "enter":
		m.searchMode = false
		m.focus = focusSidebar
		m.input.Blur()
		m.sidebarIndex = 0
		m.applyLayout()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.store.SetSearchQuery(m.searchInput.Value())
	m.sidebarIndex = 0
	return m, cmd
}

// handleInputKey drives the message input.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	enterSends := m.settings.Current().Functional.EnterBehavior == settings.EnterSends

	switch msg.String() {
	case "esc":
		if m.activeStreaming() {
			m.orchestrator.Stop(m.store.ActiveID())
			m.streaming = false
			m.refreshViewport()
			return m, statusCmd("Stopped")
		}
		if m.sidebarVisible {
			m.focus = focusSidebar
			m.input.Blur()
		}
		return m, nil

	case "enter":
		if enterSends {
			return m.submit()
		}

	case "alt+enter":
		if enterSends {
			// Insert a newline without submitting.
			m.input.InsertString("\n")
			return m, nil
		}
		return m.submit()

	case "ctrl+enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.markDirtyNow()
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit sends the input content, or runs it as a slash command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(validate.Sanitize(m.input.Value()))
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		return m.execCommand(text)
	}

	if m.activeStreaming() {
		m.notice.Show("A response is still streaming. Stop it first (esc).")
		return m, nil
	}

	m.input.Reset()
	m.streaming = true
	m.session.MarkClean()
	cmd := m.sendCmd(text)
	m.refreshViewport()
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// handleSendFinished resolves the end of a pipeline run.
func (m Model) handleSendFinished(msg SendFinishedMsg) (tea.Model, tea.Cmd) {
	m.streaming = false
	m.refreshViewport()
	if m.settings.Current().Functional.AutoScroll {
		m.viewport.GotoBottom()
	}

	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, convo.ErrEmptySubmission):
			// Nothing was sent; nothing to report.
		case errors.Is(msg.Err, convo.ErrBusy):
			m.notice.Show("A response is still streaming for this conversation.")
		default:
			// Stream failures already raised a notice via the
			// orchestrator's notifier; log for the record.
			m.log.Warn().Err(msg.Err).Msg("send pipeline failed")
		}
	}
	return m, nil
}
