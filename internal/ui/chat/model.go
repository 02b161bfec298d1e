// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/0leksiimarich/aifriend/internal/auth"
	convo "github.com/0leksiimarich/aifriend/internal/chat"
	"github.com/0leksiimarich/aifriend/internal/session"
	"github.com/0leksiimarich/aifriend/internal/settings"
	"github.com/0leksiimarich/aifriend/internal/ui/components"
	"github.com/0leksiimarich/aifriend/internal/ui/styles"
)

// sidebarWidth is the fixed width of the conversation sidebar.
const sidebarWidth = 32

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the whole application screen.
type Model struct {
	theme *styles.Theme
	keys  KeyMap
	log   zerolog.Logger

	// Dimensions
	width  int
	height int
	ready  bool

	// Domain
	store        *convo.Store
	orchestrator *convo.Orchestrator
	settings     *settings.Manager
	session      *session.Manager
	auth         auth.Provider

	// UI components
	viewport    viewport.Model
	input       textarea.Model
	searchInput textinput.Model
	spinner     spinner.Model
	renderer    *components.MessageRenderer
	sidebar     *components.Sidebar
	notice      components.Notice

	// Interaction state
	focus          focusArea
	sidebarVisible bool
	sidebarIndex   int
	searchMode     bool
	showHelp       bool
	streaming      bool
	statusMsg      string
}

// New creates the application model.
func New(store *convo.Store, orchestrator *convo.Orchestrator, mgr *settings.Manager, sess *session.Manager, log zerolog.Logger) Model {
	snap := mgr.Current()
	theme := styles.NewTheme(
		settings.ResolvePresentation(snap.Visual, settings.AmbientDark()),
		snap.Visual,
	)

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.Prompt = ""
	ta.CharLimit = 8192
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	si := textinput.New()
	si.Prompt = "Search: "
	si.Placeholder = "Filter conversations..."
	si.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = theme.Spinner

	return Model{
		theme:          theme,
		keys:           NewKeyMap(snap.Shortcuts),
		log:            log.With().Str("component", "ui").Logger(),
		store:          store,
		orchestrator:   orchestrator,
		settings:       mgr,
		session:        sess,
		auth:           auth.NewUnconfigured(),
		viewport:       viewport.New(80, 20),
		input:          ta,
		searchInput:    si,
		spinner:        sp,
		renderer:       components.NewMessageRenderer(theme, 80, snap.Functional.ShowTimestamps),
		sidebar:        components.NewSidebar(theme, sidebarWidth, 20),
		sidebarVisible: snap.Functional.Layout != settings.LayoutZen,
	}
}

// Init starts the session tick loop and the input cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, session.TickCmd())
}

// =============================================================================
// DERIVED STATE
// =============================================================================

// activeStreaming reports whether the open conversation has a send in
// flight.
func (m *Model) activeStreaming() bool {
	id := m.store.ActiveID()
	return id != "" && m.orchestrator.Busy(id)
}

// retheme rebuilds the theme and renderers from the current settings.
func (m *Model) retheme(p settings.Presentation) {
	snap := m.settings.Current()
	m.theme = styles.NewTheme(p, snap.Visual)
	m.keys = NewKeyMap(snap.Shortcuts)
	m.renderer.SetTheme(m.theme, snap.Functional.ShowTimestamps)
	m.sidebar.SetTheme(m.theme)
	m.spinner.Style = m.theme.Spinner
	m.session.SetAutoSaveInterval(snap.Functional.AutoSaveInterval)
	m.refreshViewport()
}

// refreshViewport re-renders the active conversation into the viewport.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderer.RenderConversation(m.store.Active()))
}

// clampSidebarIndex keeps the selection inside the filtered list.
func (m *Model) clampSidebarIndex() {
	n := len(m.store.Filtered())
	if m.sidebarIndex >= n {
		m.sidebarIndex = n - 1
	}
	if m.sidebarIndex < 0 {
		m.sidebarIndex = 0
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// sendCmd runs the orchestrator pipeline for an outgoing message. The
// pipeline blocks until the stream drains, so it runs inside the command
// goroutine; fragment repaints arrive separately via FragmentMsg.
func (m *Model) sendCmd(text string) tea.Cmd {
	orch := m.orchestrator
	store := m.store
	return func() tea.Msg {
		err := orch.Send(context.Background(), text, nil)
		return SendFinishedMsg{ConversationID: store.ActiveID(), Err: err}
	}
}

// regenerateCmd reruns the pipeline for the last assistant message.
func (m *Model) regenerateCmd() tea.Cmd {
	conv := m.store.Active()
	if conv == nil {
		return nil
	}
	last := conv.LastMessage()
	if last == nil {
		return nil
	}
	orch := m.orchestrator
	convID, msgID := conv.ID, last.ID
	return func() tea.Msg {
		err := orch.Regenerate(context.Background(), convID, msgID)
		return SendFinishedMsg{ConversationID: convID, Err: err}
	}
}

// statusCmd sets a transient status message.
func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// noticeCmd raises a transient notice.
func noticeCmd(text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text} }
}

// markDirtyNow flags unsaved session state and stamps activity.
func (m *Model) markDirtyNow() {
	m.session.RecordActivity()
	m.session.MarkDirty()
}
