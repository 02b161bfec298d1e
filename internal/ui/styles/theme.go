// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/0leksiimarich/aifriend/internal/settings"
)

// Theme holds all the styled components for the application, resolved
// from the settings layer's presentation and visual tokens.
type Theme struct {
	Dark    bool
	Palette Palette

	// Layout dimensions
	Width  int
	Height int

	// Visual tokens the renderers consult directly
	Density      settings.Density
	MessageShape settings.MessageShape
	ShowAvatars  bool

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	RoleLabel       lipgloss.Style
	Timestamp       lipgloss.Style
	StreamingCursor lipgloss.Style
	Attachment      lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style
	SidebarPreview      lipgloss.Style
	SidebarDate         lipgloss.Style
	SidebarPin          lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	CharCount      lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusModel  lipgloss.Style
	StatusTokens lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// OVERLAYS AND FEEDBACK
	// ==========================================================================

	NoticeBox  lipgloss.Style
	HelpBox    lipgloss.Style
	SearchBar  lipgloss.Style
	Spinner    lipgloss.Style
	Thinking   lipgloss.Style
	ErrorText  lipgloss.Style
	MutedText  lipgloss.Style
	AccentText lipgloss.Style
}

// NewTheme builds a theme from presentation tokens and visual settings.
func NewTheme(p settings.Presentation, v settings.VisualSettings) *Theme {
	t := &Theme{
		Dark:         p.Dark,
		Palette:      PaletteFor(p.Dark, p.Accent),
		Density:      v.Density,
		MessageShape: v.MessageShape,
		ShowAvatars:  v.ShowAvatars,
	}
	t.initStyles(v)
	return t
}

// SetSize records the terminal dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BubbleGap returns the vertical spacing between messages for the
// configured density.
func (t *Theme) BubbleGap() int {
	switch t.Density {
	case settings.DensityCompact:
		return 0
	case settings.DensitySpacious:
		return 2
	default:
		return 1
	}
}

// bubbleBorder maps the message shape token to a lipgloss border.
func bubbleBorder(shape settings.MessageShape) lipgloss.Border {
	switch shape {
	case settings.ShapeSquare:
		return lipgloss.NormalBorder()
	case settings.ShapePill:
		return lipgloss.ThickBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles(v settings.VisualSettings) {
	pal := t.Palette
	border := bubbleBorder(v.MessageShape)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(pal.SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(pal.Accent)

	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(pal.TextMuted)

	// Message bubbles. The configured message backgrounds win over the
	// palette when set.
	userBg := pal.Accent
	if v.UserMessageBg != "" {
		userBg = lipgloss.Color(v.UserMessageBg)
	}
	assistantBg := pal.Surface
	if v.AssistantMsgBg != "" && !t.Dark {
		assistantBg = lipgloss.Color(v.AssistantMsgBg)
	}

	t.UserBubble = lipgloss.NewStyle().
		Foreground(pal.TextInverse).
		Background(userBg).
		BorderStyle(border).
		BorderForeground(userBg).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(pal.TextPrimary).
		Background(assistantBg).
		BorderStyle(border).
		BorderForeground(pal.Overlay).
		Padding(0, 1)

	t.RoleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(pal.TextSecondary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(pal.TextMuted)

	t.StreamingCursor = lipgloss.NewStyle().
		Foreground(pal.Accent).
		Bold(true)

	t.Attachment = lipgloss.NewStyle().
		Foreground(pal.TextMuted).
		Italic(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(pal.Overlay).
		PaddingRight(1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(pal.Accent)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(pal.TextPrimary).
		Padding(0, 1)

	t.SidebarItemSelected = lipgloss.NewStyle().
		Foreground(pal.TextInverse).
		Background(pal.Accent).
		Bold(true).
		Padding(0, 1)

	t.SidebarPreview = lipgloss.NewStyle().
		Foreground(pal.TextMuted).
		PaddingLeft(1)

	t.SidebarDate = lipgloss.NewStyle().
		Foreground(pal.TextMuted).
		Italic(true)

	t.SidebarPin = lipgloss.NewStyle().
		Foreground(pal.Warning)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(pal.Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(pal.Accent).
		Bold(true)

	t.CharCount = lipgloss.NewStyle().
		Foreground(pal.TextMuted).
		Align(lipgloss.Right)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(pal.SurfaceDim).
		Foreground(pal.TextSecondary).
		Padding(0, 1)

	t.StatusModel = lipgloss.NewStyle().
		Foreground(pal.Accent).
		Bold(true)

	t.StatusTokens = lipgloss.NewStyle().
		Foreground(pal.TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(pal.Accent).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(pal.TextMuted)

	// Overlays and feedback
	t.NoticeBox = lipgloss.NewStyle().
		Foreground(pal.TextPrimary).
		Background(pal.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(pal.Danger).
		Padding(0, 2)

	t.HelpBox = lipgloss.NewStyle().
		Background(pal.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(pal.Accent).
		Padding(1, 2)

	t.SearchBar = lipgloss.NewStyle().
		Background(pal.SurfaceDim).
		Foreground(pal.TextPrimary).
		Padding(0, 1)

	t.Spinner = lipgloss.NewStyle().
		Foreground(pal.Accent)

	t.Thinking = lipgloss.NewStyle().
		Foreground(pal.TextMuted).
		Italic(true)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(pal.Danger).
		Bold(true)

	t.MutedText = lipgloss.NewStyle().
		Foreground(pal.TextMuted)

	t.AccentText = lipgloss.NewStyle().
		Foreground(pal.Accent)
}
