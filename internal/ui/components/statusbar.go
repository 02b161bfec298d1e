// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/ui/styles"
	"github.com/0leksiimarich/aifriend/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusInfo carries the values the status bar displays.
type StatusInfo struct {
	ModelName  string
	Persona    string
	TokenUsage *model.TokenUsage
	Streaming  bool
	Message    string // transient status text, wins over shortcuts
}

// RenderStatusBar draws the bottom status line: model and persona on the
// left, token usage and shortcut hints on the right.
func RenderStatusBar(theme *styles.Theme, width int, info StatusInfo) string {
	left := theme.StatusModel.Render(info.ModelName)
	if info.Persona != "" {
		left += theme.MutedText.Render(" · " + info.Persona)
	}
	if info.Streaming {
		left += " " + theme.AccentText.Render("streaming")
	}

	var right string
	switch {
	case info.Message != "":
		right = info.Message
	case info.TokenUsage != nil && info.TokenUsage.Total > 0:
		right = theme.StatusTokens.Render(util.FormatTokenCount(info.TokenUsage.Total) + " tokens")
	default:
		right = theme.ShortcutKey.Render("ctrl+h") + theme.ShortcutDesc.Render(" help")
	}

	gap := width - runewidth.StringWidth(stripANSI(left)) - runewidth.StringWidth(stripANSI(right)) - 2
	if gap < 1 {
		gap = 1
	}
	return theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
