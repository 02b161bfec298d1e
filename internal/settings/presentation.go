// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import "github.com/muesli/termenv"

// =============================================================================
// PRESENTATION TOKENS
// =============================================================================

// Presentation is the derived token set the presentation layer consumes:
// a binary dark/light classification, an accent color, font tokens for UI
// and message text, and a point-size token.
type Presentation struct {
	Dark        bool
	Accent      string
	UIFont      string
	MessageFont string
	FontSizePts int
}

// fontStacks resolves symbolic font tokens to concrete stacks.
var fontStacks = map[FontFamily]string{
	FontSans:  "Inter, system-ui, -apple-system, sans-serif",
	FontSerif: "Georgia, serif",
	FontMono:  "JetBrains Mono, Consolas, monospace",
}

// fontSizes resolves symbolic size tokens to points.
var fontSizes = map[FontSize]int{
	FontSmall:  14,
	FontMedium: 16,
	FontLarge:  18,
	FontXLarge: 20,
}

// AmbientDark samples the terminal's background color. This is the host's
// ambient color-scheme signal used by the "auto" theme; it is read at the
// moment of calling and is not reactive to later changes.
func AmbientDark() bool {
	return termenv.HasDarkBackground()
}

// ResolvePresentation derives presentation tokens from visual settings.
// ambientDark is only consulted when the theme mode is ThemeAuto.
func ResolvePresentation(v VisualSettings, ambientDark bool) Presentation {
	dark := ambientDark
	switch v.Theme {
	case ThemeDark:
		dark = true
	case ThemeLight:
		dark = false
	}

	uiFont, ok := fontStacks[v.FontFamily]
	if !ok {
		uiFont = fontStacks[FontSans]
	}
	msgFont, ok := fontStacks[v.MessageFontFamily]
	if !ok {
		msgFont = fontStacks[FontSans]
	}
	size, ok := fontSizes[v.FontSize]
	if !ok {
		size = fontSizes[FontMedium]
	}

	return Presentation{
		Dark:        dark,
		Accent:      v.AccentColor,
		UIFont:      uiFont,
		MessageFont: msgFont,
		FontSizePts: size,
	}
}
