// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTE
// =============================================================================

// Palette holds the resolved color set for one theme variant.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	SurfaceDim lipgloss.Color
	Overlay    lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
}

// darkPalette is the base palette for dark terminals.
func darkPalette(accent string) Palette {
	return Palette{
		Background:    lipgloss.Color("#111827"),
		Surface:       lipgloss.Color("#1f2937"),
		SurfaceDim:    lipgloss.Color("#1a2332"),
		Overlay:       lipgloss.Color("#374151"),
		TextPrimary:   lipgloss.Color("#f9fafb"),
		TextSecondary: lipgloss.Color("#d1d5db"),
		TextMuted:     lipgloss.Color("#6b7280"),
		TextInverse:   lipgloss.Color("#111827"),
		Accent:        lipgloss.Color(accent),
		Success:       lipgloss.Color("#22c55e"),
		Warning:       lipgloss.Color("#eab308"),
		Danger:        lipgloss.Color("#ef4444"),
	}
}

// lightPalette is the base palette for light terminals.
func lightPalette(accent string) Palette {
	return Palette{
		Background:    lipgloss.Color("#ffffff"),
		Surface:       lipgloss.Color("#f3f4f6"),
		SurfaceDim:    lipgloss.Color("#e5e7eb"),
		Overlay:       lipgloss.Color("#d1d5db"),
		TextPrimary:   lipgloss.Color("#111827"),
		TextSecondary: lipgloss.Color("#374151"),
		TextMuted:     lipgloss.Color("#9ca3af"),
		TextInverse:   lipgloss.Color("#f9fafb"),
		Accent:        lipgloss.Color(accent),
		Success:       lipgloss.Color("#16a34a"),
		Warning:       lipgloss.Color("#ca8a04"),
		Danger:        lipgloss.Color("#dc2626"),
	}
}

// PaletteFor resolves a palette from the dark classification and accent.
// An empty accent falls back to the default blue.
func PaletteFor(dark bool, accent string) Palette {
	if accent == "" {
		accent = "#0ea5e9"
	}
	if dark {
		return darkPalette(accent)
	}
	return lightPalette(accent)
}
