// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the aifriend TUI.
//
// A Theme is derived from the settings layer's presentation tokens: the
// dark/light classification, the accent color, and the density and shape
// tokens. The settings apply hook rebuilds the theme whenever visual
// settings change, so every style in the UI follows the user's choices
// without a restart.
package styles
