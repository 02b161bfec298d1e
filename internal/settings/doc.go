// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings holds the user-facing configuration of the chat client:
// model parameters, assistant persona, visual presentation, functional
// toggles, and keyboard shortcuts.
//
// The Manager is the settings state container. It mutates the current
// snapshot through partial per-section patches, persists the full snapshot
// after every mutation, keeps named profiles in memory, and derives the
// presentation tokens (dark/light, accent, fonts) applied to the UI.
package settings
