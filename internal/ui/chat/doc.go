// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea program for the aifriend TUI.
//
// The model composes the conversation store, the streaming orchestrator,
// and the settings manager into one screen: a conversation sidebar, a
// message viewport, a multi-line input, and a status bar. Streaming
// responses repaint per fragment via FragmentMsg, posted from the
// orchestrator's fragment hook.
package chat
