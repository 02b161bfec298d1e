// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable view pieces of the aifriend
// TUI: the message renderer, the conversation sidebar, the status bar,
// and the transient notice.
//
// Components are pure view code. They take domain values and a theme and
// return strings; all state lives in the chat model that composes them.
package components
