// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat holds the conversation state and drives message exchange.
//
// Store owns the in-memory conversation collection and the active
// conversation pointer. Every mutation persists the full collection
// through the gateway; reads never touch the gateway after Load.
//
// Orchestrator runs the send pipeline: it appends the outgoing user
// message, appends an empty streaming assistant placeholder, drives the
// vendor stream fragment by fragment into the placeholder, and removes
// the placeholder if the stream fails. One send may be in flight per
// conversation at a time.
package chat
