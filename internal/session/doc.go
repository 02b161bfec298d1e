// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the running application session and drives
// periodic autosave.
//
// # Key Types
//
//   - Manager: session manager with dirty tracking and autosave
//   - TickMsg: Bubble Tea message for the periodic session tick
//   - AutoSaveMsg: Bubble Tea message emitted after an autosave
//
// # Usage
//
// Create a manager and register the save callback:
//
//	mgr := session.NewManager(session.DefaultConfig())
//	mgr.SetAutoSaveCallback(func() error {
//	    return app.SaveDraft()
//	})
//
// Mark the session dirty on changes and let the tick loop handle the
// rest:
//
//	mgr.MarkDirty()
//
// In the Bubble Tea update loop:
//
//	case session.TickMsg:
//	    return m, m.session.HandleTick()
package session
