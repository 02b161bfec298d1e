// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/0leksiimarich/aifriend/internal/settings"

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// FragmentMsg is posted from the orchestrator's fragment hook each time
// a streamed fragment lands in the store.
type FragmentMsg struct {
	ConversationID string
}

// SendFinishedMsg reports the end of a send pipeline run, successful or
// not. Failures have already been rolled back by the orchestrator.
type SendFinishedMsg struct {
	ConversationID string
	Err            error
}

// NoticeMsg raises a transient, non-blocking notice.
type NoticeMsg struct {
	Text string
}

// StatusMsg sets a transient status bar message.
type StatusMsg struct {
	Text string
}

// PresentationMsg re-themes the UI after a visual settings change.
type PresentationMsg struct {
	Presentation settings.Presentation
}
