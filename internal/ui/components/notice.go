// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/0leksiimarich/aifriend/internal/ui/styles"
)

// noticeLifetime is how long a notice stays on screen.
const noticeLifetime = 5 * time.Second

// =============================================================================
// TRANSIENT NOTICE
// =============================================================================

// Notice is a non-blocking message shown above the input area. It does
// not steal focus; it expires on its own or on the next key press.
type Notice struct {
	text    string
	expires time.Time
}

// Show replaces the current notice.
func (n *Notice) Show(text string) {
	n.text = text
	n.expires = time.Now().Add(noticeLifetime)
}

// Dismiss clears the notice immediately.
func (n *Notice) Dismiss() {
	n.text = ""
}

// Active reports whether an unexpired notice is showing.
func (n *Notice) Active() bool {
	return n.text != "" && time.Now().Before(n.expires)
}

// Render draws the notice box, or "" when inactive.
func (n *Notice) Render(theme *styles.Theme) string {
	if !n.Active() {
		return ""
	}
	return theme.NoticeBox.Render(n.text)
}
