// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/0leksiimarich/aifriend/internal/settings"
)

// KeyMap holds the application key bindings. The rebindable shortcuts
// come from the settings snapshot; the rest are fixed.
type KeyMap struct {
	NewChat       key.Binding
	Search        key.Binding
	Settings      key.Binding
	ToggleSidebar key.Binding
	FocusInput    key.Binding

	Send       key.Binding
	Stop       key.Binding
	Regenerate key.Binding
	Help       key.Binding
	Quit       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// NewKeyMap builds the key map from the configured shortcuts. Empty
// bindings fall back to the defaults.
func NewKeyMap(s settings.Shortcuts) KeyMap {
	d := settings.Default().Shortcuts
	return KeyMap{
		NewChat:       binding(s.NewChat, d.NewChat, "new chat"),
		Search:        binding(s.Search, d.Search, "search"),
		Settings:      binding(s.Settings, d.Settings, "settings"),
		ToggleSidebar: binding(s.ToggleSidebar, d.ToggleSidebar, "sidebar"),
		FocusInput:    binding(s.FocusInput, d.FocusInput, "focus input"),

		Send:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Stop:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
		Regenerate: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "regenerate")),
		Help:       key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "help")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll down")),
	}
}

func binding(keys, fallback, help string) key.Binding {
	if keys == "" {
		keys = fallback
	}
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, help))
}
