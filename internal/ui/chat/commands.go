// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/0leksiimarich/aifriend/internal/export"
	"github.com/0leksiimarich/aifriend/internal/settings"
	"github.com/0leksiimarich/aifriend/internal/validate"
)

// parseCommand splits a "/name arg arg" line. ok is false for lines that
// are not commands.
func parseCommand(text string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", nil, false
	}
	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// execCommand runs a slash command against the stores.
func (m Model) execCommand(text string) (tea.Model, tea.Cmd) {
	name, args, ok := parseCommand(text)
	if !ok {
		return m, nil
	}

	switch name {
	case "new":
		m.store.Create()
		m.sidebarIndex = 0
		m.refreshViewport()
		return m, statusCmd("New conversation")

	case "title":
		if id := m.store.ActiveID(); id != "" && len(args) > 0 {
			m.store.UpdateTitle(id, strings.Join(args, " "))
			return m, statusCmd("Title updated")
		}
		return m, nil

	case "pin":
		if id := m.store.ActiveID(); id != "" {
			m.store.TogglePin(id)
			return m, statusCmd("Pin toggled")
		}
		return m, nil

	case "archive":
		if id := m.store.ActiveID(); id != "" {
			m.store.ToggleArchive(id)
			m.refreshViewport()
			return m, statusCmd("Archive toggled")
		}
		return m, nil

	case "tag":
		return m.execTag(args)

	case "export":
		return m.execExport(args)

	case "regen":
		if m.activeStreaming() {
			return m, nil
		}
		cmd := m.regenerateCmd()
		if cmd == nil {
			return m, nil
		}
		m.streaming = true
		return m, tea.Batch(cmd, m.spinner.Tick)

	case "model":
		return m.execModel(args)

	case "login":
		return m.execLogin(args)

	case "persona":
		return m.execPersona(args)

	case "theme":
		return m.execTheme(args)

	case "density":
		if len(args) == 0 {
			return m, statusCmd("Usage: /density compact|comfortable|spacious")
		}
		d := settings.Density(args[0])
		m.settings.UpdateVisual(settings.VisualPatch{Density: &d})
		return m, nil

	case "layout":
		if len(args) == 0 {
			return m, statusCmd("Usage: /layout classic|zen|wide")
		}
		l := settings.LayoutMode(args[0])
		m.settings.UpdateFunctional(settings.FunctionalPatch{Layout: &l})
		m.sidebarVisible = l != settings.LayoutZen
		m.applyLayout()
		return m, nil

	case "reset-settings":
		m.settings.Reset()
		return m, statusCmd("Settings reset to defaults")

	case "clear":
		m.store.Clear()
		m.sidebarIndex = 0
		m.refreshViewport()
		return m, statusCmd("All conversations deleted")

	case "help":
		m.showHelp = true
		return m, nil
	}

	return m, noticeCmd("Unknown command: /" + name)
}

// execModel handles /model <id> and /model temp|topp|topk|maxtokens <value>.
// Parameter values are range-checked before they reach the settings store.
func (m Model) execModel(args []string) (tea.Model, tea.Cmd) {
	switch len(args) {
	case 1:
		id := args[0]
		m.settings.UpdateModel(settings.ModelPatch{Model: &id})
		return m, statusCmd("Model: " + id)

	case 2:
		param, raw := args[0], args[1]
		switch param {
		case "temp", "temperature":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || !validate.Temperature(v) {
				return m, noticeCmd("Temperature must be between 0 and 2.")
			}
			m.settings.UpdateModel(settings.ModelPatch{Temperature: &v})
			return m, statusCmd("Temperature: " + raw)
		case "topp":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || !validate.TopP(v) {
				return m, noticeCmd("Top-p must be between 0 and 1.")
			}
			m.settings.UpdateModel(settings.ModelPatch{TopP: &v})
			return m, statusCmd("Top-p: " + raw)
		case "topk":
			v, err := strconv.Atoi(raw)
			if err != nil || !validate.TopK(v) {
				return m, noticeCmd("Top-k must be between 1 and 100.")
			}
			m.settings.UpdateModel(settings.ModelPatch{TopK: &v})
			return m, statusCmd("Top-k: " + raw)
		case "maxtokens":
			v, err := strconv.Atoi(raw)
			if err != nil || !validate.MaxTokens(v) {
				return m, noticeCmd("Max tokens must be between 1 and 65536.")
			}
			m.settings.UpdateModel(settings.ModelPatch{MaxTokens: &v})
			return m, statusCmd("Max tokens: " + raw)
		}
		return m, noticeCmd("Unknown model parameter: " + param)
	}

	return m, statusCmd("Usage: /model <id> | /model temp|topp|topk|maxtokens <value>")
}

// execLogin handles /login <email>. Account sign-in has no backing
// provider yet, so the attempt reports why it cannot proceed.
func (m Model) execLogin(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m, statusCmd("Usage: /login <email>")
	}
	email := args[0]
	if !validate.Email(email) {
		return m, noticeCmd("Not a valid email address: " + email)
	}
	if _, err := m.auth.SignIn(context.Background(), email, ""); err != nil {
		return m, noticeCmd("Sign-in unavailable: " + err.Error())
	}
	return m, statusCmd("Signed in as " + email)
}

// execTag handles /tag add|rm <tag>.
func (m Model) execTag(args []string) (tea.Model, tea.Cmd) {
	id := m.store.ActiveID()
	if id == "" || len(args) < 2 {
		return m, statusCmd("Usage: /tag add|rm <tag>")
	}
	switch args[0] {
	case "add":
		m.store.AddTag(id, args[1])
		return m, statusCmd("Tagged " + args[1])
	case "rm":
		m.store.RemoveTag(id, args[1])
		return m, statusCmd("Untagged " + args[1])
	}
	return m, statusCmd("Usage: /tag add|rm <tag>")
}

// execExport handles /export [md|json|txt].
func (m Model) execExport(args []string) (tea.Model, tea.Cmd) {
	id := m.store.ActiveID()
	if id == "" {
		return m, nil
	}
	format := export.FormatMarkdown
	if len(args) > 0 {
		format = export.Format(args[0])
	}
	if !format.Valid() {
		return m, noticeCmd("Unknown export format: " + string(format))
	}
	path, err := m.store.Export(id, format)
	if err != nil {
		return m, noticeCmd("Export failed: " + err.Error())
	}
	return m, statusCmd("Exported to " + path)
}

// execPersona handles /persona <preset-id>.
func (m Model) execPersona(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		ids := make([]string, 0, len(settings.PersonaPresets))
		for _, p := range settings.PersonaPresets {
			ids = append(ids, p.ID)
		}
		return m, statusCmd("Personas: " + strings.Join(ids, ", "))
	}

	preset := settings.PresetByID(args[0])
	if preset == nil {
		return m, noticeCmd("Unknown persona: " + args[0])
	}
	m.settings.UpdatePersona(settings.PersonaPatch{
		Preset:       &preset.ID,
		SystemPrompt: &preset.SystemPrompt,
	})
	return m, statusCmd("Persona: " + preset.Name)
}

// execTheme handles /theme dark|light|auto.
func (m Model) execTheme(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m, statusCmd("Usage: /theme dark|light|auto")
	}
	mode := settings.ThemeMode(args[0])
	switch mode {
	case settings.ThemeDark, settings.ThemeLight, settings.ThemeAuto:
		m.settings.UpdateVisual(settings.VisualPatch{Theme: &mode})
		return m, nil
	}
	return m, noticeCmd("Unknown theme: " + args[0])
}
