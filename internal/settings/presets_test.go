// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"strings"
	"testing"
)

// =============================================================================
// DEFAULT SNAPSHOT TESTS
// =============================================================================

func TestDefault_IsComplete(t *testing.T) {
	s := Default()

	if s.Model.Model == "" {
		t.Error("default model ID should not be empty")
	}
	if s.Model.Temperature < 0 || s.Model.Temperature > 2 {
		t.Errorf("default temperature %v out of range", s.Model.Temperature)
	}
	if s.Persona.SystemPrompt == "" {
		t.Error("default system prompt should not be empty")
	}
	if s.Visual.Theme != ThemeAuto {
		t.Errorf("default theme = %q, want auto", s.Visual.Theme)
	}
	if s.Functional.AutoSaveInterval <= 0 {
		t.Error("default autosave interval should be positive")
	}
	if s.Shortcuts.NewChat == "" {
		t.Error("default shortcuts should be bound")
	}
}

func TestDefault_ModelInCatalog(t *testing.T) {
	id := Default().Model.Model
	for _, m := range Models {
		if m.ID == id {
			return
		}
	}
	t.Errorf("default model %q not present in the catalog", id)
}

func TestDefault_PresetExists(t *testing.T) {
	if PresetByID(Default().Persona.Preset) == nil {
		t.Errorf("default persona preset %q not found", Default().Persona.Preset)
	}
}

// =============================================================================
// PERSONA PRESET TESTS
// =============================================================================

func TestPresetByID(t *testing.T) {
	p := PresetByID("technical")
	if p == nil {
		t.Fatal("technical preset should exist")
	}
	if p.Name != "Technical" {
		t.Errorf("Name = %q, want %q", p.Name, "Technical")
	}
	if p.SystemPrompt == "" {
		t.Error("preset system prompt should not be empty")
	}

	if PresetByID("nonexistent") != nil {
		t.Error("unknown preset ID should return nil")
	}
}

// =============================================================================
// PROMPT TEMPLATE TESTS
// =============================================================================

func TestPromptTemplate_Render(t *testing.T) {
	tmpl := PromptTemplate{
		Prompt:    "Summarize the following text in {sentences} sentences:\n\n{text}",
		Variables: []string{"sentences", "text"},
	}

	got := tmpl.Render(map[string]string{
		"sentences": "3",
		"text":      "Go is a programming language.",
	})
	want := "Summarize the following text in 3 sentences:\n\nGo is a programming language."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestPromptTemplate_Render_MissingVariable(t *testing.T) {
	tmpl := PromptTemplate{
		Prompt:    "Explain {topic} to me in simple terms",
		Variables: []string{"topic"},
	}

	got := tmpl.Render(map[string]string{})
	if !strings.Contains(got, "{topic}") {
		t.Errorf("unfilled placeholder should stay literal, got %q", got)
	}
}

func TestPromptTemplates_DeclareTheirVariables(t *testing.T) {
	for _, tmpl := range PromptTemplates {
		for _, name := range tmpl.Variables {
			if !strings.Contains(tmpl.Prompt, "{"+name+"}") {
				t.Errorf("template %q declares %q but the prompt has no such placeholder", tmpl.ID, name)
			}
		}
	}
}

// =============================================================================
// PRESENTATION RESOLUTION TESTS
// =============================================================================

func TestResolvePresentation_ThemeModes(t *testing.T) {
	tests := []struct {
		name    string
		theme   ThemeMode
		ambient bool
		want    bool
	}{
		{"dark overrides light ambient", ThemeDark, false, true},
		{"light overrides dark ambient", ThemeLight, true, false},
		{"auto follows dark ambient", ThemeAuto, true, true},
		{"auto follows light ambient", ThemeAuto, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := Default().Visual
			v.Theme = tc.theme
			got := ResolvePresentation(v, tc.ambient)
			if got.Dark != tc.want {
				t.Errorf("Dark = %v, want %v", got.Dark, tc.want)
			}
		})
	}
}

func TestResolvePresentation_FontTokens(t *testing.T) {
	v := Default().Visual
	v.FontFamily = FontMono
	v.MessageFontFamily = FontSerif
	v.FontSize = FontLarge

	p := ResolvePresentation(v, false)

	if !strings.Contains(p.UIFont, "monospace") {
		t.Errorf("UIFont = %q, want a monospace stack", p.UIFont)
	}
	if !strings.Contains(p.MessageFont, "serif") {
		t.Errorf("MessageFont = %q, want a serif stack", p.MessageFont)
	}
	if p.FontSizePts != 18 {
		t.Errorf("FontSizePts = %d, want 18", p.FontSizePts)
	}
}

func TestResolvePresentation_UnknownTokensFallBack(t *testing.T) {
	v := Default().Visual
	v.FontFamily = FontFamily("comic-sans")
	v.FontSize = FontSize("enormous")

	p := ResolvePresentation(v, false)

	if p.UIFont == "" {
		t.Error("unknown font family should fall back, not go empty")
	}
	if p.FontSizePts != 16 {
		t.Errorf("unknown size should fall back to medium (16), got %d", p.FontSizePts)
	}
}

func TestResolvePresentation_CarriesAccent(t *testing.T) {
	v := Default().Visual
	v.AccentColor = "#ec4899"

	if got := ResolvePresentation(v, true).Accent; got != "#ec4899" {
		t.Errorf("Accent = %q, want %q", got, "#ec4899")
	}
}
