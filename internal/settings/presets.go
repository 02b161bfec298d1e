// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"strings"
	"time"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in settings snapshot.
func Default() Settings {
	return Settings{
		Model: ModelSettings{
			Model:       "gemini-2.0-flash-exp",
			Temperature: 0.7,
			TopP:        0.95,
			TopK:        40,
			MaxTokens:   8192,
		},
		Persona: PersonaSettings{
			Name:          "AI Friend",
			SystemPrompt:  "You are a helpful AI assistant named AI Friend. You help users with a wide range of tasks, provide information, and keep the conversation pleasant.",
			Preset:        "friendly",
			Language:      "uk",
			ResponseStyle: "detailed",
			UseEmoji:      true,
			Formality:     "informal",
		},
		Visual: VisualSettings{
			Theme:             ThemeAuto,
			AccentColor:       "#0ea5e9",
			FontFamily:        FontSans,
			MessageFontFamily: FontSans,
			FontSize:          FontMedium,
			Density:           DensityComfortable,
			MessageShape:      ShapeRounded,
			UserMessageBg:     "#0ea5e9",
			AssistantMsgBg:    "#f3f4f6",
			BackgroundStyle:   "solid",
			ShowAvatars:       true,
		},
		Functional: FunctionalSettings{
			Layout:           LayoutClassic,
			AutoSaveInterval: 30 * time.Second,
			EnterBehavior:    EnterSends,
			ShowTimestamps:   true,
			CodePreview:      true,
			AutoScroll:       true,
		},
		Shortcuts: Shortcuts{
			NewChat:       "ctrl+n",
			Search:        "ctrl+k",
			Settings:      "ctrl+,",
			ToggleSidebar: "ctrl+b",
			FocusInput:    "ctrl+/",
		},
	}
}

// =============================================================================
// MODEL CATALOG
// =============================================================================

// ModelInfo describes one entry of the Gemini model catalog.
type ModelInfo struct {
	ID          string
	Name        string
	Description string
}

// Models is the catalog of selectable Gemini models.
var Models = []ModelInfo{
	{
		ID:          "gemini-2.0-flash-exp",
		Name:        "Gemini 2.0 Flash (Experimental)",
		Description: "Fast model for everyday use",
	},
	{
		ID:          "gemini-2.0-flash-thinking-exp-01-21",
		Name:        "Gemini 2.0 Flash Thinking",
		Description: "Model with extended reasoning",
	},
	{
		ID:          "gemini-exp-1206",
		Name:        "Gemini Experimental 1206",
		Description: "Experimental model",
	},
}

// =============================================================================
// PERSONA PRESETS
// =============================================================================

// PersonaPreset is a named system-prompt preset.
type PersonaPreset struct {
	ID           string
	Name         string
	SystemPrompt string
}

// PersonaPresets holds the built-in assistant personas.
var PersonaPresets = []PersonaPreset{
	{
		ID:           "professional",
		Name:         "Professional",
		SystemPrompt: "You are a professional AI assistant. Provide accurate, structured, and useful answers. Use a formal tone.",
	},
	{
		ID:           "friendly",
		Name:         "Friendly",
		SystemPrompt: "You are a friendly AI assistant. Communicate warmly and pleasantly, use a relaxed tone. Help with enthusiasm.",
	},
	{
		ID:           "creative",
		Name:         "Creative",
		SystemPrompt: "You are a creative AI assistant. Offer original ideas, use metaphors and vivid language. Be inspiring.",
	},
	{
		ID:           "technical",
		Name:         "Technical",
		SystemPrompt: "You are a technical expert. Provide detailed technical explanations and use precise terminology. Be specific.",
	},
	{
		ID:           "fun",
		Name:         "Fun",
		SystemPrompt: "You are a fun AI assistant. Use humor, emoji, and jokes. Keep the conversation light and enjoyable.",
	},
}

// PresetByID returns the persona preset with the given ID, or nil.
func PresetByID(id string) *PersonaPreset {
	for i := range PersonaPresets {
		if PersonaPresets[i].ID == id {
			return &PersonaPresets[i]
		}
	}
	return nil
}

// =============================================================================
// PROMPT TEMPLATES
// =============================================================================

// PromptTemplate is a reusable prompt with {variable} placeholders.
type PromptTemplate struct {
	ID        string
	Name      string
	Category  string
	Prompt    string
	Variables []string
}

// PromptTemplates holds the built-in prompt templates.
var PromptTemplates = []PromptTemplate{
	{
		ID:        "explain",
		Name:      "Explain",
		Category:  "Learning",
		Prompt:    "Explain {topic} to me in simple terms, as if for a beginner",
		Variables: []string{"topic"},
	},
	{
		ID:        "summarize",
		Name:      "Summarize",
		Category:  "Work",
		Prompt:    "Summarize the following text in {sentences} sentences:\n\n{text}",
		Variables: []string{"sentences", "text"},
	},
	{
		ID:        "brainstorm",
		Name:      "Brainstorm",
		Category:  "Creativity",
		Prompt:    "Help me brainstorm on the topic: {topic}. Give {count} creative ideas",
		Variables: []string{"topic", "count"},
	},
	{
		ID:        "code-review",
		Name:      "Code review",
		Category:  "Programming",
		Prompt:    "Analyze the following code and suggest improvements:\n\n{code}",
		Variables: []string{"code"},
	},
}

// Render substitutes template variables. Unknown placeholders are left
// untouched.
func (t PromptTemplate) Render(values map[string]string) string {
	out := t.Prompt
	for _, name := range t.Variables {
		if v, ok := values[name]; ok {
			out = strings.ReplaceAll(out, "{"+name+"}", v)
		}
	}
	return out
}

// =============================================================================
// ACCENT COLORS AND LANGUAGES
// =============================================================================

// AccentColor is a named accent color choice.
type AccentColor struct {
	Name  string
	Value string
}

// AccentColors holds the selectable accent colors.
var AccentColors = []AccentColor{
	{"Blue", "#0ea5e9"},
	{"Violet", "#8b5cf6"},
	{"Pink", "#ec4899"},
	{"Red", "#ef4444"},
	{"Orange", "#f97316"},
	{"Yellow", "#eab308"},
	{"Green", "#22c55e"},
	{"Teal", "#14b8a6"},
	{"Indigo", "#6366f1"},
	{"Gray", "#6b7280"},
}

// Language is a selectable response language.
type Language struct {
	Code string
	Name string
}

// Languages holds the selectable response languages.
var Languages = []Language{
	{"uk", "Українська"},
	{"en", "English"},
	{"de", "Deutsch"},
	{"fr", "Français"},
	{"es", "Español"},
	{"it", "Italiano"},
	{"pl", "Polski"},
}
