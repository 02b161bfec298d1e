// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import "time"

// =============================================================================
// ENUMERATED VALUE TYPES
// =============================================================================

// ThemeMode selects light, dark, or terminal-background-driven theming.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeAuto  ThemeMode = "auto"
)

// LayoutMode selects the overall chat layout.
type LayoutMode string

const (
	LayoutClassic LayoutMode = "classic"
	LayoutZen     LayoutMode = "zen"
	LayoutWide    LayoutMode = "wide"
)

// FontFamily is a font token resolved to a concrete stack at render time.
type FontFamily string

const (
	FontSans  FontFamily = "sans"
	FontSerif FontFamily = "serif"
	FontMono  FontFamily = "mono"
)

// FontSize is a symbolic size token.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
	FontXLarge FontSize = "xlarge"
)

// MessageShape selects the bubble shape for rendered messages.
type MessageShape string

const (
	ShapeRounded MessageShape = "rounded"
	ShapeSquare  MessageShape = "square"
	ShapePill    MessageShape = "pill"
)

// Density selects interface spacing.
type Density string

const (
	DensityCompact     Density = "compact"
	DensityComfortable Density = "comfortable"
	DensitySpacious    Density = "spacious"
)

// EnterBehavior controls what the enter key does in the input box.
type EnterBehavior string

const (
	EnterSends    EnterBehavior = "send"
	EnterNewlines EnterBehavior = "newline"
)

// =============================================================================
// SETTINGS SECTIONS
// =============================================================================

// ModelSettings holds generation parameters for the vendor model.
type ModelSettings struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
	MaxTokens   int     `json:"max_tokens"`
}

// PersonaSettings describes the assistant persona.
type PersonaSettings struct {
	Name          string `json:"name"`
	SystemPrompt  string `json:"system_prompt"`
	Preset        string `json:"preset"`
	Language      string `json:"language"`
	ResponseStyle string `json:"response_style"` // "concise" or "detailed"
	UseEmoji      bool   `json:"use_emoji"`
	Formality     string `json:"formality"` // "formal" or "informal"
}

// VisualSettings holds presentation configuration.
type VisualSettings struct {
	Theme             ThemeMode    `json:"theme"`
	AccentColor       string       `json:"accent_color"`
	FontFamily        FontFamily   `json:"font_family"`
	MessageFontFamily FontFamily   `json:"message_font_family"`
	FontSize          FontSize     `json:"font_size"`
	Density           Density      `json:"density"`
	MessageShape      MessageShape `json:"message_shape"`
	UserMessageBg     string       `json:"user_message_bg"`
	AssistantMsgBg    string       `json:"assistant_message_bg"`
	BackgroundStyle   string       `json:"background_style"` // solid, gradient, pattern, image
	BackgroundImage   string       `json:"background_image,omitempty"`
	ShowAvatars       bool         `json:"show_avatars"`
	UserAvatar        string       `json:"user_avatar,omitempty"`
	AssistantAvatar   string       `json:"assistant_avatar,omitempty"`
}

// FunctionalSettings holds behavioral toggles.
type FunctionalSettings struct {
	Layout               LayoutMode    `json:"layout"`
	AutoSaveInterval     time.Duration `json:"auto_save_interval"`
	EnterBehavior        EnterBehavior `json:"enter_behavior"`
	ShowTimestamps       bool          `json:"show_timestamps"`
	CollapseLongMessages bool          `json:"collapse_long_messages"`
	CodePreview          bool          `json:"code_preview"`
	AutoScroll           bool          `json:"auto_scroll"`
	SoundNotifications   bool          `json:"sound_notifications"`
	SpeechToText         bool          `json:"speech_to_text"`
	TextToSpeech         bool          `json:"text_to_speech"`
}

// Shortcuts holds keyboard shortcut bindings.
type Shortcuts struct {
	NewChat       string `json:"new_chat"`
	Search        string `json:"search"`
	Settings      string `json:"settings"`
	ToggleSidebar string `json:"toggle_sidebar"`
	FocusInput    string `json:"focus_input"`
}

// Settings is the complete configuration snapshot. It is persisted as a
// single versionless record; there is no schema migration.
type Settings struct {
	Model      ModelSettings      `json:"model"`
	Persona    PersonaSettings    `json:"persona"`
	Visual     VisualSettings     `json:"visual"`
	Functional FunctionalSettings `json:"functional"`
	Shortcuts  Shortcuts          `json:"shortcuts"`
}

// Profile is a named snapshot of a full Settings record, immutable once
// created.
type Profile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Settings Settings `json:"settings"`
}

// =============================================================================
// PARTIAL PATCHES
// =============================================================================

// Patch types carry optional fields: nil pointers leave the current value
// untouched, so a patch merges field-by-field over the current section
// without replacing unspecified fields.

// ModelPatch is a partial update to ModelSettings.
type ModelPatch struct {
	Model       *string
	Temperature *float64
	TopP        *float64
	TopK        *int
	MaxTokens   *int
}

func (p ModelPatch) apply(s *ModelSettings) {
	if p.Model != nil {
		s.Model = *p.Model
	}
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		s.TopP = *p.TopP
	}
	if p.TopK != nil {
		s.TopK = *p.TopK
	}
	if p.MaxTokens != nil {
		s.MaxTokens = *p.MaxTokens
	}
}

// PersonaPatch is a partial update to PersonaSettings.
type PersonaPatch struct {
	Name          *string
	SystemPrompt  *string
	Preset        *string
	Language      *string
	ResponseStyle *string
	UseEmoji      *bool
	Formality     *string
}

func (p PersonaPatch) apply(s *PersonaSettings) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.SystemPrompt != nil {
		s.SystemPrompt = *p.SystemPrompt
	}
	if p.Preset != nil {
		s.Preset = *p.Preset
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.ResponseStyle != nil {
		s.ResponseStyle = *p.ResponseStyle
	}
	if p.UseEmoji != nil {
		s.UseEmoji = *p.UseEmoji
	}
	if p.Formality != nil {
		s.Formality = *p.Formality
	}
}

// VisualPatch is a partial update to VisualSettings.
type VisualPatch struct {
	Theme             *ThemeMode
	AccentColor       *string
	FontFamily        *FontFamily
	MessageFontFamily *FontFamily
	FontSize          *FontSize
	Density           *Density
	MessageShape      *MessageShape
	UserMessageBg     *string
	AssistantMsgBg    *string
	BackgroundStyle   *string
	BackgroundImage   *string
	ShowAvatars       *bool
	UserAvatar        *string
	AssistantAvatar   *string
}

func (p VisualPatch) apply(s *VisualSettings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.AccentColor != nil {
		s.AccentColor = *p.AccentColor
	}
	if p.FontFamily != nil {
		s.FontFamily = *p.FontFamily
	}
	if p.MessageFontFamily != nil {
		s.MessageFontFamily = *p.MessageFontFamily
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.Density != nil {
		s.Density = *p.Density
	}
	if p.MessageShape != nil {
		s.MessageShape = *p.MessageShape
	}
	if p.UserMessageBg != nil {
		s.UserMessageBg = *p.UserMessageBg
	}
	if p.AssistantMsgBg != nil {
		s.AssistantMsgBg = *p.AssistantMsgBg
	}
	if p.BackgroundStyle != nil {
		s.BackgroundStyle = *p.BackgroundStyle
	}
	if p.BackgroundImage != nil {
		s.BackgroundImage = *p.BackgroundImage
	}
	if p.ShowAvatars != nil {
		s.ShowAvatars = *p.ShowAvatars
	}
	if p.UserAvatar != nil {
		s.UserAvatar = *p.UserAvatar
	}
	if p.AssistantAvatar != nil {
		s.AssistantAvatar = *p.AssistantAvatar
	}
}

// FunctionalPatch is a partial update to FunctionalSettings.
type FunctionalPatch struct {
	Layout               *LayoutMode
	AutoSaveInterval     *time.Duration
	EnterBehavior        *EnterBehavior
	ShowTimestamps       *bool
	CollapseLongMessages *bool
	CodePreview          *bool
	AutoScroll           *bool
	SoundNotifications   *bool
	SpeechToText         *bool
	TextToSpeech         *bool
}

func (p FunctionalPatch) apply(s *FunctionalSettings) {
	if p.Layout != nil {
		s.Layout = *p.Layout
	}
	if p.AutoSaveInterval != nil {
		s.AutoSaveInterval = *p.AutoSaveInterval
	}
	if p.EnterBehavior != nil {
		s.EnterBehavior = *p.EnterBehavior
	}
	if p.ShowTimestamps != nil {
		s.ShowTimestamps = *p.ShowTimestamps
	}
	if p.CollapseLongMessages != nil {
		s.CollapseLongMessages = *p.CollapseLongMessages
	}
	if p.CodePreview != nil {
		s.CodePreview = *p.CodePreview
	}
	if p.AutoScroll != nil {
		s.AutoScroll = *p.AutoScroll
	}
	if p.SoundNotifications != nil {
		s.SoundNotifications = *p.SoundNotifications
	}
	if p.SpeechToText != nil {
		s.SpeechToText = *p.SpeechToText
	}
	if p.TextToSpeech != nil {
		s.TextToSpeech = *p.TextToSpeech
	}
}

// ShortcutsPatch is a partial update to Shortcuts.
type ShortcutsPatch struct {
	NewChat       *string
	Search        *string
	Settings      *string
	ToggleSidebar *string
	FocusInput    *string
}

func (p ShortcutsPatch) apply(s *Shortcuts) {
	if p.NewChat != nil {
		s.NewChat = *p.NewChat
	}
	if p.Search != nil {
		s.Search = *p.Search
	}
	if p.Settings != nil {
		s.Settings = *p.Settings
	}
	if p.ToggleSidebar != nil {
		s.ToggleSidebar = *p.ToggleSidebar
	}
	if p.FocusInput != nil {
		s.FocusInput = *p.FocusInput
	}
}
