// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/0leksiimarich/aifriend/internal/export"
	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/settings"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestConversationsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	conv := model.New()
	conv.AddMessage(model.NewUserMessage("hello there", nil))

	if err := s.SaveConversations([]*model.Conversation{conv}); err != nil {
		t.Fatalf("SaveConversations: %v", err)
	}

	got := s.Conversations()
	if len(got) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(got))
	}
	if got[0].ID != conv.ID {
		t.Errorf("ID = %q, want %q", got[0].ID, conv.ID)
	}
	if got[0].Title != conv.Title {
		t.Errorf("Title = %q, want %q", got[0].Title, conv.Title)
	}
	if len(got[0].Messages) != 1 || got[0].Messages[0].Content != "hello there" {
		t.Errorf("messages did not survive the round trip: %+v", got[0].Messages)
	}
}

func TestConversationsEmptyStore(t *testing.T) {
	s := newTestStore(t)

	got := s.Conversations()
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no conversations, got %d", len(got))
	}
}

func TestConversationsCorruptFile(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.BaseDir, "conversations.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := s.Conversations()
	if len(got) != 0 {
		t.Errorf("expected empty slice for corrupt store, got %d entries", len(got))
	}
}

func TestCurrentConversationID(t *testing.T) {
	s := newTestStore(t)

	if id := s.CurrentConversationID(); id != "" {
		t.Errorf("unset pointer = %q, want empty", id)
	}

	if err := s.SaveCurrentConversationID("conv-123"); err != nil {
		t.Fatalf("SaveCurrentConversationID: %v", err)
	}
	if id := s.CurrentConversationID(); id != "conv-123" {
		t.Errorf("pointer = %q, want %q", id, "conv-123")
	}

	// Clearing persists an explicit null.
	if err := s.SaveCurrentConversationID(""); err != nil {
		t.Fatalf("SaveCurrentConversationID(clear): %v", err)
	}
	if id := s.CurrentConversationID(); id != "" {
		t.Errorf("cleared pointer = %q, want empty", id)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if got := s.Settings(); got != nil {
		t.Fatalf("unset settings = %+v, want nil", got)
	}

	snapshot := settings.Default()
	snapshot.Model.Temperature = 1.3
	snapshot.Persona.Name = "Helper"

	if err := s.SaveSettings(snapshot); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got := s.Settings()
	if got == nil {
		t.Fatal("expected persisted settings, got nil")
	}
	if got.Model.Temperature != 1.3 {
		t.Errorf("Temperature = %v, want 1.3", got.Model.Temperature)
	}
	if got.Persona.Name != "Helper" {
		t.Errorf("Persona.Name = %q, want %q", got.Persona.Name, "Helper")
	}
}

func TestSettingsExportImport(t *testing.T) {
	s := newTestStore(t)

	snapshot := settings.Default()
	snapshot.Model.Model = "gemini-1.5-pro"

	path, err := s.ExportSettings(snapshot)
	if err != nil {
		t.Fatalf("ExportSettings: %v", err)
	}
	if !strings.HasPrefix(path, s.ExportDir) {
		t.Errorf("export path %q not under %q", path, s.ExportDir)
	}

	imported, err := s.ImportSettings(path)
	if err != nil {
		t.Fatalf("ImportSettings: %v", err)
	}
	if imported.Model.Model != "gemini-1.5-pro" {
		t.Errorf("Model = %q, want %q", imported.Model.Model, "gemini-1.5-pro")
	}
}

func TestImportSettingsInvalid(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "certainly not json"},
		{"wrong shape", `{"unexpected_field": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			_, err := s.ImportSettings(path)
			if !errors.Is(err, ErrParse) {
				t.Errorf("error = %v, want ErrParse", err)
			}
		})
	}
}

func TestImportSettingsMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ImportSettings(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrParse) {
		t.Error("missing file should not report ErrParse")
	}
}

func TestExportConversation(t *testing.T) {
	s := newTestStore(t)

	conv := model.New()
	conv.SetTitle("Export check")
	conv.AddMessage(model.NewUserMessage("ping", nil))

	path, err := s.ExportConversation(conv, export.FormatMarkdown)
	if err != nil {
		t.Fatalf("ExportConversation: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "Export check") {
		t.Errorf("export content missing title:\n%s", data)
	}
}
