// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage is the persistence gateway: the sole component touching
// the local key-value store.
//
// Three independent records are kept under distinct keys, one JSON file
// per key under the data directory: the conversation collection, the
// active-conversation pointer, and the settings snapshot. All writes are
// whole-value overwrites performed atomically with fsync; reads tolerate
// a missing or corrupt store by returning empty defaults.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/0leksiimarich/aifriend/internal/export"
	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/settings"
	"github.com/0leksiimarich/aifriend/internal/util"
)

// Storage keys. Each key maps to <BaseDir>/<key>.json.
const (
	keyConversations = "conversations"
	keyCurrent       = "current-conversation"
	keySettings      = "settings"
)

// ErrParse is returned when an imported file is not valid serialized
// settings. Check with errors.Is.
var ErrParse = errors.New("file is not a valid settings export")

// =============================================================================
// STORE
// =============================================================================

// Store reads and writes the three persisted records. It owns no business
// invariants.
type Store struct {
	// BaseDir holds the key files. Default: ~/.aifriend
	BaseDir string

	// ExportDir receives exported conversation and settings files.
	// Default: <BaseDir>/exports
	ExportDir string

	log zerolog.Logger
}

// NewStore creates a store rooted at baseDir, creating it if needed.
func NewStore(baseDir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{
		BaseDir:   baseDir,
		ExportDir: filepath.Join(baseDir, "exports"),
		log:       log.With().Str("component", "storage").Logger(),
	}, nil
}

// keyPath returns the file backing a storage key.
func (s *Store) keyPath(key string) string {
	return filepath.Join(s.BaseDir, key+".json")
}

// readKey unmarshals a key file into v. Returns false when the key is
// unset or unreadable; corrupt content is logged and treated as unset.
func (s *Store) readKey(key string, v any) bool {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to read storage key")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("corrupt storage key, using defaults")
		return false
	}
	return true
}

// writeKey marshals v and overwrites the key file (total replace).
func (s *Store) writeKey(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := util.AtomicWriteFile(s.keyPath(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// Conversations returns the persisted collection, or an empty slice when
// unset or corrupt.
func (s *Store) Conversations() []*model.Conversation {
	var conversations []*model.Conversation
	if !s.readKey(keyConversations, &conversations) || conversations == nil {
		return []*model.Conversation{}
	}
	return conversations
}

// SaveConversations overwrites the entire persisted collection.
func (s *Store) SaveConversations(conversations []*model.Conversation) error {
	if conversations == nil {
		conversations = []*model.Conversation{}
	}
	return s.writeKey(keyConversations, conversations)
}

// CurrentConversationID returns the persisted active-conversation pointer,
// or "" when unset.
func (s *Store) CurrentConversationID() string {
	var id *string
	if !s.readKey(keyCurrent, &id) || id == nil {
		return ""
	}
	return *id
}

// SaveCurrentConversationID overwrites the active-conversation pointer.
// An empty id persists an explicit null.
func (s *Store) SaveCurrentConversationID(id string) error {
	if id == "" {
		return s.writeKey(keyCurrent, nil)
	}
	return s.writeKey(keyCurrent, id)
}

// =============================================================================
// SETTINGS
// =============================================================================

// Settings returns the persisted snapshot, or nil when unset or corrupt.
func (s *Store) Settings() *settings.Settings {
	var snapshot settings.Settings
	if !s.readKey(keySettings, &snapshot) {
		return nil
	}
	return &snapshot
}

// SaveSettings overwrites the persisted snapshot.
func (s *Store) SaveSettings(snapshot settings.Settings) error {
	return s.writeKey(keySettings, snapshot)
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

// ExportConversation writes a conversation into the export directory in
// the given format and returns the written path.
func (s *Store) ExportConversation(conv *model.Conversation, format export.Format) (string, error) {
	path, err := export.ToFile(s.ExportDir, conv, format)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("path", path).Str("format", string(format)).Msg("exported conversation")
	return path, nil
}

// ExportSettings writes the settings snapshot as a timestamped JSON file
// and returns the written path.
func (s *Store) ExportSettings(snapshot settings.Settings) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(s.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.ExportDir,
		"settings-"+time.Now().Format("20060102-150405")+".json")
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write settings export: %w", err)
	}

	s.log.Info().Str("path", path).Msg("exported settings")
	return path, nil
}

// ImportSettings parses a settings export file. Content that is not valid
// serialized settings fails with ErrParse.
func (s *Store) ImportSettings(path string) (settings.Settings, error) {
	var snapshot settings.Settings

	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot, fmt.Errorf("failed to read settings file: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&snapshot); err != nil {
		return settings.Settings{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return snapshot, nil
}
