// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/0leksiimarich/aifriend/internal/export"
	"github.com/0leksiimarich/aifriend/internal/model"
)

// Gateway is the persistence surface the store depends on.
type Gateway interface {
	Conversations() []*model.Conversation
	SaveConversations([]*model.Conversation) error
	CurrentConversationID() string
	SaveCurrentConversationID(id string) error
	ExportConversation(conv *model.Conversation, format export.Format) (string, error)
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Store owns the conversation collection and the active pointer. All
// mutations persist through the gateway; persistence failures are logged
// and do not fail the operation.
type Store struct {
	mu sync.Mutex

	gateway       Gateway
	log           zerolog.Logger
	conversations []*model.Conversation
	currentID     string
	searchQuery   string
}

// NewStore creates an empty store backed by the gateway.
func NewStore(gateway Gateway, log zerolog.Logger) *Store {
	return &Store{
		gateway:       gateway,
		log:           log.With().Str("component", "chat").Logger(),
		conversations: []*model.Conversation{},
	}
}

// Load populates the store from the gateway.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = s.gateway.Conversations()
	s.currentID = s.gateway.CurrentConversationID()

	// A stale pointer from a previous run is dropped.
	if s.currentID != "" && s.findLocked(s.currentID) == nil {
		s.currentID = ""
	}

	s.log.Debug().Int("count", len(s.conversations)).Msg("loaded conversations")
}

// Create synthesizes a new empty conversation, prepends it (most recent
// first), makes it active, and persists collection and pointer.
func (s *Store) Create() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := model.New()
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.currentID = conv.ID

	s.persistLocked()
	s.persistPointerLocked()
	return conv.Clone()
}

// Select sets the active pointer unconditionally and persists it.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentID = id
	s.persistPointerLocked()
}

// Delete removes the matching conversation. Deleting the active
// conversation clears the active pointer.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.conversations[:0]
	removed := false
	for _, c := range s.conversations {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return
	}
	s.conversations = kept

	if s.currentID == id {
		s.currentID = ""
		s.persistPointerLocked()
	}
	s.persistLocked()
}

// UpdateTitle replaces a conversation's title.
func (s *Store) UpdateTitle(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	conv.SetTitle(title)
	s.persistLocked()
}

// AddMessage appends a copy of the message to a conversation. The
// caller's pointer does not alias stored state; further edits go
// through the store by message id.
func (s *Store) AddMessage(id string, msg *model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	stored := *msg
	conv.AddMessage(&stored)
	s.persistLocked()
}

// UpdateMessage replaces a message's content in place. No-op when the
// conversation or message is unknown.
func (s *Store) UpdateMessage(id, messageID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	if conv.UpdateMessageContent(messageID, content) {
		s.persistLocked()
	}
}

// RemoveMessage deletes a message from a conversation. Used by the
// orchestrator's failure rollback.
func (s *Store) RemoveMessage(id, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	if conv.RemoveMessage(messageID) {
		s.persistLocked()
	}
}

// FinishMessage clears a message's streaming flag.
func (s *Store) FinishMessage(id, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	msg := conv.MessageByID(messageID)
	if msg == nil || !msg.IsStreaming {
		return
	}
	msg.FinishStreaming()
	s.persistLocked()
}

// TruncateMessages drops all messages from index n onward.
func (s *Store) TruncateMessages(id string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	conv.TruncateMessages(n)
	s.persistLocked()
}

// SetModel records the model identifier used by a conversation.
func (s *Store) SetModel(id, modelName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil || conv.Model == modelName {
		return
	}
	conv.Model = modelName
	s.persistLocked()
}

// SetTokenUsage records the token usage summary for a conversation.
func (s *Store) SetTokenUsage(id string, usage model.TokenUsage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	conv.TokenUsage = &usage
	s.persistLocked()
}

// TogglePin flips a conversation's pinned flag.
func (s *Store) TogglePin(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	conv.TogglePin()
	s.persistLocked()
}

// ToggleArchive flips a conversation's archived flag.
func (s *Store) ToggleArchive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	conv.ToggleArchive()
	s.persistLocked()
}

// AddTag adds a tag with set semantics.
func (s *Store) AddTag(id, tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	if conv.AddTag(tag) {
		s.persistLocked()
	}
}

// RemoveTag removes a tag if present.
func (s *Store) RemoveTag(id, tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}
	if conv.RemoveTag(tag) {
		s.persistLocked()
	}
}

// Export writes a conversation through the gateway. No-op when the id is
// unknown.
func (s *Store) Export(id string, format export.Format) (string, error) {
	s.mu.Lock()
	conv := s.findLocked(id)
	s.mu.Unlock()

	if conv == nil {
		return "", nil
	}
	return s.gateway.ExportConversation(conv, format)
}

// Clear empties the collection and the active pointer.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = []*model.Conversation{}
	s.currentID = ""
	s.persistLocked()
	s.persistPointerLocked()
}

// =============================================================================
// READS
// =============================================================================

// Get returns a snapshot of the conversation with the given id, or nil.
// Reads return deep copies: the send goroutine keeps writing fragments
// into the stored conversation under mu, so interior pointers must not
// escape to readers.
func (s *Store) Get(id string) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findLocked(id); c != nil {
		return c.Clone()
	}
	return nil
}

// Active returns a snapshot of the active conversation, or nil when
// none is selected.
func (s *Store) Active() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return nil
	}
	if c := s.findLocked(s.currentID); c != nil {
		return c.Clone()
	}
	return nil
}

// ActiveID returns the active conversation id, or "".
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// All returns snapshots of the full collection in stored order.
func (s *Store) All() []*model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = c.Clone()
	}
	return out
}

// SetSearchQuery sets the in-memory filter key. Not persisted.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = strings.TrimSpace(q)
}

// SearchQuery returns the current filter key.
func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// Filtered returns snapshots of the conversations matching the current
// search query, pinned first. Archived conversations are always
// excluded, query or not.
func (s *Store) Filtered() []*model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		if c.Archived {
			continue
		}
		if s.searchQuery != "" && !c.Matches(s.searchQuery) {
			continue
		}
		out = append(out, c.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pinned && !out[j].Pinned
	})
	return out
}

// =============================================================================
// INTERNAL
// =============================================================================

// findLocked returns the conversation with the given id. Caller holds mu.
func (s *Store) findLocked(id string) *model.Conversation {
	for _, c := range s.conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Flush writes the full collection and the active pointer, returning
// the first error. Mutations already persist as they happen; Flush is
// the periodic autosave's error-reporting path.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateway.SaveConversations(s.conversations); err != nil {
		return err
	}
	return s.gateway.SaveCurrentConversationID(s.currentID)
}

// persistLocked writes the full collection. Failures are logged, not
// returned; persistence is fire-and-forget from the caller's view.
func (s *Store) persistLocked() {
	if err := s.gateway.SaveConversations(s.conversations); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist conversations")
	}
}

// persistPointerLocked writes the active pointer.
func (s *Store) persistPointerLocked() {
	if err := s.gateway.SaveCurrentConversationID(s.currentID); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist active conversation id")
	}
}
