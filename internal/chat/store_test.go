// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/0leksiimarich/aifriend/internal/export"
	"github.com/0leksiimarich/aifriend/internal/model"
)

// fakeGateway is an in-memory Gateway for store tests.
type fakeGateway struct {
	conversations []*model.Conversation
	currentID     string
	saveCount     int
	exported      []string
}

func (g *fakeGateway) Conversations() []*model.Conversation {
	return g.conversations
}

func (g *fakeGateway) SaveConversations(convs []*model.Conversation) error {
	g.conversations = append([]*model.Conversation(nil), convs...)
	g.saveCount++
	return nil
}

func (g *fakeGateway) CurrentConversationID() string {
	return g.currentID
}

func (g *fakeGateway) SaveCurrentConversationID(id string) error {
	g.currentID = id
	return nil
}

func (g *fakeGateway) ExportConversation(conv *model.Conversation, format export.Format) (string, error) {
	g.exported = append(g.exported, conv.ID)
	return "/tmp/" + conv.ID + "." + string(format), nil
}

func newTestStore(t *testing.T) (*Store, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{}
	return NewStore(gw, zerolog.Nop()), gw
}

func TestCreatePrependsAndActivates(t *testing.T) {
	s, gw := newTestStore(t)

	first := s.Create()
	second := s.Create()

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(all))
	}
	if all[0].ID != second.ID {
		t.Error("newest conversation should be first")
	}
	if s.ActiveID() != second.ID {
		t.Errorf("active = %q, want %q", s.ActiveID(), second.ID)
	}
	if gw.currentID != second.ID {
		t.Error("active pointer was not persisted")
	}
	if first.Title != model.DefaultTitle {
		t.Errorf("default title = %q", first.Title)
	}
}

func TestSelectUnconditional(t *testing.T) {
	s, gw := newTestStore(t)

	// No existence check: selecting an unknown id still persists it.
	s.Select("ghost")
	if s.ActiveID() != "ghost" {
		t.Errorf("active = %q, want %q", s.ActiveID(), "ghost")
	}
	if gw.currentID != "ghost" {
		t.Error("pointer not persisted")
	}
}

func TestDeleteActiveClearsPointer(t *testing.T) {
	s, _ := newTestStore(t)

	keep := s.Create()
	active := s.Create()

	s.Delete(active.ID)
	if s.ActiveID() != "" {
		t.Errorf("deleting the active conversation should clear the pointer, got %q", s.ActiveID())
	}

	s.Select(keep.ID)
	other := s.Create()
	s.Select(keep.ID)
	s.Delete(other.ID)
	if s.ActiveID() != keep.ID {
		t.Errorf("deleting a non-active conversation changed the pointer to %q", s.ActiveID())
	}
}

func TestLoadDropsStalePointer(t *testing.T) {
	gw := &fakeGateway{
		conversations: []*model.Conversation{model.New()},
		currentID:     "gone",
	}
	s := NewStore(gw, zerolog.Nop())
	s.Load()

	if s.ActiveID() != "" {
		t.Errorf("stale pointer should be dropped, got %q", s.ActiveID())
	}
	if len(s.All()) != 1 {
		t.Errorf("expected 1 loaded conversation, got %d", len(s.All()))
	}
}

func TestUpdateMessageUnknownIDIsNoop(t *testing.T) {
	s, gw := newTestStore(t)
	conv := s.Create()
	saves := gw.saveCount

	s.UpdateMessage(conv.ID, "missing", "content")
	if gw.saveCount != saves {
		t.Error("updating an unknown message should not persist")
	}
}

func TestFilteredExcludesArchived(t *testing.T) {
	s, _ := newTestStore(t)

	archived := s.Create()
	archived.AddMessage(model.NewUserMessage("archived one", nil))
	visible := s.Create()
	visible.AddMessage(model.NewUserMessage("visible one", nil))

	s.ToggleArchive(archived.ID)

	got := s.Filtered()
	if len(got) != 1 || got[0].ID != visible.ID {
		t.Fatalf("Filtered = %d entries, want only the visible conversation", len(got))
	}

	// Archived stays hidden even when the query matches it.
	s.SetSearchQuery("archived")
	if got := s.Filtered(); len(got) != 0 {
		t.Errorf("archived conversation leaked through a matching query")
	}
}

func TestFilteredSearchMatch(t *testing.T) {
	s, _ := newTestStore(t)

	conv := s.Create()
	s.UpdateTitle(conv.ID, "Hello")

	s.SetSearchQuery("hel")
	if got := s.Filtered(); len(got) != 1 {
		t.Errorf("query %q matched %d conversations, want 1", "hel", len(got))
	}

	s.SetSearchQuery("zzz")
	if got := s.Filtered(); len(got) != 0 {
		t.Errorf("query %q matched %d conversations, want 0", "zzz", len(got))
	}
}

func TestFilteredPinnedFirst(t *testing.T) {
	s, _ := newTestStore(t)

	pinned := s.Create()
	newest := s.Create()
	s.TogglePin(pinned.ID)

	got := s.Filtered()
	if len(got) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(got))
	}
	if got[0].ID != pinned.ID {
		t.Errorf("pinned conversation should sort first, got %q", got[0].Title)
	}
	if got[1].ID != newest.ID {
		t.Errorf("unpinned conversation out of place")
	}
}

func TestTagSetSemantics(t *testing.T) {
	s, _ := newTestStore(t)
	conv := s.Create()

	s.AddTag(conv.ID, "work")
	s.AddTag(conv.ID, "work")

	got := s.Get(conv.ID)
	count := 0
	for _, tag := range got.Tags {
		if tag == "work" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("tag %q occurs %d times, want 1", "work", count)
	}

	s.RemoveTag(conv.ID, "work")
	if s.Get(conv.ID).HasTag("work") {
		t.Error("tag survived removal")
	}
}

func TestExportUnknownIDIsNoop(t *testing.T) {
	s, gw := newTestStore(t)

	path, err := s.Export("missing", export.FormatJSON)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != "" || len(gw.exported) != 0 {
		t.Error("exporting an unknown conversation should be a no-op")
	}
}

func TestClear(t *testing.T) {
	s, gw := newTestStore(t)
	s.Create()
	s.Create()

	s.Clear()
	if len(s.All()) != 0 {
		t.Error("collection not emptied")
	}
	if s.ActiveID() != "" || gw.currentID != "" {
		t.Error("active pointer not cleared")
	}
}

func TestMutationsPersist(t *testing.T) {
	s, gw := newTestStore(t)
	conv := s.Create()
	before := gw.saveCount

	s.AddMessage(conv.ID, model.NewUserMessage("hi", nil))
	s.UpdateTitle(conv.ID, "Renamed")
	s.TogglePin(conv.ID)

	if gw.saveCount != before+3 {
		t.Errorf("saveCount = %d, want %d", gw.saveCount, before+3)
	}
}

func TestUpdatedAtInvariant(t *testing.T) {
	s, _ := newTestStore(t)
	conv := s.Create()

	s.AddMessage(conv.ID, model.NewUserMessage("hi", nil))
	s.UpdateTitle(conv.ID, "t")
	s.AddTag(conv.ID, "x")
	s.TogglePin(conv.ID)

	got := s.Get(conv.ID)
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Error("UpdatedAt fell behind CreatedAt after mutations")
	}
}

func TestFlush(t *testing.T) {
	s, gw := newTestStore(t)
	s.Create()
	before := gw.saveCount

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if gw.saveCount != before+1 {
		t.Errorf("saveCount = %d, want %d", gw.saveCount, before+1)
	}
}

func TestReadsReturnSnapshots(t *testing.T) {
	s, _ := newTestStore(t)
	conv := s.Create()
	s.AddMessage(conv.ID, model.NewUserMessage("hi", nil))

	// Mutating a read result must not leak back into the store.
	got := s.Get(conv.ID)
	got.Title = "scribbled"
	got.Messages[0].Content = "scribbled"
	got.Tags = append(got.Tags, "scribbled")

	fresh := s.Get(conv.ID)
	if fresh.Title == "scribbled" || fresh.Messages[0].Content == "scribbled" {
		t.Error("Get returned live state instead of a snapshot")
	}
	if len(fresh.Tags) != 0 {
		t.Error("Tags slice is shared with the caller")
	}

	// A snapshot does not observe writes that happen after it was taken.
	before := s.Active()
	s.UpdateMessage(conv.ID, before.Messages[0].ID, "updated")
	if before.Messages[0].Content != "hi" {
		t.Error("Active snapshot changed under the caller")
	}
	if s.Active().Messages[0].Content != "updated" {
		t.Error("store missed the update")
	}
}

func TestConcurrentReadersDuringStreaming(t *testing.T) {
	s, _ := newTestStore(t)
	conv := s.Create()
	s.AddMessage(conv.ID, model.NewUserMessage("question", nil))
	placeholder := model.NewAssistantPlaceholder()
	s.AddMessage(conv.ID, placeholder)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var content strings.Builder
		for i := 0; i < 300; i++ {
			content.WriteString("fragment ")
			s.UpdateMessage(conv.ID, placeholder.ID, content.String())
		}
		s.FinishMessage(conv.ID, placeholder.ID)
	}()

	// Readers walk message content the way the view renderer does while
	// the writer above streams fragments in.
	for i := 0; i < 300; i++ {
		for _, msg := range s.Active().Messages {
			_ = len(msg.Content)
		}
		for _, c := range s.Filtered() {
			_ = c.Preview()
		}
	}
	<-done

	final := s.Get(conv.ID)
	if final.Messages[1].IsStreaming {
		t.Error("placeholder still streaming after finish")
	}
	if len(final.Messages[1].Content) == 0 {
		t.Error("streamed content lost")
	}
}
