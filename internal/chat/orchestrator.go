// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/0leksiimarich/aifriend/internal/gemini"
	"github.com/0leksiimarich/aifriend/internal/model"
	"github.com/0leksiimarich/aifriend/internal/validate"
)

// Orchestrator errors.
var (
	// ErrEmptySubmission indicates a send with no text and no images.
	ErrEmptySubmission = errors.New("nothing to send")

	// ErrBusy indicates a send is already in flight for the conversation.
	ErrBusy = errors.New("a response is already streaming for this conversation")
)

// Fragments is a lazy sequence of response text fragments. Recv returns
// io.EOF on clean exhaustion; Close is a best-effort cancellation.
type Fragments interface {
	Recv() (string, error)
	Close() error
}

// Assistant is the vendor surface the orchestrator drives.
type Assistant interface {
	StartSession(history []gemini.Content) error
	SendAndStream(ctx context.Context, turn gemini.Content) (Fragments, error)
	FinishTurn(responseText string)
	CountTokens(ctx context.Context, text string) int
	Model() string
}

// GeminiAssistant adapts *gemini.Client to the Assistant interface.
type GeminiAssistant struct {
	*gemini.Client
}

// SendAndStream narrows the concrete stream type to Fragments.
func (a GeminiAssistant) SendAndStream(ctx context.Context, turn gemini.Content) (Fragments, error) {
	return a.Client.SendAndStream(ctx, turn)
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator runs the send pipeline against the store and the
// assistant. Fragment updates are written to the store as they arrive,
// so the UI observes the placeholder filling in.
type Orchestrator struct {
	store *Store
	ai    Assistant
	log   zerolog.Logger

	// notify raises a user-visible message on stream failure. Optional.
	notify func(string)

	// onFragment is invoked after each fragment lands. Optional; the UI
	// uses it to trigger a re-render.
	onFragment func(conversationID string)

	mu    sync.Mutex
	inUse map[string]context.CancelFunc
}

// NewOrchestrator wires the pipeline together.
func NewOrchestrator(store *Store, ai Assistant, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store: store,
		ai:    ai,
		log:   log.With().Str("component", "orchestrator").Logger(),
		inUse: make(map[string]context.CancelFunc),
	}
}

// SetNotifier installs the failure notification callback.
func (o *Orchestrator) SetNotifier(fn func(string)) {
	o.notify = fn
}

// SetFragmentHook installs the per-fragment callback.
func (o *Orchestrator) SetFragmentHook(fn func(conversationID string)) {
	o.onFragment = fn
}

// Send runs the full pipeline for an outgoing user message. It blocks
// until the response stream is drained or fails; run it in a goroutine
// when driving a UI. An all-empty submission (no text, no images) is
// rejected, as is any image with an unsupported type or over the size
// limit. A second send against a conversation that is already streaming
// fails with ErrBusy.
func (o *Orchestrator) Send(ctx context.Context, text string, images []string) error {
	text = strings.TrimSpace(text)
	if text == "" && len(images) == 0 {
		return ErrEmptySubmission
	}

	for _, img := range images {
		mime, data := splitDataURL(img)
		// Base64 inflates the payload by a third; check the decoded size.
		if res := validate.Image(mime, int64(len(data))*3/4); !res.OK {
			return errors.New(res.Reason)
		}
	}

	conv := o.store.Active()
	if conv == nil {
		conv = o.store.Create()
	}

	return o.run(ctx, conv, text, images, true)
}

// Regenerate re-requests the response for an assistant message. The
// message immediately before the target must be a user message;
// otherwise the call is a no-op. The conversation is truncated to just
// before the target's preceding user message and that message is
// resubmitted, producing a fresh placeholder with a new identifier.
func (o *Orchestrator) Regenerate(ctx context.Context, conversationID, messageID string) error {
	conv := o.store.Get(conversationID)
	if conv == nil {
		return nil
	}

	idx := conv.MessageIndex(messageID)
	if idx < 1 {
		return nil
	}
	target := conv.Messages[idx]
	prev := conv.Messages[idx-1]
	if target.Role != model.RoleAssistant || prev.Role != model.RoleUser {
		return nil
	}

	// Keep everything up to and including the preceding user message;
	// the resend reuses it without appending a duplicate. Re-read the
	// snapshot so the history reflects the truncation.
	o.store.TruncateMessages(conversationID, idx)
	conv = o.store.Get(conversationID)
	if conv == nil {
		return nil
	}

	return o.run(ctx, conv, prev.Content, prev.Images, false)
}

// Stop cancels an in-flight stream for the conversation. Best effort:
// the vendor may keep producing, but further fragments are discarded and
// local streaming flags are reset.
func (o *Orchestrator) Stop(conversationID string) {
	o.mu.Lock()
	cancel, ok := o.inUse[conversationID]
	o.mu.Unlock()
	if ok {
		cancel()
	}

	conv := o.store.Get(conversationID)
	if conv == nil {
		return
	}
	for _, msg := range conv.Messages {
		if msg.IsStreaming {
			o.store.FinishMessage(conversationID, msg.ID)
		}
	}
}

// Busy reports whether a send is in flight for the conversation.
func (o *Orchestrator) Busy(conversationID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.inUse[conversationID]
	return ok
}

// =============================================================================
// PIPELINE
// =============================================================================

// acquire claims the per-conversation send slot.
func (o *Orchestrator) acquire(conversationID string, cancel context.CancelFunc) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.inUse[conversationID]; ok {
		return ErrBusy
	}
	o.inUse[conversationID] = cancel
	return nil
}

// release frees the send slot.
func (o *Orchestrator) release(conversationID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inUse, conversationID)
}

// run executes the pipeline. When appendUser is false the outgoing turn
// is taken from text/images without adding a new user message; the
// regenerate path has already positioned the conversation so its last
// message is the user turn being resent.
func (o *Orchestrator) run(ctx context.Context, conv *model.Conversation, text string, images []string, appendUser bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := o.acquire(conv.ID, cancel); err != nil {
		return err
	}
	defer o.release(conv.ID)

	// History excludes the outgoing turn. On the regenerate path the
	// user turn is already the last message, so it is excluded too.
	history := o.historyFor(conv, appendUser)

	if appendUser {
		userMsg := model.NewUserMessage(text, images)
		o.store.AddMessage(conv.ID, userMsg)
	}

	placeholder := model.NewAssistantPlaceholder()
	o.store.AddMessage(conv.ID, placeholder)

	accumulated, err := o.stream(ctx, conv.ID, placeholder.ID, history, text, images)
	if err != nil {
		// Roll back the placeholder; the user message stays.
		o.store.RemoveMessage(conv.ID, placeholder.ID)
		o.log.Warn().Err(err).Str("conversation", conv.ID).Msg("stream failed, placeholder removed")
		if o.notify != nil {
			o.notify("AI response unavailable. Please try again.")
		}
		return err
	}

	o.store.FinishMessage(conv.ID, placeholder.ID)
	o.ai.FinishTurn(accumulated)
	o.recordUsage(ctx, conv.ID, text, accumulated)
	return nil
}

// stream establishes the session and drains the fragment sequence into
// the placeholder message.
func (o *Orchestrator) stream(ctx context.Context, conversationID, placeholderID string, history []gemini.Content, text string, images []string) (string, error) {
	if err := o.ai.StartSession(history); err != nil {
		return "", err
	}

	turn := buildTurn(text, images)
	fragments, err := o.ai.SendAndStream(ctx, turn)
	if err != nil {
		return "", err
	}
	defer fragments.Close()

	var accumulated strings.Builder
	for {
		frag, err := fragments.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		accumulated.WriteString(frag)
		o.store.UpdateMessage(conversationID, placeholderID, accumulated.String())
		if o.onFragment != nil {
			o.onFragment(conversationID)
		}
	}
	return accumulated.String(), nil
}

// historyFor maps the conversation's messages to vendor turns, labelling
// assistant messages with the vendor's "model" role. When the last
// message is the user turn about to be resent (regenerate path), it is
// excluded from the history.
func (o *Orchestrator) historyFor(conv *model.Conversation, appendUser bool) []gemini.Content {
	messages := conv.Messages
	if !appendUser && len(messages) > 0 {
		messages = messages[:len(messages)-1]
	}

	history := make([]gemini.Content, 0, len(messages))
	for _, msg := range messages {
		role := gemini.RoleUser
		if msg.Role == model.RoleAssistant {
			role = gemini.RoleModel
		}
		history = append(history, gemini.NewTextContent(role, msg.Content))
	}
	return history
}

// recordUsage stamps the model identifier and token counts on the
// conversation. Token counting is display-only; adapter failures yield
// zero counts and are ignored.
func (o *Orchestrator) recordUsage(ctx context.Context, conversationID, prompt, response string) {
	o.store.SetModel(conversationID, o.ai.Model())

	promptTokens := o.ai.CountTokens(ctx, prompt)
	responseTokens := o.ai.CountTokens(ctx, response)
	if promptTokens == 0 && responseTokens == 0 {
		return
	}

	conv := o.store.Get(conversationID)
	if conv == nil {
		return
	}
	usage := model.TokenUsage{}
	if conv.TokenUsage != nil {
		usage = *conv.TokenUsage
	}
	usage.Input += promptTokens
	usage.Output += responseTokens
	usage.Total = usage.Input + usage.Output
	o.store.SetTokenUsage(conversationID, usage)
}

// buildTurn assembles the outgoing user turn, attaching images as inline
// data parts when present.
func buildTurn(text string, images []string) gemini.Content {
	turn := gemini.Content{Role: gemini.RoleUser}
	if text != "" {
		turn.Parts = append(turn.Parts, gemini.Part{Text: text})
	}
	for _, img := range images {
		mime, data := splitDataURL(img)
		turn.Parts = append(turn.Parts, gemini.Part{
			InlineData: &gemini.InlineData{MIMEType: mime, Data: data},
		})
	}
	return turn
}

// splitDataURL separates a data URL into MIME type and base64 payload.
// Plain base64 strings pass through with a default image type.
func splitDataURL(s string) (mime, data string) {
	const prefix = "data:"
	if !strings.HasPrefix(s, prefix) {
		return "image/png", s
	}
	rest := s[len(prefix):]
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return "image/png", s
	}
	return rest[:semi], rest[semi+len(";base64,"):]
}
