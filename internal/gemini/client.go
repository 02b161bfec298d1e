// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the Gemini API.
const (
	// DefaultBaseURL is the base URL for the generative language API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the timeout for non-streaming requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps a non-streaming response body.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// requestsPerMinute is the client-side rate limit. The free tier
	// allows 15 requests per minute; stay under it.
	requestsPerMinute = 14
)

// Error variables for client configuration and transport failures.
var (
	// ErrNoAPIKey indicates Initialize was called with an empty key.
	ErrNoAPIKey = errors.New("gemini: API key is empty")

	// ErrNotInitialized indicates the client has no API key yet.
	ErrNotInitialized = errors.New("gemini: client not initialized")

	// ErrNoModel indicates no model has been configured.
	ErrNoModel = errors.New("gemini: no model configured")

	// ErrNoSession indicates no chat session has been started.
	ErrNoSession = errors.New("gemini: no active session")

	// ErrResponseUnavailable wraps any transport or generation failure
	// during a send. Callers treat it as a transient condition.
	ErrResponseUnavailable = errors.New("gemini: AI response unavailable")
)

// APIError is a structured error returned by the Gemini API.
type APIError struct {
	Code    int
	Status  string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini error [%s] (HTTP %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gemini error (HTTP %d): %s", e.Code, e.Message)
}

// ModelConfig carries the generation parameters taken from user settings.
type ModelConfig struct {
	Model           string
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// session holds the mutable chat history for one conversation.
type session struct {
	history []Content
}

// Client talks to the Gemini API. It is configured in stages: Initialize,
// then ConfigureModel, then StartSession. Methods fail with the matching
// sentinel error when called before their stage is reached.
//
// Client is safe for concurrent use: a settings change may reconfigure
// the model while a send is streaming on another goroutine. A send in
// flight completes against the configuration it started with; the
// reply is recorded only if the session is still the one it belongs to.
type Client struct {
	// mu guards the configuration fields and the session.
	mu sync.Mutex

	apiKey  string
	baseURL string

	model        string
	genConfig    *GenerationConfig
	systemPrompt string

	sess *session

	httpClient   *http.Client
	streamClient *http.Client
	limiter      *rate.Limiter
}

// NewClient creates an unconfigured client. Initialize must be called
// before any request method.
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		// No timeout for streaming, controlled via context.
		streamClient: &http.Client{},
		limiter:      rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), 1),
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// Initialize sets the API key. Fails with ErrNoAPIKey when the key is
// empty after trimming.
func (c *Client) Initialize(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ErrNoAPIKey
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
	return nil
}

// IsInitialized reports whether an API key has been set.
func (c *Client) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKey != ""
}

// ConfigureModel selects the model and generation parameters. Fails with
// ErrNotInitialized before Initialize. Configuring a model invalidates
// any existing session.
func (c *Client) ConfigureModel(cfg ModelConfig, systemPrompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.apiKey == "" {
		return ErrNotInitialized
	}
	if cfg.Model == "" {
		return ErrNoModel
	}

	c.model = cfg.Model
	c.genConfig = &GenerationConfig{
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		TopK:            cfg.TopK,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	c.systemPrompt = systemPrompt
	c.sess = nil
	return nil
}

// Model returns the configured model identifier, or "" if none.
func (c *Client) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// StartSession begins a chat session seeded with prior history. Fails
// with ErrNoModel before ConfigureModel. An existing session is replaced.
func (c *Client) StartSession(history []Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.model == "" {
		return ErrNoModel
	}
	c.sess = &session{history: append([]Content(nil), history...)}
	return nil
}

// HasSession reports whether a chat session is active.
func (c *Client) HasSession() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess != nil
}

// =============================================================================
// REQUESTS
// =============================================================================

// endpoint builds the URL for a model action, e.g. "generateContent".
// Caller holds mu.
func (c *Client) endpoint(action string) string {
	return c.baseURL + "/models/" + c.model + ":" + action
}

// newRequest builds a POST with the JSON body and auth header set.
// Caller holds mu.
func (c *Client) newRequest(ctx context.Context, url string, body any) (*http.Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
	return req, nil
}

// buildGenerateRequest assembles the request body from the session
// history plus the outgoing turn. Caller holds mu.
func (c *Client) buildGenerateRequest(turn Content) generateRequest {
	contents := append(append([]Content(nil), c.sess.history...), turn)

	req := generateRequest{
		Contents:         contents,
		GenerationConfig: c.genConfig,
	}
	if c.systemPrompt != "" {
		req.SystemInstruction = &Content{Parts: []Part{{Text: c.systemPrompt}}}
	}
	return req
}

// readError converts a non-2xx response into an error.
func readError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &APIError{
			Code:    resp.StatusCode,
			Status:  apiErr.Error.Status,
			Message: apiErr.Error.Message,
		}
	}
	return &APIError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}

// checkSendReady validates the configuration stages before a send.
// Caller holds mu.
func (c *Client) checkSendReady() error {
	if c.apiKey == "" {
		return ErrNotInitialized
	}
	if c.model == "" {
		return ErrNoModel
	}
	if c.sess == nil {
		return ErrNoSession
	}
	return nil
}

// Send performs a non-streaming generation for the given user turn and
// returns the full response text. The exchanged turns are appended to
// the session history on success.
func (c *Client) Send(ctx context.Context, turn Content) (string, error) {
	// Snapshot the configuration and build the request under the lock;
	// the network round trip runs without it.
	c.mu.Lock()
	if err := c.checkSendReady(); err != nil {
		c.mu.Unlock()
		return "", err
	}
	sess := c.sess
	req, err := c.newRequest(ctx, c.endpoint("generateContent"), c.buildGenerateRequest(turn))
	c.mu.Unlock()
	if err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponseUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %v", ErrResponseUnavailable, readError(resp))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponseUnavailable, err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", ErrResponseUnavailable, err)
	}

	text := genResp.text()
	c.recordExchange(sess, turn, text)
	return text, nil
}

// CountTokens returns the token count for the given text under the
// configured model. Any failure yields 0 rather than an error; callers
// use the count for display only.
func (c *Client) CountTokens(ctx context.Context, text string) int {
	body := countTokensRequest{
		Contents: []Content{NewTextContent(RoleUser, text)},
	}

	c.mu.Lock()
	if c.apiKey == "" || c.model == "" {
		c.mu.Unlock()
		return 0
	}
	req, err := c.newRequest(ctx, c.endpoint("countTokens"), body)
	c.mu.Unlock()
	if err != nil {
		return 0
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return 0
	}

	var countResp countTokensResponse
	if err := json.Unmarshal(data, &countResp); err != nil {
		return 0
	}
	return countResp.TotalTokens
}

// recordExchange appends a completed user/model exchange to the session
// history. The exchange is dropped when the session was replaced while
// the request was in flight.
func (c *Client) recordExchange(sess *session, turn Content, responseText string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sess == nil || c.sess != sess {
		return
	}
	sess.history = append(sess.history, turn, NewTextContent(RoleModel, responseText))
}
