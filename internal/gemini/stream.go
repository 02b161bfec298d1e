// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// =============================================================================
// STREAMING
// =============================================================================

// Stream is a lazy, finite, non-restartable sequence of text fragments
// from one streaming generation. Recv blocks for the next fragment and
// returns io.EOF on clean exhaustion; any other error means the stream
// failed and no further fragments will arrive. Close releases the
// underlying connection and is safe to call at any point, including as a
// cancellation signal while Recv is blocked in another goroutine.
type Stream struct {
	body    io.ReadCloser
	reader  *bufio.Reader
	cancel  context.CancelFunc
	partial strings.Builder
	done    bool
}

// Recv returns the next text fragment. Events without candidate text are
// skipped silently. Transport failures mid-stream are wrapped in
// ErrResponseUnavailable.
func (s *Stream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for {
		data, err := s.readEvent()
		if err != nil {
			s.done = true
			if err == io.EOF {
				return "", io.EOF
			}
			return "", fmt.Errorf("%w: %v", ErrResponseUnavailable, err)
		}

		var chunk generateResponse
		if err := json.Unmarshal(data, &chunk); err != nil {
			// Skip malformed events
			continue
		}

		text := chunk.text()
		if text == "" {
			continue
		}
		s.partial.WriteString(text)
		return text, nil
	}
}

// readEvent reads the next SSE data payload, joining multi-line data
// fields. Returns io.EOF at end of stream.
func (s *Stream) readEvent() ([]byte, error) {
	var dataLines [][]byte

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF && len(dataLines) > 0 {
				return bytes.Join(dataLines, []byte("\n")), nil
			}
			return nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Blank line terminates the event.
		if len(line) == 0 {
			if len(dataLines) > 0 {
				return bytes.Join(dataLines, []byte("\n")), nil
			}
			continue
		}

		if bytes.HasPrefix(line, []byte("data:")) {
			dataLines = append(dataLines, bytes.TrimSpace(line[5:]))
		}
		// Ignore event:, id:, retry: and comment lines.
	}
}

// Accumulated returns all fragment text received so far.
func (s *Stream) Accumulated() string {
	return s.partial.String()
}

// Close cancels the stream and releases the connection. A subsequent
// Recv returns io.EOF.
func (s *Stream) Close() error {
	s.done = true
	s.cancel()
	return s.body.Close()
}

// SendAndStream opens a streaming generation for the given user turn.
// Fails with the relevant sentinel error when the client is not fully
// configured; transport errors are wrapped in ErrResponseUnavailable.
//
// The turn is appended to the session history immediately so a follow-up
// send sees it; the model reply is recorded by FinishTurn once the
// caller has drained the stream.
func (c *Client) SendAndStream(ctx context.Context, turn Content) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)

	// Snapshot the configuration and build the request under the lock;
	// the network round trip runs without it. A concurrent reconfigure
	// replaces c.sess, so the history append below re-checks identity.
	c.mu.Lock()
	if err := c.checkSendReady(); err != nil {
		c.mu.Unlock()
		cancel()
		return nil, err
	}
	sess := c.sess
	url := c.endpoint("streamGenerateContent") + "?alt=sse"
	req, err := c.newRequest(ctx, url, c.buildGenerateRequest(turn))
	c.mu.Unlock()
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	if err := c.limiter.Wait(ctx); err != nil {
		cancel()
		return nil, err
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrResponseUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		err := readError(resp)
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrResponseUnavailable, err)
	}

	c.mu.Lock()
	if c.sess == sess {
		sess.history = append(sess.history, turn)
	}
	c.mu.Unlock()

	return &Stream{
		body:   resp.Body,
		reader: bufio.NewReader(resp.Body),
		cancel: cancel,
	}, nil
}

// FinishTurn records the completed model reply in the session history.
// Call after a stream drains cleanly; skip it on failure so the history
// matches the conversation state.
func (c *Client) FinishTurn(responseText string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return
	}
	c.sess.history = append(c.sess.history, NewTextContent(RoleModel, responseText))
}
