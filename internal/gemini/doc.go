// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the HTTP client for the Google Gemini
// generative language API.
//
// The client goes through three configuration stages before it can
// produce responses: Initialize supplies the API key, ConfigureModel
// selects the model and generation parameters, and StartSession seeds
// the chat history. Each stage fails with a sentinel error when invoked
// out of order, so callers can distinguish configuration mistakes from
// transport failures.
//
// Responses stream over server-sent events. SendAndStream returns a
// Stream whose Recv method yields one text fragment per event until
// io.EOF; any transport or generation failure mid-stream is wrapped in
// ErrResponseUnavailable.
package gemini
