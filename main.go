// aifriend - a terminal chat client for Google Gemini.
//
// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/0leksiimarich/aifriend/internal/chat"
	"github.com/0leksiimarich/aifriend/internal/config"
	"github.com/0leksiimarich/aifriend/internal/gemini"
	"github.com/0leksiimarich/aifriend/internal/logging"
	"github.com/0leksiimarich/aifriend/internal/session"
	"github.com/0leksiimarich/aifriend/internal/settings"
	"github.com/0leksiimarich/aifriend/internal/storage"
	uichat "github.com/0leksiimarich/aifriend/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async streaming updates. The orchestrator
// hooks fire from the send goroutine before and after the program starts.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v":
			fmt.Printf("aifriend %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "--help", "-h":
			printUsage()
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.LogPath(),
	})
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer logCloser.Close()
	}
	logger.Info().Str("version", Version).Msg("starting")

	store, err := storage.NewStore(cfg.DataDir, logger)
	if err != nil {
		return err
	}

	mgr := settings.NewManager(store, logger)

	client := gemini.NewClient()
	if cfg.Gemini.BaseURL != "" {
		client = client.WithBaseURL(cfg.Gemini.BaseURL)
	}
	if err := client.Initialize(cfg.Gemini.APIKey); err != nil {
		return fmt.Errorf("%w (set GEMINI_API_KEY or gemini.api_key in config.toml)", err)
	}

	// The model hook keeps the vendor client in sync with settings. It
	// fires once during Load for the initial configuration and again
	// whenever /model or /persona changes anything.
	mgr.SetModelHook(func(ms settings.ModelSettings, ps settings.PersonaSettings) {
		cmc := gemini.ModelConfig{
			Model:           ms.Model,
			Temperature:     ms.Temperature,
			TopP:            ms.TopP,
			TopK:            ms.TopK,
			MaxOutputTokens: ms.MaxTokens,
		}
		if err := client.ConfigureModel(cmc, ps.SystemPrompt); err != nil {
			logger.Warn().Err(err).Str("model", ms.Model).Msg("failed to configure model")
		}
	})
	mgr.SetApplyHook(func(p settings.Presentation) {
		sendToProgram(uichat.PresentationMsg{Presentation: p})
	})
	mgr.Load()

	convStore := chat.NewStore(store, logger)
	convStore.Load()

	orch := chat.NewOrchestrator(convStore, chat.GeminiAssistant{Client: client}, logger)
	orch.SetNotifier(func(text string) {
		sendToProgram(uichat.NoticeMsg{Text: text})
	})
	orch.SetFragmentHook(func(conversationID string) {
		sendToProgram(uichat.FragmentMsg{ConversationID: conversationID})
	})

	snap := mgr.Current()
	sess := session.NewManager(session.Config{
		AutoSaveEnabled:  true,
		AutoSaveInterval: snap.Functional.AutoSaveInterval,
	})
	sess.SetAutoSaveCallback(convStore.Flush)

	m := uichat.New(convStore, orch, mgr, sess, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	// One last write so nothing typed in the final seconds is lost.
	if err := convStore.Flush(); err != nil {
		logger.Warn().Err(err).Msg("final flush failed")
	}
	logger.Info().Msg("shutting down")
	return nil
}

func printUsage() {
	fmt.Println(`aifriend - a terminal chat client for Google Gemini

Usage:
  aifriend              Start the chat interface
  aifriend --version    Print version information
  aifriend --help       Show this help

Configuration:
  ~/.aifriend/config.toml   Bootstrap configuration (API key, paths)
  GEMINI_API_KEY            API key (overrides the config file)

Inside the chat, press ctrl+h for keyboard shortcuts and commands.`)
}
