// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// =============================================================================
// GATEWAY CONTRACT
// =============================================================================

// Store is the slice of the persistence gateway the settings container
// needs. The gateway owns no business invariants; it is a dumb
// read/write/serialize layer.
type Store interface {
	// Settings returns the persisted snapshot, or nil when unset or
	// unreadable.
	Settings() *Settings

	// SaveSettings overwrites the persisted snapshot (total replace).
	SaveSettings(Settings) error

	// ExportSettings writes the snapshot as a JSON file and returns its path.
	ExportSettings(Settings) (string, error)

	// ImportSettings parses a settings file. A file that is not valid
	// serialized Settings fails with storage.ErrParse.
	ImportSettings(path string) (Settings, error)
}

// =============================================================================
// SETTINGS MANAGER
// =============================================================================

// Manager is the settings state container. All mutations merge into the
// in-memory snapshot first and then persist the full snapshot through the
// gateway, synchronously. Profiles live in memory only and do not survive
// a restart.
type Manager struct {
	mu    sync.Mutex
	store Store
	log   zerolog.Logger

	settings        Settings
	profiles        []Profile
	activeProfileID string

	// onApply receives derived presentation tokens.
	onApply func(Presentation)

	// onModelChange receives the model and persona sections after any
	// mutation that affects the vendor configuration.
	onModelChange func(ModelSettings, PersonaSettings)
}

// NewManager creates a settings manager backed by the given gateway.
func NewManager(store Store, log zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		log:      log.With().Str("component", "settings").Logger(),
		settings: Default(),
	}
}

// SetApplyHook registers the presentation-side-effect callback invoked by
// ApplyPresentation.
func (m *Manager) SetApplyHook(fn func(Presentation)) {
	m.mu.Lock()
	m.onApply = fn
	m.mu.Unlock()
}

// SetModelHook registers the callback invoked when the model or persona
// sections change.
func (m *Manager) SetModelHook(fn func(ModelSettings, PersonaSettings)) {
	m.mu.Lock()
	m.onModelChange = fn
	m.mu.Unlock()
}

// Load pulls the persisted snapshot from the gateway, falling back to the
// built-in defaults, and applies the presentation.
func (m *Manager) Load() {
	m.mu.Lock()
	if saved := m.store.Settings(); saved != nil {
		m.settings = *saved
	} else {
		m.settings = Default()
	}
	m.mu.Unlock()

	m.ApplyPresentation()
	m.applyModel()
}

// Current returns a copy of the current snapshot.
func (m *Manager) Current() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// =============================================================================
// PARTIAL UPDATES
// =============================================================================

// UpdateModel merges a partial model patch and persists.
func (m *Manager) UpdateModel(p ModelPatch) {
	m.mu.Lock()
	p.apply(&m.settings.Model)
	m.persistLocked()
	m.mu.Unlock()

	m.applyModel()
}

// UpdatePersona merges a partial persona patch and persists.
func (m *Manager) UpdatePersona(p PersonaPatch) {
	m.mu.Lock()
	p.apply(&m.settings.Persona)
	m.persistLocked()
	m.mu.Unlock()

	m.applyModel()
}

// UpdateVisual merges a partial visual patch, persists, and re-applies the
// presentation.
func (m *Manager) UpdateVisual(p VisualPatch) {
	m.mu.Lock()
	p.apply(&m.settings.Visual)
	m.persistLocked()
	m.mu.Unlock()

	m.ApplyPresentation()
}

// UpdateFunctional merges a partial functional patch and persists.
func (m *Manager) UpdateFunctional(p FunctionalPatch) {
	m.mu.Lock()
	p.apply(&m.settings.Functional)
	m.persistLocked()
	m.mu.Unlock()
}

// UpdateShortcuts merges a partial shortcuts patch and persists.
func (m *Manager) UpdateShortcuts(p ShortcutsPatch) {
	m.mu.Lock()
	p.apply(&m.settings.Shortcuts)
	m.persistLocked()
	m.mu.Unlock()
}

// Reset restores the built-in defaults, persists, and re-applies the
// presentation.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.settings = Default()
	m.persistLocked()
	m.mu.Unlock()

	m.ApplyPresentation()
	m.applyModel()
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

// Export writes the current snapshot through the gateway and returns the
// written file path.
func (m *Manager) Export() (string, error) {
	m.mu.Lock()
	snapshot := m.settings
	m.mu.Unlock()
	return m.store.ExportSettings(snapshot)
}

// Import replaces the current snapshot with the parsed file content. If
// parsing fails the whole operation fails and the prior state is left
// untouched.
func (m *Manager) Import(path string) error {
	imported, err := m.store.ImportSettings(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.settings = imported
	m.persistLocked()
	m.mu.Unlock()

	m.ApplyPresentation()
	m.applyModel()
	return nil
}

// =============================================================================
// PROFILES
// =============================================================================

// CreateProfile snapshots the current settings under a new identifier.
func (m *Manager) CreateProfile(name string) Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile := Profile{
		ID:       uuid.NewString(),
		Name:     name,
		Settings: m.settings,
	}
	m.profiles = append(m.profiles, profile)
	return profile
}

// LoadProfile replaces the current settings with the profile's snapshot
// and re-applies the presentation. Unknown IDs are a no-op; the return
// value reports whether the profile was found.
func (m *Manager) LoadProfile(id string) bool {
	m.mu.Lock()
	var found *Profile
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			found = &m.profiles[i]
			break
		}
	}
	if found == nil {
		m.mu.Unlock()
		return false
	}

	m.settings = found.Settings
	m.activeProfileID = id
	m.persistLocked()
	m.mu.Unlock()

	m.ApplyPresentation()
	m.applyModel()
	return true
}

// DeleteProfile removes a profile. Deleting the active profile clears the
// active pointer but keeps the current settings.
func (m *Manager) DeleteProfile(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.profiles {
		if m.profiles[i].ID == id {
			m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
			if m.activeProfileID == id {
				m.activeProfileID = ""
			}
			return true
		}
	}
	return false
}

// Profiles returns a copy of the profile list.
func (m *Manager) Profiles() []Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Profile(nil), m.profiles...)
}

// ActiveProfileID returns the in-memory active profile pointer, or "".
func (m *Manager) ActiveProfileID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeProfileID
}

// =============================================================================
// PRESENTATION
// =============================================================================

// ApplyPresentation derives the presentation tokens from the current
// visual settings and hands them to the registered hook. It performs no
// persistence.
func (m *Manager) ApplyPresentation() {
	m.mu.Lock()
	visual := m.settings.Visual
	hook := m.onApply
	m.mu.Unlock()

	if hook == nil {
		return
	}
	hook(ResolvePresentation(visual, AmbientDark()))
}

// applyModel hands the vendor-facing sections to the registered hook.
func (m *Manager) applyModel() {
	m.mu.Lock()
	hook := m.onModelChange
	modelSection := m.settings.Model
	personaSection := m.settings.Persona
	m.mu.Unlock()

	if hook == nil {
		return
	}
	hook(modelSection, personaSection)
}

// persistLocked writes the full snapshot through the gateway. Persistence
// is fire-and-forget: failures are logged, not surfaced to the caller.
func (m *Manager) persistLocked() {
	if err := m.store.SaveSettings(m.settings); err != nil {
		m.log.Error().Err(err).Msg("failed to persist settings")
	}
}
