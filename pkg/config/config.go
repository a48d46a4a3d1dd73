package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates the global configuration manager, registers the
// default sections and loads them from configPath. An empty path uses
// DefaultPath.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager := NewManager(store)

	if err := manager.RegisterSection(NewArbiterSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewKeysSection()); err != nil {
		return err
	}

	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetArbiter returns the arbiter section from global config.
// Returns nil if config is not initialized.
func GetArbiter() *ArbiterSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(ArbiterSectionID)
	if !ok {
		return nil
	}

	arbiter, ok := section.(*ArbiterSection)
	if !ok {
		return nil
	}

	return arbiter
}

// GetKeys returns the key binding section from global config.
// Returns nil if config is not initialized.
func GetKeys() *KeysSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(KeysSectionID)
	if !ok {
		return nil
	}

	keys, ok := section.(*KeysSection)
	if !ok {
		return nil
	}

	return keys
}
