// Package file provides a TOML file-backed settings store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// Environment variables consulted for API keys. Keys set in the
// environment override the config file so secrets can stay out of it.
const (
	envOpenAIKey    = "OPENAI_API_KEY"
	envAnthropicKey = "ANTHROPIC_API_KEY"
)

// SettingsStore persists domain.Settings in a TOML file within the
// inkwell config directory.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSettingsStore creates a new TOML-based settings store.
// If configDir is empty, defaults to ~/.inkwell/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".inkwell")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from disk. A missing file yields the defaults.
// API keys from the environment override file values.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&settings)
			return settings, nil
		}
		return settings, err
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidConfig, s.filePath, err)
	}

	applyEnvOverrides(&settings)
	return settings, nil
}

// Save persists the given settings. API keys are stripped before
// writing so secrets never land in the config file.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.Embedding.APIKey = ""
	settings.LLM.APIKey = ""

	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}

	// Write with restricted permissions.
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// applyEnvOverrides fills API keys from the environment when set.
func applyEnvOverrides(settings *domain.Settings) {
	if key := os.Getenv(envOpenAIKey); key != "" {
		if settings.Embedding.Provider == domain.AIProviderOpenAI {
			settings.Embedding.APIKey = key
		}
		if settings.LLM.Provider == domain.AIProviderOpenAI {
			settings.LLM.APIKey = key
		}
	}
	if key := os.Getenv(envAnthropicKey); key != "" {
		if settings.LLM.Provider == domain.AIProviderAnthropic {
			settings.LLM.APIKey = key
		}
	}
}
