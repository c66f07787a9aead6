package driven

import "github.com/inkwell-ai/inkwell/internal/core/domain"

// SettingsStore persists application settings between runs.
type SettingsStore interface {
	// Load reads settings from the backing store, applying defaults for
	// anything unset.
	Load() (domain.Settings, error)

	// Save persists the given settings.
	Save(settings domain.Settings) error

	// Path returns the location of the backing store, for display.
	Path() string
}
