package driving

import "github.com/custodia-labs/ftwrap/internal/core/domain"

// SettingsService manages tool settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.ToolSettings, error)

	// Save persists settings.
	Save(settings *domain.ToolSettings) error

	// Set parses and stores one setting by config key.
	Set(key, value string) error

	// Keys returns the recognised config keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.ToolSettings

	// Validate checks the stored settings.
	Validate() error
}
