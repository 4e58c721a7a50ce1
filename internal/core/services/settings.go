package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyToolVersion    = "tool.version"
	KeyArchiveURL     = "tool.archive_url"
	KeyWorkDir        = "tool.work_dir"
	KeyExecutable     = "tool.executable"
	KeyTimeoutSeconds = "tool.timeout_seconds"
	KeyVerbose        = "log.verbose"
	KeyPreprocessors  = "query.preprocessors"
	KeyEmbeddingModel = "embedding.model"
	KeyMCPRate        = "mcp.rate_per_second"
	KeyGitHubToken    = "github.token"
)

// settingKind is how a key's string form is parsed.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindList
)

var settingKinds = map[string]settingKind{
	KeyToolVersion:    kindString,
	KeyArchiveURL:     kindString,
	KeyWorkDir:        kindString,
	KeyExecutable:     kindString,
	KeyTimeoutSeconds: kindInt,
	KeyVerbose:        kindBool,
	KeyPreprocessors:  kindList,
	KeyEmbeddingModel: kindString,
	KeyMCPRate:        kindFloat,
	KeyGitHubToken:    kindString,
}

// SettingsService manages tool settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validName   func(string) bool
}

// NewSettingsService creates a new settings service.
// validPreprocessor reports whether a preprocessor name is known; nil
// accepts any name.
func NewSettingsService(configStore driven.ConfigStore, validPreprocessor func(string) bool) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validName:   validPreprocessor,
	}
}

// Get retrieves current settings, with defaults for unset keys.
func (s *SettingsService) Get() (*domain.ToolSettings, error) {
	defaults := domain.DefaultToolSettings()

	settings := &domain.ToolSettings{
		Version:        s.getString(KeyToolVersion, defaults.Version),
		ArchiveURL:     s.getString(KeyArchiveURL, defaults.ArchiveURL),
		WorkDir:        s.getString(KeyWorkDir, defaults.WorkDir),
		Executable:     s.getString(KeyExecutable, defaults.Executable),
		Timeout:        time.Duration(s.configStore.GetInt(KeyTimeoutSeconds)) * time.Second,
		Verbose:        s.getBool(KeyVerbose, defaults.Verbose),
		Preprocessors:  s.configStore.GetStringSlice(KeyPreprocessors),
		EmbeddingModel: s.configStore.GetString(KeyEmbeddingModel),
		MCPRate:        s.getFloat(KeyMCPRate, defaults.MCPRate),
		GitHubToken:    s.configStore.GetString(KeyGitHubToken),
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.ToolSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyToolVersion, settings.Version},
		{KeyArchiveURL, settings.ArchiveURL},
		{KeyWorkDir, settings.WorkDir},
		{KeyExecutable, settings.Executable},
		{KeyTimeoutSeconds, int(settings.Timeout / time.Second)},
		{KeyVerbose, settings.Verbose},
		{KeyPreprocessors, settings.Preprocessors},
		{KeyEmbeddingModel, settings.EmbeddingModel},
		{KeyMCPRate, settings.MCPRate},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Never overwrite a stored token with an empty one.
	if settings.GitHubToken != "" {
		if err := s.configStore.Set(KeyGitHubToken, settings.GitHubToken); err != nil {
			return fmt.Errorf("save %s: %w", KeyGitHubToken, err)
		}
	}

	return nil
}

// Set parses and stores one setting by config key.
// An empty value removes the key so its default applies again.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return s.configStore.Delete(key)
	}

	parsed, err := s.parse(key, kind, value)
	if err != nil {
		return err
	}

	// Check the resulting settings before persisting anything.
	current, err := s.Get()
	if err != nil {
		return err
	}
	candidate := *current
	switch key {
	case KeyToolVersion:
		candidate.Version = value
	case KeyArchiveURL:
		candidate.ArchiveURL = value
	case KeyExecutable:
		candidate.Executable = value
	}
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("%w: %s=%q", err, key, value)
	}

	return s.configStore.Set(key, parsed)
}

func (s *SettingsService) parse(key string, kind settingKind, value string) (any, error) {
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil
	case kindList:
		var names []string
		for _, part := range strings.Split(value, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			if s.validName != nil && !s.validName(name) {
				return nil, fmt.Errorf("%w: preprocessor %q", domain.ErrUnsupportedType, name)
			}
			names = append(names, name)
		}
		return names, nil
	default:
		return value, nil
	}
}

// Keys returns the recognised config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ToolSettings {
	return domain.DefaultToolSettings()
}

// Validate checks the stored settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("tool settings: %w", err)
	}
	if s.validName != nil {
		for _, name := range settings.Preprocessors {
			if !s.validName(name) {
				return fmt.Errorf("%w: preprocessor %q", domain.ErrUnsupportedType, name)
			}
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
