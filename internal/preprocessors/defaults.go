package preprocessors

import (
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
	"github.com/custodia-labs/ftwrap/internal/preprocessors/textnorm"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(textnorm.NameLowercase, buildLowercase)
	r.Register(textnorm.NamePunctuation, buildPunctuation)
	r.Register(textnorm.NameOneline, buildOneline)
}

// NewDefaultRegistry returns a registry with the built-in processors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func buildLowercase(_ map[string]any) (driven.Preprocessor, error) {
	return textnorm.Lowercase{}, nil
}

// buildPunctuation creates a punctuation processor from generic config.
// Supported config keys:
//   - mode (string): "separate" (default) or "strip"
func buildPunctuation(cfg map[string]any) (driven.Preprocessor, error) {
	mode := textnorm.PunctuationSeparate
	if v, ok := cfg["mode"].(string); ok && v != "" {
		mode = textnorm.PunctuationMode(v)
	}
	return textnorm.NewPunctuation(mode)
}

func buildOneline(_ map[string]any) (driven.Preprocessor, error) {
	return textnorm.Oneline{}, nil
}
