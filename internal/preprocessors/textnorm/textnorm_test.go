package textnorm

import (
	"errors"
	"testing"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

func TestLowercase(t *testing.T) {
	if got := (Lowercase{}).Process("Über COOL"); got != "über cool" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestOneline(t *testing.T) {
	if got := (Oneline{}).Process("  first\nsecond\t\tthird  "); got != "first second third" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestPunctuation(t *testing.T) {
	tests := []struct {
		name     string
		mode     PunctuationMode
		input    string
		expected string
	}{
		{"separate", PunctuationSeparate, "Which baking dish is best?", "Which baking dish is best ?"},
		{"separate keeps contractions", PunctuationSeparate, "don't stop, well-known", "don't stop , well-known"},
		{"separate quotes", PunctuationSeparate, "'quoted'", "' quoted '"},
		{"strip", PunctuationStrip, "(a) b; c.", "a b c"},
		{"no punctuation", PunctuationStrip, "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPunctuation(tt.mode)
			if err != nil {
				t.Fatalf("NewPunctuation failed: %v", err)
			}
			if got := p.Process(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNewPunctuation_InvalidMode(t *testing.T) {
	if _, err := NewPunctuation("loud"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
