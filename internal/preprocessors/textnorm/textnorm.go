// Package textnorm provides line normalisers matching the tokenisation
// fastText models are usually trained with.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// Processor names.
const (
	NameLowercase   = "lowercase"
	NamePunctuation = "punctuation"
	NameOneline     = "oneline"
)

// Lowercase folds a line to lower case.
type Lowercase struct{}

// Name returns the processor name.
func (Lowercase) Name() string { return NameLowercase }

// Process returns the lower-cased line.
func (Lowercase) Process(line string) string {
	return strings.ToLower(line)
}

// Oneline collapses all whitespace, including line breaks, to single spaces.
type Oneline struct{}

// Name returns the processor name.
func (Oneline) Name() string { return NameOneline }

// Process returns the collapsed line.
func (Oneline) Process(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// PunctuationMode selects how punctuation is treated.
type PunctuationMode string

// Punctuation modes.
const (
	// PunctuationSeparate surrounds punctuation with spaces so it becomes
	// its own token.
	PunctuationSeparate PunctuationMode = "separate"

	// PunctuationStrip removes punctuation.
	PunctuationStrip PunctuationMode = "strip"
)

// Punctuation separates or strips punctuation characters.
type Punctuation struct {
	mode PunctuationMode
}

// NewPunctuation creates a punctuation processor.
func NewPunctuation(mode PunctuationMode) (*Punctuation, error) {
	switch mode {
	case PunctuationSeparate, PunctuationStrip:
		return &Punctuation{mode: mode}, nil
	default:
		return nil, fmt.Errorf("%w: punctuation mode %q", domain.ErrInvalidInput, mode)
	}
}

// Name returns the processor name.
func (p *Punctuation) Name() string { return NamePunctuation }

// Process rewrites punctuation and collapses the resulting whitespace.
// Apostrophes and hyphens inside words are kept.
func (p *Punctuation) Process(line string) string {
	runes := []rune(line)
	var b strings.Builder
	b.Grow(len(line) + 8)

	for i, r := range runes {
		if !unicode.IsPunct(r) || inWord(runes, i) {
			b.WriteRune(r)
			continue
		}
		if p.mode == PunctuationSeparate {
			b.WriteByte(' ')
			b.WriteRune(r)
		}
		b.WriteByte(' ')
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// inWord reports whether runes[i] is an apostrophe or hyphen joining letters.
func inWord(runes []rune, i int) bool {
	r := runes[i]
	if r != '\'' && r != '-' {
		return false
	}
	return i > 0 && i < len(runes)-1 &&
		unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
}
