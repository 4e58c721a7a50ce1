package domain

import (
	"fmt"
	"strings"
)

// Artifact suffixes the tool appends to an output base.
const (
	// SuffixBinary is appended by supervised, skipgram and cbow training.
	SuffixBinary = ".bin"

	// SuffixQuantized is appended by quantize.
	SuffixQuantized = ".ftz"

	// SuffixText is the plain-text vectors file written next to .bin.
	SuffixText = ".vec"
)

// ModelKind identifies the training subcommand that produced a model.
type ModelKind string

// Available model kinds.
const (
	// ModelKindSupervised is a text classifier.
	ModelKindSupervised ModelKind = "supervised"

	// ModelKindSkipgram is an unsupervised skipgram embedding.
	ModelKindSkipgram ModelKind = "skipgram"

	// ModelKindCBOW is an unsupervised continuous bag of words embedding.
	ModelKindCBOW ModelKind = "cbow"

	// ModelKindQuantized is a compressed supervised model.
	ModelKindQuantized ModelKind = "quantize"
)

// IsValid returns true if the model kind is recognised.
func (k ModelKind) IsValid() bool {
	switch k {
	case ModelKindSupervised, ModelKindSkipgram, ModelKindCBOW, ModelKindQuantized:
		return true
	default:
		return false
	}
}

// Suffix returns the artifact suffix the tool appends for this kind.
func (k ModelKind) Suffix() string {
	if k == ModelKindQuantized {
		return SuffixQuantized
	}
	return SuffixBinary
}

// String returns the string representation.
func (k ModelKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k ModelKind) Description() string {
	switch k {
	case ModelKindSupervised:
		return "Supervised classifier"
	case ModelKindSkipgram:
		return "Skipgram word vectors"
	case ModelKindCBOW:
		return "CBOW word vectors"
	case ModelKindQuantized:
		return "Quantized classifier"
	default:
		return "Unknown"
	}
}

// ModelKinds returns all kinds in display order.
func ModelKinds() []ModelKind {
	return []ModelKind{ModelKindSupervised, ModelKindSkipgram, ModelKindCBOW, ModelKindQuantized}
}

// Options maps tool option names (without the leading '-') to values.
type Options map[string]string

// Option names every training run needs.
const (
	OptionInput  = "input"
	OptionOutput = "output"
)

// Model is a trained model artifact.
type Model struct {
	// Kind is the training subcommand that produced the model.
	Kind ModelKind `json:"kind"`

	// Base is the output base the caller passed as -output.
	Base string `json:"base"`

	// Path is the artifact the tool actually wrote (Base + suffix).
	Path string `json:"path"`
}

// ModelPath derives the artifact path the tool writes for an output base.
func ModelPath(kind ModelKind, base string) string {
	return base + kind.Suffix()
}

// NewModel returns the model handle for a training run.
func NewModel(kind ModelKind, base string) Model {
	return Model{Kind: kind, Base: base, Path: ModelPath(kind, base)}
}

// KindFromPath guesses a model kind from an artifact path.
// A .bin artifact could come from any unquantized kind, so its kind is
// empty. Returns false for paths that are not tool artifacts.
func KindFromPath(path string) (ModelKind, bool) {
	switch {
	case strings.HasSuffix(path, SuffixQuantized):
		return ModelKindQuantized, true
	case strings.HasSuffix(path, SuffixBinary):
		return "", true
	default:
		return "", false
	}
}

// TrainRequest describes one training run.
type TrainRequest struct {
	// Kind selects the training subcommand.
	Kind ModelKind

	// Options are rendered as -key value flags. Must contain input and output.
	Options Options

	// Name is an optional catalog name. Defaults to the output base.
	Name string
}

// Validate checks the request carries what the tool needs.
func (r TrainRequest) Validate() error {
	if !r.Kind.IsValid() {
		return ErrUnsupportedType
	}
	if r.Options[OptionInput] == "" || r.Options[OptionOutput] == "" {
		return ErrInvalidInput
	}
	for k := range r.Options {
		if k == "" || strings.HasPrefix(k, "-") {
			return fmt.Errorf("%w: option key %q must be a bare name", ErrInvalidInput, k)
		}
	}
	return nil
}
