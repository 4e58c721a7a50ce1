package domain

import (
	"strings"
	"time"
)

// Release is a published version of the external tool.
type Release struct {
	// Tag is the release tag, e.g. "v0.9.2".
	Tag string `json:"tag" yaml:"tag"`

	// Name is the release title.
	Name string `json:"name" yaml:"name"`

	// Prerelease marks releases not intended for general use.
	Prerelease bool `json:"prerelease" yaml:"prerelease"`

	// PublishedAt is when the release was published.
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`

	// URL is the release page.
	URL string `json:"url" yaml:"url"`
}

// Version returns the tag without its leading "v", the form the installer
// expects.
func (r Release) Version() string {
	return strings.TrimPrefix(r.Tag, "v")
}
