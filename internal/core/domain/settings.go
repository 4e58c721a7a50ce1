package domain

import (
	"strings"
	"time"
)

// Default tool settings.
const (
	// DefaultToolVersion is the fastText release fetched by the installer.
	DefaultToolVersion = "0.1.0"

	// DefaultArchiveURL is the source archive template. {version} is replaced.
	DefaultArchiveURL = "https://github.com/facebookresearch/fastText/archive/v{version}.zip"

	// DefaultExecutable is the file name the installer places in the work dir.
	DefaultExecutable = "fasttext"

	// DefaultK is the number of labels or neighbours returned by default.
	DefaultK = 10

	// DefaultMCPRate is the MCP tool call rate limit per second.
	DefaultMCPRate = 2.0
)

// ToolSettings holds the construction-time configuration of the tool
// adapters. The version is fixed for the lifetime of a process.
type ToolSettings struct {
	// Version is the fastText release to install.
	Version string

	// ArchiveURL is the download URL template; {version} is substituted.
	ArchiveURL string

	// WorkDir is where the executable, archives and models live.
	// Empty means the process working directory.
	WorkDir string

	// Executable is the executable's file name inside WorkDir.
	Executable string

	// Timeout bounds each subprocess. Zero means no bound.
	Timeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// Preprocessors names the query preprocessors, applied in order.
	Preprocessors []string

	// EmbeddingModel is the model used by the embedding service.
	EmbeddingModel string

	// MCPRate is the MCP tool call rate limit per second.
	MCPRate float64

	// GitHubToken authenticates release listing. Optional.
	GitHubToken string
}

// DefaultToolSettings returns the default settings.
func DefaultToolSettings() ToolSettings {
	return ToolSettings{
		Version:    DefaultToolVersion,
		ArchiveURL: DefaultArchiveURL,
		Executable: DefaultExecutable,
		MCPRate:    DefaultMCPRate,
	}
}

// ResolvedArchiveURL substitutes the version into the archive URL template.
func (s ToolSettings) ResolvedArchiveURL() string {
	return strings.ReplaceAll(s.ArchiveURL, "{version}", s.Version)
}

// ArchiveName is the file the fetch step writes.
func (s ToolSettings) ArchiveName() string {
	return "v" + s.Version + ".zip"
}

// SourceDir is the directory the unpack step creates.
func (s ToolSettings) SourceDir() string {
	return "fastText-" + s.Version
}

// Validate checks the settings can drive an installer.
func (s ToolSettings) Validate() error {
	if s.Version == "" || s.Executable == "" || s.ArchiveURL == "" {
		return ErrInvalidInput
	}
	if strings.ContainsAny(s.Executable, "/ \t") {
		return ErrInvalidInput
	}
	return nil
}
