package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage ftwrap settings",
	Long: `View and change the fastText release, work directory, query
preprocessing and other options stored in ~/.ftwrap/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a setting",
	Long: `Set a setting by key. Omitting the value resets the key to its default.

Examples:
  ftwrap settings set tool.version 0.9.2
  ftwrap settings set query.preprocessors lowercase,punctuation
  ftwrap settings set tool.timeout_seconds`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingsView is the displayed form of the settings, with secrets masked.
type settingsView struct {
	Version        string   `json:"version" yaml:"version"`
	ArchiveURL     string   `json:"archive_url" yaml:"archive_url"`
	WorkDir        string   `json:"work_dir" yaml:"work_dir"`
	Executable     string   `json:"executable" yaml:"executable"`
	TimeoutSeconds int      `json:"timeout_seconds" yaml:"timeout_seconds"`
	Verbose        bool     `json:"verbose" yaml:"verbose"`
	Preprocessors  []string `json:"preprocessors" yaml:"preprocessors"`
	EmbeddingModel string   `json:"embedding_model" yaml:"embedding_model"`
	MCPRate        float64  `json:"mcp_rate_per_second" yaml:"mcp_rate_per_second"`
	GitHubToken    string   `json:"github_token,omitempty" yaml:"github_token,omitempty"`
}

func newSettingsView(s *domain.ToolSettings) settingsView {
	view := settingsView{
		Version:        s.Version,
		ArchiveURL:     s.ArchiveURL,
		WorkDir:        s.WorkDir,
		Executable:     s.Executable,
		TimeoutSeconds: int(s.Timeout / time.Second),
		Verbose:        s.Verbose,
		Preprocessors:  s.Preprocessors,
		EmbeddingModel: s.EmbeddingModel,
		MCPRate:        s.MCPRate,
	}
	if view.Preprocessors == nil {
		view.Preprocessors = []string{}
	}
	if s.GitHubToken != "" {
		view.GitHubToken = maskAPIKey(s.GitHubToken)
	}
	return view
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	view := newSettingsView(settings)

	if err := render(cmd, view, func(w io.Writer) {
		heading(w, "Current Settings")
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Tool]")
		fmt.Fprintf(w, "  Version: %s\n", view.Version)
		fmt.Fprintf(w, "  Archive: %s\n", settings.ResolvedArchiveURL())
		fmt.Fprintf(w, "  Work dir: %s\n", orNotSet(view.WorkDir, "(current directory)"))
		fmt.Fprintf(w, "  Executable: %s\n", view.Executable)
		if view.TimeoutSeconds > 0 {
			fmt.Fprintf(w, "  Timeout: %ds\n", view.TimeoutSeconds)
		} else {
			fmt.Fprintln(w, "  Timeout: none")
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Query]")
		fmt.Fprintf(w, "  Preprocessors: %s\n", orNotSet(strings.Join(view.Preprocessors, ", "), "(none)"))
		fmt.Fprintf(w, "  Embedding model: %s\n", orNotSet(view.EmbeddingModel, "(not set)"))
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[MCP]")
		fmt.Fprintf(w, "  Rate limit: %g calls/s\n", view.MCPRate)
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[GitHub]")
		fmt.Fprintf(w, "  Token: %s\n", orNotSet(view.GitHubToken, "(not set)"))
		fmt.Fprintln(w)
	}); err != nil {
		return err
	}

	if err := svc.Validate(); err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
		cmd.PrintErrln("Run 'ftwrap settings set <key>' to reset a key to its default.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	value := ""
	if len(args) == 2 {
		value = args[1]
	}

	if err := svc.Set(args[0], value); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	if value == "" {
		cmd.Printf("Reset %s to its default.\n", args[0])
	} else {
		cmd.Printf("Set %s.\n", args[0])
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	keys := svc.Keys()
	return render(cmd, keys, func(w io.Writer) {
		for _, key := range keys {
			fmt.Fprintln(w, key)
		}
	})
}

// maskAPIKey masks a secret for display, showing only the first 4 and
// last 4 characters.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orNotSet(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
