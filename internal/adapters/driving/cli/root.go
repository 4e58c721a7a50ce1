// Package cli implements the ftwrap command line.
//
// Commands are package-level cobra commands registered in init(). Services
// are package globals set either directly with SetServices or lazily by a
// Bootstrap function, which runs after flags are parsed so that --verbose
// reaches every adapter logger.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driving"
	"github.com/custodia-labs/ftwrap/internal/logger"
)

// version is set by SetVersion from build flags.
var version = "dev"

// annotationNoServices marks commands that run without services.
const annotationNoServices = "ftwrap/no-services"

var (
	textService     driving.TextService
	modelService    driving.ModelService
	settingsService driving.SettingsService
	releaseService  driving.ReleaseService
)

// Global flags.
var (
	flagVerbose   bool
	flagEphemeral bool
	flagWorkDir   string
	flagFormat    string
)

// Options carries the global flags into a Bootstrap function.
type Options struct {
	// Verbose enables debug logging.
	Verbose bool

	// Ephemeral keeps settings and the catalog in memory.
	Ephemeral bool

	// WorkDir overrides the configured tool work directory.
	WorkDir string
}

// Services holds the driving ports used by commands.
type Services struct {
	Text     driving.TextService
	Models   driving.ModelService
	Settings driving.SettingsService
	Releases driving.ReleaseService

	// Close releases resources held by the services. May be nil.
	Close func() error
}

// Bootstrap builds services once flags are known.
type Bootstrap func(opts Options) (*Services, error)

var (
	bootstrap     Bootstrap
	closeServices func() error
)

var rootCmd = &cobra.Command{
	Use:   "ftwrap",
	Short: "Train and query fastText models",
	Long: `ftwrap drives the fastText command-line tool.

It installs fastText on first use, trains supervised and unsupervised
models, and parses predictions, neighbours and vectors into structured
output. Trained models are recorded in a local catalog.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if closeServices != nil {
			if err := closeServices(); err != nil {
				logger.Warn("closing services: %v", err)
			}
			closeServices = nil
		}
		logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "log tool runs and installs to stderr")
	flags.BoolVar(&flagEphemeral, "ephemeral", false, "keep settings and the model catalog in memory")
	flags.StringVar(&flagWorkDir, "work-dir", "", "directory holding the fasttext executable (overrides tool.work_dir)")
	flags.StringVarP(&flagFormat, "format", "f", string(formatText), "output format: text, json or yaml")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices sets the services used by commands.
func SetServices(s *Services) {
	textService = s.Text
	modelService = s.Models
	settingsService = s.Settings
	releaseService = s.Releases
	closeServices = s.Close
}

func setup(cmd *cobra.Command, _ []string) error {
	if _, err := parseFormat(flagFormat); err != nil {
		return err
	}
	if flagVerbose {
		logger.SetVerbose(true)
	}

	if bootstrap == nil || cmd.Annotations[annotationNoServices] != "" {
		return nil
	}

	services, err := bootstrap(Options{
		Verbose:   flagVerbose,
		Ephemeral: flagEphemeral,
		WorkDir:   flagWorkDir,
	})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
	}
	return err
}

// errorHint suggests a next step for well-known failures.
func errorHint(err error) string {
	var installErr *domain.InstallError
	switch {
	case errors.As(err, &installErr):
		return fmt.Sprintf("The %q step of the fastText install failed. Rerun with --verbose to see each step.", installErr.Step)
	case errors.Is(err, domain.ErrEnvironment):
		return "ftwrap needs a POSIX shell (sh) on PATH."
	case errors.Is(err, domain.ErrToolMissing):
		return "fastText is not installed. Run 'ftwrap install' and check network access."
	case errors.Is(err, domain.ErrMalformedOutput):
		return "fastText printed output ftwrap could not read. Check the model kind suits the command."
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return "Set an embedding model with 'ftwrap settings set embedding.model <model>'."
	case errors.Is(err, domain.ErrNotFound):
		return "Run 'ftwrap models list' to see recorded models."
	default:
		return ""
	}
}

// requireText returns the text service or an error if it is not configured.
func requireText() (driving.TextService, error) {
	if textService == nil {
		return nil, errors.New("text service not configured")
	}
	return textService, nil
}

func requireModels() (driving.ModelService, error) {
	if modelService == nil {
		return nil, errors.New("model service not configured")
	}
	return modelService, nil
}

func requireSettings() (driving.SettingsService, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}
