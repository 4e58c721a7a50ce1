package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

var (
	modelsRegisterName string
	modelsRemoveDelete bool
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage the model catalog",
	Long: `List, inspect and maintain recorded models.

Models trained with 'ftwrap train' are recorded automatically. Existing
artifacts can be registered, and 'sync' or 'watch' keep the catalog in step
with a directory.`,
	RunE: runModelsList,
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded models",
	Args:  cobra.NoArgs,
	RunE:  runModelsList,
}

var modelsShowCmd = &cobra.Command{
	Use:   "show <model>",
	Short: "Show a recorded model",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsShow,
}

var modelsRegisterCmd = &cobra.Command{
	Use:   "register <path>",
	Short: "Record an existing .bin or .ftz artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsRegister,
}

var modelsRemoveCmd = &cobra.Command{
	Use:   "remove <model>",
	Short: "Remove a model from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsRemove,
}

var modelsVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check artifacts against their recorded checksums",
	Args:  cobra.NoArgs,
	RunE:  runModelsVerify,
}

var modelsSyncCmd = &cobra.Command{
	Use:   "sync [dir]",
	Short: "Register new artifacts in dir and drop missing ones",
	Long: `Register every unrecorded .bin and .ftz artifact in dir and remove
records whose artifacts no longer exist. dir defaults to the work directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModelsSync,
}

var modelsWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Keep the catalog in step with dir until interrupted",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runModelsWatch,
}

func init() {
	modelsRegisterCmd.Flags().StringVar(&modelsRegisterName, "name", "", "catalog name (defaults to the file name)")
	modelsRemoveCmd.Flags().BoolVar(&modelsRemoveDelete, "delete", false, "also delete the artifact")

	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsShowCmd)
	modelsCmd.AddCommand(modelsRegisterCmd)
	modelsCmd.AddCommand(modelsRemoveCmd)
	modelsCmd.AddCommand(modelsVerifyCmd)
	modelsCmd.AddCommand(modelsSyncCmd)
	modelsCmd.AddCommand(modelsWatchCmd)
	rootCmd.AddCommand(modelsCmd)
}

func runModelsList(cmd *cobra.Command, _ []string) error {
	models, err := requireModels()
	if err != nil {
		return err
	}

	records, err := models.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	if records == nil {
		records = []domain.ModelRecord{}
	}

	return render(cmd, records, func(w io.Writer) {
		if len(records) == 0 {
			fmt.Fprintln(w, "No models recorded.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tSIZE\tPATH")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, kindLabel(r.Kind), formatSize(r.SizeBytes), r.Path)
		}
		_ = tw.Flush()
	})
}

func runModelsShow(cmd *cobra.Command, args []string) error {
	models, err := requireModels()
	if err != nil {
		return err
	}

	record, err := models.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("model %q: %w", args[0], err)
	}

	return render(cmd, record, func(w io.Writer) {
		heading(w, record.Name)
		printRecord(w, record)
		if len(record.Options) > 0 {
			fmt.Fprintln(w, "  Options:")
			for _, key := range slices.Sorted(maps.Keys(record.Options)) {
				fmt.Fprintf(w, "    -%s %s\n", key, record.Options[key])
			}
		}
	})
}

func runModelsRegister(cmd *cobra.Command, args []string) error {
	models, err := requireModels()
	if err != nil {
		return err
	}

	record, err := models.Register(cmd.Context(), args[0], modelsRegisterName)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", args[0], err)
	}

	return render(cmd, record, func(w io.Writer) {
		fmt.Fprintf(w, "Registered model %q\n", record.Name)
		printRecord(w, record)
	})
}

func runModelsRemove(cmd *cobra.Command, args []string) error {
	models, err := requireModels()
	if err != nil {
		return err
	}

	if err := models.Remove(cmd.Context(), args[0], modelsRemoveDelete); err != nil {
		return fmt.Errorf("failed to remove %s: %w", args[0], err)
	}

	if modelsRemoveDelete {
		cmd.Printf("Removed model %s and deleted its artifact.\n", args[0])
	} else {
		cmd.Printf("Removed model %s.\n", args[0])
	}
	return nil
}

func runModelsVerify(cmd *cobra.Command, _ []string) error {
	models, err := requireModels()
	if err != nil {
		return err
	}

	results, err := models.Verify(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to verify models: %w", err)
	}
	if results == nil {
		results = []domain.VerifyResult{}
	}

	failed := 0
	for _, r := range results {
		if r.Status != domain.VerifyOK {
			failed++
		}
	}

	if err := render(cmd, results, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Status, r.Record.Name, r.Record.Path)
		}
		_ = tw.Flush()
		fmt.Fprintf(w, "%d of %d models verified.\n", len(results)-failed, len(results))
	}); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d models failed verification", failed)
	}
	return nil
}

func runModelsSync(cmd *cobra.Command, args []string) error {
	models, err := requireModels()
	if err != nil {
		return err
	}

	dir, err := catalogDir(args)
	if err != nil {
		return err
	}

	added, removed, err := models.Sync(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("failed to sync %s: %w", dir, err)
	}

	summary := struct {
		Dir     string `json:"dir" yaml:"dir"`
		Added   int    `json:"added" yaml:"added"`
		Removed int    `json:"removed" yaml:"removed"`
	}{dir, added, removed}

	return render(cmd, summary, func(w io.Writer) {
		fmt.Fprintf(w, "Synced %s: %d added, %d removed.\n", dir, added, removed)
	})
}

func runModelsWatch(cmd *cobra.Command, args []string) error {
	models, err := requireModels()
	if err != nil {
		return err
	}

	dir, err := catalogDir(args)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for model changes. Press Ctrl+C to stop.\n", dir)
	return models.Watch(cmd.Context(), dir, func(change domain.ArtifactChange) {
		cmd.Printf("%s %s\n", change.Type, change.Path)
	})
}

// catalogDir returns the directory argument, or the configured work
// directory, or ".".
func catalogDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if flagWorkDir != "" {
		return flagWorkDir, nil
	}
	if settingsService == nil {
		return ".", nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.WorkDir == "" {
		return ".", nil
	}
	return settings.WorkDir, nil
}

func printRecord(w io.Writer, r *domain.ModelRecord) {
	if r.ID != "" {
		fmt.Fprintf(w, "  ID:       %s\n", r.ID)
	}
	fmt.Fprintf(w, "  Kind:     %s\n", kindLabel(r.Kind))
	fmt.Fprintf(w, "  Path:     %s\n", r.Path)
	if r.Checksum != "" {
		fmt.Fprintf(w, "  Size:     %s\n", formatSize(r.SizeBytes))
		fmt.Fprintf(w, "  Checksum: %s\n", r.Checksum)
	}
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Created:  %s\n", r.CreatedAt.Format(time.RFC3339))
	}
}

func kindLabel(k domain.ModelKind) string {
	if k == "" {
		return "-"
	}
	return k.String()
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
