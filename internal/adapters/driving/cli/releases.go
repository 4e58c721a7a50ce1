package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var releasesLimit int

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List published fastText releases",
	Long: `List fastText releases published on GitHub, newest first, and mark the
release ftwrap installs. Set github.token to raise the API rate limit.`,
	Args: cobra.NoArgs,
	RunE: runReleases,
}

func init() {
	releasesCmd.Flags().IntVarP(&releasesLimit, "limit", "n", 10, "maximum number of releases")
	rootCmd.AddCommand(releasesCmd)
}

func runReleases(cmd *cobra.Command, _ []string) error {
	if releaseService == nil {
		return errors.New("release service not configured")
	}

	releases, err := releaseService.List(cmd.Context(), releasesLimit)
	if err != nil {
		return err
	}
	current := releaseService.Current()

	return render(cmd, releases, func(w io.Writer) {
		if len(releases) == 0 {
			fmt.Fprintln(w, "No releases found.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, r := range releases {
			marker := " "
			if r.Version() == current {
				marker = "*"
			}
			note := ""
			if r.Prerelease {
				note = "prerelease"
			}
			fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", marker, r.Tag, r.PublishedAt.Format("2006-01-02"), r.Name, note)
		}
		_ = tw.Flush()
	})
}
