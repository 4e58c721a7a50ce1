package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

var neighboursK int

var nnCmd = &cobra.Command{
	Use:   "nn <model> [word...]",
	Short: "Find nearest neighbours of words",
	Long: `Find the nearest neighbours of each word in an unsupervised model.

Words are read from standard input, one per line, when none are given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := requireText()
		if err != nil {
			return err
		}
		return runNeighbours(cmd, args, text.Nearest)
	},
}

var analogiesCmd = &cobra.Command{
	Use:   "analogies <model> [\"A B C\"...]",
	Short: "Answer word analogies",
	Long: `Find words that complete A - B + C for each triplet.

Each triplet is one quoted argument, or one line of standard input.

Example:
  ftwrap analogies wiki "berlin germany france"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := requireText()
		if err != nil {
			return err
		}
		return runNeighbours(cmd, args, text.Analogies)
	},
}

func init() {
	nnCmd.Flags().IntVarP(&neighboursK, "k", "k", domain.DefaultK, "neighbours per query")
	analogiesCmd.Flags().IntVarP(&neighboursK, "k", "k", domain.DefaultK, "answers per triplet")
	rootCmd.AddCommand(nnCmd)
	rootCmd.AddCommand(analogiesCmd)
}

// neighbourResult is the structured form of one nn or analogies query.
type neighbourResult struct {
	Query  string               `json:"query" yaml:"query"`
	Labels []domain.ScoredLabel `json:"labels" yaml:"labels"`
}

type neighbourFunc func(ctx context.Context, model string, queries []string, k int) ([][]domain.ScoredLabel, error)

func runNeighbours(cmd *cobra.Command, args []string, fn neighbourFunc) error {
	queries, err := argsOrStdin(cmd, args[1:])
	if err != nil {
		return err
	}

	results, err := fn(cmd.Context(), args[0], queries, neighboursK)
	if err != nil {
		return err
	}

	out := make([]neighbourResult, len(results))
	for i, labels := range results {
		out[i] = neighbourResult{Query: lineAt(queries, i), Labels: labels}
	}

	return render(cmd, out, func(w io.Writer) {
		for i, r := range out {
			if i > 0 {
				fmt.Fprintln(w)
			}
			heading(w, r.Query)
			for _, l := range r.Labels {
				fmt.Fprintf(w, "%s %g\n", l.Label, l.Score)
			}
		}
	})
}
