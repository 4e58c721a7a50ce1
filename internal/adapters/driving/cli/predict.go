package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

var (
	predictK    int
	predictProb bool
)

var predictCmd = &cobra.Command{
	Use:   "predict <model> [file]",
	Short: "Predict labels with a supervised model",
	Long: `Predict the most likely labels for each line of text.

The model is a catalog name, ID or artifact path. Text is read from file,
or from standard input when no file is given.

Examples:
  ftwrap predict cooking cooking.valid -k 3
  echo "Which baking dish is best?" | ftwrap predict cooking --prob`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().IntVarP(&predictK, "k", "k", 1, "labels per line")
	predictCmd.Flags().BoolVar(&predictProb, "prob", false, "include label probabilities")
	rootCmd.AddCommand(predictCmd)
}

// prediction is the structured form of one predicted line.
type prediction struct {
	Input  string   `json:"input,omitempty" yaml:"input,omitempty"`
	Labels []string `json:"labels" yaml:"labels"`
}

// scoredPrediction is a prediction with probabilities.
type scoredPrediction struct {
	Input  string               `json:"input,omitempty" yaml:"input,omitempty"`
	Labels []domain.ScoredLabel `json:"labels" yaml:"labels"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	text, err := requireText()
	if err != nil {
		return err
	}

	q, err := queryFromArgs(cmd, args[1:])
	if err != nil {
		return err
	}

	if predictProb {
		results, err := text.PredictProb(cmd.Context(), args[0], q, predictK)
		if err != nil {
			return err
		}
		out := make([]scoredPrediction, len(results))
		for i, labels := range results {
			out[i] = scoredPrediction{Input: lineAt(q.Lines, i), Labels: labels}
		}
		return render(cmd, out, func(w io.Writer) {
			for _, p := range out {
				fmt.Fprintln(w, formatLabels(p.Labels))
			}
		})
	}

	results, err := text.Predict(cmd.Context(), args[0], q, predictK)
	if err != nil {
		return err
	}
	out := make([]prediction, len(results))
	for i, labels := range results {
		out[i] = prediction{Input: lineAt(q.Lines, i), Labels: labels}
	}
	return render(cmd, out, func(w io.Writer) {
		for _, p := range out {
			fmt.Fprintln(w, strings.Join(p.Labels, " "))
		}
	})
}

// queryFromArgs builds a query from an optional file argument, falling
// back to lines read from standard input.
func queryFromArgs(cmd *cobra.Command, args []string) (domain.Query, error) {
	if len(args) > 0 && args[0] != domain.StdinPath {
		return domain.Query{Path: args[0]}, nil
	}

	lines, err := readLines(cmd.InOrStdin())
	if err != nil {
		return domain.Query{}, err
	}
	if len(lines) == 0 {
		return domain.Query{}, fmt.Errorf("%w: no input lines", domain.ErrInvalidInput)
	}
	return domain.Query{Lines: lines}, nil
}

// readLines reads non-blank lines.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

// argsOrStdin returns args, or lines from standard input when args is empty.
func argsOrStdin(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	lines, err := readLines(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no input", domain.ErrInvalidInput)
	}
	return lines, nil
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
