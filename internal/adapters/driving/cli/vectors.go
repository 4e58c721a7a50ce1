package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var vectorsCmd = &cobra.Command{
	Use:   "vectors",
	Short: "Print word or sentence vectors",
}

var vectorsWordsCmd = &cobra.Command{
	Use:   "words <model> [word...]",
	Short: "Print the vector of each word",
	Long:  `Print one vector per word. Words are read from standard input when none are given.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := requireText()
		if err != nil {
			return err
		}
		return runVectors(cmd, args, text.WordVectors)
	},
}

var vectorsSentencesCmd = &cobra.Command{
	Use:   "sentences <model> [sentence...]",
	Short: "Print the vector of each sentence",
	Long: `Print one vector per sentence. Each sentence is one quoted argument, or
one line of standard input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := requireText()
		if err != nil {
			return err
		}
		return runVectors(cmd, args, text.SentenceVectors)
	},
}

func init() {
	vectorsCmd.AddCommand(vectorsWordsCmd)
	vectorsCmd.AddCommand(vectorsSentencesCmd)
	rootCmd.AddCommand(vectorsCmd)
}

// vectorResult is the structured form of one input's vector.
type vectorResult struct {
	Input  string    `json:"input" yaml:"input"`
	Vector []float64 `json:"vector" yaml:"vector"`
}

type vectorFunc func(ctx context.Context, model string, inputs []string) ([][]float64, error)

func runVectors(cmd *cobra.Command, args []string, fn vectorFunc) error {
	inputs, err := argsOrStdin(cmd, args[1:])
	if err != nil {
		return err
	}

	vectors, err := fn(cmd.Context(), args[0], inputs)
	if err != nil {
		return err
	}

	out := make([]vectorResult, len(vectors))
	for i, v := range vectors {
		out[i] = vectorResult{Input: lineAt(inputs, i), Vector: v}
	}

	return render(cmd, out, func(w io.Writer) {
		for _, r := range out {
			fmt.Fprintf(w, "%s %s\n", r.Input, formatVector(r.Vector))
		}
	})
}
