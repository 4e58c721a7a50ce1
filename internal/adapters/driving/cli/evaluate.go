package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var testK int

var testCmd = &cobra.Command{
	Use:   "test <model> <file>",
	Short: "Evaluate a supervised model",
	Long: `Evaluate a supervised model on a labelled file and print the number of
examples with precision and recall at k.`,
	Args: cobra.ExactArgs(2),
	RunE: runTest,
}

func init() {
	testCmd.Flags().IntVarP(&testK, "k", "k", 1, "labels predicted per line")
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	text, err := requireText()
	if err != nil {
		return err
	}

	result, err := text.Evaluate(cmd.Context(), args[0], args[1], testK)
	if err != nil {
		return err
	}

	return render(cmd, result, func(w io.Writer) {
		fmt.Fprintf(w, "N\t%d\n", result.Examples)
		fmt.Fprintf(w, "P@%d\t%.3f\n", result.K, result.Precision)
		fmt.Fprintf(w, "R@%d\t%.3f\n", result.K, result.Recall)
	})
}
