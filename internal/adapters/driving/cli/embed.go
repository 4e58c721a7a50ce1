package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed [text...]",
	Short: "Embed texts with the configured embedding model",
	Long: `Embed each text as a sentence vector using embedding.model.

Texts are read from standard input, one per line, when none are given.`,
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

type embedding struct {
	Text   string    `json:"text" yaml:"text"`
	Vector []float32 `json:"vector" yaml:"vector"`
}

func runEmbed(cmd *cobra.Command, args []string) error {
	text, err := requireText()
	if err != nil {
		return err
	}

	texts, err := argsOrStdin(cmd, args)
	if err != nil {
		return err
	}

	vectors, err := text.Embed(cmd.Context(), texts)
	if err != nil {
		return err
	}

	out := make([]embedding, len(vectors))
	for i, v := range vectors {
		out[i] = embedding{Text: lineAt(texts, i), Vector: v}
	}

	return render(cmd, out, func(w io.Writer) {
		for _, e := range out {
			fmt.Fprintln(w, formatFloat32s(e.Vector))
		}
	})
}
