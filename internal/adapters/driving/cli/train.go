package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

var (
	trainInput   string
	trainOutput  string
	trainName    string
	trainOptions []string
)

var trainCmd = &cobra.Command{
	Use:   "train <supervised|skipgram|cbow|quantize>",
	Short: "Train a model",
	Long: `Train a fastText model and record it in the catalog.

Any fastText training option can be passed with --set, without its leading
dash. The artifact is written to <output>.bin, or <output>.ftz for quantize.

Examples:
  ftwrap train supervised -i cooking.train -o cooking --set epoch=25 --set lr=1.0
  ftwrap train skipgram -i data.txt -o wiki --set dim=100
  ftwrap train quantize -i cooking.train -o cooking --set qnorm=1`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"supervised", "skipgram", "cbow", "quantize"},
	RunE:      runTrain,
}

func init() {
	flags := trainCmd.Flags()
	flags.StringVarP(&trainInput, "input", "i", "", "training file")
	flags.StringVarP(&trainOutput, "output", "o", "", "output base; the tool appends the suffix")
	flags.StringVar(&trainName, "name", "", "catalog name (defaults to the output base)")
	flags.StringArrayVar(&trainOptions, "set", nil, "training option as key=value (repeatable)")
	_ = trainCmd.MarkFlagRequired("input")
	_ = trainCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	text, err := requireText()
	if err != nil {
		return err
	}

	kind := domain.ModelKind(args[0])
	if !kind.IsValid() {
		return fmt.Errorf("%w: model kind %q", domain.ErrUnsupportedType, args[0])
	}

	opts, err := parseOptions(trainOptions)
	if err != nil {
		return err
	}
	opts[domain.OptionInput] = trainInput
	opts[domain.OptionOutput] = trainOutput

	record, err := text.Train(cmd.Context(), domain.TrainRequest{
		Kind:    kind,
		Options: opts,
		Name:    trainName,
	})
	if err != nil {
		return err
	}

	return render(cmd, record, func(w io.Writer) {
		fmt.Fprintf(w, "Trained %s model %q\n", record.Kind, record.Name)
		printRecord(w, record)
	})
}

// parseOptions turns key=value pairs into tool options.
func parseOptions(pairs []string) (domain.Options, error) {
	opts := make(domain.Options, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimLeft(strings.TrimSpace(key), "-")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: option %q must be key=value", domain.ErrInvalidInput, pair)
		}
		if key == domain.OptionInput || key == domain.OptionOutput {
			return nil, fmt.Errorf("%w: use --%s instead of --set %s", domain.ErrInvalidInput, key, key)
		}
		opts[key] = strings.TrimSpace(value)
	}
	return opts, nil
}
