package fasttext

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.TextTool = (*Client)(nil)

// Client implements driven.TextTool over the fastText command line.
type Client struct {
	runner *Runner
	log    *zap.Logger
}

// NewClient creates a Client. A nil logger disables logging.
func NewClient(runner *Runner, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{runner: runner, log: log}
}

// Train runs a training subcommand and returns the artifact it wrote.
// The returned path is the output base plus the kind's suffix.
func (c *Client) Train(ctx context.Context, kind domain.ModelKind, opts domain.Options) (domain.Model, error) {
	req := domain.TrainRequest{Kind: kind, Options: opts}
	if err := req.Validate(); err != nil {
		return domain.Model{}, fmt.Errorf("train %s: %w", kind, err)
	}

	if _, err := c.runner.Run(ctx, RenderArgs(kind.String(), opts), ""); err != nil {
		return domain.Model{}, fmt.Errorf("train %s: %w", kind, err)
	}

	model := domain.NewModel(kind, opts[domain.OptionOutput])
	c.log.Debug("model trained", zap.String("kind", kind.String()), zap.String("path", model.Path))
	return model, nil
}

// Predict returns the top k labels per query line.
func (c *Client) Predict(ctx context.Context, model string, q domain.Query, k int) ([][]string, error) {
	out, err := c.predict(ctx, "predict", model, q, k)
	if err != nil {
		return nil, err
	}
	return ParseLines(out), nil
}

// PredictProb returns the top k labels with scores per query line.
func (c *Client) PredictProb(ctx context.Context, model string, q domain.Query, k int) ([][]domain.ScoredLabel, error) {
	out, err := c.predict(ctx, "predict-prob", model, q, k)
	if err != nil {
		return nil, err
	}
	labels, err := ParseLabelScores(out)
	if err != nil {
		return nil, fmt.Errorf("predict-prob: %w", err)
	}
	return labels, nil
}

func (c *Client) predict(ctx context.Context, command, model string, q domain.Query, k int) (string, error) {
	if err := checkToken("model", model); err != nil {
		return "", fmt.Errorf("%s: %w", command, err)
	}
	if q.IsEmpty() {
		return "", fmt.Errorf("%s: %w: empty query", command, domain.ErrInvalidInput)
	}

	path, stdin := q.Path, ""
	if path == "" {
		path, stdin = domain.StdinPath, lines(q.Lines)
	} else if err := checkToken("input", path); err != nil {
		return "", fmt.Errorf("%s: %w", command, err)
	}

	args := strings.Join([]string{command, model, path, strconv.Itoa(positive(k))}, " ")
	result, err := c.runner.Run(ctx, args, stdin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", command, err)
	}
	return result.StdoutText(), nil
}

// Nearest returns the k nearest neighbours of each word.
func (c *Client) Nearest(ctx context.Context, model string, words []string, k int) ([][]domain.ScoredLabel, error) {
	if err := checkQuery("nn", model, words); err != nil {
		return nil, err
	}
	for _, w := range words {
		if err := checkToken("word", w); err != nil {
			return nil, fmt.Errorf("nn: %w", err)
		}
	}

	args := fmt.Sprintf("nn %s %d", model, positive(k))
	result, err := c.runner.Run(ctx, args, lines(words))
	if err != nil {
		return nil, fmt.Errorf("nn: %w", err)
	}

	blocks, err := BlockParser{Prompt: NearestPrompt}.Parse(result.StdoutText())
	if err != nil {
		return nil, fmt.Errorf("nn: %w", err)
	}
	return blocks, nil
}

// Analogies answers "A B C" triplets, read as A - B + C.
//
// The tool keeps prompting after its input ends, so output is cut after
// enough lines for every triplet and the block opened by the trailing
// prompt is dropped. Fewer answers than triplets is malformed output.
func (c *Client) Analogies(ctx context.Context, model string, triplets []string, k int) ([][]domain.ScoredLabel, error) {
	if err := checkQuery("analogies", model, triplets); err != nil {
		return nil, err
	}
	normalised := make([]string, len(triplets))
	for i, t := range triplets {
		words := strings.Fields(t)
		if len(words) != 3 {
			return nil, fmt.Errorf("analogies: %w: triplet %q needs 3 words", domain.ErrInvalidInput, t)
		}
		normalised[i] = strings.Join(words, " ")
	}

	k = positive(k)
	// One extra line covers a progress line printed before the first prompt.
	limit := len(triplets)*k + 1
	args := fmt.Sprintf("analogies %s %d", model, k)

	result, err := c.runner.RunHead(ctx, args, limit, lines(normalised))
	if err != nil {
		return nil, fmt.Errorf("analogies: %w", err)
	}

	blocks, err := BlockParser{Prompt: AnalogiesPrompt}.Parse(result.StdoutText())
	if err != nil {
		return nil, fmt.Errorf("analogies: %w", err)
	}
	if len(blocks) < len(triplets) {
		return nil, fmt.Errorf("analogies: %w: %d answers for %d triplets",
			domain.ErrMalformedOutput, len(blocks), len(triplets))
	}
	return blocks[:len(triplets)], nil
}

// WordVectors returns one vector per word.
func (c *Client) WordVectors(ctx context.Context, model string, words []string) ([][]float64, error) {
	if err := checkQuery("print-word-vectors", model, words); err != nil {
		return nil, err
	}
	for _, w := range words {
		if err := checkToken("word", w); err != nil {
			return nil, fmt.Errorf("print-word-vectors: %w", err)
		}
	}
	return c.vectors(ctx, "print-word-vectors", model, words, WordVectorParser())
}

// SentenceVectors returns one vector per sentence.
func (c *Client) SentenceVectors(ctx context.Context, model string, sentences []string) ([][]float64, error) {
	if err := checkQuery("print-sentence-vectors", model, sentences); err != nil {
		return nil, err
	}
	for _, s := range sentences {
		if strings.TrimSpace(s) == "" || strings.ContainsAny(s, "\r\n") {
			return nil, fmt.Errorf("print-sentence-vectors: %w: sentence must be one non-blank line", domain.ErrInvalidInput)
		}
	}
	return c.vectors(ctx, "print-sentence-vectors", model, sentences, SentenceVectorParser(sentences))
}

func (c *Client) vectors(ctx context.Context, command, model string, inputs []string, parser VectorParser) ([][]float64, error) {
	result, err := c.runner.Run(ctx, command+" "+model, lines(inputs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}

	vecs, err := parser.Parse(result.StdoutText())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}
	if len(vecs) != len(inputs) {
		return nil, fmt.Errorf("%s: %w: %d vectors for %d inputs",
			command, domain.ErrMalformedOutput, len(vecs), len(inputs))
	}
	return vecs, nil
}

// Test evaluates a supervised model against a labelled file.
func (c *Client) Test(ctx context.Context, model, path string, k int) (domain.EvaluationResult, error) {
	for name, v := range map[string]string{"model": model, "input": path} {
		if err := checkToken(name, v); err != nil {
			return domain.EvaluationResult{}, fmt.Errorf("test: %w", err)
		}
	}

	result, err := c.runner.Run(ctx, fmt.Sprintf("test %s %s %d", model, path, positive(k)), "")
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("test: %w", err)
	}

	eval, err := ParseEvaluation(result.StdoutText())
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("test: %w", err)
	}
	return eval, nil
}

// checkToken rejects values that would split into several shell words.
func checkToken(name, v string) error {
	if v == "" {
		return fmt.Errorf("%w: empty %s", domain.ErrInvalidInput, name)
	}
	if strings.IndexFunc(v, isShellSpace) >= 0 {
		return fmt.Errorf("%w: %s %q contains whitespace", domain.ErrInvalidInput, name, v)
	}
	return nil
}

func checkQuery(command, model string, inputs []string) error {
	if err := checkToken("model", model); err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%s: %w: no input", command, domain.ErrInvalidInput)
	}
	return nil
}

func isShellSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// lines joins inputs into newline-terminated stdin text.
func lines(inputs []string) string {
	if len(inputs) == 0 {
		return ""
	}
	return strings.Join(inputs, "\n") + "\n"
}

func positive(k int) int {
	if k <= 0 {
		return domain.DefaultK
	}
	return k
}
