package domain

// ScoredLabel is one label emitted by the tool with its score.
type ScoredLabel struct {
	Label string  `json:"label" yaml:"label"`
	Score float64 `json:"score" yaml:"score"`
}

// Query supplies text to an operation, either as a file or inline lines.
// Inline lines are piped to the tool's standard input.
type Query struct {
	// Path is a file the tool reads directly.
	Path string

	// Lines are piped through stdin when Path is empty.
	Lines []string
}

// StdinPath is the path argument that makes the tool read standard input.
const StdinPath = "-"

// IsEmpty returns true if the query has neither a path nor lines.
func (q Query) IsEmpty() bool {
	return q.Path == "" && len(q.Lines) == 0
}

// EvaluationResult is the outcome of the tool's test subcommand.
type EvaluationResult struct {
	// Examples is the number of evaluated lines.
	Examples int `json:"examples" yaml:"examples"`

	// K is the number of labels predicted per line.
	K int `json:"k" yaml:"k"`

	// Precision is precision at K.
	Precision float64 `json:"precision" yaml:"precision"`

	// Recall is recall at K.
	Recall float64 `json:"recall" yaml:"recall"`
}
