package driven

// Preprocessor rewrites one line of query text before it reaches the tool.
// Preprocessors are chained in a pipeline (e.g., lowercasing, punctuation).
type Preprocessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the rewritten line.
	Process(line string) string
}

// PreprocessorPipeline chains multiple Preprocessors.
type PreprocessorPipeline interface {
	// Process runs every line through all processors in order.
	Process(lines []string) []string
}
