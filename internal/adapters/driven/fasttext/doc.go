// Package fasttext drives the fastText command-line tool.
//
// A Runner prefixes arguments with the local executable and installs it on
// first use. RenderArgs turns option maps into flags. The parsers turn the
// tool's loosely framed stdout into typed results:
//
//   - ParseLines: predict
//   - ParseLabelScores: predict-prob
//   - BlockParser: nn and analogies, whose output is framed by prompts
//   - VectorParser: print-word-vectors and print-sentence-vectors
//   - ParseEvaluation: test
//
// Client wires these into the driven.TextTool port.
package fasttext
