// Package preprocessors provides query text preprocessing implementations.
package preprocessors

import (
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.PreprocessorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple Preprocessors and runs them in order.
// It implements the PreprocessorPipeline interface.
type Pipeline struct {
	processors []driven.Preprocessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.Preprocessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs every line through all processors in order.
// The input slice is not modified.
func (p *Pipeline) Process(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		for _, processor := range p.processors {
			line = processor.Process(line)
		}
		out[i] = line
	}
	return out
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.Preprocessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
