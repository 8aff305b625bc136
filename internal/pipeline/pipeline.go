package pipeline

import (
	"github.com/mixlang/mixgen/internal/compose"
	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/manifest"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// PipelineContext carries state between processing stages.
type PipelineContext struct {
	ManifestPath string
	Manifest     *manifest.Manifest
	Graph        *typegraph.Graph

	Results []*compose.Result
	Notes   []string
	Errors  []*diagnostics.DiagnosticError
}

func NewPipelineContext(manifestPath string) *PipelineContext {
	return &PipelineContext{ManifestPath: manifestPath}
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}
