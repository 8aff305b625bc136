package gosrc

import (
	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/pipeline"
)

// Processor feeds exported Go types into the graph built from the manifest.
// It must run after the manifest stage so the graph exists.
type Processor struct {
	WorkDir  string
	Packages []string
}

func (gp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(gp.Packages) == 0 || ctx.Graph == nil {
		return ctx
	}

	ins := NewInspector(gp.WorkDir)
	if err := ins.Load(gp.Packages...); err != nil {
		derr := diagnostics.NewError(diagnostics.ErrG005, err.Error()).WithCause(err)
		ctx.Errors = append(ctx.Errors, derr)
		return ctx
	}

	ctx.Errors = append(ctx.Errors, ins.Populate(ctx.Graph)...)
	return ctx
}
