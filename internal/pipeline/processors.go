package pipeline

import (
	"github.com/mixlang/mixgen/internal/compose"
	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/manifest"
)

// ManifestProcessor loads the manifest and builds the type graph from it.
type ManifestProcessor struct{}

func (mp *ManifestProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Manifest == nil {
		m, err := manifest.Load(ctx.ManifestPath)
		if err != nil {
			derr := diagnostics.NewError(diagnostics.ErrM001, ctx.ManifestPath, err.Error())
			ctx.Errors = append(ctx.Errors, derr)
			return ctx
		}
		ctx.Manifest = m
	}

	g, errs := manifest.BuildGraph(ctx.Manifest)
	ctx.Errors = append(ctx.Errors, errs...)
	if len(errs) == 0 {
		ctx.Graph = g
	}
	return ctx
}

// ComposeProcessor runs every operation in the manifest against the graph.
type ComposeProcessor struct{}

func (cp *ComposeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Graph == nil || ctx.Manifest == nil {
		return ctx
	}

	for _, op := range ctx.Manifest.Operations {
		res, derr := cp.runOperation(ctx, &op)
		if derr != nil {
			ctx.Errors = append(ctx.Errors, derr)
			continue
		}
		ctx.Results = append(ctx.Results, res)
		ctx.Notes = append(ctx.Notes, res.Notes...)
	}
	return ctx
}

func (cp *ComposeProcessor) runOperation(ctx *PipelineContext, op *manifest.OperationSpec) (*compose.Result, *diagnostics.DiagnosticError) {
	if op.Mix != nil {
		in, derr := manifest.BuildMixInput(op.Mix)
		if derr != nil {
			return nil, derr
		}
		return compose.Mix(ctx.Graph, in)
	}

	in, derr := manifest.BuildDelegateInput(op.Delegate)
	if derr != nil {
		return nil, derr
	}
	return compose.Delegate(ctx.Graph, in)
}
