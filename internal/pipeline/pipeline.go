// Package pipeline composes the stages of spec.md §4 — tokenize,
// parse, resolve (build+merge+assign_type+assign_parameterized_type),
// bind, extract — into the sequence a batch runner or LSP server drives a
// compilation unit through, grounded on the teacher's own
// internal/pipeline package and its Processor/Pipeline shape.
package pipeline

// Processor is one stage of a Pipeline. It never blocks and never
// yields (spec.md §5 "single-threaded and non-suspending"); a stage
// that hits a fatal error records it on the context and returns it
// rather than panicking; later stages still run, see ctx.Failed(), and
// skip their own work.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of Processors over one Context.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, continuing even after a stage
// records a fatal error — later stages are expected to guard on
// ctx.Failed() and skip their own work, but still run so that, e.g., an
// LSP client gets whatever diagnostics did accumulate rather than none
// at all.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
