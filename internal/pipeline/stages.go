package pipeline

import (
	"github.com/funvibe/javalens/internal/analyze"
	"github.com/funvibe/javalens/internal/extract"
	"github.com/funvibe/javalens/internal/lexer"
	"github.com/funvibe/javalens/internal/parser"
	"github.com/funvibe/javalens/internal/semantics"
)

// TokenizeStage runs lexer.Tokenize over every Source (spec.md §6
// "tokenize(text) -> Result<Tokens, TokenizeError>"). A TokenizeError on
// any source aborts the batch — the tokenizer's error is fatal per §7.
type TokenizeStage struct{}

func (TokenizeStage) Process(ctx *Context) *Context {
	for _, src := range ctx.Sources {
		tokens, err := lexer.Tokenize(src.Text)
		if err != nil {
			ctx.FatalErr = err
			return ctx
		}
		ctx.Tokens[src.Path] = tokens
	}
	return ctx
}

// ParseStage runs parser.Parse over every source's token stream (spec.md
// §6 "parse(tokens) -> Result<CompilationUnit, ParseError>"). A
// ParseError on any unit aborts the batch.
type ParseStage struct{}

func (ParseStage) Process(ctx *Context) *Context {
	if ctx.Failed() {
		return ctx
	}
	for _, src := range ctx.Sources {
		unit, err := parser.Parse(ctx.Tokens[src.Path], src.Path)
		if err != nil {
			ctx.FatalErr = err
			return ctx
		}
		ctx.Units = append(ctx.Units, unit)
	}
	return ctx
}

// ResolveStage runs build, merge, assign_type, and
// assign_parameterized_type over every parsed unit (spec.md §6
// "resolve(units) -> Root").
type ResolveStage struct{}

func (ResolveStage) Process(ctx *Context) *Context {
	if ctx.Failed() {
		return ctx
	}

	ctx.Bindings = analyze.NewBindings()

	roots := make([]*analyze.Root, 0, len(ctx.Units))
	for _, unit := range ctx.Units {
		roots = append(roots, analyze.Build(unit, ctx.Bindings))
	}

	root := analyze.Merge(roots, ctx.Diagnostics, batchFile(ctx))
	root.ExtraWildcardRoots = ctx.WildcardImportRoots
	ctx.Root = root

	analyze.AssignTypes(root, ctx.Bindings, ctx.Diagnostics)
	analyze.AssignParameterizedTypes(root, ctx.Bindings)

	return ctx
}

// BindStage runs the semantic (name-binding) pass over the resolved
// Root (spec.md §6 "bind(unit, root) -> ()").
type BindStage struct{}

func (BindStage) Process(ctx *Context) *Context {
	if ctx.Failed() {
		return ctx
	}
	semantics.Bind(ctx.Root, ctx.Bindings)
	return ctx
}

// ExtractStage flattens the fully resolved and bound Root into an
// Extraction (spec.md §6 "extract(target_root, full_root) ->
// Extraction"). full_root is always ctx.Root; target_root narrows to
// ctx.TargetPath's compilation unit when set, else the two coincide and
// the whole batch is extracted at once.
type ExtractStage struct{}

func (ExtractStage) Process(ctx *Context) *Context {
	if ctx.Failed() {
		return ctx
	}
	targetRoot := ctx.Root
	if ctx.TargetPath != "" {
		targetRoot = analyze.TargetRoot(ctx.Root, ctx.TargetPath)
	}
	ctx.Extraction = extract.Extract(targetRoot, ctx.Bindings)
	return ctx
}

// Standard is the default four-and-extract stage order a batch runner
// drives every compilation unit through.
func Standard() *Pipeline {
	return New(
		TokenizeStage{},
		ParseStage{},
		ResolveStage{},
		BindStage{},
		ExtractStage{},
	)
}

func batchFile(ctx *Context) string {
	if len(ctx.Sources) == 0 {
		return ""
	}
	return ctx.Sources[0].Path
}
