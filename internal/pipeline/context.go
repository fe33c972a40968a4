package pipeline

import (
	"github.com/funvibe/javalens/internal/analyze"
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/diagnostics"
	"github.com/funvibe/javalens/internal/extract"
	"github.com/funvibe/javalens/internal/token"
)

// Source is one named unit of input text — a file path plus its
// contents — the unit the pipeline is driven over.
type Source struct {
	Path string
	Text string
}

// Context carries one batch's state through the pipeline, accumulating
// the output of each stage (spec.md §5 "every batch owns its own Root,
// token store, and diagnostics list").
type Context struct {
	Sources []Source

	// TargetPath, if set, narrows ExtractStage's output to the
	// compilation unit at this path (config.Manifest's "target"); empty
	// means the whole batch is both target and full root.
	TargetPath string

	// WildcardImportRoots are dotted package paths ResolveStage seeds
	// onto the built Root as analyze.Root.ExtraWildcardRoots
	// (config.Manifest's "wildcardImportRoots").
	WildcardImportRoots [][]string

	Tokens map[string][]token.Token
	Units  []*ast.CompilationUnit

	Root     *analyze.Root
	Bindings *analyze.Bindings

	Extraction *extract.Extraction

	Diagnostics *diagnostics.Bag
	FatalErr    error
}

// NewContext seeds a Context for a batch of sources.
func NewContext(sources ...Source) *Context {
	return &Context{
		Sources:     sources,
		Tokens:      make(map[string][]token.Token, len(sources)),
		Diagnostics: diagnostics.NewBag(),
	}
}

// Failed reports whether a prior stage recorded a fatal, batch-aborting
// error (spec.md §7: TokenizeError/ParseError "aborts the unit").
func (c *Context) Failed() bool { return c.FatalErr != nil }
