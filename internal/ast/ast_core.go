// Package ast is the lossless syntax tree produced by the parser (spec.md
// §3 "Syntax tree", §4). It is immutable except for the single-assignment
// resolution slots the analyzer and semantics passes fill in via the
// side-tables of internal/analyze.Bindings — see that package's doc
// comment for why the slots live off-node rather than on it.
package ast

import (
	"github.com/funvibe/javalens/internal/span"
	"github.com/google/uuid"
)

// DeclID is the unique identifier every declaration node is stamped with
// at parse time (spec.md §4.5 "each declaration carries a unique
// identifier generated during parse"). Grounded on google/uuid rather
// than the original's hand-rolled counter-based IdGen.
type DeclID = uuid.UUID

func NewDeclID() DeclID { return uuid.New() }

// Node is the base of every tree element; every terminal and every
// composite carries a Span (spec.md §3 "every terminal in the tree
// carries a span; spans are never mutated").
type Node interface {
	Pos() span.Span
}

// Decl is a top-level or nested declaration: Class | Interface.
type Decl interface {
	Node
	declNode()
}

// CompilationUnit is the result of parsing one source file (§6).
type CompilationUnit struct {
	Path       string
	PackageOpt *PackageDecl
	Imports    []*Import
	Main       Decl
}

func (c *CompilationUnit) Pos() span.Span {
	if c.PackageOpt != nil {
		return c.PackageOpt.Span
	}
	return c.Main.Pos()
}

// PackageDecl is the `package a.b.c;` declaration at the top of a unit.
type PackageDecl struct {
	Span       span.Span
	Components []span.Span // dot-joined identifiers, outermost first
}

func (p *PackageDecl) Pos() span.Span { return p.Span }

// Import is either a specific import (`import a.b.C;`) or a wildcard
// import (`import a.b.*;`) per the GLOSSARY.
type Import struct {
	Span       span.Span
	Components []span.Span
	Wildcard   bool
}

func (i *Import) Pos() span.Span { return i.Span }

func (i *Import) SimpleName() string {
	if i.Wildcard || len(i.Components) == 0 {
		return ""
	}
	return i.Components[len(i.Components)-1].Text
}

func (i *Import) PackagePath() []span.Span {
	if i.Wildcard {
		return i.Components
	}
	if len(i.Components) == 0 {
		return nil
	}
	return i.Components[:len(i.Components)-1]
}
