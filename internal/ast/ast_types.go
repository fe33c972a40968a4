package ast

import "github.com/funvibe/javalens/internal/span"

// Type is a type reference appearing in a type position (§3 "Decl and
// type expressions", §4.3).
type Type interface {
	Node
	typeNode()
}

// PrimitiveType is one of the eight primitive type names.
type PrimitiveType struct {
	Span span.Span
	Name string
}

func (p *PrimitiveType) Pos() span.Span { return p.Span }
func (p *PrimitiveType) typeNode()       {}

// VoidType is the `void` return type.
type VoidType struct {
	Span span.Span
}

func (v *VoidType) Pos() span.Span { return v.Span }
func (v *VoidType) typeNode()       {}

// ClassType is a (possibly generic, possibly qualified) reference to a
// class or interface, e.g. `Map<String, List<Foo>>` or `a.b.C`. DefOpt and
// ParamArgsOpt are filled by assign_type / assign_parameterized_type via
// internal/analyze.Bindings, keyed by this node's pointer identity — see
// that package's doc comment for why the slot is a side-table entry
// rather than a field mutated in place (spec.md §9 Design Notes).
type ClassType struct {
	Span       span.Span
	Name       span.Span // simple name, last dotted component
	Qualifier  []span.Span
	TypeArgs   []Type
}

func (c *ClassType) Pos() span.Span { return c.Span }
func (c *ClassType) typeNode()       {}

// ArrayType is `T[]`.
type ArrayType struct {
	Span span.Span
	Elem Type
}

func (a *ArrayType) Pos() span.Span { return a.Span }
func (a *ArrayType) typeNode()       {}
