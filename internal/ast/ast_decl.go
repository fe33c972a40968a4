package ast

import "github.com/funvibe/javalens/internal/span"

// Modifier is one keyword or annotation modifying a declaration
// (spec.md §4.4 "build" / original_source modifier.rs keyword set).
type Modifier struct {
	Span span.Span
	Name string // e.g. "public", "static", "final"
}

// TypeParam is a single `<T extends Bound>` generic parameter.
type TypeParam struct {
	ID      DeclID
	Span    span.Span
	Name    span.Span
	Extends []*ClassType
}

func (t *TypeParam) Pos() span.Span { return t.Span }

// Class is a class declaration: modifiers, optional superclass, zero or
// more implemented interfaces, a body of members (spec.md §3).
type Class struct {
	ID         DeclID
	Span       span.Span
	Modifiers  []Modifier
	Name       span.Span
	TypeParams []*TypeParam
	ExtendOpt  *ClassType
	Implements []*ClassType
	Body       []ClassBodyItem
}

func (c *Class) Pos() span.Span { return c.Span }
func (c *Class) declNode()      {}

// Interface is an interface declaration; it shares the class body shape
// but never has an ExtendOpt (interfaces `extend` other interfaces via
// Implements, matching javac's own grammar quirk).
type Interface struct {
	ID         DeclID
	Span       span.Span
	Modifiers  []Modifier
	Name       span.Span
	TypeParams []*TypeParam
	Implements []*ClassType
	Body       []ClassBodyItem
}

func (i *Interface) Pos() span.Span { return i.Span }
func (i *Interface) declNode()      {}

// ClassBodyItem is one member of a class or interface body.
type ClassBodyItem interface {
	Node
	classBodyItemNode()
}

// Method is a method declaration; BlockOpt is nil for abstract/interface
// methods with no body.
type Method struct {
	ID         DeclID
	Span       span.Span
	Modifiers  []Modifier
	ReturnType Type
	Name       span.Span
	TypeParams []*TypeParam
	Params     []*Param
	BlockOpt   *Block
}

func (m *Method) Pos() span.Span       { return m.Span }
func (m *Method) classBodyItemNode()   {}

// Constructor is a constructor declaration.
type Constructor struct {
	ID        DeclID
	Span      span.Span
	Modifiers []Modifier
	Name      span.Span
	Params    []*Param
	Block     *Block
}

func (c *Constructor) Pos() span.Span     { return c.Span }
func (c *Constructor) classBodyItemNode() {}

// Param is one formal parameter of a method, constructor, or lambda.
type Param struct {
	ID       DeclID
	Span     span.Span
	Name     span.Span
	Type     Type // may be nil for an untyped lambda parameter
	Variadic bool
}

func (p *Param) Pos() span.Span { return p.Span }

// FieldDeclarators is a field declaration statement, possibly declaring
// several comma-separated names sharing one type and modifier set
// (spec.md §4.4 "FieldGroup").
type FieldDeclarators struct {
	Span        span.Span
	Modifiers   []Modifier
	Type        Type
	Declarators []*VariableDeclarator
}

func (f *FieldDeclarators) Pos() span.Span     { return f.Span }
func (f *FieldDeclarators) classBodyItemNode() {}

// VariableDeclarator is one `name = init` (or bare `name`) within a field
// or local variable declaration. TypeOpt is nil for a declarator that
// shares its type with siblings on the enclosing FieldDeclarators/
// VariableDeclaratorsStmt; a try-with-resources resource has no such
// enclosing group (each resource names its own type), so parseResource
// fills TypeOpt directly on the declarator instead.
type VariableDeclarator struct {
	ID      DeclID
	Span    span.Span
	Name    span.Span
	TypeOpt Type
	InitOpt Expr
}

func (v *VariableDeclarator) Pos() span.Span { return v.Span }

// NestedClass/NestedInterface let Class/Interface satisfy ClassBodyItem.
func (c *Class) classBodyItemNode()     {}
func (i *Interface) classBodyItemNode() {}

// Enum is a (structurally minimal) enum declaration: a constant list plus
// an optional class-shaped body, enough to parse and bind the fixtures
// spec.md §6 names without modeling enum constant bodies.
type Enum struct {
	ID         DeclID
	Span       span.Span
	Modifiers  []Modifier
	Name       span.Span
	Implements []*ClassType
	Constants  []span.Span
	Body       []ClassBodyItem
}

func (e *Enum) Pos() span.Span     { return e.Span }
func (e *Enum) classBodyItemNode() {}

// Annotation is an `@interface` annotation type declaration, retained as
// an opaque member for parsing purposes (spec.md §3 lists it as a
// ClassBodyItem variant; it is not a target of reference resolution).
type Annotation struct {
	Span span.Span
	Name span.Span
}

func (a *Annotation) Pos() span.Span     { return a.Span }
func (a *Annotation) classBodyItemNode() {}

// StaticInitializer is a `static { ... }` block.
type StaticInitializer struct {
	Span  span.Span
	Block *Block
}

func (s *StaticInitializer) Pos() span.Span     { return s.Span }
func (s *StaticInitializer) classBodyItemNode() {}
