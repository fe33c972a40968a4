// Package analyze is the third pipeline stage (after tokenize and
// parse): it folds parsed syntax
// trees into the canonical definition tree of spec.md §3 ("Root") and
// fills the syntax tree's resolution slots.
//
// The original design (original_source/src/analyze) gives every syntax
// node carrying a resolution slot a lifetime-scoped back-pointer into the
// definition tree, and the definition tree borrows the syntax nodes right
// back — a mutual-borrow shape Rust's lifetimes can express but that would
// force an ast<->analyze import cycle in Go. This package breaks the
// cycle with a side-table: Bindings holds maps keyed by syntax-node
// pointer identity (*ast.Name, *ast.ClassType, *ast.TypeParam) plus
// ast.DeclID, the same shape go/types.Info uses to keep go/ast free of any
// dependency on go/types. §9 Design Notes calls this option out directly
// ("a side-table keyed by node id — preferred for strict aliasing rules").
package analyze

import "github.com/funvibe/javalens/internal/ast"

// Definition is any declaration record a Name or ClassType can resolve
// to (GLOSSARY "Definition").
type Definition interface {
	DefSpan() ast.Node // the definition's own declaring node, for location
	SimpleName() string
}

// ClassLike is the shared resolution interface of Class and Interface
// definitions (GLOSSARY "ClassLike").
type ClassLike interface {
	Definition
	classLikeNode()
	Nested() []ClassLike
	TypeParams() []*TypeParamDef
	FieldGroups() []*FieldGroup
}

// Root is the analyzer's canonical view of one resolved batch (spec.md
// §3 "Definition tree").
type Root struct {
	Subpackages []*Package
	Units       []*ast.CompilationUnit
	Classes     []ClassLike // top-level classes declared with no package

	// ExtraWildcardRoots are dotted package paths a batch config.Manifest
	// asks every unit to treat as if it carried its own `import x.y.*;`,
	// seeded alongside the implicit java.lang (SPEC_FULL.md
	// "Configuration").
	ExtraWildcardRoots [][]string
}

// Package is one segment of a dotted package path; Subpackages chain
// left-to-right the way build.go nests a `package a.b.c;` declaration.
type Package struct {
	Name        string
	Units       []*ast.CompilationUnit
	Subpackages []*Package
	Classes     []ClassLike
}

// FindPackage walks path component-by-component through r's Subpackages,
// returning the Package at the end of the chain if every component
// matched (used by resolve_type's specific/wildcard-import and
// implicit-java.lang steps, §4.4).
func (r *Root) FindPackage(path []string) (*Package, bool) {
	if len(path) == 0 {
		return nil, false
	}
	packages := r.Subpackages
	var pkg *Package
	for _, name := range path {
		found := false
		for _, p := range packages {
			if p.Name == name {
				pkg = p
				packages = p.Subpackages
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return pkg, true
}

// FindClassInPackage resolves simpleName among the direct classes of the
// package named by path (not its subpackages or nested classes).
func (r *Root) FindClassInPackage(path []string, simpleName string) (ClassLike, bool) {
	pkg, ok := r.FindPackage(path)
	if !ok {
		return nil, false
	}
	return findClassByName(pkg.Classes, simpleName)
}

// ClassDef is the definition-tree counterpart of ast.Class.
type ClassDef struct {
	Syntax        *ast.Class
	Name          string
	TypeParamDefs []*TypeParamDef
	ExtendOpt     *ast.ClassType
	Implements    []*ast.ClassType
	Constructors  []*ast.Constructor
	Methods       []*ast.Method
	Fields        []*FieldGroup
	NestedTypes   []ClassLike
}

func (c *ClassDef) DefSpan() ast.Node           { return c.Syntax }
func (c *ClassDef) SimpleName() string          { return c.Name }
func (c *ClassDef) classLikeNode()              {}
func (c *ClassDef) Nested() []ClassLike         { return c.NestedTypes }
func (c *ClassDef) TypeParams() []*TypeParamDef { return c.TypeParamDefs }
func (c *ClassDef) FieldGroups() []*FieldGroup  { return c.Fields }

// InterfaceDef is the definition-tree counterpart of ast.Interface.
type InterfaceDef struct {
	Syntax        *ast.Interface
	Name          string
	TypeParamDefs []*TypeParamDef
	Implements    []*ast.ClassType
	Methods       []*ast.Method
	Fields        []*FieldGroup
	NestedTypes   []ClassLike
}

func (i *InterfaceDef) DefSpan() ast.Node           { return i.Syntax }
func (i *InterfaceDef) SimpleName() string          { return i.Name }
func (i *InterfaceDef) classLikeNode()              {}
func (i *InterfaceDef) Nested() []ClassLike         { return i.NestedTypes }
func (i *InterfaceDef) TypeParams() []*TypeParamDef { return i.TypeParamDefs }
func (i *InterfaceDef) FieldGroups() []*FieldGroup  { return i.Fields }

// FieldGroup is one `Type name1 = e1, name2 = e2;` declaration folded
// into per-name Field records sharing the group's modifiers and type.
type FieldGroup struct {
	Syntax *ast.FieldDeclarators
	Fields []*Field
}

// Field is a single declared name within a FieldGroup.
type Field struct {
	Syntax *ast.VariableDeclarator
	Group  *FieldGroup
	Name   string
}

func (f *Field) DefSpan() ast.Node  { return f.Syntax }
func (f *Field) SimpleName() string { return f.Name }

// MethodDef wraps an ast.Method purely to give it the Definition
// interface; the analyzer never needs a definition-tree shape richer than
// the syntax node itself for methods (method bodies don't get their own
// nested scope-relevant children beyond what semantics walks directly).
type MethodDef struct {
	Syntax *ast.Method
	Name   string
}

func (m *MethodDef) DefSpan() ast.Node  { return m.Syntax }
func (m *MethodDef) SimpleName() string { return m.Name }

// ConstructorDef wraps an ast.Constructor.
type ConstructorDef struct {
	Syntax *ast.Constructor
	Name   string
}

func (c *ConstructorDef) DefSpan() ast.Node  { return c.Syntax }
func (c *ConstructorDef) SimpleName() string { return c.Name }

// ParamDef wraps an ast.Param.
type ParamDef struct {
	Syntax *ast.Param
	Name   string
}

func (p *ParamDef) DefSpan() ast.Node  { return p.Syntax }
func (p *ParamDef) SimpleName() string { return p.Name }

// LocalDef wraps the declaring node of a name introduced inside a block:
// an ast.VariableDeclarator for a local variable or for-each variable, or
// an ast.CatchClause for a caught exception's name (the only block-local
// binding form with no dedicated declarator node).
type LocalDef struct {
	Syntax ast.Node
	Name   string
}

func (l *LocalDef) DefSpan() ast.Node  { return l.Syntax }
func (l *LocalDef) SimpleName() string { return l.Name }

// TypeParamDef wraps an ast.TypeParam.
type TypeParamDef struct {
	Syntax *ast.TypeParam
	Name   string
}

func (t *TypeParamDef) DefSpan() ast.Node  { return t.Syntax }
func (t *TypeParamDef) SimpleName() string { return t.Name }
