package analyze

import "github.com/funvibe/javalens/internal/ast"

// Bindings is the side-table holding every resolution slot named in
// spec.md §3 "Mutable holes", keyed by the syntax node's pointer
// identity. Each map is written once per key and read only afterwards:
// assign_type/assign_parameterized_type write the type maps, semantics
// writes resolved names, and declarations are registered by build
// (classes, interfaces, methods, constructors, fields, class type
// parameters) and by semantics (parameters, locals, method type
// parameters) — the same
// single-writer-then-many-readers discipline the spec requires of the
// in-tree slots it's modeling, just moved off-node.
type Bindings struct {
	nameResolved    map[*ast.Name]Definition
	classTypeDef    map[*ast.ClassType]ClassLike
	classTypeArgs   map[*ast.ClassType]*Parameterization
	typeParamDef    map[*ast.TypeParam]*TypeParamDef
	declDef         map[ast.DeclID]Definition
}

// Parameterization is the "parameterized view" of §4.4's
// assign_parameterized_type: the actual type arguments substituted into
// a ClassType reference whose resolved definition carries type
// parameters. The substitution is recorded on the reference, not written
// back into the referenced definition (§4.4 "structural and shallow").
type Parameterization struct {
	Definition ClassLike
	Args       []ast.Type
}

func NewBindings() *Bindings {
	return &Bindings{
		nameResolved:  make(map[*ast.Name]Definition),
		classTypeDef:  make(map[*ast.ClassType]ClassLike),
		classTypeArgs: make(map[*ast.ClassType]*Parameterization),
		typeParamDef:  make(map[*ast.TypeParam]*TypeParamDef),
		declDef:       make(map[ast.DeclID]Definition),
	}
}

// SetNameResolved fills a Name's resolved_opt slot. Panics on a second
// write to the same node — the single-assignment invariant is load
// bearing (spec.md §3 "every slot is written exactly once").
func (b *Bindings) SetNameResolved(n *ast.Name, def Definition) {
	if _, exists := b.nameResolved[n]; exists {
		panic("analyze: Name.resolved_opt written twice")
	}
	b.nameResolved[n] = def
}

func (b *Bindings) NameResolved(n *ast.Name) (Definition, bool) {
	d, ok := b.nameResolved[n]
	return d, ok
}

func (b *Bindings) SetClassTypeDef(ct *ast.ClassType, def ClassLike) {
	if _, exists := b.classTypeDef[ct]; exists {
		panic("analyze: ClassType.def_opt written twice")
	}
	b.classTypeDef[ct] = def
}

func (b *Bindings) ClassTypeDef(ct *ast.ClassType) (ClassLike, bool) {
	d, ok := b.classTypeDef[ct]
	return d, ok
}

func (b *Bindings) SetParameterization(ct *ast.ClassType, p *Parameterization) {
	b.classTypeArgs[ct] = p
}

func (b *Bindings) ParameterizationOf(ct *ast.ClassType) (*Parameterization, bool) {
	p, ok := b.classTypeArgs[ct]
	return p, ok
}

func (b *Bindings) SetTypeParamDef(tp *ast.TypeParam, def *TypeParamDef) {
	if _, exists := b.typeParamDef[tp]; exists {
		panic("analyze: TypeParam.def_opt written twice")
	}
	b.typeParamDef[tp] = def
}

func (b *Bindings) TypeParamDefOf(tp *ast.TypeParam) (*TypeParamDef, bool) {
	d, ok := b.typeParamDef[tp]
	return d, ok
}

func (b *Bindings) SetDeclDef(id ast.DeclID, def Definition) {
	if _, exists := b.declDef[id]; exists {
		panic("analyze: declaration def_opt written twice")
	}
	b.declDef[id] = def
}

func (b *Bindings) DeclDef(id ast.DeclID) (Definition, bool) {
	d, ok := b.declDef[id]
	return d, ok
}
