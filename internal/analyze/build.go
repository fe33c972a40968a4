package analyze

import (
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/span"
)

// Build translates one compilation unit's syntax declarations into a
// single-unit Root (spec.md §4.4 "Build"). The resulting Package chain
// nests left-to-right from the unit's package declaration; merge.go
// later unifies same-path chains from different units.
//
// Build also populates bindings.declDef for every declaration it
// constructs a Definition for. The spec attributes def_opt-filling to the
// semantics pass "matching by declaration id", but the Definition records
// themselves only exist from this point on — there is nothing for
// semantics to match against until build creates them, so build writes
// the DeclID->Definition entries as it goes and semantics (which re-walks
// the same syntax a second time) looks them up by id rather than
// reconstructing them.
func Build(unit *ast.CompilationUnit, bindings *Bindings) *Root {
	classLike := buildDecl(unit.Main, bindings)

	root := &Root{}

	if unit.PackageOpt == nil {
		root.Units = []*ast.CompilationUnit{unit}
		root.Classes = []ClassLike{classLike}
		return root
	}

	pkg := buildPackageChain(unit, classLike, unit.PackageOpt.Components)
	root.Subpackages = []*Package{pkg}
	return root
}

// buildPackageChain nests one Package per dotted component, left to
// right, leaving the unit and its top-level class at the leaf (spec.md
// §4.4 "Build" — grounded on original_source's build/package.rs
// build_nested).
func buildPackageChain(unit *ast.CompilationUnit, classLike ClassLike, components []span.Span) *Package {
	pkg := &Package{Name: components[0].Text}
	if len(components) == 1 {
		pkg.Units = []*ast.CompilationUnit{unit}
		pkg.Classes = []ClassLike{classLike}
		return pkg
	}
	pkg.Subpackages = []*Package{buildPackageChain(unit, classLike, components[1:])}
	return pkg
}

func buildDecl(decl ast.Decl, bindings *Bindings) ClassLike {
	switch d := decl.(type) {
	case *ast.Class:
		return buildClass(d, bindings)
	case *ast.Interface:
		return buildInterface(d, bindings)
	default:
		return nil
	}
}

func buildClass(c *ast.Class, bindings *Bindings) *ClassDef {
	def := &ClassDef{
		Syntax:    c,
		Name:      c.Name.Text,
		ExtendOpt: c.ExtendOpt,
		Implements: c.Implements,
	}

	for _, tp := range c.TypeParams {
		tpDef := &TypeParamDef{Syntax: tp, Name: tp.Name.Text}
		bindings.SetTypeParamDef(tp, tpDef)
		bindings.SetDeclDef(tp.ID, tpDef)
		def.TypeParamDefs = append(def.TypeParamDefs, tpDef)
	}

	for _, item := range c.Body {
		switch m := item.(type) {
		case *ast.Constructor:
			def.Constructors = append(def.Constructors, m)
			bindings.SetDeclDef(m.ID, &ConstructorDef{Syntax: m, Name: m.Name.Text})
		case *ast.Method:
			def.Methods = append(def.Methods, m)
			bindings.SetDeclDef(m.ID, &MethodDef{Syntax: m, Name: m.Name.Text})
		case *ast.FieldDeclarators:
			fg := buildFieldGroup(m, bindings)
			def.Fields = append(def.Fields, fg)
		case *ast.Class:
			nested := buildClass(m, bindings)
			def.NestedTypes = append(def.NestedTypes, nested)
		case *ast.Interface:
			nested := buildInterface(m, bindings)
			def.NestedTypes = append(def.NestedTypes, nested)
		}
	}

	bindings.SetDeclDef(c.ID, def)
	return def
}

func buildInterface(i *ast.Interface, bindings *Bindings) *InterfaceDef {
	def := &InterfaceDef{
		Syntax:     i,
		Name:       i.Name.Text,
		Implements: i.Implements,
	}

	for _, tp := range i.TypeParams {
		tpDef := &TypeParamDef{Syntax: tp, Name: tp.Name.Text}
		bindings.SetTypeParamDef(tp, tpDef)
		bindings.SetDeclDef(tp.ID, tpDef)
		def.TypeParamDefs = append(def.TypeParamDefs, tpDef)
	}

	for _, item := range i.Body {
		switch m := item.(type) {
		case *ast.Method:
			def.Methods = append(def.Methods, m)
			bindings.SetDeclDef(m.ID, &MethodDef{Syntax: m, Name: m.Name.Text})
		case *ast.FieldDeclarators:
			fg := buildFieldGroup(m, bindings)
			def.Fields = append(def.Fields, fg)
		case *ast.Class:
			def.NestedTypes = append(def.NestedTypes, buildClass(m, bindings))
		case *ast.Interface:
			def.NestedTypes = append(def.NestedTypes, buildInterface(m, bindings))
		}
	}

	bindings.SetDeclDef(i.ID, def)
	return def
}

func buildFieldGroup(fd *ast.FieldDeclarators, bindings *Bindings) *FieldGroup {
	fg := &FieldGroup{Syntax: fd}
	for _, decl := range fd.Declarators {
		field := &Field{Syntax: decl, Group: fg, Name: decl.Name.Text}
		fg.Fields = append(fg.Fields, field)
		bindings.SetDeclDef(decl.ID, field)
	}
	return fg
}
