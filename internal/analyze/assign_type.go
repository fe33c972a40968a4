package analyze

import (
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/diagnostics"
)

// AssignTypes is §4.4's assign_type pass: it walks every ClassType node
// reachable from root — extends/implements, field types, method return
// and parameter types, local variable types, type parameter bounds, and
// nested ClassType arguments — resolving each through a Scope built from
// its enclosing compilation unit's imports and the class-nesting chain
// it occurs in. A resolution failure is recorded as CodeUnresolvedType
// and the def_opt slot is left empty, per §7's "Recovered? Yes — slot
// left empty".
func AssignTypes(root *Root, bindings *Bindings, diags *diagnostics.Bag) {
	for _, unit := range root.Units {
		assignUnit(unit, root, nil, bindings, diags)
	}
	walkPackages(root.Subpackages, root, bindings, diags)
}

func walkPackages(packages []*Package, root *Root, bindings *Bindings, diags *diagnostics.Bag) {
	for _, pkg := range packages {
		for _, unit := range pkg.Units {
			assignUnit(unit, root, pkg, bindings, diags)
		}
		walkPackages(pkg.Subpackages, root, bindings, diags)
	}
}

func assignUnit(unit *ast.CompilationUnit, root *Root, pkg *Package, bindings *Bindings, diags *diagnostics.Bag) {
	scope := NewScope(root, unit, pkg)
	file := unit.Path

	classLike, ok := bindings.DeclDef(mainDeclID(unit.Main))
	if !ok {
		return
	}
	if cl, ok := classLike.(ClassLike); ok {
		walkClassLike(cl, scope, bindings, diags, file)
	}
}

func mainDeclID(decl ast.Decl) ast.DeclID {
	switch d := decl.(type) {
	case *ast.Class:
		return d.ID
	case *ast.Interface:
		return d.ID
	default:
		return ast.DeclID{}
	}
}

func walkClassLike(cl ClassLike, scope *Scope, bindings *Bindings, diags *diagnostics.Bag, file string) {
	scope.Push(&Level{Class: cl, TypeParams: cl.TypeParams()})
	defer scope.Pop()

	for _, tp := range cl.TypeParams() {
		for _, bound := range tp.Syntax.Extends {
			walkClassType(bound, scope, bindings, diags, file)
		}
	}

	switch c := cl.(type) {
	case *ClassDef:
		if c.ExtendOpt != nil {
			walkClassType(c.ExtendOpt, scope, bindings, diags, file)
		}
		for _, impl := range c.Implements {
			walkClassType(impl, scope, bindings, diags, file)
		}
		for _, ctor := range c.Constructors {
			walkParams(ctor.Params, scope, bindings, diags, file)
			if ctor.Block != nil {
				walkBlock(ctor.Block, scope, bindings, diags, file)
			}
		}
		for _, m := range c.Methods {
			walkMethod(m, scope, bindings, diags, file)
		}
		for _, fg := range c.Fields {
			walkType(fg.Syntax.Type, scope, bindings, diags, file)
		}
	case *InterfaceDef:
		for _, impl := range c.Implements {
			walkClassType(impl, scope, bindings, diags, file)
		}
		for _, m := range c.Methods {
			walkMethod(m, scope, bindings, diags, file)
		}
		for _, fg := range c.Fields {
			walkType(fg.Syntax.Type, scope, bindings, diags, file)
		}
	}

	for _, nested := range cl.Nested() {
		walkClassLike(nested, scope, bindings, diags, file)
	}
}

func walkMethod(m *ast.Method, scope *Scope, bindings *Bindings, diags *diagnostics.Bag, file string) {
	var tpDefs []*TypeParamDef
	for _, tp := range m.TypeParams {
		def, ok := bindings.TypeParamDefOf(tp)
		if !ok {
			def = &TypeParamDef{Syntax: tp, Name: tp.Name.Text}
		}
		tpDefs = append(tpDefs, def)
		for _, bound := range tp.Extends {
			walkClassType(bound, scope, bindings, diags, file)
		}
	}

	scope.Push(&Level{Method: m, TypeParams: tpDefs})
	defer scope.Pop()

	walkType(m.ReturnType, scope, bindings, diags, file)
	walkParams(m.Params, scope, bindings, diags, file)

	if m.BlockOpt != nil {
		walkBlock(m.BlockOpt, scope, bindings, diags, file)
	}
}

func walkParams(params []*ast.Param, scope *Scope, bindings *Bindings, diags *diagnostics.Bag, file string) {
	for _, p := range params {
		walkType(p.Type, scope, bindings, diags, file)
	}
}

// walkBlock descends every statement shape that can carry a local
// variable's declared type, without needing to enter expression trees
// (§4.4's assign_type list stops at local types).
func walkBlock(b *ast.Block, scope *Scope, bindings *Bindings, diags *diagnostics.Bag, file string) {
	for _, stmt := range b.Stmts {
		walkStatement(stmt, scope, bindings, diags, file)
	}
}

func walkStatement(stmt ast.Statement, scope *Scope, bindings *Bindings, diags *diagnostics.Bag, file string) {
	switch s := stmt.(type) {
	case *ast.Block:
		walkBlock(s, scope, bindings, diags, file)
	case *ast.VariableDeclaratorsStmt:
		walkType(s.Type, scope, bindings, diags, file)
	case *ast.If:
		walkStatement(s.Then, scope, bindings, diags, file)
		if s.ElseOpt != nil {
			walkStatement(s.ElseOpt, scope, bindings, diags, file)
		}
	case *ast.WhileLoop:
		walkStatement(s.Block, scope, bindings, diags, file)
	case *ast.DoWhile:
		walkStatement(s.Block, scope, bindings, diags, file)
	case *ast.ForLoop:
		if s.InitOpt != nil {
			walkStatement(s.InitOpt, scope, bindings, diags, file)
		}
		walkStatement(s.Block, scope, bindings, diags, file)
	case *ast.ForEach:
		walkType(s.Type, scope, bindings, diags, file)
		walkStatement(s.Block, scope, bindings, diags, file)
	case *ast.Try:
		for _, res := range s.Resources {
			if res.TypeOpt != nil {
				walkType(res.TypeOpt, scope, bindings, diags, file)
			}
		}
		walkBlock(s.Block, scope, bindings, diags, file)
		for _, c := range s.Catches {
			for _, ct := range c.Types {
				walkClassType(ct, scope, bindings, diags, file)
			}
			walkBlock(c.Block, scope, bindings, diags, file)
		}
		if s.FinallyOpt != nil {
			walkBlock(s.FinallyOpt, scope, bindings, diags, file)
		}
	case *ast.Switch:
		for _, c := range s.Cases {
			for _, inner := range c.Stmts {
				walkStatement(inner, scope, bindings, diags, file)
			}
		}
	case *ast.Synchronized:
		walkBlock(s.Block, scope, bindings, diags, file)
	case *ast.Labeled:
		walkStatement(s.Stmt, scope, bindings, diags, file)
	}
}

func walkType(t ast.Type, scope *Scope, bindings *Bindings, diags *diagnostics.Bag, file string) {
	switch tt := t.(type) {
	case *ast.ClassType:
		walkClassType(tt, scope, bindings, diags, file)
	case *ast.ArrayType:
		walkType(tt.Elem, scope, bindings, diags, file)
	}
}

func walkClassType(ct *ast.ClassType, scope *Scope, bindings *Bindings, diags *diagnostics.Bag, file string) {
	def, ok := scope.ResolveType(ct.Name.Text)
	if !ok {
		diags.Addf(diagnostics.CodeUnresolvedType, file, ct.Pos(), "cannot resolve type %q", ct.Name.Text)
	} else {
		bindings.SetClassTypeDef(ct, def)
	}

	for _, arg := range ct.TypeArgs {
		walkType(arg, scope, bindings, diags, file)
	}
}
