package analyze

import (
	"strconv"

	"github.com/funvibe/javalens/internal/ast"
)

// AssignParameterizedTypes is §4.4's assign_parameterized_type pass: a
// second walk over every ClassType already resolved by AssignTypes,
// attaching a Parameterization when the reference supplies type
// arguments and its resolved definition declares type parameters. The
// substitution is structural and shallow — it records the actual
// arguments against the reference, it does not rewrite the referenced
// definition (§4.4 "structural and shallow").
//
// §9 Open Question (a) asks how to avoid quadratic blow-up when the
// same generic definition is instantiated repeatedly with the same
// arguments inside deeply nested generics (e.g. List<List<List<T>>>).
// This pass answers it by memoizing per (definition, argument-tuple):
// two ClassType references that resolve to the same definition with
// structurally equal argument lists share one Parameterization value,
// so nested repetition of a generic shape allocates one record per
// distinct instantiation rather than one per occurrence.
func AssignParameterizedTypes(root *Root, bindings *Bindings) {
	memo := newParamMemo()
	for _, unit := range root.Units {
		walkUnitParameterized(unit, bindings, memo)
	}
	walkPackagesParameterized(root.Subpackages, bindings, memo)
}

func walkPackagesParameterized(packages []*Package, bindings *Bindings, memo *paramMemo) {
	for _, pkg := range packages {
		for _, unit := range pkg.Units {
			walkUnitParameterized(unit, bindings, memo)
		}
		walkPackagesParameterized(pkg.Subpackages, bindings, memo)
	}
}

func walkUnitParameterized(unit *ast.CompilationUnit, bindings *Bindings, memo *paramMemo) {
	walkDeclParameterized(unit.Main, bindings, memo)
}

func walkDeclParameterized(decl ast.Decl, bindings *Bindings, memo *paramMemo) {
	switch d := decl.(type) {
	case *ast.Class:
		walkClassParameterized(d, bindings, memo)
	case *ast.Interface:
		walkInterfaceParameterized(d, bindings, memo)
	}
}

func walkClassParameterized(c *ast.Class, bindings *Bindings, memo *paramMemo) {
	for _, tp := range c.TypeParams {
		for _, bound := range tp.Extends {
			parameterize(bound, bindings, memo)
		}
	}
	if c.ExtendOpt != nil {
		parameterize(c.ExtendOpt, bindings, memo)
	}
	for _, impl := range c.Implements {
		parameterize(impl, bindings, memo)
	}
	for _, item := range c.Body {
		walkBodyItemParameterized(item, bindings, memo)
	}
}

func walkInterfaceParameterized(i *ast.Interface, bindings *Bindings, memo *paramMemo) {
	for _, tp := range i.TypeParams {
		for _, bound := range tp.Extends {
			parameterize(bound, bindings, memo)
		}
	}
	for _, impl := range i.Implements {
		parameterize(impl, bindings, memo)
	}
	for _, item := range i.Body {
		walkBodyItemParameterized(item, bindings, memo)
	}
}

func walkBodyItemParameterized(item ast.ClassBodyItem, bindings *Bindings, memo *paramMemo) {
	switch m := item.(type) {
	case *ast.Constructor:
		for _, p := range m.Params {
			walkTypeParameterized(p.Type, bindings, memo)
		}
		if m.Block != nil {
			walkBlockParameterized(m.Block, bindings, memo)
		}
	case *ast.Method:
		for _, tp := range m.TypeParams {
			for _, bound := range tp.Extends {
				parameterize(bound, bindings, memo)
			}
		}
		walkTypeParameterized(m.ReturnType, bindings, memo)
		for _, p := range m.Params {
			walkTypeParameterized(p.Type, bindings, memo)
		}
		if m.BlockOpt != nil {
			walkBlockParameterized(m.BlockOpt, bindings, memo)
		}
	case *ast.FieldDeclarators:
		walkTypeParameterized(m.Type, bindings, memo)
	case *ast.Class:
		walkClassParameterized(m, bindings, memo)
	case *ast.Interface:
		walkInterfaceParameterized(m, bindings, memo)
	}
}

func walkBlockParameterized(b *ast.Block, bindings *Bindings, memo *paramMemo) {
	for _, stmt := range b.Stmts {
		walkStatementParameterized(stmt, bindings, memo)
	}
}

func walkStatementParameterized(stmt ast.Statement, bindings *Bindings, memo *paramMemo) {
	switch s := stmt.(type) {
	case *ast.Block:
		walkBlockParameterized(s, bindings, memo)
	case *ast.VariableDeclaratorsStmt:
		walkTypeParameterized(s.Type, bindings, memo)
	case *ast.If:
		walkStatementParameterized(s.Then, bindings, memo)
		if s.ElseOpt != nil {
			walkStatementParameterized(s.ElseOpt, bindings, memo)
		}
	case *ast.WhileLoop:
		walkStatementParameterized(s.Block, bindings, memo)
	case *ast.DoWhile:
		walkStatementParameterized(s.Block, bindings, memo)
	case *ast.ForLoop:
		if s.InitOpt != nil {
			walkStatementParameterized(s.InitOpt, bindings, memo)
		}
		walkStatementParameterized(s.Block, bindings, memo)
	case *ast.ForEach:
		walkTypeParameterized(s.Type, bindings, memo)
		walkStatementParameterized(s.Block, bindings, memo)
	case *ast.Try:
		for _, res := range s.Resources {
			if res.TypeOpt != nil {
				walkTypeParameterized(res.TypeOpt, bindings, memo)
			}
		}
		walkBlockParameterized(s.Block, bindings, memo)
		for _, c := range s.Catches {
			for _, ct := range c.Types {
				parameterize(ct, bindings, memo)
			}
			walkBlockParameterized(c.Block, bindings, memo)
		}
		if s.FinallyOpt != nil {
			walkBlockParameterized(s.FinallyOpt, bindings, memo)
		}
	case *ast.Switch:
		for _, c := range s.Cases {
			for _, inner := range c.Stmts {
				walkStatementParameterized(inner, bindings, memo)
			}
		}
	case *ast.Synchronized:
		walkBlockParameterized(s.Block, bindings, memo)
	case *ast.Labeled:
		walkStatementParameterized(s.Stmt, bindings, memo)
	}
}

func walkTypeParameterized(t ast.Type, bindings *Bindings, memo *paramMemo) {
	switch tt := t.(type) {
	case *ast.ClassType:
		parameterize(tt, bindings, memo)
	case *ast.ArrayType:
		walkTypeParameterized(tt.Elem, bindings, memo)
	}
}

// parameterize attaches a Parameterization to ct when it both supplies
// type arguments and resolved (via AssignTypes) to a definition that
// declares type parameters, and recurses into the arguments themselves
// since they may be parameterized references in their own right (e.g.
// Map<String, List<T>>'s List<T> argument).
func parameterize(ct *ast.ClassType, bindings *Bindings, memo *paramMemo) {
	for _, arg := range ct.TypeArgs {
		walkTypeParameterized(arg, bindings, memo)
	}

	if len(ct.TypeArgs) == 0 {
		return
	}
	def, ok := bindings.ClassTypeDef(ct)
	if !ok || len(def.TypeParams()) == 0 {
		return
	}

	bindings.SetParameterization(ct, memo.get(def, ct.TypeArgs))
}

// paramMemo deduplicates Parameterization values by (definition identity,
// structural argument shape), keyed on a string built from each
// argument's rendered form — good enough for the simple class/array/
// primitive type grammar this language has (no wildcards or bounds on
// use-site arguments).
type paramMemo struct {
	entries map[string]*Parameterization
}

func newParamMemo() *paramMemo {
	return &paramMemo{entries: make(map[string]*Parameterization)}
}

func (m *paramMemo) get(def ClassLike, args []ast.Type) *Parameterization {
	key := memoKey(def, args)
	if p, ok := m.entries[key]; ok {
		return p
	}
	p := &Parameterization{Definition: def, Args: args}
	m.entries[key] = p
	return p
}

func memoKey(def ClassLike, args []ast.Type) string {
	key := def.SimpleName() + "#" + defIdentity(def)
	for _, a := range args {
		key += "|" + typeKey(a)
	}
	return key
}

// defIdentity distinguishes same-named definitions declared at different
// source locations, since Definition carries no separate identity field
// of its own.
func defIdentity(def Definition) string {
	pos := def.DefSpan().Pos()
	return strconv.Itoa(pos.Line) + ":" + strconv.Itoa(pos.Column) + ":" + strconv.Itoa(pos.Offset)
}

func typeKey(t ast.Type) string {
	switch tt := t.(type) {
	case *ast.PrimitiveType:
		return "p:" + tt.Name
	case *ast.VoidType:
		return "void"
	case *ast.ArrayType:
		return "[]" + typeKey(tt.Elem)
	case *ast.ClassType:
		key := "c:" + tt.Name.Text
		for _, a := range tt.TypeArgs {
			key += "<" + typeKey(a) + ">"
		}
		return key
	default:
		return "?"
	}
}
