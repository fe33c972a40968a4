// Package extract is the pipeline's final, read-only stage (spec.md
// §4.6). It flattens a resolved Root into an Extraction: a flat,
// source-ordered list of Usage records, one per resolution slot (every
// Name expression and every ClassType reference). A slot left empty by
// assign_type/assign_parameterized_type/semantics still produces a
// Usage — with no Destination — so a caller such as an IDE can still
// render an unresolved reference instead of silently dropping it.
//
// Grounded on original_source/src/extract (class.rs, method.rs,
// def/*.rs): the original walks the syntax tree a third time and pushes
// one Definition per node with a filled def_opt. This port unifies the
// two Usage shapes the original's extract/ and analyze/extract/ trees
// show side by side — one carrying only a destination, one carrying
// both a source location and a destination — into the single Usage
// shape below, per §9 Open Question (c).
package extract

import (
	"github.com/funvibe/javalens/internal/analyze"
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/span"
)

// Position is a 1-based line/column pair, the display-facing half of a
// span.Span.
type Position struct {
	Line   int
	Column int
}

// Location names a position within a source file.
type Location struct {
	File string
	Pos  Position
}

func locationOf(file string, sp span.Span) Location {
	return Location{File: file, Pos: Position{Line: sp.Line, Column: sp.Column}}
}

// Usage is one name or type occurrence: its own source Location, and —
// if its resolution slot was filled — the resolved Definition and the
// Location of that definition's own declaring span.
type Usage struct {
	Loc            Location
	Definition     analyze.Definition
	DestinationOpt *Location
}

// Def is one declaration site: a class, interface, method, constructor,
// field, parameter, type parameter, or local variable, alongside the
// analyze.Definition build/semantics registered for it. Grounded on
// original_source/src/extract/def's separate declaration-flattening
// walk (§3 "Extraction visits both defs and uses"); kept alongside
// Usages so a caller can answer "what is declared here" (an outline or
// symbol list) without re-deriving it from the Usage stream.
type Def struct {
	Loc        Location
	Definition analyze.Definition
}

// Extraction is the extractor's sole output (spec.md §4.6).
type Extraction struct {
	Defs   []Def
	Usages []Usage
}

func emitDef(file string, id ast.DeclID, nameSpan span.Span, bindings *analyze.Bindings, e *Extraction) {
	def, ok := bindings.DeclDef(id)
	if !ok {
		return
	}
	e.Defs = append(e.Defs, Def{Loc: locationOf(file, nameSpan), Definition: def})
}

// Extract walks targetRoot in source order, producing one Usage per Name
// expression and per ClassType reference, resolved against bindings —
// the side-table that resolve (analyze.Build/Merge/AssignTypes/
// AssignParameterizedTypes) and bind (semantics.Bind) filled while
// walking fullRoot, of which targetRoot is a subset. Since Bindings keys
// are pointer identities of targetRoot's own syntax nodes, a binding
// found there is necessarily one fullRoot supplied, so fullRoot itself
// needs no further traversal here (spec.md §6 "extract(target_root,
// full_root) -> Extraction").
func Extract(targetRoot *analyze.Root, bindings *analyze.Bindings) *Extraction {
	e := &Extraction{}
	for _, unit := range targetRoot.Units {
		extractUnit(unit, bindings, e)
	}
	extractPackages(targetRoot.Subpackages, bindings, e)
	return e
}

func extractPackages(packages []*analyze.Package, bindings *analyze.Bindings, e *Extraction) {
	for _, pkg := range packages {
		for _, unit := range pkg.Units {
			extractUnit(unit, bindings, e)
		}
		extractPackages(pkg.Subpackages, bindings, e)
	}
}

func extractUnit(unit *ast.CompilationUnit, bindings *analyze.Bindings, e *Extraction) {
	extractDecl(unit.Path, unit.Main, bindings, e)
}

func extractDecl(file string, decl ast.Decl, bindings *analyze.Bindings, e *Extraction) {
	switch d := decl.(type) {
	case *ast.Class:
		extractClass(file, d, bindings, e)
	case *ast.Interface:
		extractInterface(file, d, bindings, e)
	}
}

func extractClass(file string, c *ast.Class, bindings *analyze.Bindings, e *Extraction) {
	emitDef(file, c.ID, c.Name, bindings, e)
	for _, tp := range c.TypeParams {
		extractTypeParam(file, tp, bindings, e)
	}
	if c.ExtendOpt != nil {
		extractClassType(file, c.ExtendOpt, bindings, e)
	}
	for _, impl := range c.Implements {
		extractClassType(file, impl, bindings, e)
	}
	for _, item := range c.Body {
		extractBodyItem(file, item, bindings, e)
	}
}

func extractInterface(file string, i *ast.Interface, bindings *analyze.Bindings, e *Extraction) {
	emitDef(file, i.ID, i.Name, bindings, e)
	for _, tp := range i.TypeParams {
		extractTypeParam(file, tp, bindings, e)
	}
	for _, impl := range i.Implements {
		extractClassType(file, impl, bindings, e)
	}
	for _, item := range i.Body {
		extractBodyItem(file, item, bindings, e)
	}
}

func extractBodyItem(file string, item ast.ClassBodyItem, bindings *analyze.Bindings, e *Extraction) {
	switch m := item.(type) {
	case *ast.Constructor:
		emitDef(file, m.ID, m.Name, bindings, e)
		extractParams(file, m.Params, bindings, e)
		if m.Block != nil {
			extractBlock(file, m.Block, bindings, e)
		}
	case *ast.Method:
		emitDef(file, m.ID, m.Name, bindings, e)
		for _, tp := range m.TypeParams {
			extractTypeParam(file, tp, bindings, e)
		}
		extractType(file, m.ReturnType, bindings, e)
		extractParams(file, m.Params, bindings, e)
		if m.BlockOpt != nil {
			extractBlock(file, m.BlockOpt, bindings, e)
		}
	case *ast.FieldDeclarators:
		extractType(file, m.Type, bindings, e)
		for _, decl := range m.Declarators {
			emitDef(file, decl.ID, decl.Name, bindings, e)
			if decl.InitOpt != nil {
				extractExpr(file, decl.InitOpt, bindings, e)
			}
		}
	case *ast.Class:
		extractClass(file, m, bindings, e)
	case *ast.Interface:
		extractInterface(file, m, bindings, e)
	}
}

func extractParams(file string, params []*ast.Param, bindings *analyze.Bindings, e *Extraction) {
	for _, p := range params {
		emitDef(file, p.ID, p.Name, bindings, e)
		extractType(file, p.Type, bindings, e)
	}
}

func extractTypeParam(file string, tp *ast.TypeParam, bindings *analyze.Bindings, e *Extraction) {
	emitDef(file, tp.ID, tp.Name, bindings, e)
	for _, bound := range tp.Extends {
		extractClassType(file, bound, bindings, e)
	}
}

func extractBlock(file string, b *ast.Block, bindings *analyze.Bindings, e *Extraction) {
	for _, stmt := range b.Stmts {
		extractStatement(file, stmt, bindings, e)
	}
}

func extractStatement(file string, stmt ast.Statement, bindings *analyze.Bindings, e *Extraction) {
	switch s := stmt.(type) {
	case *ast.Block:
		extractBlock(file, s, bindings, e)
	case *ast.VariableDeclaratorsStmt:
		extractType(file, s.Type, bindings, e)
		for _, decl := range s.Declarators {
			emitDef(file, decl.ID, decl.Name, bindings, e)
			if decl.InitOpt != nil {
				extractExpr(file, decl.InitOpt, bindings, e)
			}
		}
	case *ast.ExprStmt:
		extractExpr(file, s.Expr, bindings, e)
	case *ast.If:
		extractExpr(file, s.Cond, bindings, e)
		extractStatement(file, s.Then, bindings, e)
		if s.ElseOpt != nil {
			extractStatement(file, s.ElseOpt, bindings, e)
		}
	case *ast.WhileLoop:
		extractExpr(file, s.Cond, bindings, e)
		extractStatement(file, s.Block, bindings, e)
	case *ast.DoWhile:
		extractStatement(file, s.Block, bindings, e)
		extractExpr(file, s.Cond, bindings, e)
	case *ast.ForLoop:
		if s.InitOpt != nil {
			extractStatement(file, s.InitOpt, bindings, e)
		}
		if s.CondOpt != nil {
			extractExpr(file, s.CondOpt, bindings, e)
		}
		for _, u := range s.Updates {
			extractExpr(file, u, bindings, e)
		}
		extractStatement(file, s.Block, bindings, e)
	case *ast.ForEach:
		emitDef(file, s.Var.ID, s.Var.Name, bindings, e)
		extractType(file, s.Type, bindings, e)
		extractExpr(file, s.Expr, bindings, e)
		extractStatement(file, s.Block, bindings, e)
	case *ast.Return:
		if s.ExprOpt != nil {
			extractExpr(file, s.ExprOpt, bindings, e)
		}
	case *ast.Throw:
		extractExpr(file, s.Expr, bindings, e)
	case *ast.Try:
		for _, res := range s.Resources {
			emitDef(file, res.ID, res.Name, bindings, e)
			if res.TypeOpt != nil {
				extractType(file, res.TypeOpt, bindings, e)
			}
			if res.InitOpt != nil {
				extractExpr(file, res.InitOpt, bindings, e)
			}
		}
		extractBlock(file, s.Block, bindings, e)
		for _, c := range s.Catches {
			for _, ct := range c.Types {
				extractClassType(file, ct, bindings, e)
			}
			extractBlock(file, c.Block, bindings, e)
		}
		if s.FinallyOpt != nil {
			extractBlock(file, s.FinallyOpt, bindings, e)
		}
	case *ast.Switch:
		extractExpr(file, s.Expr, bindings, e)
		for _, c := range s.Cases {
			if c.ValueOpt != nil {
				extractExpr(file, c.ValueOpt, bindings, e)
			}
			for _, inner := range c.Stmts {
				extractStatement(file, inner, bindings, e)
			}
		}
	case *ast.Synchronized:
		extractExpr(file, s.Expr, bindings, e)
		extractBlock(file, s.Block, bindings, e)
	case *ast.Labeled:
		extractStatement(file, s.Stmt, bindings, e)
	}
}

func extractType(file string, t ast.Type, bindings *analyze.Bindings, e *Extraction) {
	switch tt := t.(type) {
	case *ast.ClassType:
		extractClassType(file, tt, bindings, e)
	case *ast.ArrayType:
		extractType(file, tt.Elem, bindings, e)
	}
}

func extractClassType(file string, ct *ast.ClassType, bindings *analyze.Bindings, e *Extraction) {
	usage := Usage{Loc: locationOf(file, ct.Name)}
	if def, ok := bindings.ClassTypeDef(ct); ok {
		usage.Definition = def
		dest := locationOf(file, def.DefSpan().Pos())
		usage.DestinationOpt = &dest
	}
	e.Usages = append(e.Usages, usage)

	for _, arg := range ct.TypeArgs {
		extractType(file, arg, bindings, e)
	}
}

func extractExpr(file string, expr ast.Expr, bindings *analyze.Bindings, e *Extraction) {
	switch ex := expr.(type) {
	case *ast.Name:
		usage := Usage{Loc: locationOf(file, ex.Span)}
		if def, ok := bindings.NameResolved(ex); ok {
			usage.Definition = def
			dest := locationOf(file, def.DefSpan().Pos())
			usage.DestinationOpt = &dest
		}
		e.Usages = append(e.Usages, usage)
	case *ast.ThisConstructorCall:
		for _, ta := range ex.TypeArgsOpt {
			extractType(file, ta, bindings, e)
		}
		for _, a := range ex.Args {
			extractExpr(file, a, bindings, e)
		}
	case *ast.SuperConstructorCall:
		for _, ta := range ex.TypeArgsOpt {
			extractType(file, ta, bindings, e)
		}
		for _, a := range ex.Args {
			extractExpr(file, a, bindings, e)
		}
	case *ast.NewObject:
		extractClassType(file, ex.Type, bindings, e)
		for _, a := range ex.Args {
			extractExpr(file, a, bindings, e)
		}
		for _, item := range ex.BodyOpt {
			extractBodyItem(file, item, bindings, e)
		}
	case *ast.NewArray:
		extractType(file, ex.Elem, bindings, e)
		for _, d := range ex.Dims {
			if d != nil {
				extractExpr(file, d, bindings, e)
			}
		}
		if ex.InitOpt != nil {
			extractExpr(file, ex.InitOpt, bindings, e)
		}
	case *ast.ArrayInitializer:
		for _, it := range ex.Items {
			extractExpr(file, it, bindings, e)
		}
	case *ast.FieldAccess:
		extractExpr(file, ex.Expr, bindings, e)
	case *ast.MethodCall:
		if ex.ExprOpt != nil {
			extractExpr(file, ex.ExprOpt, bindings, e)
		}
		for _, ta := range ex.TypeArgsOpt {
			extractType(file, ta, bindings, e)
		}
		for _, a := range ex.Args {
			extractExpr(file, a, bindings, e)
		}
	case *ast.ArrayAccess:
		extractExpr(file, ex.Expr, bindings, e)
		extractExpr(file, ex.Index, bindings, e)
	case *ast.MethodReference:
		extractExpr(file, ex.Expr, bindings, e)
	case *ast.UnaryPrefix:
		extractExpr(file, ex.Operand, bindings, e)
	case *ast.UnaryPostfix:
		extractExpr(file, ex.Operand, bindings, e)
	case *ast.Cast:
		extractType(file, ex.Type, bindings, e)
		extractExpr(file, ex.Expr, bindings, e)
	case *ast.Parenthesized:
		extractExpr(file, ex.Expr, bindings, e)
	case *ast.BinaryOperation:
		extractExpr(file, ex.Left, bindings, e)
		extractExpr(file, ex.Right, bindings, e)
	case *ast.InstanceOf:
		extractExpr(file, ex.Expr, bindings, e)
		extractType(file, ex.Type, bindings, e)
	case *ast.Ternary:
		extractExpr(file, ex.Cond, bindings, e)
		extractExpr(file, ex.Then, bindings, e)
		extractExpr(file, ex.Else, bindings, e)
	case *ast.Assignment:
		extractExpr(file, ex.Left, bindings, e)
		extractExpr(file, ex.Right, bindings, e)
	case *ast.Lambda:
		extractParams(file, ex.Params, bindings, e)
		if ex.BodyExpr != nil {
			extractExpr(file, ex.BodyExpr, bindings, e)
		}
		if ex.BodyBlock != nil {
			extractBlock(file, ex.BodyBlock, bindings, e)
		}
	}
}
