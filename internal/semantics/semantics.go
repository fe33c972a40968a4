// Package semantics is the pipeline's name-binding pass (spec.md §4.5).
// It is the second traversal of a compilation unit's syntax tree — the
// first being analyze.Build — and it fills the two resolution slots
// assign_type/assign_parameterized_type don't: Bindings.declDef for
// parameters, locals, and type parameters, and Bindings.nameResolved for
// every Name expression, via analyze.Scope.ResolveName.
//
// Grounded on original_source/src/semantics: a block pushes and pops a
// scope level (block.rs), a method entry pushes a level, binds its type
// parameters and parameters, then recurses into its body (method.rs,
// def/method.rs), and a variable declarator is added to the enclosing
// block's locals only after its initializer has been walked, so a local
// can never resolve to itself (statement/mod.rs + spec.md §4.5's
// "forbidding self-reference").
package semantics

import (
	"github.com/funvibe/javalens/internal/analyze"
	"github.com/funvibe/javalens/internal/ast"
)

// Bind walks root, filling resolved_opt on every Name and def_opt on
// every parameter, local variable, and type parameter declaration.
func Bind(root *analyze.Root, bindings *analyze.Bindings) {
	for _, unit := range root.Units {
		bindUnit(unit, root, nil, bindings)
	}
	bindPackages(root.Subpackages, root, bindings)
}

func bindPackages(packages []*analyze.Package, root *analyze.Root, bindings *analyze.Bindings) {
	for _, pkg := range packages {
		for _, unit := range pkg.Units {
			bindUnit(unit, root, pkg, bindings)
		}
		bindPackages(pkg.Subpackages, root, bindings)
	}
}

func bindUnit(unit *ast.CompilationUnit, root *analyze.Root, pkg *analyze.Package, bindings *analyze.Bindings) {
	scope := analyze.NewScope(root, unit, pkg)
	bindDecl(unit.Main, scope, bindings)
}

func bindDecl(decl ast.Decl, scope *analyze.Scope, bindings *analyze.Bindings) {
	switch d := decl.(type) {
	case *ast.Class:
		bindClass(d, scope, bindings)
	case *ast.Interface:
		bindInterface(d, scope, bindings)
	}
}

func classLikeLevel(decl ast.Decl, bindings *analyze.Bindings) *analyze.Level {
	var id ast.DeclID
	switch d := decl.(type) {
	case *ast.Class:
		id = d.ID
	case *ast.Interface:
		id = d.ID
	}
	def, ok := bindings.DeclDef(id)
	if !ok {
		return &analyze.Level{}
	}
	cl, _ := def.(analyze.ClassLike)
	return &analyze.Level{Class: cl, TypeParams: cl.TypeParams()}
}

func bindClass(c *ast.Class, scope *analyze.Scope, bindings *analyze.Bindings) {
	scope.Push(classLikeLevel(c, bindings))
	defer scope.Pop()

	for _, item := range c.Body {
		bindBodyItem(item, scope, bindings)
	}
}

func bindInterface(i *ast.Interface, scope *analyze.Scope, bindings *analyze.Bindings) {
	scope.Push(classLikeLevel(i, bindings))
	defer scope.Pop()

	for _, item := range i.Body {
		bindBodyItem(item, scope, bindings)
	}
}

func bindBodyItem(item ast.ClassBodyItem, scope *analyze.Scope, bindings *analyze.Bindings) {
	switch m := item.(type) {
	case *ast.Constructor:
		bindConstructor(m, scope, bindings)
	case *ast.Method:
		bindMethod(m, scope, bindings)
	case *ast.FieldDeclarators:
		bindFieldDeclarators(m, scope, bindings)
	case *ast.Class:
		bindClass(m, scope, bindings)
	case *ast.Interface:
		bindInterface(m, scope, bindings)
	}
}

// bindFieldDeclarators walks each declarator's initializer so Names used
// in a field initializer resolve against the enclosing class's scope —
// def_opt for the declarator itself was already set by analyze.Build.
func bindFieldDeclarators(fd *ast.FieldDeclarators, scope *analyze.Scope, bindings *analyze.Bindings) {
	for _, decl := range fd.Declarators {
		if decl.InitOpt != nil {
			bindExpr(decl.InitOpt, scope, bindings)
		}
	}
}

func bindConstructor(ctor *ast.Constructor, scope *analyze.Scope, bindings *analyze.Bindings) {
	scope.Push(&analyze.Level{Params: bindParams(ctor.Params, bindings)})
	defer scope.Pop()

	if ctor.Block != nil {
		bindBlock(ctor.Block, scope, bindings)
	}
}

// bindMethod also registers def_opt for the method's own type parameters:
// analyze.Build only does this for class-level type parameters, since a
// method's TypeParamDef has nowhere to live until its owning Method has
// been folded into a MethodDef, which happens at build time before this
// pass knows which scope each method-level type parameter resolves its
// bounds against.
func bindMethod(m *ast.Method, scope *analyze.Scope, bindings *analyze.Bindings) {
	var tpDefs []*analyze.TypeParamDef
	for _, tp := range m.TypeParams {
		def, ok := bindings.TypeParamDefOf(tp)
		if !ok {
			def = &analyze.TypeParamDef{Syntax: tp, Name: tp.Name.Text}
			bindings.SetTypeParamDef(tp, def)
			bindings.SetDeclDef(tp.ID, def)
		}
		tpDefs = append(tpDefs, def)
	}

	scope.Push(&analyze.Level{Method: m, TypeParams: tpDefs, Params: bindParams(m.Params, bindings)})
	defer scope.Pop()

	if m.BlockOpt != nil {
		bindBlock(m.BlockOpt, scope, bindings)
	}
}

// bindParams binds each parameter's def_opt slot and returns the
// ParamDef list a Level needs for resolution.
func bindParams(params []*ast.Param, bindings *analyze.Bindings) []*analyze.ParamDef {
	defs := make([]*analyze.ParamDef, 0, len(params))
	for _, p := range params {
		def := &analyze.ParamDef{Syntax: p, Name: p.Name.Text}
		bindings.SetDeclDef(p.ID, def)
		defs = append(defs, def)
	}
	return defs
}

func bindBlock(b *ast.Block, scope *analyze.Scope, bindings *analyze.Bindings) {
	scope.Push(&analyze.Level{})
	defer scope.Pop()

	for _, stmt := range b.Stmts {
		bindStatement(stmt, scope, bindings)
	}
}

// currentLevel returns the innermost Level pushed by bindBlock, the one
// a newly bound local variable is added to.
func currentLevel(scope *analyze.Scope) *analyze.Level {
	if len(scope.Levels) == 0 {
		return nil
	}
	return scope.Levels[len(scope.Levels)-1]
}

func bindStatement(stmt ast.Statement, scope *analyze.Scope, bindings *analyze.Bindings) {
	switch s := stmt.(type) {
	case *ast.Block:
		bindBlock(s, scope, bindings)
	case *ast.VariableDeclaratorsStmt:
		bindVariableDeclarators(s, scope, bindings)
	case *ast.ExprStmt:
		bindExpr(s.Expr, scope, bindings)
	case *ast.If:
		bindExpr(s.Cond, scope, bindings)
		bindStatement(s.Then, scope, bindings)
		if s.ElseOpt != nil {
			bindStatement(s.ElseOpt, scope, bindings)
		}
	case *ast.WhileLoop:
		bindExpr(s.Cond, scope, bindings)
		bindStatement(s.Block, scope, bindings)
	case *ast.DoWhile:
		bindStatement(s.Block, scope, bindings)
		bindExpr(s.Cond, scope, bindings)
	case *ast.ForLoop:
		scope.Push(&analyze.Level{})
		defer scope.Pop()
		if s.InitOpt != nil {
			bindStatement(s.InitOpt, scope, bindings)
		}
		if s.CondOpt != nil {
			bindExpr(s.CondOpt, scope, bindings)
		}
		for _, u := range s.Updates {
			bindExpr(u, scope, bindings)
		}
		bindStatement(s.Block, scope, bindings)
	case *ast.ForEach:
		scope.Push(&analyze.Level{})
		defer scope.Pop()
		bindExpr(s.Expr, scope, bindings)
		local := &analyze.LocalDef{Syntax: s.Var, Name: s.Var.Name.Text}
		bindings.SetDeclDef(s.Var.ID, local)
		if lvl := currentLevel(scope); lvl != nil {
			lvl.Locals = append(lvl.Locals, local)
		}
		bindStatement(s.Block, scope, bindings)
	case *ast.Return:
		if s.ExprOpt != nil {
			bindExpr(s.ExprOpt, scope, bindings)
		}
	case *ast.Throw:
		bindExpr(s.Expr, scope, bindings)
	case *ast.Try:
		bindTry(s, scope, bindings)
	case *ast.Switch:
		bindExpr(s.Expr, scope, bindings)
		for _, c := range s.Cases {
			if c.ValueOpt != nil {
				bindExpr(c.ValueOpt, scope, bindings)
			}
			for _, inner := range c.Stmts {
				bindStatement(inner, scope, bindings)
			}
		}
	case *ast.Synchronized:
		bindExpr(s.Expr, scope, bindings)
		bindBlock(s.Block, scope, bindings)
	case *ast.Labeled:
		bindStatement(s.Stmt, scope, bindings)
	}
}

func bindTry(t *ast.Try, scope *analyze.Scope, bindings *analyze.Bindings) {
	scope.Push(&analyze.Level{})
	defer scope.Pop()

	for _, res := range t.Resources {
		if res.InitOpt != nil {
			bindExpr(res.InitOpt, scope, bindings)
		}
		local := &analyze.LocalDef{Syntax: res, Name: res.Name.Text}
		bindings.SetDeclDef(res.ID, local)
		if lvl := currentLevel(scope); lvl != nil {
			lvl.Locals = append(lvl.Locals, local)
		}
	}

	bindBlock(t.Block, scope, bindings)

	for _, c := range t.Catches {
		scope.Push(&analyze.Level{})
		local := &analyze.LocalDef{Syntax: c, Name: c.Name.Text}
		if lvl := currentLevel(scope); lvl != nil {
			lvl.Locals = append(lvl.Locals, local)
		}
		bindBlock(c.Block, scope, bindings)
		scope.Pop()
	}

	if t.FinallyOpt != nil {
		bindBlock(t.FinallyOpt, scope, bindings)
	}
}

// bindVariableDeclarators resolves each initializer before adding its
// declarator's name to the enclosing block's locals, per spec.md §4.5's
// explicit self-reference prohibition: `int x = x;` must not let the
// right-hand x resolve to the left-hand declaration.
func bindVariableDeclarators(v *ast.VariableDeclaratorsStmt, scope *analyze.Scope, bindings *analyze.Bindings) {
	lvl := currentLevel(scope)
	for _, decl := range v.Declarators {
		if decl.InitOpt != nil {
			bindExpr(decl.InitOpt, scope, bindings)
		}
		local := &analyze.LocalDef{Syntax: decl, Name: decl.Name.Text}
		bindings.SetDeclDef(decl.ID, local)
		if lvl != nil {
			lvl.Locals = append(lvl.Locals, local)
		}
	}
}

func bindExpr(e ast.Expr, scope *analyze.Scope, bindings *analyze.Bindings) {
	switch ex := e.(type) {
	case *ast.Name:
		if def, ok := scope.ResolveName(ex.Name); ok {
			bindings.SetNameResolved(ex, def)
		}
	case *ast.ThisConstructorCall:
		for _, a := range ex.Args {
			bindExpr(a, scope, bindings)
		}
	case *ast.SuperConstructorCall:
		for _, a := range ex.Args {
			bindExpr(a, scope, bindings)
		}
	case *ast.NewObject:
		for _, a := range ex.Args {
			bindExpr(a, scope, bindings)
		}
		for _, item := range ex.BodyOpt {
			bindBodyItem(item, scope, bindings)
		}
	case *ast.NewArray:
		for _, d := range ex.Dims {
			if d != nil {
				bindExpr(d, scope, bindings)
			}
		}
		if ex.InitOpt != nil {
			bindExpr(ex.InitOpt, scope, bindings)
		}
	case *ast.ArrayInitializer:
		for _, it := range ex.Items {
			bindExpr(it, scope, bindings)
		}
	case *ast.FieldAccess:
		bindExpr(ex.Expr, scope, bindings)
	case *ast.MethodCall:
		if ex.ExprOpt != nil {
			bindExpr(ex.ExprOpt, scope, bindings)
		}
		for _, a := range ex.Args {
			bindExpr(a, scope, bindings)
		}
	case *ast.ArrayAccess:
		bindExpr(ex.Expr, scope, bindings)
		bindExpr(ex.Index, scope, bindings)
	case *ast.MethodReference:
		bindExpr(ex.Expr, scope, bindings)
	case *ast.UnaryPrefix:
		bindExpr(ex.Operand, scope, bindings)
	case *ast.UnaryPostfix:
		bindExpr(ex.Operand, scope, bindings)
	case *ast.Cast:
		bindExpr(ex.Expr, scope, bindings)
	case *ast.Parenthesized:
		bindExpr(ex.Expr, scope, bindings)
	case *ast.BinaryOperation:
		bindExpr(ex.Left, scope, bindings)
		bindExpr(ex.Right, scope, bindings)
	case *ast.InstanceOf:
		bindExpr(ex.Expr, scope, bindings)
	case *ast.Ternary:
		bindExpr(ex.Cond, scope, bindings)
		bindExpr(ex.Then, scope, bindings)
		bindExpr(ex.Else, scope, bindings)
	case *ast.Assignment:
		bindExpr(ex.Left, scope, bindings)
		bindExpr(ex.Right, scope, bindings)
	case *ast.Lambda:
		bindLambda(ex, scope, bindings)
	}
}

func bindLambda(l *ast.Lambda, scope *analyze.Scope, bindings *analyze.Bindings) {
	scope.Push(&analyze.Level{Params: bindParams(l.Params, bindings)})
	defer scope.Pop()

	if l.BodyExpr != nil {
		bindExpr(l.BodyExpr, scope, bindings)
	}
	if l.BodyBlock != nil {
		bindBlock(l.BodyBlock, scope, bindings)
	}
}
