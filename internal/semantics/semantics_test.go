package semantics_test

import (
	"testing"

	"github.com/funvibe/javalens/internal/analyze"
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/diagnostics"
	"github.com/funvibe/javalens/internal/lexer"
	"github.com/funvibe/javalens/internal/parser"
	"github.com/funvibe/javalens/internal/semantics"
)

func resolveAndBind(t *testing.T, src string) (*ast.CompilationUnit, *analyze.Root, *analyze.Bindings) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	unit, err := parser.Parse(toks, "test.java")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bindings := analyze.NewBindings()
	root := analyze.Build(unit, bindings)
	diags := diagnostics.NewBag()
	analyze.AssignTypes(root, bindings, diags)
	analyze.AssignParameterizedTypes(root, bindings)
	semantics.Bind(root, bindings)
	return unit, root, bindings
}

func firstMethodBody(unit *ast.CompilationUnit) []ast.Statement {
	class := unit.Main.(*ast.Class)
	for _, item := range class.Body {
		if m, ok := item.(*ast.Method); ok {
			return m.BlockOpt.Stmts
		}
	}
	return nil
}

func TestBindLocalVariableResolvesNameToItsOwnDeclarator(t *testing.T) {
	unit, _, bindings := resolveAndBind(t, `
		class Foo {
			void m() {
				int x = 1;
				int y = x;
			}
		}
	`)
	stmts := firstMethodBody(unit)
	secondDecl := stmts[1].(*ast.VariableDeclaratorsStmt)
	nameExpr := secondDecl.Declarators[0].InitOpt.(*ast.Name)

	def, ok := bindings.NameResolved(nameExpr)
	if !ok {
		t.Fatal("expected y's initializer `x` to resolve")
	}
	if def.SimpleName() != "x" {
		t.Fatalf("got %q", def.SimpleName())
	}
}

func TestBindForbidsSelfReferenceInOwnInitializer(t *testing.T) {
	unit, _, bindings := resolveAndBind(t, `
		class Foo {
			int x = 1;
			void m() {
				int x = x;
			}
		}
	`)
	stmts := firstMethodBody(unit)
	decl := stmts[0].(*ast.VariableDeclaratorsStmt)
	nameExpr := decl.Declarators[0].InitOpt.(*ast.Name)

	def, ok := bindings.NameResolved(nameExpr)
	if !ok {
		t.Fatal("expected the initializer's `x` to resolve to something")
	}
	local, isLocal := def.(*analyze.LocalDef)
	if isLocal {
		t.Fatalf("initializer `x` must not resolve to its own not-yet-bound local declarator, got local %+v", local)
	}
	if def.SimpleName() != "x" {
		t.Fatalf("got %q, want the field x (self-reference forbidden, falls through to field)", def.SimpleName())
	}
}

func TestBindLocalShadowsField(t *testing.T) {
	unit, _, bindings := resolveAndBind(t, `
		class Foo {
			int x;
			void m() {
				int x = 5;
				int y = x;
			}
		}
	`)
	stmts := firstMethodBody(unit)
	secondDecl := stmts[1].(*ast.VariableDeclaratorsStmt)
	nameExpr := secondDecl.Declarators[0].InitOpt.(*ast.Name)

	def, ok := bindings.NameResolved(nameExpr)
	if !ok {
		t.Fatal("expected y's initializer to resolve")
	}
	if _, isLocal := def.(*analyze.LocalDef); !isLocal {
		t.Fatalf("got %T, want a *analyze.LocalDef (local shadows the field)", def)
	}
}

func TestBindNameResolvesToMethodParam(t *testing.T) {
	unit, _, bindings := resolveAndBind(t, `
		class Foo {
			void m(int x) {
				int y = x;
			}
		}
	`)
	stmts := firstMethodBody(unit)
	decl := stmts[0].(*ast.VariableDeclaratorsStmt)
	nameExpr := decl.Declarators[0].InitOpt.(*ast.Name)

	def, ok := bindings.NameResolved(nameExpr)
	if !ok {
		t.Fatal("expected the initializer to resolve")
	}
	if _, isParam := def.(*analyze.ParamDef); !isParam {
		t.Fatalf("got %T, want *analyze.ParamDef", def)
	}
}

func TestBindCatchClauseBindsExceptionName(t *testing.T) {
	unit, _, bindings := resolveAndBind(t, `
		class Foo {
			void m() {
				try {
					risky();
				} catch (RuntimeException e) {
					log(e);
				}
			}
		}
	`)
	stmts := firstMethodBody(unit)
	tryStmt := stmts[0].(*ast.Try)
	catchBody := tryStmt.Catches[0].Block.Stmts
	exprStmt := catchBody[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.MethodCall)
	nameExpr := call.Args[0].(*ast.Name)

	def, ok := bindings.NameResolved(nameExpr)
	if !ok {
		t.Fatal("expected the caught exception name `e` to resolve")
	}
	local, isLocal := def.(*analyze.LocalDef)
	if !isLocal {
		t.Fatalf("got %T, want *analyze.LocalDef", def)
	}
	if _, isCatch := local.Syntax.(*ast.CatchClause); !isCatch {
		t.Fatalf("got Syntax %T, want *ast.CatchClause", local.Syntax)
	}
}

func TestBindForEachVariableResolvesInBody(t *testing.T) {
	unit, _, bindings := resolveAndBind(t, `
		class Foo {
			void m() {
				for (String s : names) {
					use(s);
				}
			}
		}
	`)
	stmts := firstMethodBody(unit)
	forEach := stmts[0].(*ast.ForEach)
	body := forEach.Block.(*ast.Block).Stmts
	exprStmt := body[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.MethodCall)
	nameExpr := call.Args[0].(*ast.Name)

	def, ok := bindings.NameResolved(nameExpr)
	if !ok {
		t.Fatal("expected `s` to resolve")
	}
	if def.SimpleName() != "s" {
		t.Fatalf("got %q", def.SimpleName())
	}
}

func TestBindMethodTypeParamGetsRegisteredDeclDef(t *testing.T) {
	unit, _, bindings := resolveAndBind(t, `
		class Foo {
			<T> T identity(T value) { return value; }
		}
	`)
	class := unit.Main.(*ast.Class)
	method := class.Body[0].(*ast.Method)
	tp := method.TypeParams[0]

	def, ok := bindings.TypeParamDefOf(tp)
	if !ok {
		t.Fatal("expected the method-level type param to have a registered TypeParamDef")
	}
	if def.SimpleName() != "T" {
		t.Fatalf("got %q", def.SimpleName())
	}

	declDef, ok := bindings.DeclDef(tp.ID)
	if !ok || declDef.SimpleName() != "T" {
		t.Fatalf("got %v %v, want the same TypeParamDef reachable via DeclDef", declDef, ok)
	}
}

func TestBindLambdaBodyLeavesUnknownNameUnresolved(t *testing.T) {
	unit, _, bindings := resolveAndBind(t, `
		class Foo {
			void m() {
				Runnable r = () -> use(x);
			}
		}
	`)
	stmts := firstMethodBody(unit)
	decl := stmts[0].(*ast.VariableDeclaratorsStmt)
	lambda := decl.Declarators[0].InitOpt.(*ast.Lambda)
	call := lambda.BodyExpr.(*ast.MethodCall)
	nameExpr := call.Args[0].(*ast.Name)

	if _, ok := bindings.NameResolved(nameExpr); ok {
		t.Fatal("expected `x` inside the lambda to be left unresolved (no such name in scope)")
	}
}
