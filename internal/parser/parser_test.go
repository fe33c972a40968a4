package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/lexer"
	"github.com/funvibe/javalens/internal/parser"
	"github.com/funvibe/javalens/internal/span"
)

func parseUnit(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	unit, err := parser.Parse(toks, "test.java")
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return unit
}

func TestParsePackageAndImports(t *testing.T) {
	unit := parseUnit(t, `
		package com.example.app;
		import java.util.List;
		import java.util.*;
		class Foo {}
	`)

	if unit.PackageOpt == nil {
		t.Fatal("expected a package declaration")
	}
	gotPkg := joinSpans(unit.PackageOpt.Components)
	if gotPkg != "com.example.app" {
		t.Fatalf("got package %q", gotPkg)
	}

	if len(unit.Imports) != 2 {
		t.Fatalf("got %d imports, want 2", len(unit.Imports))
	}
	if unit.Imports[0].Wildcard {
		t.Fatal("first import should not be a wildcard import")
	}
	if !unit.Imports[1].Wildcard {
		t.Fatal("second import should be a wildcard import")
	}

	class, ok := unit.Main.(*ast.Class)
	if !ok {
		t.Fatalf("got %T, want *ast.Class", unit.Main)
	}
	if class.Name.Text != "Foo" {
		t.Fatalf("got class name %q", class.Name.Text)
	}
}

func joinSpans(spans []span.Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = s.Text
	}
	return strings.Join(parts, ".")
}

func TestParseClassExtendsImplements(t *testing.T) {
	unit := parseUnit(t, `class Foo<T> extends Bar implements Baz, Qux<T> {}`)
	class := unit.Main.(*ast.Class)

	if len(class.TypeParams) != 1 || class.TypeParams[0].Name.Text != "T" {
		t.Fatalf("got type params %+v", class.TypeParams)
	}
	if class.ExtendOpt == nil || class.ExtendOpt.Name.Text != "Bar" {
		t.Fatalf("got extends %+v", class.ExtendOpt)
	}
	if len(class.Implements) != 2 {
		t.Fatalf("got %d implements, want 2", len(class.Implements))
	}
	if class.Implements[1].Name.Text != "Qux" || len(class.Implements[1].TypeArgs) != 1 {
		t.Fatalf("got implements[1] %+v", class.Implements[1])
	}
}

func TestParseInterfaceHasNoExtendsSlot(t *testing.T) {
	unit := parseUnit(t, `interface Foo extends Bar, Baz {}`)
	iface, ok := unit.Main.(*ast.Interface)
	if !ok {
		t.Fatalf("got %T, want *ast.Interface", unit.Main)
	}
	if len(iface.Implements) != 2 {
		t.Fatalf("got %d implements (interface extends folds into Implements), want 2", len(iface.Implements))
	}
}

func TestParseFieldsMethodsConstructors(t *testing.T) {
	unit := parseUnit(t, `
		class Foo {
			private int x = 1, y;
			Foo(int x) { this.x = x; }
			public String greet(int n) { return "hi"; }
		}
	`)
	class := unit.Main.(*ast.Class)
	if len(class.Body) != 3 {
		t.Fatalf("got %d body items, want 3", len(class.Body))
	}

	fields, ok := class.Body[0].(*ast.FieldDeclarators)
	if !ok {
		t.Fatalf("got %T, want *ast.FieldDeclarators", class.Body[0])
	}
	if len(fields.Declarators) != 2 {
		t.Fatalf("got %d declarators, want 2", len(fields.Declarators))
	}
	if fields.Declarators[0].InitOpt == nil {
		t.Fatal("expected x's initializer to be set")
	}
	if fields.Declarators[1].InitOpt != nil {
		t.Fatal("expected y's initializer to be nil")
	}

	if _, ok := class.Body[1].(*ast.Constructor); !ok {
		t.Fatalf("got %T, want *ast.Constructor", class.Body[1])
	}

	method, ok := class.Body[2].(*ast.Method)
	if !ok {
		t.Fatalf("got %T, want *ast.Method", class.Body[2])
	}
	if len(method.Params) != 1 || method.Params[0].Name.Text != "n" {
		t.Fatalf("got params %+v", method.Params)
	}
}

func TestParseExpressionPrecedenceArithmeticOverAdditive(t *testing.T) {
	unit := parseUnit(t, `class Foo { int m() { return 1 + 2 * 3; } }`)
	ret := firstReturn(t, unit)

	bin, ok := ret.ExprOpt.(*ast.BinaryOperation)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryOperation", ret.ExprOpt)
	}
	if bin.Operator != "+" {
		t.Fatalf("got top operator %q, want +", bin.Operator)
	}
	right, ok := bin.Right.(*ast.BinaryOperation)
	if !ok || right.Operator != "*" {
		t.Fatalf("got right %+v, want a * BinaryOperation (multiplicative binds tighter)", bin.Right)
	}
}

func TestParseExpressionAssignmentIsRightAssociative(t *testing.T) {
	unit := parseUnit(t, `class Foo { int m() { a = b = 1; return 0; } }`)
	class := unit.Main.(*ast.Class)
	method := class.Body[0].(*ast.Method)
	stmt := method.BlockOpt.Stmts[0]
	exprStmt, ok := stmt.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", stmt)
	}
	assign, ok := exprStmt.Expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("got %T, want *ast.Assignment", exprStmt.Expr)
	}
	if _, ok := assign.Right.(*ast.Assignment); !ok {
		t.Fatalf("got right %T, want a nested Assignment (right-associative)", assign.Right)
	}
}

func TestParseDisambiguatesShiftFromNestedGenerics(t *testing.T) {
	unit := parseUnit(t, `class Foo { Map<String, List<Integer>> m; }`)
	class := unit.Main.(*ast.Class)
	fields := class.Body[0].(*ast.FieldDeclarators)
	ct, ok := fields.Type.(*ast.ClassType)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassType", fields.Type)
	}
	if ct.Name.Text != "Map" || len(ct.TypeArgs) != 2 {
		t.Fatalf("got %+v", ct)
	}
	nested, ok := ct.TypeArgs[1].(*ast.ClassType)
	if !ok || nested.Name.Text != "List" {
		t.Fatalf("got nested type arg %+v", ct.TypeArgs[1])
	}
}

func TestParseShiftOperatorStillWorksOutsideGenerics(t *testing.T) {
	unit := parseUnit(t, `class Foo { int m() { return 1 >> 2; } }`)
	ret := firstReturn(t, unit)
	bin, ok := ret.ExprOpt.(*ast.BinaryOperation)
	if !ok || bin.Operator != ">>" {
		t.Fatalf("got %+v, want >>", ret.ExprOpt)
	}
}

func TestParseCastOfUnaryMinusOperand(t *testing.T) {
	unit := parseUnit(t, `class Foo { int m() { return (Foo) -bar; } }`)
	ret := firstReturn(t, unit)

	cast, ok := ret.ExprOpt.(*ast.Cast)
	if !ok {
		t.Fatalf("got %T, want *ast.Cast ((Foo) -bar must parse as a cast, not subtraction)", ret.ExprOpt)
	}
	if cast.Type.(*ast.ClassType).Name.Text != "Foo" {
		t.Fatalf("got cast type %+v", cast.Type)
	}
	unary, ok := cast.Expr.(*ast.UnaryPrefix)
	if !ok || unary.Operator != "-" {
		t.Fatalf("got cast operand %+v, want a unary - of bar", cast.Expr)
	}
}

func TestParseParenthesizedPlusIsStillAddition(t *testing.T) {
	unit := parseUnit(t, `class Foo { int m() { return (Foo) + bar; } }`)
	ret := firstReturn(t, unit)

	bin, ok := ret.ExprOpt.(*ast.BinaryOperation)
	if !ok || bin.Operator != "+" {
		t.Fatalf("got %T, want *ast.BinaryOperation ((Foo) + bar must parse as addition - `+` does not start a unary expression uniquely, per §4.3's cast-disambiguation rule)", ret.ExprOpt)
	}
	if _, ok := bin.Left.(*ast.Parenthesized); !ok {
		t.Fatalf("got left %T, want *ast.Parenthesized", bin.Left)
	}
}

func TestParseTryWithResourcesAndCatch(t *testing.T) {
	unit := parseUnit(t, `
		class Foo {
			void m() {
				try (InputStream in = open()) {
					use(in);
				} catch (IOException e) {
					log(e);
				} finally {
					cleanup();
				}
			}
		}
	`)
	class := unit.Main.(*ast.Class)
	method := class.Body[0].(*ast.Method)
	tryStmt, ok := method.BlockOpt.Stmts[0].(*ast.Try)
	if !ok {
		t.Fatalf("got %T, want *ast.Try", method.BlockOpt.Stmts[0])
	}
	if len(tryStmt.Resources) != 1 {
		t.Fatalf("got %d resources, want 1", len(tryStmt.Resources))
	}
	resource := tryStmt.Resources[0]
	if resource.Name.Text != "in" {
		t.Fatalf("got resource name %q", resource.Name.Text)
	}
	resourceType, ok := resource.TypeOpt.(*ast.ClassType)
	if !ok || resourceType.Name.Text != "InputStream" {
		t.Fatalf("got resource type %+v, want ClassType InputStream", resource.TypeOpt)
	}
	if len(tryStmt.Catches) != 1 {
		t.Fatalf("got %d catches, want 1", len(tryStmt.Catches))
	}
	if tryStmt.Catches[0].Name.Text != "e" {
		t.Fatalf("got catch name %q", tryStmt.Catches[0].Name.Text)
	}
	if tryStmt.FinallyOpt == nil {
		t.Fatal("expected a finally block")
	}
}

func TestParseForEach(t *testing.T) {
	unit := parseUnit(t, `class Foo { void m() { for (String s : names) { use(s); } } }`)
	class := unit.Main.(*ast.Class)
	method := class.Body[0].(*ast.Method)
	forEach, ok := method.BlockOpt.Stmts[0].(*ast.ForEach)
	if !ok {
		t.Fatalf("got %T, want *ast.ForEach", method.BlockOpt.Stmts[0])
	}
	if forEach.Var.Name.Text != "s" {
		t.Fatalf("got %q", forEach.Var.Name.Text)
	}
}

func TestParseRejectsUnterminatedClassBody(t *testing.T) {
	toks, err := lexer.Tokenize(`class Foo {`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if _, err := parser.Parse(toks, "test.java"); err == nil {
		t.Fatal("expected a ParseError for an unterminated class body")
	}
}

func firstReturn(t *testing.T, unit *ast.CompilationUnit) *ast.Return {
	t.Helper()
	class := unit.Main.(*ast.Class)
	method := class.Body[0].(*ast.Method)
	for _, stmt := range method.BlockOpt.Stmts {
		if ret, ok := stmt.(*ast.Return); ok {
			return ret
		}
	}
	t.Fatal("no return statement found")
	return nil
}
