package analyze_test

import (
	"testing"

	"github.com/funvibe/javalens/internal/analyze"
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/diagnostics"
	"github.com/funvibe/javalens/internal/lexer"
	"github.com/funvibe/javalens/internal/parser"
)

// buildOne tokenizes, parses, and builds a single compilation unit,
// returning its standalone Root and the shared Bindings.
func buildOne(t *testing.T, path, src string) (*ast.CompilationUnit, *analyze.Root, *analyze.Bindings) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	unit, err := parser.Parse(toks, path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bindings := analyze.NewBindings()
	root := analyze.Build(unit, bindings)
	return unit, root, bindings
}

// resolveBatch runs build+merge+assign_type+assign_parameterized_type
// over several sources as one batch, the way pipeline.ResolveStage does.
func resolveBatch(t *testing.T, sources map[string]string) (*analyze.Root, *analyze.Bindings, *diagnostics.Bag) {
	t.Helper()
	bindings := analyze.NewBindings()
	var roots []*analyze.Root
	for path, src := range sources {
		toks, err := lexer.Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%s): %v", path, err)
		}
		unit, err := parser.Parse(toks, path)
		if err != nil {
			t.Fatalf("Parse(%s): %v", path, err)
		}
		roots = append(roots, analyze.Build(unit, bindings))
	}
	diags := diagnostics.NewBag()
	root := analyze.Merge(roots, diags, "batch")
	analyze.AssignTypes(root, bindings, diags)
	analyze.AssignParameterizedTypes(root, bindings)
	return root, bindings, diags
}

func TestBuildNestsPackageChain(t *testing.T) {
	_, root, _ := buildOne(t, "a.java", `package com.example; class Foo {}`)
	if len(root.Subpackages) != 1 || root.Subpackages[0].Name != "com" {
		t.Fatalf("got subpackages %+v", root.Subpackages)
	}
	example := root.Subpackages[0].Subpackages[0]
	if example.Name != "example" || len(example.Classes) != 1 {
		t.Fatalf("got %+v", example)
	}
}

func TestBuildRegistersClassLevelTypeParamAndFieldDefs(t *testing.T) {
	unit, _, bindings := buildOne(t, "a.java", `class Box<T> { T value; }`)
	class := unit.Main.(*ast.Class)

	def, ok := bindings.DeclDef(class.TypeParams[0].ID)
	if !ok {
		t.Fatal("expected the class type param to have a registered def")
	}
	if def.SimpleName() != "T" {
		t.Fatalf("got %q", def.SimpleName())
	}

	field := class.Body[0].(*ast.FieldDeclarators).Declarators[0]
	fieldDef, ok := bindings.DeclDef(field.ID)
	if !ok || fieldDef.SimpleName() != "value" {
		t.Fatalf("got %v %v", fieldDef, ok)
	}
}

func TestMergeUnifiesSamePackageFromDifferentUnits(t *testing.T) {
	root, _, diags := resolveBatch(t, map[string]string{
		"a.java": `package com.example; class Foo {}`,
		"b.java": `package com.example; class Bar {}`,
	})
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags.Items())
	}
	if len(root.Subpackages) != 1 {
		t.Fatalf("got %d top-level subpackages, want 1 merged com", len(root.Subpackages))
	}
	example := root.Subpackages[0].Subpackages[0]
	if len(example.Classes) != 2 {
		t.Fatalf("got %d classes in merged package, want 2", len(example.Classes))
	}
}

func TestMergeKeepsBothDuplicatesAndDiagnoses(t *testing.T) {
	root, _, diags := resolveBatch(t, map[string]string{
		"a.java": `package com.example; class Foo { int a; }`,
		"b.java": `package com.example; class Foo { int b; }`,
	})
	example := root.Subpackages[0].Subpackages[0]
	if len(example.Classes) != 2 {
		t.Fatalf("got %d classes, want both kept (merge's 'keep both, diagnose' choice)", len(example.Classes))
	}
	found := false
	for _, d := range diags.Items() {
		if d.Code == diagnostics.CodeDuplicateDeclaration {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a CodeDuplicateDeclaration diagnostic")
	}
}

func TestMergeIsIdempotentUnderReordering(t *testing.T) {
	rootA, _, _ := resolveBatch(t, map[string]string{
		"a.java": `package com.example; class Foo {}`,
		"b.java": `package com.example; class Bar {}`,
	})
	rootB, _, _ := resolveBatch(t, map[string]string{
		"b.java": `package com.example; class Bar {}`,
		"a.java": `package com.example; class Foo {}`,
	})
	countClasses := func(r *analyze.Root) int {
		n := 0
		for _, sp := range r.Subpackages {
			n += len(sp.Subpackages[0].Classes)
		}
		return n
	}
	if countClasses(rootA) != countClasses(rootB) {
		t.Fatalf("merge result depends on unit order: %d vs %d", countClasses(rootA), countClasses(rootB))
	}
}

func TestAssignTypesResolvesWithinPackage(t *testing.T) {
	root, bindings, diags := resolveBatch(t, map[string]string{
		"Foo.java": `package p; class Foo { Bar b; }`,
		"Bar.java": `package p; class Bar {}`,
	})
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags.Items())
	}
	pkg := root.Subpackages[0]
	var fooClass *ast.Class
	for _, u := range pkg.Units {
		if c, ok := u.Main.(*ast.Class); ok && c.Name.Text == "Foo" {
			fooClass = c
		}
	}
	if fooClass == nil {
		t.Fatal("Foo class not found")
	}
	fields := fooClass.Body[0].(*ast.FieldDeclarators)
	ct := fields.Type.(*ast.ClassType)
	def, ok := bindings.ClassTypeDef(ct)
	if !ok {
		t.Fatal("expected Bar to resolve")
	}
	if def.SimpleName() != "Bar" {
		t.Fatalf("got %q", def.SimpleName())
	}
}

func TestAssignTypesRecordsUnresolvedTypeDiagnostic(t *testing.T) {
	_, _, diags := resolveBatch(t, map[string]string{
		"Foo.java": `class Foo { Nonexistent n; }`,
	})
	if diags.Len() == 0 {
		t.Fatal("expected an unresolved-type diagnostic")
	}
	if diags.Items()[0].Code != diagnostics.CodeUnresolvedType {
		t.Fatalf("got code %v", diags.Items()[0].Code)
	}
}

func TestAssignTypesConsultsExtraWildcardRoots(t *testing.T) {
	bindings := analyze.NewBindings()
	var roots []*analyze.Root
	for path, src := range map[string]string{
		"Foo.java": `class Foo { Helper h; }`,
		"Helper.java": `package lib.util; class Helper {}`,
	} {
		toks, err := lexer.Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%s): %v", path, err)
		}
		unit, err := parser.Parse(toks, path)
		if err != nil {
			t.Fatalf("Parse(%s): %v", path, err)
		}
		roots = append(roots, analyze.Build(unit, bindings))
	}
	diags := diagnostics.NewBag()
	root := analyze.Merge(roots, diags, "batch")
	root.ExtraWildcardRoots = [][]string{{"lib", "util"}}
	analyze.AssignTypes(root, bindings, diags)

	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags.Items())
	}
}

func TestAssignTypesResolvesTryWithResourcesType(t *testing.T) {
	root, bindings, diags := resolveBatch(t, map[string]string{
		"Foo.java": `
			package p;
			class Foo {
				void m() {
					try (Helper h = open()) {
						use(h);
					} catch (Exception e) {
					}
				}
			}
		`,
		"Helper.java":    `package p; class Helper {}`,
		"Exception.java": `package p; class Exception {}`,
	})
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags.Items())
	}

	pkg := root.Subpackages[0]
	var fooClass *ast.Class
	for _, u := range pkg.Units {
		if c, ok := u.Main.(*ast.Class); ok && c.Name.Text == "Foo" {
			fooClass = c
		}
	}
	method := fooClass.Body[0].(*ast.Method)
	tryStmt := method.BlockOpt.Stmts[0].(*ast.Try)
	resourceType := tryStmt.Resources[0].TypeOpt.(*ast.ClassType)

	def, ok := bindings.ClassTypeDef(resourceType)
	if !ok {
		t.Fatal("expected the try-with-resources variable's declared type to resolve")
	}
	if def.SimpleName() != "Helper" {
		t.Fatalf("got %q", def.SimpleName())
	}
}

func TestAssignTypesRecordsUnresolvedTryWithResourcesType(t *testing.T) {
	_, _, diags := resolveBatch(t, map[string]string{
		"Foo.java": `
			class Foo {
				void m() {
					try (Nonexistent n = open()) {
					} catch (Exception e) {
					}
				}
			}
		`,
	})
	if diags.Len() == 0 {
		t.Fatal("expected an unresolved-type diagnostic for the resource's type")
	}
	if diags.Items()[0].Code != diagnostics.CodeUnresolvedType {
		t.Fatalf("got code %v", diags.Items()[0].Code)
	}
}

func TestAssignParameterizedTypeMemoizesNestedGenerics(t *testing.T) {
	root, bindings, diags := resolveBatch(t, map[string]string{
		"Foo.java": `
			package p;
			class Foo {
				Box<Box<Box<String>>> deepA;
				Box<Box<Box<String>>> deepB;
			}
		`,
		"Box.java":    `package p; class Box<T> {}`,
		"String.java": `package p; class String {}`,
	})
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags.Items())
	}

	pkg := root.Subpackages[0]
	var fooClass *ast.Class
	for _, u := range pkg.Units {
		if c, ok := u.Main.(*ast.Class); ok && c.Name.Text == "Foo" {
			fooClass = c
		}
	}
	fields := fooClass.Body[0].(*ast.FieldDeclarators)
	ctA := fields.Type.(*ast.ClassType)
	fieldsB := fooClass.Body[1].(*ast.FieldDeclarators)
	ctB := fieldsB.Type.(*ast.ClassType)

	pA, ok := bindings.ParameterizationOf(ctA)
	if !ok {
		t.Fatal("expected deepA's ClassType to carry a Parameterization")
	}
	pB, ok := bindings.ParameterizationOf(ctB)
	if !ok {
		t.Fatal("expected deepB's ClassType to carry a Parameterization")
	}
	if pA != pB {
		t.Fatal("expected the two structurally identical nested generics to share one memoized Parameterization")
	}
}

func TestTargetRootNarrowsToOneCompilationUnit(t *testing.T) {
	root, _, diags := resolveBatch(t, map[string]string{
		"Foo.java": `package p; class Foo {}`,
		"Bar.java": `package p; class Bar {}`,
	})
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags.Items())
	}
	narrowed := analyze.TargetRoot(root, "Foo.java")
	pkg := narrowed.Subpackages[0]
	if len(pkg.Classes) != 1 || pkg.Classes[0].SimpleName() != "Foo" {
		t.Fatalf("got classes %+v, want only Foo", pkg.Classes)
	}
}
