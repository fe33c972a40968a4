package extract_test

import (
	"testing"

	"github.com/funvibe/javalens/internal/analyze"
	"github.com/funvibe/javalens/internal/diagnostics"
	"github.com/funvibe/javalens/internal/extract"
	"github.com/funvibe/javalens/internal/lexer"
	"github.com/funvibe/javalens/internal/parser"
	"github.com/funvibe/javalens/internal/semantics"
)

func resolveBindExtract(t *testing.T, src string) *extract.Extraction {
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
	return extract.Extract(root, bindings)
}

func TestExtractResolvedFieldTypeHasDestination(t *testing.T) {
	e := resolveBindExtract(t, `
		class Foo {
			Foo self;
		}
	`)
	found := false
	for _, u := range e.Usages {
		if u.DestinationOpt != nil {
			found = true
		}
	}
	if !found {
		t.Fatal("expected at least one resolved Usage with a destination (Foo self resolves to Foo itself)")
	}
}

func TestExtractUnresolvedTypeHasNullDestination(t *testing.T) {
	e := resolveBindExtract(t, `
		class Foo {
			Nonexistent n;
		}
	`)
	if len(e.Usages) == 0 {
		t.Fatal("expected at least one usage")
	}
	if e.Usages[0].DestinationOpt != nil {
		t.Fatal("expected the unresolved ClassType's usage to carry a nil destination")
	}
}

func TestExtractVisitsCastTypeEvenThoughAssignTypeDoesNot(t *testing.T) {
	e := resolveBindExtract(t, `
		class Foo {
			void m(Object o) {
				Bar b = (Bar) o;
			}
			class Bar {}
		}
	`)
	// "Bar" appears twice on line 4: once as the local's declared type
	// (resolved by assign_type), once inside the cast (never resolved by
	// assign_type, per its narrower scope) -- both must still surface as
	// Usages. The line's third usage, `o`, resolves to the parameter.
	count := 0
	for _, u := range e.Usages {
		if u.Loc.Pos.Line == 4 && (u.Definition == nil || u.Definition.SimpleName() == "Bar") {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("got %d Bar usages on the cast line, want 2 (declared type + cast type)", count)
	}
}

func TestExtractUsageCountMatchesNameAndClassTypeOccurrences(t *testing.T) {
	e := resolveBindExtract(t, `
		class Foo {
			Bar field;
			void m(Bar param) {
				Bar local = param;
				use(local);
			}
			class Bar {}
		}
	`)
	// ClassType occurrences: field type, param type, local decl type = 3.
	// Name occurrences: `param` (local's initializer), `local` (use's arg) = 2.
	if len(e.Usages) != 5 {
		t.Fatalf("got %d usages, want 5 (Testable Property 8 exhaustiveness)", len(e.Usages))
	}
}

func TestExtractPreservesSourceOrder(t *testing.T) {
	e := resolveBindExtract(t, `
		class Foo {
			Alpha a;
			Beta b;
			class Alpha {}
		}
	`)
	if len(e.Usages) != 2 {
		t.Fatalf("got %d usages, want 2", len(e.Usages))
	}
	if e.Usages[0].Loc.Pos.Line > e.Usages[1].Loc.Pos.Line {
		t.Fatal("usages should be emitted in source order")
	}
}

func TestExtractTryWithResourcesEmitsDefAndTypeUsage(t *testing.T) {
	e := resolveBindExtract(t, `
		class Foo {
			void m() {
				try (Helper h = open()) {
					use(h);
				} catch (Exception e) {
				}
			}
			class Helper {}
		}
	`)
	foundDef := false
	for _, d := range e.Defs {
		if d.Definition.SimpleName() == "h" {
			foundDef = true
		}
	}
	if !foundDef {
		t.Fatal("expected a Def for the try-with-resources variable h, mirroring ForEach's variable")
	}

	foundResolvedType := false
	for _, u := range e.Usages {
		if u.DestinationOpt != nil && u.Definition.SimpleName() == "Helper" {
			foundResolvedType = true
		}
	}
	if !foundResolvedType {
		t.Fatal("expected the resource's declared type Helper to surface as a resolved Usage")
	}
}

func TestExtractCollectsDefsAlongsideUsages(t *testing.T) {
	e := resolveBindExtract(t, `
		class Foo<T> {
			int x;
			Foo(int x) {}
			void m(int n) {
				int local = n;
			}
		}
	`)
	names := make(map[string]bool)
	for _, d := range e.Defs {
		names[d.Definition.SimpleName()] = true
	}
	for _, want := range []string{"Foo", "T", "x", "n", "local"} {
		if !names[want] {
			t.Fatalf("expected a Def for %q, got %+v", want, names)
		}
	}
}

func TestExtractTargetRootNarrowsOutput(t *testing.T) {
	bindings := analyze.NewBindings()
	var roots []*analyze.Root
	for path, src := range map[string]string{
		"Foo.java": `package p; class Foo { Bar b; }`,
		"Bar.java": `package p; class Bar { Foo f; }`,
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
	analyze.AssignTypes(root, bindings, diags)
	analyze.AssignParameterizedTypes(root, bindings)
	semantics.Bind(root, bindings)

	target := analyze.TargetRoot(root, "Foo.java")
	e := extract.Extract(target, bindings)

	if len(e.Usages) != 1 {
		t.Fatalf("got %d usages, want 1 (only Foo.java's own ClassType reference)", len(e.Usages))
	}
	if e.Usages[0].DestinationOpt == nil {
		t.Fatal("expected Foo's reference to Bar to still resolve even though Bar lives outside the narrowed target")
	}
}
