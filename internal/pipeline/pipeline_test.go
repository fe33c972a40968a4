package pipeline_test

import (
	"testing"

	"github.com/funvibe/javalens/internal/pipeline"
)

func TestStandardPipelineResolvesAcrossTwoSources(t *testing.T) {
	ctx := pipeline.NewContext(
		pipeline.Source{Path: "Foo.java", Text: "package p; class Foo { Bar b; }"},
		pipeline.Source{Path: "Bar.java", Text: "package p; class Bar {}"},
	)

	result := pipeline.Standard().Run(ctx)

	if result.Failed() {
		t.Fatalf("unexpected fatal error: %v", result.FatalErr)
	}
	if result.Diagnostics.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics.Items())
	}
	if result.Extraction == nil {
		t.Fatal("expected an Extraction")
	}
	found := false
	for _, u := range result.Extraction.Usages {
		if u.DestinationOpt != nil {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Foo's reference to Bar to resolve end to end")
	}
}

func TestStandardPipelineTokenizeErrorIsFatalAndAborts(t *testing.T) {
	ctx := pipeline.NewContext(
		pipeline.Source{Path: "Bad.java", Text: `"unterminated`},
	)

	result := pipeline.Standard().Run(ctx)

	if !result.Failed() {
		t.Fatal("expected a fatal TokenizeError to abort the batch")
	}
	if result.Root != nil {
		t.Fatal("expected ResolveStage to have been skipped after a fatal tokenize error")
	}
}

func TestStandardPipelineParseErrorIsFatalAndAborts(t *testing.T) {
	ctx := pipeline.NewContext(
		pipeline.Source{Path: "Bad.java", Text: `class Foo {`},
	)

	result := pipeline.Standard().Run(ctx)

	if !result.Failed() {
		t.Fatal("expected a fatal ParseError to abort the batch")
	}
}

func TestTargetPathNarrowsExtraction(t *testing.T) {
	ctx := pipeline.NewContext(
		pipeline.Source{Path: "Foo.java", Text: "package p; class Foo { Bar b; }"},
		pipeline.Source{Path: "Bar.java", Text: "package p; class Bar { Foo f; }"},
	)
	ctx.TargetPath = "Foo.java"

	result := pipeline.Standard().Run(ctx)
	if result.Failed() {
		t.Fatalf("unexpected fatal error: %v", result.FatalErr)
	}
	if len(result.Extraction.Usages) != 1 {
		t.Fatalf("got %d usages, want 1 (only Foo.java's own reference)", len(result.Extraction.Usages))
	}
}

func TestWildcardImportRootsResolveAgainstExtraRoot(t *testing.T) {
	ctx := pipeline.NewContext(
		pipeline.Source{Path: "Foo.java", Text: "class Foo { Helper h; }"},
		pipeline.Source{Path: "Helper.java", Text: "package lib.util; class Helper {}"},
	)
	ctx.WildcardImportRoots = [][]string{{"lib", "util"}}

	result := pipeline.Standard().Run(ctx)

	if result.Failed() {
		t.Fatalf("unexpected fatal error: %v", result.FatalErr)
	}
	if result.Diagnostics.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics.Items())
	}
}
