package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/javalens/internal/config"
)

func TestParseManifestDecodesAllFields(t *testing.T) {
	m, err := config.Parse([]byte(`
sources:
  - Foo.java
  - Bar.java
wildcardImportRoots:
  - lib.util
  - lib.collections
target: Foo.java
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Sources) != 2 || m.Sources[0] != "Foo.java" {
		t.Fatalf("got sources %+v", m.Sources)
	}
	if len(m.WildcardImportRoots) != 2 || m.WildcardImportRoots[1] != "lib.collections" {
		t.Fatalf("got wildcardImportRoots %+v", m.WildcardImportRoots)
	}
	if m.Target != "Foo.java" {
		t.Fatalf("got target %q", m.Target)
	}
}

func TestParseManifestRejectsEmptySources(t *testing.T) {
	_, err := config.Parse([]byte(`target: Foo.java`))
	if err == nil {
		t.Fatal("expected an error for a manifest with no sources")
	}
}

func TestParseManifestRejectsMalformedYAML(t *testing.T) {
	_, err := config.Parse([]byte("sources: [unterminated"))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestTargetOrFirstFallsBackToFirstSource(t *testing.T) {
	m, err := config.Parse([]byte(`
sources:
  - Foo.java
  - Bar.java
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := m.TargetOrFirst(); got != "Foo.java" {
		t.Fatalf("got %q, want Foo.java", got)
	}
}

func TestTargetOrFirstHonorsExplicitTarget(t *testing.T) {
	m, err := config.Parse([]byte(`
sources:
  - Foo.java
  - Bar.java
target: Bar.java
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := m.TargetOrFirst(); got != "Bar.java" {
		t.Fatalf("got %q, want Bar.java", got)
	}
}

func TestLoadReadsManifestFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  - Foo.java\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Sources) != 1 || m.Sources[0] != "Foo.java" {
		t.Fatalf("got %+v", m.Sources)
	}
}

func TestLoadErrorsOnMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a nonexistent manifest path")
	}
}
