// Package config loads the YAML manifest describing one batch to feed
// through the pipeline (SPEC_FULL.md "Configuration"): which source
// files to tokenize and parse, any extra wildcard-import roots to seed
// alongside the implicit java.lang, and which compilation unit is the
// extract target.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is one batch's declarative description.
type Manifest struct {
	// Sources lists the paths of every file in the batch, as written;
	// cmd/javalens reads them as given, so relative paths resolve
	// against the working directory.
	Sources []string `yaml:"sources"`

	// WildcardImportRoots are extra dotted package paths resolved as if
	// every unit carried an `import x.y.*;` for each of them, alongside
	// the implicit java.lang (spec.md §4.4's resolve_type last step).
	WildcardImportRoots []string `yaml:"wildcardImportRoots"`

	// Target names the one source path extract's target_root is built
	// from; when empty, TargetOrFirst falls back to the first source.
	Target string `yaml:"target"`
}

// Load reads and parses a batch manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a batch manifest from raw YAML bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parsing manifest: %w", err)
	}
	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("config: manifest has no sources")
	}
	return &m, nil
}

// TargetOrFirst returns Target if set, else the first source path —
// the default extract target when a manifest doesn't narrow it.
func (m *Manifest) TargetOrFirst() string {
	if m.Target != "" {
		return m.Target
	}
	return m.Sources[0]
}
