package analyze

import "github.com/funvibe/javalens/internal/diagnostics"

// Merge folds per-unit Roots into a single Root, unifying Package chains
// that share a dotted path (spec.md §4.4 "Merge"). Duplicate class names
// within the same package are kept (not deduplicated) and flagged —
// §9 Design Notes' open question (b) names "keep first, diagnose" as an
// alternative; this implementation keeps both, per the spec body text,
// since dropping a declaration would silently hide one half of a real
// naming conflict from the extractor.
func Merge(roots []*Root, diags *diagnostics.Bag, file string) *Root {
	merged := &Root{}
	for _, r := range roots {
		if r == nil {
			continue
		}
		merged.Units = append(merged.Units, r.Units...)
		merged.Classes = append(merged.Classes, r.Classes...)
		for _, sp := range r.Subpackages {
			merged.Subpackages = mergePackageInto(merged.Subpackages, sp)
		}
	}

	checkDuplicateClasses(merged.Classes, diags, file)
	for _, sp := range merged.Subpackages {
		checkDuplicatesRecursive(sp, diags, file)
	}

	return merged
}

// mergePackageInto unifies pkg into the existing list by name, merging
// recursively when a same-named package is already present.
func mergePackageInto(existing []*Package, pkg *Package) []*Package {
	for _, e := range existing {
		if e.Name == pkg.Name {
			e.Units = append(e.Units, pkg.Units...)
			e.Classes = append(e.Classes, pkg.Classes...)
			for _, sub := range pkg.Subpackages {
				e.Subpackages = mergePackageInto(e.Subpackages, sub)
			}
			return existing
		}
	}
	return append(existing, pkg)
}

func checkDuplicatesRecursive(pkg *Package, diags *diagnostics.Bag, file string) {
	checkDuplicateClasses(pkg.Classes, diags, file)
	for _, sub := range pkg.Subpackages {
		checkDuplicatesRecursive(sub, diags, file)
	}
}

func checkDuplicateClasses(classes []ClassLike, diags *diagnostics.Bag, file string) {
	seen := make(map[string]ClassLike, len(classes))
	for _, c := range classes {
		name := c.SimpleName()
		if prior, ok := seen[name]; ok {
			diags.Addf(diagnostics.CodeDuplicateDeclaration, file, c.DefSpan().Pos(),
				"class %q already declared at %d:%d", name, prior.DefSpan().Pos().Line, prior.DefSpan().Pos().Column)
			continue
		}
		seen[name] = c
	}
}
