package analyze

import "github.com/funvibe/javalens/internal/ast"

// TargetRoot narrows a fully merged and resolved Root down to the
// subset whose CompilationUnit.Path equals path — the "target_root" of
// spec.md §6's extract(target_root, full_root), used when a batch
// config.Manifest names a single target unit inside a larger batch. The
// returned Root shares every CompilationUnit/ClassLike/Bindings identity
// with full; only the Package chain is rebuilt, holding just the
// matching units and their classes, so extract's resolved
// destinations still point at full's definitions even when the
// reference's own file falls outside the target subset.
func TargetRoot(full *Root, path string) *Root {
	target := &Root{}
	for _, u := range full.Units {
		if u.Path == path {
			target.Units = append(target.Units, u)
			if c := classesDeclaredIn(full.Classes, u); c != nil {
				target.Classes = append(target.Classes, c)
			}
		}
	}
	target.Subpackages = targetPackages(full.Subpackages, path)
	return target
}

func targetPackages(packages []*Package, path string) []*Package {
	var out []*Package
	for _, pkg := range packages {
		filtered := &Package{Name: pkg.Name}
		for _, u := range pkg.Units {
			if u.Path == path {
				filtered.Units = append(filtered.Units, u)
				if c := classesDeclaredIn(pkg.Classes, u); c != nil {
					filtered.Classes = append(filtered.Classes, c)
				}
			}
		}
		filtered.Subpackages = targetPackages(pkg.Subpackages, path)
		if len(filtered.Units) > 0 || len(filtered.Subpackages) > 0 {
			out = append(out, filtered)
		}
	}
	return out
}

// classesDeclaredIn finds the class among classes whose declaring node
// is u.Main — each unit contributes exactly one top-level declaration
// (spec.md §6's compilation unit grammar), so this is a membership
// check rather than a search over an unbounded set.
func classesDeclaredIn(classes []ClassLike, u *ast.CompilationUnit) ClassLike {
	for _, c := range classes {
		if c.DefSpan() == ast.Node(u.Main) {
			return c
		}
	}
	return nil
}
