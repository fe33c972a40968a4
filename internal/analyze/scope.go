package analyze

import (
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/span"
)

// Level is one lexical level of a Scope stack (spec.md §4.4 "Resolution
// scope"): an optional owning Package/Class/Method plus whatever names
// that level introduces.
type Level struct {
	Package    *Package
	Class      ClassLike
	Method     *ast.Method
	TypeParams []*TypeParamDef
	Params     []*ParamDef
	Locals     []*LocalDef
}

// Scope is the ordered stack of lexical levels used to resolve names
// (GLOSSARY "Scope"). SpecificImports and WildcardImports are
// cross-cutting: they apply to every level of one compilation unit,
// which is why they live on the Scope itself rather than inside a Level
// (spec.md §4.4 "the scope also carries two cross-cutting lists").
type Scope struct {
	Root            *Root
	Levels          []*Level
	CurrentPackage  *Package
	SpecificImports []*ast.Import
	WildcardImports []*ast.Import
}

// NewScope builds a Scope for one compilation unit, splitting its
// imports into the specific/wildcard lists §4.4 distinguishes.
func NewScope(root *Root, unit *ast.CompilationUnit, pkg *Package) *Scope {
	s := &Scope{Root: root, CurrentPackage: pkg}
	for _, imp := range unit.Imports {
		if imp.Wildcard {
			s.WildcardImports = append(s.WildcardImports, imp)
		} else {
			s.SpecificImports = append(s.SpecificImports, imp)
		}
	}
	return s
}

func (s *Scope) Push(level *Level) { s.Levels = append(s.Levels, level) }

func (s *Scope) Pop() { s.Levels = s.Levels[:len(s.Levels)-1] }

func (s *Scope) innermostClass() ClassLike {
	for i := len(s.Levels) - 1; i >= 0; i-- {
		if s.Levels[i].Class != nil {
			return s.Levels[i].Class
		}
	}
	return nil
}

// ResolveName implements §4.4's resolve_name: locals, then parameters,
// then fields of enclosing classes (innermost first), before falling
// back to the resolve_type lookup order.
func (s *Scope) ResolveName(ident string) (Definition, bool) {
	for i := len(s.Levels) - 1; i >= 0; i-- {
		locals := s.Levels[i].Locals
		for j := len(locals) - 1; j >= 0; j-- {
			if locals[j].Name == ident {
				return locals[j], true
			}
		}
	}

	for i := len(s.Levels) - 1; i >= 0; i-- {
		for _, p := range s.Levels[i].Params {
			if p.Name == ident {
				return p, true
			}
		}
	}

	for i := len(s.Levels) - 1; i >= 0; i-- {
		class := s.Levels[i].Class
		if class == nil {
			continue
		}
		if f, ok := findField(class, ident); ok {
			return f, true
		}
	}

	return s.resolveTypeLike(ident)
}

// ResolveType implements §4.4's resolve_type, returning only ClassLike
// results (a Name used in a type position can never bind to a local,
// parameter, or field).
func (s *Scope) ResolveType(ident string) (ClassLike, bool) {
	def, ok := s.resolveTypeLike(ident)
	if !ok {
		return nil, false
	}
	cl, ok := def.(ClassLike)
	return cl, ok
}

func (s *Scope) resolveTypeLike(ident string) (Definition, bool) {
	for i := len(s.Levels) - 1; i >= 0; i-- {
		for _, tp := range s.Levels[i].TypeParams {
			if tp.Name == ident {
				return tp, true
			}
		}
	}

	for i := len(s.Levels) - 1; i >= 0; i-- {
		class := s.Levels[i].Class
		if class == nil {
			continue
		}
		if nested, ok := findNested(class, ident); ok {
			return nested, true
		}
	}

	if s.CurrentPackage != nil {
		if cl, ok := findClassByName(s.CurrentPackage.Classes, ident); ok {
			return cl, true
		}
	} else if cl, ok := findClassByName(s.Root.Classes, ident); ok {
		return cl, true
	}

	for _, imp := range s.SpecificImports {
		if imp.SimpleName() != ident {
			continue
		}
		if cl, ok := s.Root.FindClassInPackage(pathStrings(imp.PackagePath()), ident); ok {
			return cl, true
		}
	}

	for _, imp := range s.WildcardImports {
		if cl, ok := s.Root.FindClassInPackage(pathStrings(imp.PackagePath()), ident); ok {
			return cl, true
		}
	}

	for _, path := range s.Root.ExtraWildcardRoots {
		if cl, ok := s.Root.FindClassInPackage(path, ident); ok {
			return cl, true
		}
	}

	if cl, ok := s.Root.FindClassInPackage([]string{"java", "lang"}, ident); ok {
		return cl, true
	}

	return nil, false
}

func findField(class ClassLike, name string) (*Field, bool) {
	for _, fg := range class.FieldGroups() {
		for _, f := range fg.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return nil, false
}

func findNested(class ClassLike, name string) (ClassLike, bool) {
	return findClassByName(class.Nested(), name)
}

func findClassByName(classes []ClassLike, name string) (ClassLike, bool) {
	for _, c := range classes {
		if c.SimpleName() == name {
			return c, true
		}
	}
	return nil, false
}

func pathStrings(components []span.Span) []string {
	out := make([]string, len(components))
	for i, c := range components {
		out[i] = c.Text
	}
	return out
}
