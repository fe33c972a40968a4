package parser

import (
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/span"
)

// parseCompilationUnit is the top-level grammar entry: an optional
// package declaration, zero or more imports, then one top-level class or
// interface (§3 "CompilationUnit { package_opt, imports, main }").
func (p *Parser) parseCompilationUnit() (*ast.CompilationUnit, bool) {
	pkg, _ := opt(p, (*Parser).parsePackage)
	imports := many0(p, (*Parser).parseImport)

	main, ok := p.parseDecl()
	if !ok {
		return nil, false
	}

	if !p.atEOF() {
		return nil, false
	}

	return &ast.CompilationUnit{
		Path:       p.path,
		PackageOpt: pkg,
		Imports:    imports,
		Main:       main,
	}, true
}

func (p *Parser) parsePackage() (*ast.PackageDecl, bool) {
	kw, ok := p.word("package")
	if !ok {
		return nil, false
	}

	components, ok := separatedNonEmptyList(p, dotSep, (*Parser).identifier)
	if !ok {
		return nil, false
	}

	if _, ok := p.symbol(";"); !ok {
		return nil, false
	}

	return &ast.PackageDecl{Span: kw, Components: components}, true
}

func (p *Parser) parseImport() (*ast.Import, bool) {
	kw, ok := p.word("import")
	if !ok {
		return nil, false
	}

	components, ok := separatedNonEmptyList(p, dotSep, (*Parser).identifier)
	if !ok {
		return nil, false
	}

	wildcard := false
	m := p.mark()
	if _, ok := p.symbol("."); ok {
		if _, ok := p.symbol("*"); ok {
			wildcard = true
		} else {
			p.reset(m)
		}
	}

	if _, ok := p.symbol(";"); !ok {
		return nil, false
	}

	return &ast.Import{Span: kw, Components: components, Wildcard: wildcard}, true
}

func (p *Parser) parseDecl() (ast.Decl, bool) {
	modifiers := p.parseModifiers()

	if class, ok := p.parseClass(modifiers); ok {
		return class, true
	}
	if iface, ok := p.parseInterface(modifiers); ok {
		return iface, true
	}
	return nil, false
}

// parseModifiers parses §4.4's modifier-keyword list (grounded on
// original_source's exact keyword set, token.IsModifierKeyword).
func (p *Parser) parseModifiers() []ast.Modifier {
	return many0(p, func(p *Parser) (ast.Modifier, bool) {
		tok := p.peek()
		if tok.Fragment() != "" && isModifierWord(tok.Fragment()) {
			p.advance()
			return ast.Modifier{Span: tok.Span, Name: tok.Fragment()}, true
		}
		p.fail()
		return ast.Modifier{}, false
	})
}

func isModifierWord(w string) bool {
	switch w {
	case "abstract", "default", "final", "native", "private", "protected",
		"public", "static", "strictfp", "synchronized", "transient", "volatile":
		return true
	}
	return false
}

func (p *Parser) parseClass(modifiers []ast.Modifier) (*ast.Class, bool) {
	m := p.mark()
	kw, ok := p.word("class")
	if !ok {
		p.reset(m)
		return nil, false
	}

	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}

	typeParams := p.parseTypeParams()

	var extendOpt *ast.ClassType
	if _, ok := p.word("extends"); ok {
		ct, ok := p.parseClassType()
		if !ok {
			p.reset(m)
			return nil, false
		}
		extendOpt = ct
	}

	var implements []*ast.ClassType
	if _, ok := p.word("implements"); ok {
		list, ok := separatedNonEmptyList(p, commaSep, (*Parser).parseClassType)
		if !ok {
			p.reset(m)
			return nil, false
		}
		implements = list
	}

	body, ok := p.parseClassBody()
	if !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.Class{
		ID:         ast.NewDeclID(),
		Span:       kw,
		Modifiers:  modifiers,
		Name:       name,
		TypeParams: typeParams,
		ExtendOpt:  extendOpt,
		Implements: implements,
		Body:       body,
	}, true
}

func (p *Parser) parseInterface(modifiers []ast.Modifier) (*ast.Interface, bool) {
	m := p.mark()
	kw, ok := p.word("interface")
	if !ok {
		p.reset(m)
		return nil, false
	}

	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}

	typeParams := p.parseTypeParams()

	var implements []*ast.ClassType
	if _, ok := p.word("extends"); ok {
		list, ok := separatedNonEmptyList(p, commaSep, (*Parser).parseClassType)
		if !ok {
			p.reset(m)
			return nil, false
		}
		implements = list
	}

	body, ok := p.parseClassBody()
	if !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.Interface{
		ID:         ast.NewDeclID(),
		Span:       kw,
		Modifiers:  modifiers,
		Name:       name,
		TypeParams: typeParams,
		Implements: implements,
		Body:       body,
	}, true
}

func (p *Parser) parseClassBody() ([]ast.ClassBodyItem, bool) {
	if _, ok := p.symbol("{"); !ok {
		return nil, false
	}

	items := many0(p, (*Parser).parseClassBodyItem)

	if _, ok := p.symbol("}"); !ok {
		return nil, false
	}

	return items, true
}

func (p *Parser) parseClassBodyItem() (ast.ClassBodyItem, bool) {
	m := p.mark()

	if _, ok := p.symbol(";"); ok {
		return p.parseClassBodyItem()
	}

	if kw, ok := p.word("static"); ok {
		if blockOk := p.peekIsSymbol("{"); blockOk {
			block, ok := p.parseBlock()
			if ok {
				return &ast.StaticInitializer{Span: kw, Block: block}, true
			}
		}
		p.reset(m)
	}

	modifiers := p.parseModifiers()

	if class, ok := p.parseClass(modifiers); ok {
		return class, true
	}
	if iface, ok := p.parseInterface(modifiers); ok {
		return iface, true
	}
	if enum, ok := p.parseEnum(modifiers); ok {
		return enum, true
	}
	if ann, ok := p.parseAnnotationDecl(modifiers); ok {
		return ann, true
	}
	if ctor, ok := p.parseConstructor(modifiers); ok {
		return ctor, true
	}
	if method, ok := p.parseMethod(modifiers); ok {
		return method, true
	}
	if field, ok := p.parseFieldDeclarators(modifiers); ok {
		return field, true
	}

	p.reset(m)
	return nil, false
}

func (p *Parser) parseEnum(modifiers []ast.Modifier) (*ast.Enum, bool) {
	m := p.mark()
	kw, ok := p.word("enum")
	if !ok {
		p.reset(m)
		return nil, false
	}

	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}

	var implements []*ast.ClassType
	if _, ok := p.word("implements"); ok {
		list, ok := separatedNonEmptyList(p, commaSep, (*Parser).parseClassType)
		if !ok {
			p.reset(m)
			return nil, false
		}
		implements = list
	}

	if _, ok := p.symbol("{"); !ok {
		p.reset(m)
		return nil, false
	}

	constants, _ := separatedNonEmptyList(p, commaSep, func(p *Parser) (span.Span, bool) {
		return p.identifier()
	})

	var body []ast.ClassBodyItem
	if _, ok := p.symbol(";"); ok {
		body = many0(p, (*Parser).parseClassBodyItem)
	}

	if _, ok := p.symbol("}"); !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.Enum{
		ID: ast.NewDeclID(), Span: kw, Modifiers: modifiers, Name: name,
		Implements: implements, Constants: constants, Body: body,
	}, true
}

// parseAnnotationDecl parses `@interface Name { }` as an opaque member
// (§3 ClassBodyItem::Annotation).
func (p *Parser) parseAnnotationDecl(modifiers []ast.Modifier) (*ast.Annotation, bool) {
	m := p.mark()
	at, ok := p.symbol("@")
	if !ok {
		return nil, false
	}
	if _, ok := p.word("interface"); !ok {
		p.reset(m)
		return nil, false
	}
	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol("{"); !ok {
		p.reset(m)
		return nil, false
	}
	// Skip balanced braces; annotation member bodies are not part of the
	// resolved tree.
	depth := 1
	for depth > 0 {
		if p.atEOF() {
			p.reset(m)
			return nil, false
		}
		if p.peekIsSymbol("{") {
			depth++
		} else if p.peekIsSymbol("}") {
			depth--
		}
		p.advance()
	}
	return &ast.Annotation{Span: at, Name: name}, true
}

func (p *Parser) parseConstructor(modifiers []ast.Modifier) (*ast.Constructor, bool) {
	m := p.mark()
	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}

	params, ok := p.parseParamList()
	if !ok {
		p.reset(m)
		return nil, false
	}

	p.parseThrowsOpt()

	block, ok := p.parseBlock()
	if !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.Constructor{
		ID: ast.NewDeclID(), Span: name, Modifiers: modifiers, Name: name, Params: params, Block: block,
	}, true
}

func (p *Parser) parseMethod(modifiers []ast.Modifier) (*ast.Method, bool) {
	m := p.mark()

	typeParams := p.parseTypeParams()

	returnType, ok := p.parseType()
	if !ok {
		p.reset(m)
		return nil, false
	}

	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}

	params, ok := p.parseParamList()
	if !ok {
		p.reset(m)
		return nil, false
	}

	returnType = p.parseArrayTail(returnType)

	p.parseThrowsOpt()

	var blockOpt *ast.Block
	if p.peekIsSymbol("{") {
		block, ok := p.parseBlock()
		if !ok {
			p.reset(m)
			return nil, false
		}
		blockOpt = block
	} else if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.Method{
		ID: ast.NewDeclID(), Span: name, Modifiers: modifiers, ReturnType: returnType,
		Name: name, TypeParams: typeParams, Params: params, BlockOpt: blockOpt,
	}, true
}

func (p *Parser) parseThrowsOpt() {
	m := p.mark()
	if _, ok := p.word("throws"); !ok {
		return
	}
	if _, ok := separatedNonEmptyList(p, commaSep, (*Parser).parseClassType); !ok {
		p.reset(m)
	}
}

func (p *Parser) parseParamList() ([]*ast.Param, bool) {
	if _, ok := p.symbol("("); !ok {
		return nil, false
	}

	params := separatedList(p, commaSep, (*Parser).parseParam)

	if _, ok := p.symbol(")"); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	m := p.mark()

	// Leading modifiers (e.g. `final`) are allowed but not retained; only
	// the type and name matter for resolution.
	p.parseModifiers()

	tpe, ok := p.parseType()
	if !ok {
		p.reset(m)
		return nil, false
	}

	variadic := false
	if _, ok := p.symbol3(".", ".", "."); ok {
		variadic = true
	}

	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}

	tpe = p.parseArrayTail(tpe)

	return &ast.Param{ID: ast.NewDeclID(), Span: name, Name: name, Type: tpe, Variadic: variadic}, true
}

func (p *Parser) parseFieldDeclarators(modifiers []ast.Modifier) (*ast.FieldDeclarators, bool) {
	m := p.mark()

	tpe, ok := p.parseType()
	if !ok {
		p.reset(m)
		return nil, false
	}

	declarators, ok := separatedNonEmptyList(p, commaSep, (*Parser).parseVariableDeclarator)
	if !ok {
		p.reset(m)
		return nil, false
	}

	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.FieldDeclarators{Span: tpe.Pos(), Modifiers: modifiers, Type: tpe, Declarators: declarators}, true
}

func (p *Parser) parseVariableDeclarator() (*ast.VariableDeclarator, bool) {
	name, ok := p.identifier()
	if !ok {
		return nil, false
	}

	var initOpt ast.Expr
	m := p.mark()
	if _, ok := p.symbol("="); ok {
		e, ok := p.parseExpr()
		if !ok {
			p.reset(m)
			return nil, false
		}
		initOpt = e
	}

	return &ast.VariableDeclarator{ID: ast.NewDeclID(), Span: name, Name: name, InitOpt: initOpt}, true
}
