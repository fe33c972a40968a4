package parser

import (
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/span"
)

var primitiveNames = map[string]bool{
	"byte": true, "short": true, "int": true, "long": true, "char": true,
	"float": true, "double": true, "boolean": true,
}

// parseType parses §4's primitive | class | array type grammar.
func (p *Parser) parseType() (ast.Type, bool) {
	base, ok := p.parseTypeNoArray()
	if !ok {
		return nil, false
	}
	return p.parseArrayTail(base), true
}

func (p *Parser) parseArrayTail(base ast.Type) ast.Type {
	for {
		m := p.mark()
		lb, ok := p.symbol("[")
		if !ok {
			p.reset(m)
			return base
		}
		if _, ok := p.symbol("]"); !ok {
			p.reset(m)
			return base
		}
		base = &ast.ArrayType{Span: lb, Elem: base}
	}
}

func (p *Parser) parseTypeNoArray() (ast.Type, bool) {
	tok := p.peek()
	if p.peekIsWord("void") {
		sp, _ := p.word("void")
		return &ast.VoidType{Span: sp}, true
	}
	if tok.Fragment() != "" && primitiveNames[tok.Fragment()] && p.isPrimitiveToken() {
		sp, _ := p.identifierOrKeywordFragment()
		return &ast.PrimitiveType{Span: sp, Name: sp.Text}, true
	}
	return p.parseClassType()
}

// isPrimitiveToken reports whether the current token names a primitive
// type. Primitive names tokenize as Keyword (§4.1 reserved-word list).
func (p *Parser) isPrimitiveToken() bool {
	tok := p.peek()
	return tok.Fragment() != "" && primitiveNames[tok.Fragment()]
}

func (p *Parser) identifierOrKeywordFragment() (span.Span, bool) {
	tok := p.peek()
	if tok.Fragment() == "" {
		return span.Span{}, false
	}
	p.advance()
	return tok.Span, true
}

// parseClassType parses `a.b.C<T1, T2>`, recording the qualifier path and
// the simple name/type-args on the node (assign_type resolves by the
// simple name, the last component, alone; the qualifier is not consulted
// — see internal/analyze/assign_type.go).
func (p *Parser) parseClassType() (*ast.ClassType, bool) {
	first, ok := p.identifier()
	if !ok {
		return nil, false
	}

	components := []span.Span{first}
	for {
		m := p.mark()
		if _, ok := p.symbol("."); !ok {
			p.reset(m)
			break
		}
		// Don't consume a trailing `.class` or `.this`-style token as part
		// of the type name; only plain identifiers extend the qualifier.
		if id, ok := p.identifier(); ok {
			components = append(components, id)
		} else {
			p.reset(m)
			break
		}
	}

	name := components[len(components)-1]
	qualifier := components[:len(components)-1]

	typeArgs, _ := p.parseTypeArgsOpt()

	ct := &ast.ClassType{
		Span:      first,
		Name:      name,
		Qualifier: qualifier,
		TypeArgs:  typeArgs,
	}
	return ct, true
}

// parseTypeArgsOpt parses an optional `<T1, T2>` list. It reports ok=false
// (with no consumption) when there is no `<` at all, so callers can treat
// "no type args" uniformly with "type args present".
func (p *Parser) parseTypeArgsOpt() ([]ast.Type, bool) {
	m := p.mark()
	if _, ok := p.symbol("<"); !ok {
		return nil, false
	}

	args := separatedList(p, commaSep, func(p *Parser) (ast.Type, bool) { return p.parseType() })

	if _, ok := p.symbol(">"); !ok {
		p.reset(m)
		return nil, false
	}
	return args, true
}

func (p *Parser) parseTypeParams() []*ast.TypeParam {
	m := p.mark()
	if _, ok := p.symbol("<"); !ok {
		p.reset(m)
		return nil
	}

	params := separatedList(p, commaSep, (*Parser).parseTypeParam)

	if _, ok := p.symbol(">"); !ok {
		p.reset(m)
		return nil
	}
	return params
}

func (p *Parser) parseTypeParam() (*ast.TypeParam, bool) {
	name, ok := p.identifier()
	if !ok {
		return nil, false
	}

	var extends []*ast.ClassType
	m := p.mark()
	if _, ok := p.word("extends"); ok {
		bounds, ok := separatedNonEmptyList(p, func(p *Parser) (interface{}, bool) {
			sp, ok := p.symbol("&")
			return sp, ok
		}, (*Parser).parseClassType)
		if !ok {
			p.reset(m)
		} else {
			extends = bounds
		}
	}

	return &ast.TypeParam{
		ID:      ast.NewDeclID(),
		Span:    name,
		Name:    name,
		Extends: extends,
	}, true
}
