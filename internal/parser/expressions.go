package parser

import (
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/span"
	"github.com/funvibe/javalens/internal/token"
)

// parseExpr is the top of the 16-level precedence ladder of §4.3 — level
// 1, assignment, the only right-associative level.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	left, ok := p.parseTernary()
	if !ok {
		return nil, false
	}

	m := p.mark()
	if op, ok := p.assignOperator(); ok {
		right, ok := p.parseExpr()
		if !ok {
			p.reset(m)
			return left, true
		}
		return &ast.Assignment{Span: left.Pos(), Left: left, Operator: op, Right: right}, true
	}
	p.reset(m)

	return left, true
}

// assignOperator matches one of the assignment operators, longest first
// so e.g. `>>>=` isn't read as `>>` followed by a stray `>=`.
func (p *Parser) assignOperator() (string, bool) {
	if sp, ok := p.symbol3(">", ">", ">"); ok {
		if _, ok := p.symbol("="); ok {
			return sp.Text + "=", true
		}
		return "", false
	}
	if sp, ok := p.symbol2("<", "<"); ok {
		if _, ok := p.symbol("="); ok {
			return sp.Text + "=", true
		}
		return "", false
	}
	if sp, ok := p.symbol2(">", ">"); ok {
		if _, ok := p.symbol("="); ok {
			return sp.Text + "=", true
		}
		return "", false
	}
	for _, pair := range [][2]string{
		{"+", "="}, {"-", "="}, {"*", "="}, {"/", "="}, {"%", "="},
		{"&", "="}, {"|", "="}, {"^", "="},
	} {
		if sp, ok := p.symbol2(pair[0], pair[1]); ok {
			return sp.Text, true
		}
	}
	if sp, ok := p.symbolNotFollowedByAny("=", "="); ok {
		return sp.Text, true
	}
	return "", false
}

// level 2: ternary `? :`
func (p *Parser) parseTernary() (ast.Expr, bool) {
	cond, ok := p.parseLogicalOr()
	if !ok {
		return nil, false
	}

	m := p.mark()
	if _, ok := p.symbol("?"); ok {
		then, ok := p.parseExpr()
		if !ok {
			p.reset(m)
			return cond, true
		}
		if _, ok := p.symbol(":"); !ok {
			p.reset(m)
			return cond, true
		}
		elseExpr, ok := p.parseExpr()
		if !ok {
			p.reset(m)
			return cond, true
		}
		return &ast.Ternary{Span: cond.Pos(), Cond: cond, Then: then, Else: elseExpr}, true
	}
	return cond, true
}

// level 3: `||`
func (p *Parser) parseLogicalOr() (ast.Expr, bool) {
	left, ok := p.parseLogicalAnd()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbol2("|", "|")
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseLogicalAnd()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 4: `&&`
func (p *Parser) parseLogicalAnd() (ast.Expr, bool) {
	left, ok := p.parseBitOr()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbol2("&", "&")
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseBitOr()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 5: `|` (rejected if immediately followed by `|` or `=`, which
// belong to `||` and `|=`)
func (p *Parser) parseBitOr() (ast.Expr, bool) {
	left, ok := p.parseBitXor()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbolNotFollowedByAny("|", "|=")
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseBitXor()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 6: `^` (rejected before `=`)
func (p *Parser) parseBitXor() (ast.Expr, bool) {
	left, ok := p.parseBitAnd()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbolNotFollowedByAny("^", "=")
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseBitAnd()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 7: `&` (rejected before `&` or `=`)
func (p *Parser) parseBitAnd() (ast.Expr, bool) {
	left, ok := p.parseEquality()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbolNotFollowedByAny("&", "&=")
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseEquality()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 8: `== !=`
func (p *Parser) parseEquality() (ast.Expr, bool) {
	left, ok := p.parseRelational()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbol2("=", "=")
		if !ok {
			op, ok = p.symbol2("!", "=")
		}
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseRelational()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 9: `< <= > >= instanceof`
func (p *Parser) parseRelational() (ast.Expr, bool) {
	left, ok := p.parseShift()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		if _, ok := p.word("instanceof"); ok {
			tpe, ok := p.parseType()
			if !ok {
				p.reset(m)
				return left, true
			}
			left = &ast.InstanceOf{Span: left.Pos(), Expr: left, Type: tpe}
			continue
		}

		op, ok := p.symbol2("<", "=")
		if !ok {
			op, ok = p.symbol2(">", "=")
		}
		if !ok {
			if sp, ok2 := p.symbolNotFollowedByAny("<", "<="); ok2 {
				op, ok = sp, true
			} else if sp, ok2 := p.symbolNotFollowedByAny(">", ">="); ok2 {
				op, ok = sp, true
			}
		}
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseShift()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 10: `<< >> >>>`
func (p *Parser) parseShift() (ast.Expr, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbol3(">", ">", ">")
		if !ok {
			op, ok = p.symbol2("<", "<")
		}
		if !ok {
			op, ok = p.symbol2(">", ">")
		}
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseAdditive()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 11: `+ -` (rejected before `+`/`-`/`=`, which belong to `++`/`--`/`+=`/`-=`)
func (p *Parser) parseAdditive() (ast.Expr, bool) {
	left, ok := p.parseMultiplicative()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbolNotFollowedByAny("+", "+=")
		if !ok {
			op, ok = p.symbolNotFollowedByAny("-", "-=")
		}
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseMultiplicative()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 12: `* / %`
func (p *Parser) parseMultiplicative() (ast.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbolNotFollowedByAny("*", "=")
		if !ok {
			op, ok = p.symbolNotFollowedByAny("/", "=")
		}
		if !ok {
			op, ok = p.symbolNotFollowedByAny("%", "=")
		}
		if !ok {
			p.reset(m)
			return left, true
		}
		right, ok := p.parseUnary()
		if !ok {
			p.reset(m)
			return left, true
		}
		left = &ast.BinaryOperation{Span: left.Pos(), Left: left, Operator: op.Text, Right: right}
	}
}

// level 13: unary prefix `+ - ! ~ ++ --` and cast. The cast/parenthesized
// disambiguation of §4.3: after `(`, attempt type-then-`)`-then-unary
// start; fall through to the parenthesized-expression atom on failure.
func (p *Parser) parseUnary() (ast.Expr, bool) {
	if cast, ok := p.tryParseCast(); ok {
		return cast, true
	}

	m := p.mark()
	for _, op := range []string{"++", "--"} {
		if sp, ok := p.symbol2(op[0:1], op[1:2]); ok {
			operand, ok := p.parseUnary()
			if !ok {
				p.reset(m)
				break
			}
			return &ast.UnaryPrefix{Span: sp, Operator: op, Operand: operand}, true
		}
	}

	for _, op := range []string{"+", "-", "!", "~"} {
		if sp, ok := p.symbol(op); ok {
			operand, ok := p.parseUnary()
			if !ok {
				p.reset(m)
				break
			}
			return &ast.UnaryPrefix{Span: sp, Operator: op, Operand: operand}, true
		}
	}

	return p.parsePostfix()
}

// tryParseCast implements §4.3's cast disambiguation: `(` Type `)` then a
// token that can start a unary expression (`!`, `~`, `-`, `(`,
// identifier, literal, `new`, `this`, `super`).
func (p *Parser) tryParseCast() (*ast.Cast, bool) {
	m := p.mark()
	lp, ok := p.symbol("(")
	if !ok {
		return nil, false
	}

	tpe, ok := p.parseType()
	if !ok {
		p.reset(m)
		return nil, false
	}

	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}

	if !p.startsUnaryExpr() {
		p.reset(m)
		return nil, false
	}

	operand, ok := p.parseUnary()
	if !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.Cast{Span: lp, Type: tpe, Expr: operand}, true
}

func (p *Parser) startsUnaryExpr() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.IntegerLiteral, token.FloatLiteral, token.StringLiteral,
		token.CharLiteral, token.BooleanLiteral, token.NullLiteral, token.Identifier:
		return true
	}
	if p.peekIsSymbol("!") || p.peekIsSymbol("~") || p.peekIsSymbol("-") || p.peekIsSymbol("(") {
		return true
	}
	if p.peekIsWord("new") || p.peekIsWord("this") || p.peekIsWord("super") {
		return true
	}
	return false
}

// level 14: postfix `++ --`
func (p *Parser) parsePostfix() (ast.Expr, bool) {
	operand, ok := p.parseSelector()
	if !ok {
		return nil, false
	}
	for {
		m := p.mark()
		op, ok := p.symbol2("+", "+")
		if !ok {
			op, ok = p.symbol2("-", "-")
		}
		if !ok {
			p.reset(m)
			return operand, true
		}
		operand = &ast.UnaryPostfix{Span: operand.Pos(), Operator: op.Text, Operand: operand}
	}
}

// level 15: selector chain `.field`, `.method(args)`, `[index]`, `::ref`.
func (p *Parser) parseSelector() (ast.Expr, bool) {
	expr, ok := p.parseAtom()
	if !ok {
		return nil, false
	}

	for {
		m := p.mark()

		if _, ok := p.symbol("."); ok {
			typeArgs, _ := p.parseTypeArgsOpt()
			name, ok := p.identifier()
			if !ok {
				p.reset(m)
				return expr, true
			}
			if p.peekIsSymbol("(") {
				args, ok := p.parseArgs()
				if !ok {
					p.reset(m)
					return expr, true
				}
				expr = &ast.MethodCall{Span: expr.Pos(), ExprOpt: expr, TypeArgsOpt: typeArgs, Name: name, Args: args}
			} else {
				expr = &ast.FieldAccess{Span: expr.Pos(), Expr: expr, Name: name}
			}
			continue
		}

		if _, ok := p.symbol("["); ok {
			index, ok := p.parseExpr()
			if !ok {
				p.reset(m)
				return expr, true
			}
			if _, ok := p.symbol("]"); !ok {
				p.reset(m)
				return expr, true
			}
			expr = &ast.ArrayAccess{Span: expr.Pos(), Expr: expr, Index: index}
			continue
		}

		if _, ok := p.symbol2(":", ":"); ok {
			name, ok := p.identifier()
			if !ok {
				p.reset(m)
				return expr, true
			}
			expr = &ast.MethodReference{Span: expr.Pos(), Expr: expr, Name: name}
			continue
		}

		p.reset(m)
		return expr, true
	}
}

func (p *Parser) parseArgs() ([]ast.Expr, bool) {
	if _, ok := p.symbol("("); !ok {
		return nil, false
	}
	args := separatedList(p, commaSep, func(p *Parser) (ast.Expr, bool) { return p.parseExpr() })
	if _, ok := p.symbol(")"); !ok {
		return nil, false
	}
	return args, true
}

// level 16: atoms. Lambda-vs-parenthesized disambiguation is resolved
// here: a `(` is first tried as a lambda parameter list followed by
// `->`, then falls back to a parenthesized expression.
func (p *Parser) parseAtom() (ast.Expr, bool) {
	tok := p.peek()

	switch tok.Kind {
	case token.IntegerLiteral:
		p.advance()
		return &ast.IntLiteral{Span: tok.Span}, true
	case token.FloatLiteral:
		p.advance()
		return &ast.FloatLiteral{Span: tok.Span}, true
	case token.StringLiteral:
		p.advance()
		return &ast.StringLiteral{Span: tok.Span}, true
	case token.CharLiteral:
		p.advance()
		return &ast.CharLiteral{Span: tok.Span}, true
	case token.BooleanLiteral:
		p.advance()
		return &ast.BooleanLiteral{Span: tok.Span, Value: tok.Span.Text == "true"}, true
	case token.NullLiteral:
		p.advance()
		return &ast.NullLiteral{Span: tok.Span}, true
	}

	if lambda, ok := p.tryParseLambda(); ok {
		return lambda, true
	}

	if sp, ok := p.symbol("("); ok {
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.symbol(")"); !ok {
			return nil, false
		}
		return &ast.Parenthesized{Span: sp, Expr: inner}, true
	}

	// A constructor call may carry a leading type-argument list:
	// `<T>this(...)` / `<T>super(...)`.
	m := p.mark()
	typeArgs, hasTypeArgs := p.parseTypeArgsOpt()

	if kw, ok := p.word("this"); ok {
		if p.peekIsSymbol("(") {
			args, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			return &ast.ThisConstructorCall{Span: kw, TypeArgsOpt: typeArgs, Args: args}, true
		}
		if !hasTypeArgs {
			return &ast.This{Span: kw}, true
		}
	}

	if kw, ok := p.word("super"); ok {
		if p.peekIsSymbol("(") {
			args, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			return &ast.SuperConstructorCall{Span: kw, TypeArgsOpt: typeArgs, Args: args}, true
		}
		if !hasTypeArgs {
			return &ast.Super{Span: kw}, true
		}
	}

	if hasTypeArgs {
		p.reset(m)
		return nil, false
	}

	if kw, ok := p.word("new"); ok {
		return p.parseNew(kw)
	}

	if name, ok := p.identifier(); ok {
		if p.peekIsSymbol("(") {
			args, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			return &ast.MethodCall{Span: name, ExprOpt: nil, Name: name, Args: args}, true
		}
		return &ast.Name{Span: name, Name: name.Text}, true
	}

	return nil, false
}

// tryParseLambda handles both `(params) -> body` and the parenthesis-free
// single-identifier form `x -> body` (original_source lambda.rs).
func (p *Parser) tryParseLambda() (*ast.Lambda, bool) {
	m := p.mark()

	var params []*ast.Param
	if _, ok := p.symbol("("); ok {
		list := separatedList(p, commaSep, (*Parser).parseLambdaParam)
		if _, ok := p.symbol(")"); !ok {
			p.reset(m)
			return nil, false
		}
		params = list
	} else if name, ok := p.identifier(); ok {
		params = []*ast.Param{{ID: ast.NewDeclID(), Span: name, Name: name}}
	} else {
		p.reset(m)
		return nil, false
	}

	arrow, ok := p.symbol2("-", ">")
	if !ok {
		p.reset(m)
		return nil, false
	}

	if p.peekIsSymbol("{") {
		block, ok := p.parseBlock()
		if !ok {
			p.reset(m)
			return nil, false
		}
		return &ast.Lambda{Span: arrow, Params: params, BodyBlock: block}, true
	}

	body, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.Lambda{Span: arrow, Params: params, BodyExpr: body}, true
}

// parseLambdaParam accepts both the typed (`Foo x`) and untyped (`x`)
// lambda-parameter forms.
func (p *Parser) parseLambdaParam() (*ast.Param, bool) {
	m := p.mark()
	if tpe, ok := p.parseType(); ok {
		if name, ok := p.identifier(); ok {
			return &ast.Param{ID: ast.NewDeclID(), Span: name, Name: name, Type: tpe}, true
		}
	}
	p.reset(m)

	name, ok := p.identifier()
	if !ok {
		return nil, false
	}
	return &ast.Param{ID: ast.NewDeclID(), Span: name, Name: name}, true
}

// parseNew parses `new Foo(args) { body }?` and `new T[dims]` / `new
// T[]{ init }` (§4.3, original_source constructor_call.rs and
// tpe/array.rs).
func (p *Parser) parseNew(kw span.Span) (ast.Expr, bool) {
	base, ok := p.parseTypeNoArray()
	if !ok {
		return nil, false
	}

	if p.peekIsSymbol("[") {
		return p.parseNewArray(kw, base)
	}

	ct, ok := base.(*ast.ClassType)
	if !ok {
		return nil, false
	}

	args, ok := p.parseArgs()
	if !ok {
		return nil, false
	}

	var bodyOpt []ast.ClassBodyItem
	if p.peekIsSymbol("{") {
		body, ok := p.parseClassBody()
		if !ok {
			return nil, false
		}
		bodyOpt = body
	}

	return &ast.NewObject{Span: kw, Type: ct, Args: args, BodyOpt: bodyOpt}, true
}

func (p *Parser) parseNewArray(kw span.Span, elem ast.Type) (ast.Expr, bool) {
	var dims []ast.Expr
	for p.peekIsSymbol("[") {
		m := p.mark()
		p.symbol("[")
		if _, ok := p.symbol("]"); ok {
			dims = append(dims, nil)
			continue
		}
		size, ok := p.parseExpr()
		if !ok {
			p.reset(m)
			break
		}
		if _, ok := p.symbol("]"); !ok {
			p.reset(m)
			break
		}
		dims = append(dims, size)
	}
	if len(dims) == 0 {
		return nil, false
	}

	var initOpt *ast.ArrayInitializer
	if p.peekIsSymbol("{") {
		init, ok := p.parseArrayInitializer()
		if !ok {
			return nil, false
		}
		initOpt = init
	}

	return &ast.NewArray{Span: kw, Elem: elem, Dims: dims, InitOpt: initOpt}, true
}

func (p *Parser) parseArrayInitializer() (*ast.ArrayInitializer, bool) {
	lb, ok := p.symbol("{")
	if !ok {
		return nil, false
	}
	items := separatedList(p, commaSep, func(p *Parser) (ast.Expr, bool) {
		if init, ok := p.parseArrayInitializer(); ok {
			return init, true
		}
		return p.parseExpr()
	})

	m := p.mark()
	if _, ok := p.symbol(","); ok {
		if _, ok := p.symbol("}"); ok {
			return &ast.ArrayInitializer{Span: lb, Items: items}, true
		}
		p.reset(m)
	}
	if _, ok := p.symbol("}"); !ok {
		return nil, false
	}
	return &ast.ArrayInitializer{Span: lb, Items: items}, true
}
