package parser

import (
	"github.com/funvibe/javalens/internal/ast"
	"github.com/funvibe/javalens/internal/span"
)

func (p *Parser) parseBlock() (*ast.Block, bool) {
	lb, ok := p.symbol("{")
	if !ok {
		return nil, false
	}

	stmts := many0(p, (*Parser).parseStatement)

	if _, ok := p.symbol("}"); !ok {
		return nil, false
	}

	return &ast.Block{Span: lb, Stmts: stmts}, true
}

// parseBlockOrSingleStatement lets `if`/`while`/`for`/`do` take either a
// `{ ... }` block or a single bare statement as their body (§4.5).
func (p *Parser) parseBlockOrSingleStatement() (ast.Statement, bool) {
	if p.peekIsSymbol("{") {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() (ast.Statement, bool) {
	if p.peekIsSymbol("{") {
		return p.parseBlock()
	}
	if s, ok := p.parseIf(); ok {
		return s, true
	}
	if s, ok := p.parseWhileLoop(); ok {
		return s, true
	}
	if s, ok := p.parseDoWhile(); ok {
		return s, true
	}
	if s, ok := p.parseForStatement(); ok {
		return s, true
	}
	if s, ok := p.parseReturn(); ok {
		return s, true
	}
	if s, ok := p.parseBreak(); ok {
		return s, true
	}
	if s, ok := p.parseContinue(); ok {
		return s, true
	}
	if s, ok := p.parseThrow(); ok {
		return s, true
	}
	if s, ok := p.parseTry(); ok {
		return s, true
	}
	if s, ok := p.parseSwitch(); ok {
		return s, true
	}
	if s, ok := p.parseSynchronized(); ok {
		return s, true
	}
	if s, ok := p.parseLabeled(); ok {
		return s, true
	}
	if s, ok := p.parseVariableDeclaratorsStmt(); ok {
		return s, true
	}
	if s, ok := p.parseExprStmt(); ok {
		return s, true
	}
	return nil, false
}

func (p *Parser) parseIf() (*ast.If, bool) {
	m := p.mark()
	kw, ok := p.word("if")
	if !ok {
		return nil, false
	}
	if _, ok := p.symbol("("); !ok {
		p.reset(m)
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}
	then, ok := p.parseBlockOrSingleStatement()
	if !ok {
		p.reset(m)
		return nil, false
	}

	var elseOpt ast.Statement
	if _, ok := p.word("else"); ok {
		e, ok := p.parseBlockOrSingleStatement()
		if !ok {
			p.reset(m)
			return nil, false
		}
		elseOpt = e
	}

	return &ast.If{Span: kw, Cond: cond, Then: then, ElseOpt: elseOpt}, true
}

// parseWhileLoop follows original_source's while_loop.rs clause order.
func (p *Parser) parseWhileLoop() (*ast.WhileLoop, bool) {
	m := p.mark()
	kw, ok := p.word("while")
	if !ok {
		return nil, false
	}
	if _, ok := p.symbol("("); !ok {
		p.reset(m)
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}
	block, ok := p.parseBlockOrSingleStatement()
	if !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.WhileLoop{Span: kw, Cond: cond, Block: block}, true
}

// parseDoWhile follows original_source's do_while.rs: `do <block> while (
// <cond> ) ;`.
func (p *Parser) parseDoWhile() (*ast.DoWhile, bool) {
	m := p.mark()
	kw, ok := p.word("do")
	if !ok {
		return nil, false
	}
	block, ok := p.parseBlockOrSingleStatement()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.word("while"); !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol("("); !ok {
		p.reset(m)
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.DoWhile{Span: kw, Block: block, Cond: cond}, true
}

// parseForStatement disambiguates classic `for(init;cond;update)` from
// for-each `for (T x : expr)` by attempting for-each first, since its
// prefix (type + name + `:`) is a strict subset of what a classic for's
// init clause could otherwise also start parsing as a declaration.
func (p *Parser) parseForStatement() (ast.Statement, bool) {
	m := p.mark()
	kw, ok := p.word("for")
	if !ok {
		return nil, false
	}
	if _, ok := p.symbol("("); !ok {
		p.reset(m)
		return nil, false
	}

	if fe, ok := p.tryForEach(kw); ok {
		return fe, true
	}
	p.reset(m)

	kw, _ = p.word("for")
	p.symbol("(")

	var initOpt ast.Statement
	if !p.peekIsSymbol(";") {
		if v, ok := p.parseVariableDeclaratorsStmtNoSemi(); ok {
			initOpt = v
		} else if e, ok := p.parseExpr(); ok {
			initOpt = &ast.ExprStmt{Span: e.Pos(), Expr: e}
		}
	}
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}

	var condOpt ast.Expr
	if !p.peekIsSymbol(";") {
		c, ok := p.parseExpr()
		if !ok {
			p.reset(m)
			return nil, false
		}
		condOpt = c
	}
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}

	var updates []ast.Expr
	if !p.peekIsSymbol(")") {
		updates = separatedList(p, commaSep, func(p *Parser) (ast.Expr, bool) { return p.parseExpr() })
	}
	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}

	block, ok := p.parseBlockOrSingleStatement()
	if !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.ForLoop{Span: kw, InitOpt: initOpt, CondOpt: condOpt, Updates: updates, Block: block}, true
}

func (p *Parser) tryForEach(kw span.Span) (*ast.ForEach, bool) {
	m := p.mark()
	tpe, ok := p.parseType()
	if !ok {
		p.reset(m)
		return nil, false
	}
	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(":"); !ok {
		p.reset(m)
		return nil, false
	}
	e, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}
	block, ok := p.parseBlockOrSingleStatement()
	if !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.ForEach{
		Span: kw, Var: &ast.VariableDeclarator{ID: ast.NewDeclID(), Span: name, Name: name}, Type: tpe, Expr: e, Block: block,
	}, true
}

func (p *Parser) parseReturn() (*ast.Return, bool) {
	m := p.mark()
	kw, ok := p.word("return")
	if !ok {
		return nil, false
	}
	var exprOpt ast.Expr
	if !p.peekIsSymbol(";") {
		e, ok := p.parseExpr()
		if !ok {
			p.reset(m)
			return nil, false
		}
		exprOpt = e
	}
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.Return{Span: kw, ExprOpt: exprOpt}, true
}

func (p *Parser) parseBreak() (*ast.Break, bool) {
	m := p.mark()
	kw, ok := p.word("break")
	if !ok {
		return nil, false
	}
	label, _ := opt(p, (*Parser).identifier)
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.Break{Span: kw, LabelOpt: label}, true
}

func (p *Parser) parseContinue() (*ast.Continue, bool) {
	m := p.mark()
	kw, ok := p.word("continue")
	if !ok {
		return nil, false
	}
	label, _ := opt(p, (*Parser).identifier)
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.Continue{Span: kw, LabelOpt: label}, true
}

func (p *Parser) parseThrow() (*ast.Throw, bool) {
	m := p.mark()
	kw, ok := p.word("throw")
	if !ok {
		return nil, false
	}
	e, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.Throw{Span: kw, Expr: e}, true
}

func (p *Parser) parseTry() (*ast.Try, bool) {
	m := p.mark()
	kw, ok := p.word("try")
	if !ok {
		return nil, false
	}

	var resources []*ast.VariableDeclarator
	if _, ok := p.symbol("("); ok {
		resources = separatedNonEmptyListLoose(p, commaSep, (*Parser).parseResource)
		if _, ok := p.symbol(")"); !ok {
			p.reset(m)
			return nil, false
		}
	}

	block, ok := p.parseBlock()
	if !ok {
		p.reset(m)
		return nil, false
	}

	var catches []*ast.CatchClause
	for {
		c, ok := p.parseCatchClause()
		if !ok {
			break
		}
		catches = append(catches, c)
	}

	var finallyOpt *ast.Block
	if _, ok := p.word("finally"); ok {
		fb, ok := p.parseBlock()
		if !ok {
			p.reset(m)
			return nil, false
		}
		finallyOpt = fb
	}

	if len(catches) == 0 && finallyOpt == nil {
		p.reset(m)
		return nil, false
	}

	return &ast.Try{Span: kw, Resources: resources, Block: block, Catches: catches, FinallyOpt: finallyOpt}, true
}

func (p *Parser) parseResource() (*ast.VariableDeclarator, bool) {
	m := p.mark()
	p.parseModifiers()
	tpe, ok := p.parseType()
	if !ok {
		p.reset(m)
		return nil, false
	}
	decl, ok := p.parseVariableDeclarator()
	if !ok {
		p.reset(m)
		return nil, false
	}
	decl.TypeOpt = tpe
	return decl, true
}

func (p *Parser) parseCatchClause() (*ast.CatchClause, bool) {
	m := p.mark()
	kw, ok := p.word("catch")
	if !ok {
		return nil, false
	}
	if _, ok := p.symbol("("); !ok {
		p.reset(m)
		return nil, false
	}
	p.parseModifiers()
	types, ok := separatedNonEmptyList(p, func(p *Parser) (interface{}, bool) {
		sp, ok := p.symbol("|")
		return sp, ok
	}, (*Parser).parseClassType)
	if !ok {
		p.reset(m)
		return nil, false
	}
	name, ok := p.identifier()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}
	block, ok := p.parseBlock()
	if !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.CatchClause{Span: kw, Types: types, Name: name, Block: block}, true
}

func (p *Parser) parseSwitch() (*ast.Switch, bool) {
	m := p.mark()
	kw, ok := p.word("switch")
	if !ok {
		return nil, false
	}
	if _, ok := p.symbol("("); !ok {
		p.reset(m)
		return nil, false
	}
	e, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol("{"); !ok {
		p.reset(m)
		return nil, false
	}

	cases := many0(p, (*Parser).parseSwitchCase)

	if _, ok := p.symbol("}"); !ok {
		p.reset(m)
		return nil, false
	}

	return &ast.Switch{Span: kw, Expr: e, Cases: cases}, true
}

func (p *Parser) parseSwitchCase() (*ast.SwitchCase, bool) {
	m := p.mark()

	var valueOpt ast.Expr
	label, ok := p.word("case")
	if ok {
		e, ok := p.parseExpr()
		if !ok {
			p.reset(m)
			return nil, false
		}
		valueOpt = e
	} else {
		label, ok = p.word("default")
		if !ok {
			p.reset(m)
			return nil, false
		}
	}

	if _, ok := p.symbol(":"); !ok {
		p.reset(m)
		return nil, false
	}

	stmts := many0(p, func(p *Parser) (ast.Statement, bool) {
		if p.peekIsWord("case") || p.peekIsWord("default") || p.peekIsSymbol("}") {
			p.fail()
			return nil, false
		}
		return p.parseStatement()
	})

	return &ast.SwitchCase{Span: label, ValueOpt: valueOpt, Stmts: stmts}, true
}

func (p *Parser) parseSynchronized() (*ast.Synchronized, bool) {
	m := p.mark()
	kw, ok := p.word("synchronized")
	if !ok {
		return nil, false
	}
	if _, ok := p.symbol("("); !ok {
		p.reset(m)
		return nil, false
	}
	e, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(")"); !ok {
		p.reset(m)
		return nil, false
	}
	block, ok := p.parseBlock()
	if !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.Synchronized{Span: kw, Expr: e, Block: block}, true
}

func (p *Parser) parseLabeled() (*ast.Labeled, bool) {
	m := p.mark()
	label, ok := p.identifier()
	if !ok {
		return nil, false
	}
	if _, ok := p.symbol(":"); !ok {
		p.reset(m)
		return nil, false
	}
	stmt, ok := p.parseStatement()
	if !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.Labeled{Span: label, Label: label, Stmt: stmt}, true
}

func (p *Parser) parseVariableDeclaratorsStmt() (*ast.VariableDeclaratorsStmt, bool) {
	m := p.mark()
	v, ok := p.parseVariableDeclaratorsStmtNoSemi()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}
	return v, true
}

func (p *Parser) parseVariableDeclaratorsStmtNoSemi() (*ast.VariableDeclaratorsStmt, bool) {
	m := p.mark()
	modifiers := p.parseModifiers()

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

	return &ast.VariableDeclaratorsStmt{Span: tpe.Pos(), Modifiers: modifiers, Type: tpe, Declarators: declarators}, true
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, bool) {
	m := p.mark()
	e, ok := p.parseExpr()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok := p.symbol(";"); !ok {
		p.reset(m)
		return nil, false
	}
	return &ast.ExprStmt{Span: e.Pos(), Expr: e}, true
}

// separatedNonEmptyListLoose is separated_list without the "must be
// non-empty" requirement reported as failure — try/resources and
// try/catch bodies may legitimately be empty (`try ()` never occurs, but
// the resource list inside an already-open paren may be absent).
func separatedNonEmptyListLoose[T any](p *Parser, sep func(*Parser) (interface{}, bool), fn func(*Parser) (T, bool)) []T {
	return separatedList(p, sep, fn)
}
