package ast

import "github.com/funvibe/javalens/internal/span"

// Statement is any node appearing in a statement position (§3, §4.5).
type Statement interface {
	Node
	statementNode()
}

// Block is `{ stmt* }`; it pushes/pops a lexical level in the binder
// (spec.md §4.5, original_source semantics/block.rs).
type Block struct {
	Span  span.Span
	Stmts []Statement
}

func (b *Block) Pos() span.Span   { return b.Span }
func (b *Block) statementNode()   {}

// VariableDeclaratorsStmt is a local variable declaration statement.
type VariableDeclaratorsStmt struct {
	Span        span.Span
	Modifiers   []Modifier
	Type        Type
	Declarators []*VariableDeclarator
}

func (s *VariableDeclaratorsStmt) Pos() span.Span { return s.Span }
func (s *VariableDeclaratorsStmt) statementNode()   {}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	Span span.Span
	Expr Expr
}

func (s *ExprStmt) Pos() span.Span { return s.Span }
func (s *ExprStmt) statementNode()   {}

type If struct {
	Span     span.Span
	Cond     Expr
	Then     Statement
	ElseOpt  Statement
}

func (s *If) Pos() span.Span { return s.Span }
func (s *If) statementNode()   {}

type WhileLoop struct {
	Span  span.Span
	Cond  Expr
	Block Statement
}

func (s *WhileLoop) Pos() span.Span { return s.Span }
func (s *WhileLoop) statementNode()   {}

type DoWhile struct {
	Span  span.Span
	Block Statement
	Cond  Expr
}

func (s *DoWhile) Pos() span.Span { return s.Span }
func (s *DoWhile) statementNode()   {}

// ForLoop covers the classic `for(init; cond; update)` shape. The
// for-each shape (`for (T x : expr)`) is modeled via ForEach below.
type ForLoop struct {
	Span     span.Span
	InitOpt  Statement // VariableDeclaratorsStmt or ExprStmt, or nil
	CondOpt  Expr
	Updates  []Expr
	Block    Statement
}

func (s *ForLoop) Pos() span.Span { return s.Span }
func (s *ForLoop) statementNode()   {}

type ForEach struct {
	Span  span.Span
	Var   *VariableDeclarator
	Type  Type
	Expr  Expr
	Block Statement
}

func (s *ForEach) Pos() span.Span { return s.Span }
func (s *ForEach) statementNode()   {}

type Return struct {
	Span    span.Span
	ExprOpt Expr
}

func (s *Return) Pos() span.Span { return s.Span }
func (s *Return) statementNode()   {}

type Break struct {
	Span          span.Span
	LabelOpt      span.Span
}

func (s *Break) Pos() span.Span { return s.Span }
func (s *Break) statementNode()   {}

type Continue struct {
	Span     span.Span
	LabelOpt span.Span
}

func (s *Continue) Pos() span.Span { return s.Span }
func (s *Continue) statementNode()   {}

type Throw struct {
	Span span.Span
	Expr Expr
}

func (s *Throw) Pos() span.Span { return s.Span }
func (s *Throw) statementNode()   {}

type CatchClause struct {
	Span    span.Span
	Types   []*ClassType
	Name    span.Span
	Block   *Block
}

func (c *CatchClause) Pos() span.Span { return c.Span }

type Try struct {
	Span       span.Span
	Resources  []*VariableDeclarator
	Block      *Block
	Catches    []*CatchClause
	FinallyOpt *Block
}

func (s *Try) Pos() span.Span { return s.Span }
func (s *Try) statementNode()   {}

type SwitchCase struct {
	Span     span.Span
	ValueOpt Expr // nil for `default:`
	Stmts    []Statement
}

type Switch struct {
	Span  span.Span
	Expr  Expr
	Cases []*SwitchCase
}

func (s *Switch) Pos() span.Span { return s.Span }
func (s *Switch) statementNode()   {}

// Synchronized is `synchronized (expr) block` (spec.md §4.3/§6,
// original_source syntax/statement/synchronized.rs).
type Synchronized struct {
	Span  span.Span
	Expr  Expr
	Block *Block
}

func (s *Synchronized) Pos() span.Span { return s.Span }
func (s *Synchronized) statementNode()   {}

type Labeled struct {
	Span  span.Span
	Label span.Span
	Stmt  Statement
}

func (s *Labeled) Pos() span.Span { return s.Span }
func (s *Labeled) statementNode()   {}
