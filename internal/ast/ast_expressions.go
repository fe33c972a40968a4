package ast

import "github.com/funvibe/javalens/internal/span"

// Expr is any node at one of the 16 precedence levels of spec.md §4.3.
type Expr interface {
	Node
	exprNode()
}

// --- Literals (level 16 atoms) ---

type IntLiteral struct {
	Span span.Span
}

func (e *IntLiteral) Pos() span.Span { return e.Span }
func (e *IntLiteral) exprNode()       {}

type FloatLiteral struct{ Span span.Span }

func (e *FloatLiteral) Pos() span.Span { return e.Span }
func (e *FloatLiteral) exprNode()       {}

type StringLiteral struct{ Span span.Span }

func (e *StringLiteral) Pos() span.Span { return e.Span }
func (e *StringLiteral) exprNode()       {}

type CharLiteral struct{ Span span.Span }

func (e *CharLiteral) Pos() span.Span { return e.Span }
func (e *CharLiteral) exprNode()       {}

type BooleanLiteral struct {
	Span  span.Span
	Value bool
}

func (e *BooleanLiteral) Pos() span.Span { return e.Span }
func (e *BooleanLiteral) exprNode()       {}

type NullLiteral struct{ Span span.Span }

func (e *NullLiteral) Pos() span.Span { return e.Span }
func (e *NullLiteral) exprNode()       {}

// Name is a bare identifier occurrence in an expression. ResolvedOpt is
// filled by the binder via analyze.Bindings keyed by this node's pointer
// identity (spec.md §3 "every Name expression has a resolved_opt slot").
type Name struct {
	Span span.Span
	Name string
}

func (e *Name) Pos() span.Span { return e.Span }
func (e *Name) exprNode()       {}

// This / Super are the bare keyword atoms (not constructor calls).
type This struct{ Span span.Span }

func (e *This) Pos() span.Span { return e.Span }
func (e *This) exprNode()       {}

type Super struct{ Span span.Span }

func (e *Super) Pos() span.Span { return e.Span }
func (e *Super) exprNode()       {}

// ThisConstructorCall / SuperConstructorCall are `this(...)` /
// `super(...)` calls, grounded on original_source's constructor_call.rs
// which allows an optional leading type-argument list.
type ThisConstructorCall struct {
	Span         span.Span
	TypeArgsOpt  []Type
	Args         []Expr
}

func (e *ThisConstructorCall) Pos() span.Span { return e.Span }
func (e *ThisConstructorCall) exprNode()       {}

type SuperConstructorCall struct {
	Span        span.Span
	TypeArgsOpt []Type
	Args        []Expr
}

func (e *SuperConstructorCall) Pos() span.Span { return e.Span }
func (e *SuperConstructorCall) exprNode()       {}

// NewObject is a `new Foo(...)`, with an optional anonymous-class body.
type NewObject struct {
	Span     span.Span
	Type     *ClassType
	Args     []Expr
	BodyOpt  []ClassBodyItem
}

func (e *NewObject) Pos() span.Span { return e.Span }
func (e *NewObject) exprNode()       {}

// NewArray is `new T[n]` or `new T[]{ ... }`.
type NewArray struct {
	Span        span.Span
	Elem        Type
	Dims        []Expr // sized dimensions, outermost first; nil entries for `[]`
	InitOpt     *ArrayInitializer
}

func (e *NewArray) Pos() span.Span { return e.Span }
func (e *NewArray) exprNode()       {}

// ArrayInitializer is `{ a, b, c }`.
type ArrayInitializer struct {
	Span  span.Span
	Items []Expr
}

func (e *ArrayInitializer) Pos() span.Span { return e.Span }
func (e *ArrayInitializer) exprNode()       {}

// --- Selector chain (level 15) ---

// FieldAccess is `expr . name`.
type FieldAccess struct {
	Span  span.Span
	Expr  Expr
	Name  span.Span
}

func (e *FieldAccess) Pos() span.Span { return e.Span }
func (e *FieldAccess) exprNode()       {}

// MethodCall is `expr? . name (args)` — ExprOpt is nil for an unqualified
// call resolved through the enclosing scope.
type MethodCall struct {
	Span        span.Span
	ExprOpt     Expr
	TypeArgsOpt []Type
	Name        span.Span
	Args        []Expr
}

func (e *MethodCall) Pos() span.Span { return e.Span }
func (e *MethodCall) exprNode()       {}

// ArrayAccess is `expr [ index ]`.
type ArrayAccess struct {
	Span  span.Span
	Expr  Expr
	Index Expr
}

func (e *ArrayAccess) Pos() span.Span { return e.Span }
func (e *ArrayAccess) exprNode()       {}

// MethodReference is `expr :: name`.
type MethodReference struct {
	Span span.Span
	Expr Expr
	Name span.Span
}

func (e *MethodReference) Pos() span.Span { return e.Span }
func (e *MethodReference) exprNode()       {}

// --- Unary / cast (level 13-14) ---

type UnaryPrefix struct {
	Span     span.Span
	Operator string
	Operand  Expr
}

func (e *UnaryPrefix) Pos() span.Span { return e.Span }
func (e *UnaryPrefix) exprNode()       {}

type UnaryPostfix struct {
	Span     span.Span
	Operator string
	Operand  Expr
}

func (e *UnaryPostfix) Pos() span.Span { return e.Span }
func (e *UnaryPostfix) exprNode()       {}

// Cast is `(Type) expr`, distinguished from Parenthesized by the
// disambiguation rule of §4.3.
type Cast struct {
	Span span.Span
	Type Type
	Expr Expr
}

func (e *Cast) Pos() span.Span { return e.Span }
func (e *Cast) exprNode()       {}

// Parenthesized is `( expr )` once the cast/lambda disambiguation rules
// have ruled out the other two readings.
type Parenthesized struct {
	Span span.Span
	Expr Expr
}

func (e *Parenthesized) Pos() span.Span { return e.Span }
func (e *Parenthesized) exprNode()       {}

// --- Binary / ternary / instanceof (levels 3-12) ---

type BinaryOperation struct {
	Span     span.Span
	Left     Expr
	Operator string
	Right    Expr
}

func (e *BinaryOperation) Pos() span.Span { return e.Span }
func (e *BinaryOperation) exprNode()       {}

// InstanceOf is `expr instanceof Type`, parsed at the relational level.
type InstanceOf struct {
	Span span.Span
	Expr Expr
	Type Type
}

func (e *InstanceOf) Pos() span.Span { return e.Span }
func (e *InstanceOf) exprNode()       {}

type Ternary struct {
	Span  span.Span
	Cond  Expr
	Then  Expr
	Else  Expr
}

func (e *Ternary) Pos() span.Span { return e.Span }
func (e *Ternary) exprNode()       {}

// --- Assignment (level 1, right-associative) ---

type Assignment struct {
	Span     span.Span
	Left     Expr
	Operator string
	Right    Expr
}

func (e *Assignment) Pos() span.Span { return e.Span }
func (e *Assignment) exprNode()       {}

// --- Lambda (level 16 atom) ---

// Lambda is `(params) -> expr` or `(params) -> { block }`; exactly one of
// BodyExpr/BodyBlock is set (§6 "lambdas of the form ...").
type Lambda struct {
	Span      span.Span
	Params    []*Param
	BodyExpr  Expr
	BodyBlock *Block
}

func (e *Lambda) Pos() span.Span { return e.Span }
func (e *Lambda) exprNode()       {}
