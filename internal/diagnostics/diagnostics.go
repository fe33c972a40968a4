// Package diagnostics collects the recoverable and fatal failures raised by
// every stage of the pipeline (spec.md §7 "Error handling design").
package diagnostics

import (
	"fmt"

	"github.com/funvibe/javalens/internal/span"
)

// Code is a stable diagnostic identifier, stable across versions so
// editor clients can filter/suppress by code.
type Code string

const (
	CodeTokenizeError        Code = "T001"
	CodeParseError           Code = "P001"
	CodeDuplicateDeclaration Code = "A001"
	CodeUnresolvedType       Code = "A002"
	CodeUnresolvedName       Code = "A003"
	CodeArityMismatch        Code = "A004"
)

// Severity distinguishes fatal stage aborts from recoverable diagnostics
// that leave a resolution slot empty (§7's "Recovered?" column).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one recorded failure, fatal or recoverable.
type Diagnostic struct {
	Code     Code
	Span     span.Span
	File     string
	Severity Severity
	Message  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Span.Line, d.Span.Column, d.Code, d.Message)
}

// Bag accumulates diagnostics across a batch. It never stops a batch by
// itself — only TokenizeError/ParseError, returned as Go errors by their
// stage, do that (§7).
type Bag struct {
	items []*Diagnostic
}

func NewBag() *Bag { return &Bag{} }

func (b *Bag) Add(d *Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) Addf(code Code, file string, sp span.Span, format string, args ...any) {
	b.Add(&Diagnostic{Code: code, Span: sp, File: file, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

func (b *Bag) Items() []*Diagnostic { return b.items }

func (b *Bag) Len() int { return len(b.items) }

func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// TokenizeError aborts a unit: the tokenizer could not make progress past
// Offset (§7, §4.1 "possibly a tokenize error identifying the furthest
// offset reached").
type TokenizeError struct {
	Offset int
	Line   int
	Column int
	Reason string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize error at %d:%d (offset %d): %s", e.Line, e.Column, e.Offset, e.Reason)
}

// ParseError aborts a unit, identifying the furthest position the parser
// reached before every alternative failed (§6, §7).
type ParseError struct {
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: furthest reached %d:%d", e.Line, e.Col)
}
