// Package token defines the flat, spanned token vocabulary produced by the
// tokenizer and consumed by the parser (spec.md §3 "Token", §4.1).
package token

import "github.com/funvibe/javalens/internal/span"

// Kind tags a Token's lexical category.
type Kind int

const (
	Illegal Kind = iota
	EOF

	Identifier
	Keyword
	IntegerLiteral
	FloatLiteral
	StringLiteral
	CharLiteral
	BooleanLiteral
	NullLiteral
	Symbol
)

func (k Kind) String() string {
	switch k {
	case Illegal:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case Identifier:
		return "IDENTIFIER"
	case Keyword:
		return "KEYWORD"
	case IntegerLiteral:
		return "INTEGER"
	case FloatLiteral:
		return "FLOAT"
	case StringLiteral:
		return "STRING"
	case CharLiteral:
		return "CHAR"
	case BooleanLiteral:
		return "BOOLEAN"
	case NullLiteral:
		return "NULL"
	case Symbol:
		return "SYMBOL"
	default:
		return "UNKNOWN"
	}
}

// Token is a tagged, spanned unit of source text. Comments and whitespace
// never become tokens (§4.1).
type Token struct {
	Kind Kind
	Span span.Span
}

// Fragment is shorthand for the token's underlying text.
func (t Token) Fragment() string { return t.Span.Text }

// Is reports whether the token is a Keyword or Symbol with the given
// literal fragment.
func (t Token) Is(kind Kind, fragment string) bool {
	return t.Kind == kind && t.Span.Text == fragment
}

// reservedWords is the exact modifier/control-flow/literal keyword set
// described in spec.md §4.1, grounded on original_source's modifier.rs
// keyword enumeration for the modifier subset.
var reservedWords = map[string]bool{
	"class": true, "interface": true, "enum": true, "package": true, "import": true,
	"if": true, "else": true, "while": true, "do": true, "for": true,
	"return": true, "break": true, "continue": true, "synchronized": true,
	"try": true, "catch": true, "finally": true, "throw": true, "throws": true,
	"new": true, "this": true, "super": true, "void": true, "instanceof": true,
	"extends": true, "implements": true, "switch": true, "case": true, "default": true,

	"byte": true, "short": true, "int": true, "long": true, "char": true,
	"float": true, "double": true, "boolean": true,

	"abstract": true, "final": true, "native": true,
	"private": true, "protected": true, "public": true, "static": true,
	"strictfp": true, "transient": true, "volatile": true,

	"true": true, "false": true, "null": true,
}

// IsReserved reports whether word is one of the input language's
// reserved words, i.e. should tokenize as Keyword rather than Identifier.
func IsReserved(word string) bool { return reservedWords[word] }

// IsPrimitive reports whether word names a primitive type.
func IsPrimitive(word string) bool {
	switch word {
	case "byte", "short", "int", "long", "char", "float", "double", "boolean":
		return true
	default:
		return false
	}
}

// IsModifierKeyword reports whether word is one of the modifier keywords
// the parser collects onto a declaration's Modifiers (original_source
// modifier.rs); the analyzer does not read them.
func IsModifierKeyword(word string) bool {
	switch word {
	case "abstract", "default", "final", "native", "private", "protected",
		"public", "static", "strictfp", "synchronized", "transient", "volatile":
		return true
	default:
		return false
	}
}
