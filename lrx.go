/*
Package lrx is a typed front-end for an LALR(1) parser toolkit.

A grammar is never written down as text. It is declared through Go functions:
a token is a regular expression plus the Go type of its value, a production is
a function whose parameter types are the right-hand side symbols and whose
result type is the left-hand side symbol. Parsing tables are built from these
declarations and every shift/reduce event of the table-driven parser is routed
back to the matching function with exactly typed arguments.

Consists of subpackages:
  - frontend: registration surface (Language) and typed Parser;
  - symbol: maps Go types to compact grammar symbols and back;
  - value: type-erased values carrying their grammar symbol and static type;
  - registry: rule registry, signature introspection, debug descriptions;
  - dispatch: routes shift/reduce events to registered actions;
  - grammar: plain grammar structure handed to the table builder;
  - lexer: longest-match lexical analyzer built from token patterns;
  - lr: LALR(1) table builder and shift/reduce driver;
  - source: source text with line/column lookup;
  - cmd/lrxdump: prints the grammar of the bundled calculator language.

Typical usage is:

	type Num float64
	type Expr float64

	l := frontend.New()
	l.Skip(`\s+`)
	l.Token(`[0-9]+`, func(text string) (Num, error) { ... })
	l.Rule(func(n Num) Expr { return Expr(n) })
	p, e := frontend.Build[Expr](l)
	x, e := p.Parse("42")
*/
package lrx

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 49 error codes:
const (
	DefinitionErrors = 1   // used by registry and frontend
	GrammarErrors    = 51  // used by lr table builder
	LexicalErrors    = 101 // used by lexer
	SyntaxErrors     = 201 // used by lr parser
	DispatchErrors   = 301 // used by dispatch
	ResultErrors     = 401 // used by frontend
)

// Error is the error type used by lrx subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source text or 0.
	Line int

	// Col contains column number in source text or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Class returns the base code of error class this error belongs to.
func (e *Error) Class() int {
	switch {
	case e.Code >= ResultErrors:
		return ResultErrors
	case e.Code >= DispatchErrors:
		return DispatchErrors
	case e.Code >= SyntaxErrors:
		return SyntaxErrors
	case e.Code >= LexicalErrors:
		return LexicalErrors
	case e.Code >= GrammarErrors:
		return GrammarErrors
	default:
		return DefinitionErrors
	}
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// ErrorCode returns the code of *Error found in e's chain or 0.
func ErrorCode(e error) int {
	var le *Error
	if errors.As(e, &le) {
		return le.Code
	}
	return 0
}

// IsFatal reports whether e is a dispatch error, i.e. parsing tables and rule registry disagree.
// Such errors never depend on input text.
func IsFatal(e error) bool {
	var le *Error
	return errors.As(e, &le) && le.Class() == DispatchErrors
}
