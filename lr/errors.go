package lr

import (
	"strings"

	"github.com/ava12/lrx"
	"github.com/ava12/lrx/lexer"
)

// Error codes used by table builder:
const (
	// UndefinedSymbolError indicates that a rule uses symbol that is neither produced by a term nor by a rule.
	UndefinedSymbolError = lrx.GrammarErrors + iota

	// TermNonTermError indicates that a symbol is produced both by a term and by a rule.
	TermNonTermError

	// NoGoalError indicates that grammar has no rules or the goal symbol is not a non-terminal.
	NoGoalError

	// ConflictError indicates that grammar is not LALR(1).
	ConflictError
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates that no action is defined for fetched token in current state.
	UnexpectedTokenError = lrx.SyntaxErrors + iota

	// UnexpectedEoiError indicates that the input has ended but the goal symbol is not reduced yet.
	UnexpectedEoiError

	// CanceledError indicates that parse context was canceled.
	CanceledError
)

func undefinedSymbolError(name string, rule int, origin string) *lrx.Error {
	return lrx.FormatError(UndefinedSymbolError, "symbol %s used in rule %d (%s) is not defined", name, rule, origin)
}

func termNonTermError(name string) *lrx.Error {
	return lrx.FormatError(TermNonTermError, "symbol %s is both a token and a rule result", name)
}

func noRulesError() *lrx.Error {
	return lrx.FormatError(NoGoalError, "grammar has no rules")
}

func goalNotNonTermError(name string) *lrx.Error {
	return lrx.FormatError(NoGoalError, "goal symbol %s is not a rule result", name)
}

func conflictError(conflicts []string) *lrx.Error {
	return lrx.FormatError(ConflictError, "grammar is not LALR(1): %s", strings.Join(conflicts, "; "))
}

func unexpectedTokenError(t *lexer.Token, expected string) *lrx.Error {
	return lrx.FormatErrorPos(t, UnexpectedTokenError, "unexpected %s %q, expecting %s", t.TypeName(), t.Text(), expected)
}

func unexpectedEoiError(t *lexer.Token, expected string) *lrx.Error {
	return lrx.FormatErrorPos(t, UnexpectedEoiError, "unexpected end of input, expecting %s", expected)
}

func canceledError(name string, e error) *lrx.Error {
	return lrx.FormatError(CanceledError, "parsing %s canceled (%s)", name, e.Error())
}
