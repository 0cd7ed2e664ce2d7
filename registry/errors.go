package registry

import (
	"reflect"

	"github.com/ava12/lrx"
)

// Error codes used by registry. All of them indicate malformed grammar definition.
const (
	// NotFunctionError indicates that an action is not a non-nil function.
	NotFunctionError = lrx.DefinitionErrors + iota

	// VariadicError indicates that an action is a variadic function.
	VariadicError

	// ResultCountError indicates that an action has no result, more than two results, or only error result.
	ResultCountError

	// SecondResultError indicates that the second result of an action is not error.
	SecondResultError

	// ParamCountError indicates that token conversion function does not take exactly one string parameter.
	ParamCountError

	// BadPatternError indicates that token or aside pattern is not a valid regular expression.
	BadPatternError

	// FrozenError indicates an attempt to register a token or a rule in frozen registry.
	FrozenError

	// NotFrozenError indicates an attempt to build grammar from registry that is still being constructed.
	NotFrozenError
)

func notFunctionError(action any) *lrx.Error {
	return lrx.FormatError(NotFunctionError, "action must be a function, got %T", action)
}

func variadicError(t reflect.Type) *lrx.Error {
	return lrx.FormatError(VariadicError, "action %s must not be variadic", t)
}

func resultCountError(t reflect.Type) *lrx.Error {
	return lrx.FormatError(ResultCountError, "action %s must return a value or a value and an error", t)
}

func secondResultError(t reflect.Type) *lrx.Error {
	return lrx.FormatError(SecondResultError, "second result of action %s must be error", t)
}

func paramCountError(t reflect.Type) *lrx.Error {
	return lrx.FormatError(ParamCountError, "token conversion %s must take single string parameter", t)
}

func badPatternError(pattern string, e error) *lrx.Error {
	return lrx.FormatError(BadPatternError, "incorrect RegExp %q (%s)", pattern, e.Error())
}

func frozenError(what string) *lrx.Error {
	return lrx.FormatError(FrozenError, "cannot add %s: registry is frozen", what)
}

func notFrozenError() *lrx.Error {
	return lrx.FormatError(NotFrozenError, "registry is not frozen")
}
