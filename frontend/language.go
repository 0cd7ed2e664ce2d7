// Package frontend declares languages through typed Go functions.
//
// Every token and rule is a Go function: parameter types are right-hand side symbols
// and the result type is the left-hand side symbol. Distinct Go types are distinct grammar symbols.
//
//	l := frontend.New()
//	l.Token("[0-9]+", func(s string) (Num, error) { n, e := strconv.Atoi(s); return Num(n), e })
//	frontend.Declare[Plus](l, `\+`)
//	l.Skip(`\s+`)
//	l.Rule(func(n Num) Sum { return Sum(n) })
//	l.Rule(func(s Sum, _ Plus, n Num) Sum { return s + Sum(n) })
//	p, e := frontend.Build[Sum](l)
//	sum, e := p.Parse("1 + 2 + 3")
package frontend

import (
	"errors"
	"reflect"

	"github.com/ava12/lrx/registry"
)

// Language collects token and rule declarations.
// Declaration errors are accumulated and returned by Err and Build.
// Language is not safe for concurrent use.
type Language struct {
	reg  *registry.Registry
	errs []error
}

// Definition is a language defined as a type.
type Definition interface {
	InitRules(l *Language)
}

func New() *Language {
	return &Language{reg: registry.New()}
}

// Registry returns the registry holding declared tokens and rules.
func (l *Language) Registry() *registry.Registry {
	return l.reg
}

// Err returns all declaration errors or nil.
func (l *Language) Err() error {
	return errors.Join(l.errs...)
}

func (l *Language) addError(e error) {
	l.errs = append(l.errs, e)
}

func (l *Language) addToken(t registry.Token, e error, pattern, origin string) int {
	if e != nil {
		l.addError(e)
		return -1
	}

	t.Pattern = pattern
	t.Origin = origin
	id, e := l.reg.AddToken(t)
	if e != nil {
		l.addError(e)
	}
	return id
}

// Token declares a token converted by conversion function,
// either func(string) T or func(string) (T, error). Returns token id or -1 on error.
// Lexer prefers the longest match; if several tokens match the same text the one declared first wins.
func (l *Language) Token(pattern string, conversion any) int {
	origin := registry.CallerOrigin(0)
	if e := l.reg.CheckOpen("token"); e != nil {
		l.addError(e)
		return -1
	}

	t, e := registry.InspectConversion(l.reg.Symbols(), conversion)
	return l.addToken(t, e, pattern, origin)
}

// Declare declares a token of type T. Text is unmarshalled if T (or *T) implements encoding.TextUnmarshaler,
// converted if T is based on string, []byte or []rune, and ignored otherwise: such tokens always
// produce zero value of T. Returns token id or -1 on error.
func Declare[T any](l *Language, pattern string) int {
	origin := registry.CallerOrigin(0)
	if e := l.reg.CheckOpen("token"); e != nil {
		l.addError(e)
		return -1
	}

	t := registry.InspectPayload(l.reg.Symbols(), reflect.TypeFor[T]())
	return l.addToken(t, nil, pattern, origin)
}

// Skip declares a pattern for insignificant text, e.g. whitespace or comments.
func (l *Language) Skip(pattern string) {
	if e := l.reg.AddAside(pattern); e != nil {
		l.addError(e)
	}
}

// Rule declares a rule with action func(P1, ..., Pn) R or func(P1, ..., Pn) (R, error).
// Returns rule id or -1 on error. Non-nil error returned by action aborts parsing and is returned by Parse.
func (l *Language) Rule(action any) int {
	origin := registry.CallerOrigin(0)
	e := l.reg.CheckOpen("rule")
	var p registry.Production
	if e == nil {
		p, e = registry.InspectRule(l.reg.Symbols(), action)
	}
	if e == nil {
		p.Origin = origin
		var id int
		id, e = l.reg.AddProduction(p)
		if e == nil {
			return id
		}
	}

	l.addError(e)
	return -1
}
