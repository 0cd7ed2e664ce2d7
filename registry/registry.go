// Package registry collects grammar tokens and productions together with their typed actions.
//
// Registry has two phases: while constructing, tokens, asides and productions may be added;
// after Freeze registry is read-only and safe for concurrent use.
// Token and production identifiers are dense indexes assigned in order of registration,
// they are the same as term and rule indexes of the grammar built by Grammar.
package registry

import (
	"reflect"
	"regexp"

	"github.com/ava12/lrx/grammar"
	"github.com/ava12/lrx/symbol"
	"github.com/ava12/lrx/value"
)

// TokenAction converts matched text into a tagged value.
type TokenAction func(text string) (value.Value, error)

// ReduceAction builds a tagged value from right-hand side values.
// Caller guarantees that the number and the types of arguments match the production.
type ReduceAction func(args []value.Value) (value.Value, error)

// Token is a registered terminal.
type Token struct {
	Symbol  symbol.Symbol
	Type    reflect.Type
	Kind    TokenKind
	Pattern string
	Action  TokenAction
	Origin  string
}

// Production is a registered rule: Lhs = Rhs[0] Rhs[1] ... Rhs[n-1].
type Production struct {
	Lhs    symbol.Symbol
	Rhs    []symbol.Symbol
	Result reflect.Type
	Params []reflect.Type
	Action ReduceAction
	Origin string
}

// Arity returns the number of right-hand side symbols.
func (p *Production) Arity() int {
	return len(p.Rhs)
}

type Registry struct {
	symbols     *symbol.Table
	tokens      []Token
	asides      []string
	productions []Production
	frozen      bool
}

func New() *Registry {
	return &Registry{symbols: symbol.NewTable()}
}

// Symbols returns symbol table shared by all tokens and productions.
func (r *Registry) Symbols() *symbol.Table {
	return r.symbols
}

func checkPattern(pattern string) error {
	_, e := regexp.Compile(pattern)
	if e != nil {
		return badPatternError(pattern, e)
	}
	return nil
}

// CheckOpen returns FrozenError if registry is frozen, what names the thing being added.
func (r *Registry) CheckOpen(what string) error {
	if r.frozen {
		return frozenError(what)
	}
	return nil
}

// AddToken registers a terminal and returns its identifier.
func (r *Registry) AddToken(t Token) (int, error) {
	if e := r.CheckOpen("token"); e != nil {
		return -1, e
	}
	if e := checkPattern(t.Pattern); e != nil {
		return -1, e
	}

	r.tokens = append(r.tokens, t)
	return len(r.tokens) - 1, nil
}

// AddAside registers a pattern for text to be skipped between tokens.
func (r *Registry) AddAside(pattern string) error {
	if e := r.CheckOpen("aside"); e != nil {
		return e
	}
	if e := checkPattern(pattern); e != nil {
		return e
	}

	r.asides = append(r.asides, pattern)
	return nil
}

// AddProduction registers a rule and returns its identifier.
func (r *Registry) AddProduction(p Production) (int, error) {
	if e := r.CheckOpen("rule"); e != nil {
		return -1, e
	}

	r.productions = append(r.productions, p)
	return len(r.productions) - 1, nil
}

// Freeze finishes construction phase. Freezing frozen registry is a no-op.
func (r *Registry) Freeze() {
	r.frozen = true
}

func (r *Registry) IsFrozen() bool {
	return r.frozen
}

func (r *Registry) TokenCount() int {
	return len(r.tokens)
}

func (r *Registry) ProductionCount() int {
	return len(r.productions)
}

// Token returns registered token or nil for unknown identifier.
func (r *Registry) Token(id int) *Token {
	if id < 0 || id >= len(r.tokens) {
		return nil
	}
	return &r.tokens[id]
}

// Production returns registered production or nil for unknown identifier.
func (r *Registry) Production(id int) *Production {
	if id < 0 || id >= len(r.productions) {
		return nil
	}
	return &r.productions[id]
}

// Grammar builds grammar definition from frozen registry.
// Symbol names are short type names, goal is either a symbol or symbol.None.
func (r *Registry) Grammar(goal symbol.Symbol) (*grammar.Grammar, error) {
	if !r.frozen {
		return nil, notFrozenError()
	}

	g := &grammar.Grammar{
		Symbols: make([]string, r.symbols.Len()),
		Terms:   make([]grammar.Term, len(r.tokens)),
		Asides:  make([]string, len(r.asides)),
		Rules:   make([]grammar.Rule, len(r.productions)),
		Goal:    grammar.NoGoal,
	}
	if goal != symbol.None {
		g.Goal = int(goal)
	}

	for i := range g.Symbols {
		g.Symbols[i] = r.ShortName(symbol.Symbol(i))
	}
	copy(g.Asides, r.asides)

	for i, t := range r.tokens {
		g.Terms[i] = grammar.Term{Symbol: int(t.Symbol), Re: t.Pattern, Origin: t.Origin}
	}

	for i, p := range r.productions {
		rhs := make([]int, len(p.Rhs))
		for j, s := range p.Rhs {
			rhs[j] = int(s)
		}
		g.Rules[i] = grammar.Rule{Lhs: int(p.Lhs), Rhs: rhs, Origin: p.Origin}
	}

	return g, nil
}
