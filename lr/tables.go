// Package lr builds LALR(1) parsing tables from grammar.Grammar and drives shift/reduce parsing.
//
// The grammar is augmented internally: an end-of-input terminal and an accept rule
// "goal, end-of-input" are added, neither is visible to parser handlers.
// Reduce events carry grammar rule indexes, shift events carry grammar term indexes.
package lr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ava12/lrx/grammar"
	"github.com/ava12/lrx/internal/ints"
	"github.com/ava12/lrx/internal/queue"
	"github.com/ava12/lrx/lexer"
)

// tracer traces with key 'lrx.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrx.lr")
}

type ActionType int8

const (
	ShiftAction ActionType = iota
	ReduceAction
	AcceptAction
)

func (t ActionType) String() string {
	switch t {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	default:
		return fmt.Sprintf("?unknown action %d?", int(t))
	}
}

// Action is a parsing table entry. Target is the next state for shift and the rule index for reduce.
type Action struct {
	Type   ActionType
	Target int
}

// Tables contains LALR(1) parsing tables. Tables are immutable and safe for concurrent use.
type Tables struct {
	grammar *grammar.Grammar
	goal    int
	// term index by grammar term (token type) index
	tokenTerms []int
	// grammar symbol by term index, end-of-input term is the last one
	termSymbols []int
	actions     []map[int]Action
	gotos       []map[int]int
}

// Grammar returns the grammar tables were built from.
func (t *Tables) Grammar() *grammar.Grammar {
	return t.grammar
}

// Goal returns the goal symbol.
func (t *Tables) Goal() int {
	return t.goal
}

// StateCount returns the number of LALR(1) states.
func (t *Tables) StateCount() int {
	return len(t.actions)
}

func (t *Tables) endTerm() int {
	return len(t.termSymbols)
}

func (t *Tables) termName(term int) string {
	if term == t.endTerm() {
		return lexer.EoiTokenName
	}
	return t.grammar.SymbolName(t.termSymbols[term])
}

// Action returns the action for given state and grammar term (token type) index.
// Use lexer.EoiTokenType for the end of input.
func (t *Tables) Action(state, tokenType int) (Action, bool) {
	term := t.endTerm()
	if tokenType != lexer.EoiTokenType {
		if tokenType < 0 || tokenType >= len(t.tokenTerms) {
			return Action{}, false
		}
		term = t.tokenTerms[tokenType]
	}
	a, found := t.actions[state][term]
	return a, found
}

// Expected returns sorted names of terminals acceptable in given state.
func (t *Tables) Expected(state int) []string {
	terms := make([]int, 0, len(t.actions[state]))
	for term := range t.actions[state] {
		terms = append(terms, term)
	}
	sort.Ints(terms)
	result := make([]string, len(terms))
	for i, term := range terms {
		result[i] = t.termName(term)
	}
	return result
}

type item struct {
	rule, dot int
}

type lrState struct {
	kernel  []item
	index   map[item]int
	la      []*ints.Set
	trans   map[int]int
	symbols []int
}

type builder struct {
	g           *grammar.Grammar
	rules       []grammar.Rule
	accept      int
	terms       map[int]int
	termSymbols []int
	end         int
	rulesOf     map[int][]int
	nullable    map[int]bool
	first       map[int]*ints.Set
	states      []*lrState
}

// BuildTables validates grammar and builds LALR(1) tables.
// The goal symbol is detected with grammar.FindGoal.
func BuildTables(g *grammar.Grammar) (*Tables, error) {
	b := &builder{
		g:       g,
		terms:   make(map[int]int),
		rulesOf: make(map[int][]int),
	}

	goal, e := b.init()
	if e != nil {
		return nil, e
	}

	b.computeFirst()
	b.buildStates()
	b.computeLookaheads()
	result, e := b.buildTables(goal)
	if e != nil {
		return nil, e
	}

	tracer().Infof("LALR(1) tables built: %d terms, %d rules, %d states", len(b.termSymbols), len(g.Rules), len(b.states))
	return result, nil
}

func (b *builder) init() (int, error) {
	g := b.g
	for _, t := range g.Terms {
		if _, has := b.terms[t.Symbol]; !has {
			b.terms[t.Symbol] = len(b.termSymbols)
			b.termSymbols = append(b.termSymbols, t.Symbol)
		}
	}
	b.end = len(b.termSymbols)

	for i, r := range g.Rules {
		if _, isTerm := b.terms[r.Lhs]; isTerm {
			return grammar.NoGoal, termNonTermError(g.SymbolName(r.Lhs))
		}
		b.rulesOf[r.Lhs] = append(b.rulesOf[r.Lhs], i)
	}

	for i, r := range g.Rules {
		for _, s := range r.Rhs {
			_, isTerm := b.terms[s]
			_, isNonTerm := b.rulesOf[s]
			if !isTerm && !isNonTerm {
				return grammar.NoGoal, undefinedSymbolError(g.SymbolName(s), i, r.Origin)
			}
		}
	}

	goal := grammar.FindGoal(g)
	if goal == grammar.NoGoal {
		return goal, noRulesError()
	}
	if _, isNonTerm := b.rulesOf[goal]; !isNonTerm {
		return goal, goalNotNonTermError(g.SymbolName(goal))
	}

	b.rules = append(append([]grammar.Rule{}, g.Rules...), grammar.Rule{Lhs: -1, Rhs: []int{goal}})
	b.accept = len(g.Rules)
	tracer().Debugf("goal symbol is %s", g.SymbolName(goal))
	return goal, nil
}

func (b *builder) isNonTerm(symbol int) bool {
	_, has := b.rulesOf[symbol]
	return has
}

func (b *builder) computeFirst() {
	b.nullable = make(map[int]bool)
	b.first = make(map[int]*ints.Set)
	for symbol, term := range b.terms {
		b.first[symbol] = ints.NewSet(term)
	}
	for symbol := range b.rulesOf {
		b.first[symbol] = ints.NewSet()
	}

	for changed := true; changed; {
		changed = false
		for _, r := range b.g.Rules {
			allNullable := true
			for _, s := range r.Rhs {
				if b.first[r.Lhs].Merge(b.first[s]) {
					changed = true
				}
				if !b.nullable[s] {
					allNullable = false
					break
				}
			}
			if allNullable && !b.nullable[r.Lhs] {
				b.nullable[r.Lhs] = true
				changed = true
			}
		}
	}
}

// firstOf returns FIRST set of symbol sequence followed by lookahead set.
func (b *builder) firstOf(symbols []int, la *ints.Set) *ints.Set {
	result := ints.NewSet()
	for _, s := range symbols {
		result.Merge(b.first[s])
		if !b.nullable[s] {
			return result
		}
	}
	result.Merge(la)
	return result
}

func (b *builder) closure(kernel []item, kernelLa []*ints.Set) ([]item, map[item]*ints.Set) {
	las := make(map[item]*ints.Set)
	var order []item
	q := queue.New[item]()
	add := func(it item, la *ints.Set) {
		current, has := las[it]
		if !has {
			las[it] = la.Copy()
			order = append(order, it)
			q.Append(it)
		} else if current.Merge(la) {
			q.Append(it)
		}
	}

	for i, it := range kernel {
		add(it, kernelLa[i])
	}

	for !q.IsEmpty() {
		it, _ := q.First()
		rhs := b.rules[it.rule].Rhs
		if it.dot >= len(rhs) || !b.isNonTerm(rhs[it.dot]) {
			continue
		}

		la := b.firstOf(rhs[it.dot+1:], las[it])
		for _, r := range b.rulesOf[rhs[it.dot]] {
			add(item{r, 0}, la)
		}
	}

	return order, las
}

func kernelKey(kernel []item) string {
	sb := &strings.Builder{}
	for _, it := range kernel {
		sb.WriteString(strconv.Itoa(it.rule))
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(it.dot))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func newState(kernel []item) *lrState {
	sort.Slice(kernel, func(i, j int) bool {
		if kernel[i].rule != kernel[j].rule {
			return kernel[i].rule < kernel[j].rule
		}
		return kernel[i].dot < kernel[j].dot
	})
	result := &lrState{
		kernel: kernel,
		index:  make(map[item]int, len(kernel)),
		la:     make([]*ints.Set, len(kernel)),
		trans:  make(map[int]int),
	}
	for i, it := range kernel {
		result.index[it] = i
		result.la[i] = ints.NewSet()
	}
	return result
}

func (b *builder) buildStates() {
	start := newState([]item{{b.accept, 0}})
	b.states = []*lrState{start}
	known := map[string]int{kernelKey(start.kernel): 0}
	q := queue.New[int](0)

	for !q.IsEmpty() {
		si, _ := q.First()
		s := b.states[si]
		items, _ := b.closure(s.kernel, s.la)

		next := make(map[int][]item)
		for _, it := range items {
			rhs := b.rules[it.rule].Rhs
			if it.dot >= len(rhs) {
				continue
			}
			symbol := rhs[it.dot]
			if _, has := next[symbol]; !has {
				s.symbols = append(s.symbols, symbol)
			}
			next[symbol] = append(next[symbol], item{it.rule, it.dot + 1})
		}

		for _, symbol := range s.symbols {
			ns := newState(next[symbol])
			key := kernelKey(ns.kernel)
			index, has := known[key]
			if !has {
				index = len(b.states)
				known[key] = index
				b.states = append(b.states, ns)
				q.Append(index)
			}
			s.trans[symbol] = index
		}
	}

	tracer().Debugf("%d LR(0) states", len(b.states))
}

func (b *builder) computeLookaheads() {
	b.states[0].la[0].Add(b.end)
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, s := range b.states {
			items, las := b.closure(s.kernel, s.la)
			for _, it := range items {
				rhs := b.rules[it.rule].Rhs
				if it.dot >= len(rhs) {
					continue
				}

				target := b.states[s.trans[rhs[it.dot]]]
				k := target.index[item{it.rule, it.dot + 1}]
				if target.la[k].Merge(las[it]) {
					changed = true
				}
			}
		}
	}
	tracer().Debugf("lookaheads propagated in %d passes", passes)
}

func (b *builder) ruleName(rule int) string {
	r := b.rules[rule]
	names := make([]string, len(r.Rhs))
	for i, s := range r.Rhs {
		names[i] = b.g.SymbolName(s)
	}
	result := fmt.Sprintf("#%d %s = %s", rule, b.g.SymbolName(r.Lhs), strings.Join(names, " "))
	if r.Origin != "" {
		result += " (" + r.Origin + ")"
	}
	return result
}

func (b *builder) termName(term int) string {
	if term == b.end {
		return lexer.EoiTokenName
	}
	return b.g.SymbolName(b.termSymbols[term])
}

func (b *builder) buildTables(goal int) (*Tables, error) {
	result := &Tables{
		grammar:     b.g,
		goal:        goal,
		tokenTerms:  make([]int, len(b.g.Terms)),
		termSymbols: b.termSymbols,
		actions:     make([]map[int]Action, len(b.states)),
		gotos:       make([]map[int]int, len(b.states)),
	}
	for i, t := range b.g.Terms {
		result.tokenTerms[i] = b.terms[t.Symbol]
	}

	var conflicts []string
	for si, s := range b.states {
		actions := make(map[int]Action)
		gotos := make(map[int]int)
		set := func(term int, a Action) {
			prev, has := actions[term]
			if !has || prev == a {
				actions[term] = a
				return
			}

			var msg string
			if prev.Type == ShiftAction || a.Type == ShiftAction {
				if a.Type == ShiftAction {
					prev, a = a, prev
				}
				msg = fmt.Sprintf("shift/reduce conflict in state %d on %s: %s", si, b.termName(term), b.ruleName(a.Target))
			} else {
				msg = fmt.Sprintf("reduce/reduce conflict in state %d on %s: %s and %s", si, b.termName(term), b.ruleName(prev.Target), b.ruleName(a.Target))
			}
			tracer().Errorf("%s", msg)
			conflicts = append(conflicts, msg)
		}

		for _, symbol := range s.symbols {
			target := s.trans[symbol]
			if term, isTerm := b.terms[symbol]; isTerm {
				set(term, Action{ShiftAction, target})
			} else {
				gotos[symbol] = target
			}
		}

		items, las := b.closure(s.kernel, s.la)
		for _, it := range items {
			if it.dot < len(b.rules[it.rule].Rhs) {
				continue
			}

			if it.rule == b.accept {
				set(b.end, Action{AcceptAction, 0})
				continue
			}

			for _, term := range las[it].ToSlice() {
				set(term, Action{ReduceAction, it.rule})
			}
		}

		result.actions[si] = actions
		result.gotos[si] = gotos
	}

	if len(conflicts) > 0 {
		return nil, conflictError(conflicts)
	}
	return result, nil
}
