// Package grammar defines the grammar structure handed to the table builder and the lexer.
//
// Symbols are plain integers indexing Grammar.Symbols. A symbol is a terminal if some Term refers to it
// and a non-terminal if it is the left-hand side of some Rule; no symbol may be both.
// Term and Rule indexes are significant: the lexer reports Term indexes as token types
// and the parser reports Rule indexes on reduce.
package grammar

// NoGoal means that the goal symbol must be detected by FindGoal.
const NoGoal = -1

// Term describes a token: the terminal symbol it produces and its regular expression.
// Several terms may produce the same symbol.
type Term struct {
	Symbol int    `json:"symbol" yaml:"symbol"`
	Re     string `json:"re" yaml:"re"`
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// Rule describes a production Lhs -> Rhs[0] ... Rhs[n-1]. Empty Rhs is allowed.
type Rule struct {
	Lhs    int    `json:"lhs" yaml:"lhs"`
	Rhs    []int  `json:"rhs" yaml:"rhs,flow"`
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

type Grammar struct {
	// Symbols contains human-readable symbol names, indexed by symbol.
	Symbols []string `json:"symbols" yaml:"symbols"`
	Terms   []Term   `json:"terms" yaml:"terms"`
	// Asides contains regular expressions of insignificant lexemes (e.g. whitespace).
	Asides []string `json:"asides,omitempty" yaml:"asides,omitempty"`
	Rules  []Rule   `json:"rules" yaml:"rules"`
	// Goal is the goal symbol or NoGoal.
	Goal int `json:"goal" yaml:"goal"`
}

// SymbolName returns symbol name or "?" for unknown symbol.
func (g *Grammar) SymbolName(symbol int) string {
	if symbol < 0 || symbol >= len(g.Symbols) {
		return "?"
	}
	return g.Symbols[symbol]
}

// IsTerminal reports whether some term produces symbol.
func (g *Grammar) IsTerminal(symbol int) bool {
	for _, t := range g.Terms {
		if t.Symbol == symbol {
			return true
		}
	}
	return false
}

// IsNonterminal reports whether symbol is the left-hand side of some rule.
func (g *Grammar) IsNonterminal(symbol int) bool {
	for _, r := range g.Rules {
		if r.Lhs == symbol {
			return true
		}
	}
	return false
}

// FindGoal returns g.Goal if set. Otherwise it returns the only non-terminal never used
// in right-hand sides, or the left-hand side of the first rule if there is no such single non-terminal.
// Returns NoGoal if g has no rules.
func FindGoal(g *Grammar) int {
	if g.Goal != NoGoal {
		return g.Goal
	}
	if len(g.Rules) == 0 {
		return NoGoal
	}

	used := make(map[int]bool)
	for _, r := range g.Rules {
		for _, s := range r.Rhs {
			used[s] = true
		}
	}

	goal := NoGoal
	seen := make(map[int]bool)
	for _, r := range g.Rules {
		if used[r.Lhs] || seen[r.Lhs] {
			continue
		}
		seen[r.Lhs] = true
		if goal != NoGoal {
			return g.Rules[0].Lhs
		}
		goal = r.Lhs
	}

	if goal == NoGoal {
		return g.Rules[0].Lhs
	}
	return goal
}
