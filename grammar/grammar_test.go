package grammar

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type GrammarSuite struct{}

func TestGrammar(t *testing.T) {
	suite.RunTests(t, &GrammarSuite{})
}

// sum = sum plus item | item; item = int
func sample() *Grammar {
	return &Grammar{
		Symbols: []string{"int", "sum", "item", "plus"},
		Terms:   []Term{{Symbol: 0, Re: `\d+`}, {Symbol: 3, Re: `\+`}},
		Rules: []Rule{
			{Lhs: 2, Rhs: []int{0}},
			{Lhs: 1, Rhs: []int{1, 3, 2}},
			{Lhs: 1, Rhs: []int{2}},
		},
		Goal: NoGoal,
	}
}

func (GrammarSuite) TestClassification(t *testing.T) {
	g := sample()
	expect.True(t, g.IsTerminal(0))
	expect.True(t, g.IsTerminal(3))
	expect.False(t, g.IsTerminal(1))
	expect.True(t, g.IsNonterminal(1))
	expect.True(t, g.IsNonterminal(2))
	expect.False(t, g.IsNonterminal(0))
	expect.Equal(t, "sum", g.SymbolName(1))
	expect.Equal(t, "?", g.SymbolName(10))
}

func (GrammarSuite) TestFindGoal(t *testing.T) {
	g := sample()
	expect.Equal(t, 1, FindGoal(g))

	g.Goal = 2
	expect.Equal(t, 2, FindGoal(g))
}

func (GrammarSuite) TestFindGoalAmbiguous(t *testing.T) {
	g := sample()
	g.Symbols = append(g.Symbols, "other")
	g.Rules = append(g.Rules, Rule{Lhs: 4, Rhs: []int{0}})
	expect.Equal(t, 2, FindGoal(g))
}

func (GrammarSuite) TestFindGoalEmpty(t *testing.T) {
	expect.Equal(t, NoGoal, FindGoal(&Grammar{Goal: NoGoal}))
}
