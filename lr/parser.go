package lr

import (
	"context"
	"strings"

	"github.com/ava12/lrx/lexer"
	"github.com/ava12/lrx/source"
)

// Handler receives parser events. V is the type of values kept on parser stack.
type Handler[V any] interface {
	// Shift is called for every significant token, token is the grammar term index.
	Shift(token int, text string) (V, error)

	// Reduce is called when rule is recognized, children contain values of right-hand side symbols
	// in left-to-right order. Handler may keep children slice.
	Reduce(rule int, children []V) (V, error)
}

// Parser is a shift/reduce parser. Parser keeps no state between calls
// and is safe for concurrent use provided that handler is.
type Parser[V any] struct {
	tables  *Tables
	lexer   *lexer.Lexer
	handler Handler[V]
}

// NewParser creates parser driving handler with tables. Lexer must be built from the same grammar.
func NewParser[V any](t *Tables, l *lexer.Lexer, h Handler[V]) *Parser[V] {
	return &Parser[V]{t, l, h}
}

func (p *Parser[V]) Tables() *Tables {
	return p.tables
}

// ParseString parses text, name is used in error messages.
func (p *Parser[V]) ParseString(ctx context.Context, name, text string) (V, error) {
	return p.Parse(ctx, source.NewString(name, text))
}

// Parse parses src and returns the value produced by the last reduce of the goal symbol.
// Errors returned by lexer and handler are returned unchanged.
func (p *Parser[V]) Parse(ctx context.Context, src *source.Source) (result V, e error) {
	scanner := p.lexer.Scan(src)
	states := []int{0}
	values := make([]V, 0, 16)

	next := func() (*lexer.Token, error) {
		if ce := ctx.Err(); ce != nil {
			return nil, canceledError(src.Name(), ce)
		}
		return scanner.Next()
	}

	tok, e := next()
	if e != nil {
		return
	}

	for {
		state := states[len(states)-1]
		action, found := p.tables.Action(state, tok.Type())
		if !found {
			e = p.syntaxError(tok, state)
			return
		}

		switch action.Type {
		case ShiftAction:
			var v V
			v, e = p.handler.Shift(tok.Type(), tok.Text())
			if e != nil {
				return
			}
			values = append(values, v)
			states = append(states, action.Target)
			tok, e = next()
			if e != nil {
				return
			}

		case ReduceAction:
			r := p.tables.grammar.Rules[action.Target]
			size := len(r.Rhs)
			children := make([]V, size)
			copy(children, values[len(values)-size:])
			values = values[:len(values)-size]
			states = states[:len(states)-size]

			var v V
			v, e = p.handler.Reduce(action.Target, children)
			if e != nil {
				return
			}
			values = append(values, v)
			states = append(states, p.tables.gotos[states[len(states)-1]][r.Lhs])

		case AcceptAction:
			result = values[len(values)-1]
			return
		}
	}
}

func (p *Parser[V]) syntaxError(tok *lexer.Token, state int) error {
	expected := strings.Join(p.tables.Expected(state), " or ")
	if tok.Type() == lexer.EoiTokenType {
		return unexpectedEoiError(tok, expected)
	}
	return unexpectedTokenError(tok, expected)
}
