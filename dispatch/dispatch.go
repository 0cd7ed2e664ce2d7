// Package dispatch routes parser shift and reduce events to typed actions of a frozen registry.
//
// Every error returned by Dispatcher means that the registry and parser tables disagree,
// such errors never depend on input text and belong to lrx.DispatchErrors class.
// Errors returned by actions themselves are passed through unchanged.
package dispatch

import (
	"github.com/ava12/lrx"
	"github.com/ava12/lrx/registry"
	"github.com/ava12/lrx/value"
)

// Error codes used by dispatcher:
const (
	// UnknownTokenError indicates that parser shifted a token not present in registry.
	UnknownTokenError = lrx.DispatchErrors + iota

	// UnknownProductionError indicates that parser reduced a rule not present in registry.
	UnknownProductionError

	// ArityMismatchError indicates that the number of reduced values differs from rule arity.
	ArityMismatchError

	// TypeMismatchError indicates that a reduced value cannot be passed to rule action.
	// Error message contains value position and both type names.
	TypeMismatchError
)

// Dispatcher implements lr.Handler for tagged values.
// Dispatcher holds no state of its own and is safe for concurrent use once registry is frozen.
type Dispatcher struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{reg}
}

func (d *Dispatcher) Registry() *registry.Registry {
	return d.reg
}

// Shift converts token text using token action.
func (d *Dispatcher) Shift(token int, text string) (value.Value, error) {
	t := d.reg.Token(token)
	if t == nil || t.Action == nil {
		return value.Value{}, lrx.FormatError(UnknownTokenError, "unknown token id %d", token)
	}

	return t.Action(text)
}

// Reduce checks children against rule signature and calls rule action with children in the same order.
func (d *Dispatcher) Reduce(rule int, children []value.Value) (value.Value, error) {
	p := d.reg.Production(rule)
	if p == nil || p.Action == nil {
		return value.Value{}, lrx.FormatError(UnknownProductionError, "unknown rule id %d", rule)
	}

	if len(children) != p.Arity() {
		return value.Value{}, lrx.FormatError(ArityMismatchError,
			"rule %d (%s) takes %d values, got %d", rule, d.reg.DescribeProduction(rule), p.Arity(), len(children))
	}

	for i, child := range children {
		if e := d.checkChild(rule, p, i, child); e != nil {
			return value.Value{}, e
		}
	}

	return p.Action(children)
}

func (d *Dispatcher) checkChild(rule int, p *registry.Production, i int, child value.Value) error {
	var got string
	switch {
	case !child.IsValid():
		got = "invalid value"
	case child.Symbol() != p.Rhs[i]:
		got = d.reg.Denormalize(child.Symbol())
	case p.Params != nil && !child.Type().AssignableTo(p.Params[i]):
		got = child.Type().String()
	default:
		return nil
	}

	return lrx.FormatError(TypeMismatchError, "rule %d (%s) position %d: expecting %s, got %s",
		rule, d.reg.DescribeProduction(rule), i, d.reg.Denormalize(p.Rhs[i]), got)
}
