package frontend

import (
	"context"
	"reflect"

	"github.com/ava12/lrx"
	"github.com/ava12/lrx/dispatch"
	"github.com/ava12/lrx/grammar"
	"github.com/ava12/lrx/lexer"
	"github.com/ava12/lrx/lr"
	"github.com/ava12/lrx/registry"
	"github.com/ava12/lrx/source"
	"github.com/ava12/lrx/symbol"
	"github.com/ava12/lrx/value"
)

// Error codes used by frontend:
const (
	// ResultTypeMismatchError indicates that parse result cannot be viewed as requested result type.
	ResultTypeMismatchError = lrx.ResultErrors + iota
)

// DefaultSourceName is used in error messages unless WithSourceName option is given.
const DefaultSourceName = "input"

type options struct {
	goal       reflect.Type
	sourceName string
}

// Option configures Build.
type Option func(*options)

// WithGoal sets the goal symbol of the grammar.
// By default the goal is the result type if some rule produces it, otherwise the only type produced
// by rules and not used by any rule, otherwise the type produced by the first rule.
func WithGoal[T any]() Option {
	return func(o *options) {
		o.goal = reflect.TypeFor[T]()
	}
}

// WithSourceName sets source name used in error messages.
func WithSourceName(name string) Option {
	return func(o *options) {
		o.sourceName = name
	}
}

// Parser parses text into values of type R.
// Parser is immutable and safe for concurrent use provided that rule and token actions are.
type Parser[R any] struct {
	reg        *registry.Registry
	tables     *lr.Tables
	engine     *lr.Parser[value.Value]
	sourceName string
}

func (l *Language) producedBy(rt reflect.Type) (symbol.Symbol, bool) {
	s, found := l.reg.Symbols().Find(rt)
	if !found {
		return symbol.None, false
	}

	for i := 0; i < l.reg.ProductionCount(); i++ {
		if l.reg.Production(i).Lhs == s {
			return s, true
		}
	}
	return symbol.None, false
}

func (l *Language) goal(o *options, result reflect.Type) (symbol.Symbol, error) {
	if o.goal != nil {
		s, found := l.producedBy(o.goal)
		if !found {
			return symbol.None, lrx.FormatError(lr.NoGoalError, "goal type %s is not produced by any rule", o.goal)
		}
		return s, nil
	}

	s, _ := l.producedBy(result)
	return s, nil
}

// Build freezes language and creates parser returning values of type R.
// Any declaration error, grammar error or grammar conflict is returned here.
// Language cannot be extended after Build, but may be built again with different options.
func Build[R any](l *Language, opts ...Option) (*Parser[R], error) {
	if e := l.Err(); e != nil {
		return nil, e
	}

	o := options{sourceName: DefaultSourceName}
	for _, opt := range opts {
		opt(&o)
	}

	l.reg.Freeze()
	goal, e := l.goal(&o, reflect.TypeFor[R]())
	if e != nil {
		return nil, e
	}

	g, e := l.reg.Grammar(goal)
	if e != nil {
		return nil, e
	}

	tables, e := lr.BuildTables(g)
	if e != nil {
		return nil, e
	}

	lex, e := lexer.New(g)
	if e != nil {
		return nil, e
	}

	return &Parser[R]{
		reg:        l.reg,
		tables:     tables,
		engine:     lr.NewParser[value.Value](tables, lex, dispatch.New(l.reg)),
		sourceName: o.sourceName,
	}, nil
}

// Compile builds parser for language defined as a type.
func Compile[R any](def Definition, opts ...Option) (*Parser[R], error) {
	l := New()
	def.InitRules(l)
	return Build[R](l, opts...)
}

// MustCompile is like Compile but panics on error.
func MustCompile[R any](def Definition, opts ...Option) *Parser[R] {
	p, e := Compile[R](def, opts...)
	if e != nil {
		panic(e)
	}
	return p
}

// Parse parses text.
func (p *Parser[R]) Parse(text string) (R, error) {
	return p.ParseContext(context.Background(), text)
}

// ParseContext parses text, parsing stops with lr.CanceledError when ctx is done.
func (p *Parser[R]) ParseContext(ctx context.Context, text string) (R, error) {
	return p.ParseSource(ctx, source.NewString(p.sourceName, text))
}

// ParseSource parses src. Lexical and syntax errors and errors returned by actions are returned unchanged.
// If parsed value cannot be viewed as R, ResultTypeMismatchError is returned.
// Parser panics with *lrx.Error of lrx.DispatchErrors class if parser tables and registry disagree.
func (p *Parser[R]) ParseSource(ctx context.Context, src *source.Source) (result R, e error) {
	v, e := p.engine.Parse(ctx, src)
	if e != nil {
		if lrx.IsFatal(e) {
			panic(e)
		}
		return
	}

	result, ok := value.As[R](v)
	if !ok {
		e = lrx.FormatError(ResultTypeMismatchError, "cannot use %s value as %s",
			p.reg.Denormalize(v.Symbol()), reflect.TypeFor[R]())
	}
	return
}

// DescribeProduction returns the place where rule was declared, e.g. "lang.go:42".
func (p *Parser[R]) DescribeProduction(id int) string {
	return p.reg.DescribeProduction(id)
}

// Denormalize returns full type name of the symbol.
func (p *Parser[R]) Denormalize(s symbol.Symbol) string {
	return p.reg.Denormalize(s)
}

func (p *Parser[R]) Registry() *registry.Registry {
	return p.reg
}

func (p *Parser[R]) Grammar() *grammar.Grammar {
	return p.tables.Grammar()
}

func (p *Parser[R]) Tables() *lr.Tables {
	return p.tables
}
